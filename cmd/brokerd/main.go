// Command brokerd works block orders into atomic swaps and serves the block
// order API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/blockorder"
	"github.com/goodnatureofminers/swapbroker/internal/metrics"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
	"github.com/goodnatureofminers/swapbroker/internal/store"
	"github.com/goodnatureofminers/swapbroker/internal/swap"
	"github.com/goodnatureofminers/swapbroker/internal/transport"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		panic("can't parse arguments: " + err.Error())
	}
	logger, err := newLogger(config.LogLevel, config.LogFile)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, logger); err != nil {
		logger.Fatal("Broker stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	if !config.Paper.Enabled {
		return errors.New("no relayer transport is configured, run with --paper.enabled")
	}
	if err := os.MkdirAll(config.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	currencies, err := loadCurrencies(config.CurrenciesFile)
	if err != nil {
		return err
	}
	identity, err := loadIdentity(identityPath(), logger)
	if err != nil {
		return err
	}

	db, err := store.Open("broker", config.DBBackend, config.DataDir)
	if err != nil {
		return err
	}
	st, err := store.New(db, logger.Named("store"), metrics.NewStore())
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	v, err := newPaperVenue(config.Markets, currencies, logger)
	if err != nil {
		return err
	}
	defer v.exchange.Close()
	streams := workflow.NewGoroutines(logger.Named("streams"))
	defer streams.Wait()
	client := relayer.NewObservedClient(v.exchange.Client(), metrics.NewRelayerClient(), config.RelayerRPS).Client()

	queue := workflow.NewWorkQueue(logger.Named("work_queue"), config.Workers)
	queue.Start()
	defer queue.Stop()

	worker, err := blockorder.New(blockorder.Config{
		Orderbooks: v.orderbooks,
		Store:      st,
		Relayer:    client.PaymentChannelNetwork,
		Maker:      client.Maker,
		Identity:   identity,
		Engines:    v.engines,
		Currencies: currencies,
		Swap: swap.Deps{
			Logger:       logger,
			Maker:        client.Maker,
			Taker:        client.Taker,
			Identity:     identity,
			Engines:      v.engines,
			Scheduler:    queue,
			Blocking:     streams,
			OrderMetrics: metrics.NewStateMachine("order"),
			FillMetrics:  metrics.NewStateMachine("fill"),
		},
		Logger:  logger,
		Metrics: metrics.NewBlockOrderWorker(),
		Workers: config.RecoveryWorkers,
	})
	if err != nil {
		return err
	}
	defer worker.Stop()
	if err := worker.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize block order worker: %w", err)
	}

	grpcServer, health := transport.NewAdminServer(logger)
	socket, err := net.Listen("tcp", config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", config.GRPCAddr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/v1/", transport.NewHTTPHandler(worker, logger))
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		health.Shutdown()
		grpcServer.GracefulStop()
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	health.SetServing()
	logger.Info("Starting broker",
		zap.String("http_addr", config.HTTPAddr),
		zap.String("grpc_addr", config.GRPCAddr),
		zap.Strings("markets", config.Markets),
		zap.String("identity", identity.PubKey()),
	)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

func identityPath() string {
	if config.IdentityFile != "" {
		return config.IdentityFile
	}
	return filepath.Join(config.DataDir, "identity.key")
}

// loadIdentity reads the broker key, creating it on first start.
func loadIdentity(path string, logger *zap.Logger) (*relayer.Identity, error) {
	identity, err := relayer.LoadIdentity(path)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	identity, err = relayer.GenerateIdentity()
	if err != nil {
		return nil, err
	}
	if err := identity.Save(path); err != nil {
		return nil, fmt.Errorf("save identity key: %w", err)
	}
	logger.Info("Created identity key", zap.String("path", path), zap.String("pubkey", identity.PubKey()))
	return identity, nil
}

func loadCurrencies(path string) (model.Currencies, error) {
	if path == "" {
		return model.DefaultCurrencies(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open currencies: %w", err)
	}
	defer f.Close()
	return model.LoadCurrencies(f)
}
