package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var config struct {
	DataDir         string   `long:"data-dir" env:"BROKERD_DATA_DIR" description:"directory of the broker database and identity key" default:"./data"`
	DBBackend       string   `long:"db-backend" env:"BROKERD_DB_BACKEND" description:"tm-db backend of the broker database" default:"goleveldb"`
	Markets         []string `long:"market" env:"BROKERD_MARKETS" env-delim:"," description:"market to trade, e.g. BTC/LTC" default:"BTC/LTC"`
	CurrenciesFile  string   `long:"currencies-file" env:"BROKERD_CURRENCIES_FILE" description:"yaml file of currency definitions"`
	IdentityFile    string   `long:"identity-file" env:"BROKERD_IDENTITY_FILE" description:"hex private key signing relayer requests, created when missing (default: <data-dir>/identity.key)"`
	HTTPAddr        string   `long:"http-addr" env:"BROKERD_HTTP_ADDR" description:"block order API and metrics addr" default:":8000"`
	GRPCAddr        string   `long:"grpc-addr" env:"BROKERD_GRPC_ADDR" description:"admin gRPC addr" default:":8001"`
	LogLevel        string   `long:"log-level" env:"BROKERD_LOG_LEVEL" description:"debug, info, warn or error" default:"info"`
	LogFile         string   `long:"log-file" env:"BROKERD_LOG_FILE" description:"also write logs to this rotated file"`
	Workers         int      `long:"workers" env:"BROKERD_WORKERS" description:"goroutines running state machine continuations" default:"16"`
	RecoveryWorkers int      `long:"recovery-workers" env:"BROKERD_RECOVERY_WORKERS" description:"block orders recovered or cancelled concurrently" default:"4"`
	RelayerRPS      int      `long:"relayer-rps" env:"BROKERD_RELAYER_RPS" description:"max relayer calls per second, 0 for unlimited" default:"50"`

	Paper struct {
		Enabled    bool          `long:"enabled" env:"ENABLED" description:"trade against an in-process simulated relayer and engines"`
		MidPrice   string        `long:"mid-price" env:"MID_PRICE" description:"price the simulated books are seeded around, in common units" default:"100"`
		Levels     int           `long:"levels" env:"LEVELS" description:"seeded orders per book side" default:"10"`
		LevelSize  string        `long:"level-size" env:"LEVEL_SIZE" description:"base amount of each seeded order, in common units" default:"0.1"`
		Balance    string        `long:"balance" env:"BALANCE" description:"outbound and inbound capacity of each simulated channel, in common units" default:"10"`
		MaxPayment string        `long:"max-payment" env:"MAX_PAYMENT" description:"largest single simulated payment, in common units" default:"1"`
		FillDelay  time.Duration `long:"fill-delay" env:"FILL_DELAY" description:"response time of simulated counterparties" default:"2s"`
	} `group:"Paper trading" namespace:"paper" env-namespace:"BROKERD_PAPER"`
}

// newLogger writes to stderr and, when a log file is configured, to a
// rotated file as JSON.
func newLogger(level, file string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), lvl),
	}
	if file != "" {
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotated), lvl))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
