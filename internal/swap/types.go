package swap

import (
	"context"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/engine"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		Put(ctx context.Context, key string, value []byte) error
	}
	MakerService interface {
		CreateOrder(ctx context.Context, req relayer.CreateOrderRequest) (relayer.CreateOrderResponse, error)
		PlaceOrder(ctx context.Context, req relayer.PlaceOrderRequest) (relayer.PlaceOrderStream, error)
		ExecuteOrder(ctx context.Context, req relayer.ExecuteOrderRequest) error
		CompleteOrder(ctx context.Context, req relayer.CompleteOrderRequest) error
		CancelOrder(ctx context.Context, req relayer.CancelOrderRequest) error
	}
	TakerService interface {
		CreateFill(ctx context.Context, req relayer.CreateFillRequest) (relayer.CreateFillResponse, error)
		FillOrder(ctx context.Context, req relayer.FillOrderRequest) (relayer.FillOrderResponse, error)
		SubscribeExecute(ctx context.Context, req relayer.SubscribeExecuteRequest) (relayer.ExecuteStream, error)
	}
	Authorizer interface {
		Authorize(resourceID string) (relayer.Authorization, error)
	}
	Engines interface {
		Get(symbol string) (engine.Engine, error)
	}
	Engine interface {
		Symbol() string
		MaxPaymentSize() int64
		GetPaymentChannelNetworkAddress(ctx context.Context) (string, error)
		IsBalanceSufficient(ctx context.Context, address string, amount int64, outbound bool) (bool, error)
		CreateSwapHash(ctx context.Context, orderID string, amount int64) (string, error)
		PrepareSwap(ctx context.Context, orderID, swapHash string, amount int64) error
		ExecuteSwap(ctx context.Context, address, swapHash string, amount int64) error
		GetSettledSwapPreimage(ctx context.Context, swapHash string) (string, error)
		PayInvoice(ctx context.Context, paymentRequest string) error
		CreateRefundInvoice(ctx context.Context, paymentRequest string) (string, error)
	}
	PlaceOrderStream interface {
		Recv() (relayer.PlaceOrderEvent, error)
		Close() error
	}
	ExecuteStream interface {
		Recv() (relayer.ExecuteEvent, error)
		Close() error
	}
	TransitionMetrics interface {
		ObserveTransition(transition string, err error, started time.Time)
	}
)
