package blockorder

import (
	"context"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/engine"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Orderbook is a local view of one market of the relayer order book.
	// Prices are in counter quantums per base quantum. GetBestOrders
	// returns orders of side, best first, until depth is covered; a
	// non-nil quantumPrice excludes orders priced worse than it.
	Orderbook interface {
		BaseSymbol() string
		CounterSymbol() string
		GetBestOrders(ctx context.Context, side model.Side, depth int64, quantumPrice *decimal.Decimal) ([]model.BookOrder, error)
		GetAveragePrice(ctx context.Context, side model.Side, depth int64) (decimal.Decimal, error)
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
	PaymentChannelNetwork interface {
		GetAddress(ctx context.Context, symbol string) (string, error)
	}
	OrderCanceller interface {
		CancelOrder(ctx context.Context, req relayer.CancelOrderRequest) error
	}
	Authorizer interface {
		Authorize(resourceID string) (relayer.Authorization, error)
	}
	// Machines builds the order and fill state machines the worker drives.
	Machines interface {
		NewOrder(order *model.Order) (OrderMachine, error)
		NewFill(fill *model.Fill) (FillMachine, error)
		OrderFromStore(key string, value []byte) (OrderMachine, error)
		FillFromStore(key string, value []byte) (FillMachine, error)
	}
	OrderMachine interface {
		Create(ctx context.Context) error
		TriggerState(ctx context.Context)
		Subscribe(event string) <-chan struct{}
		State() workflow.State
		Err() error
		Order() *model.Order
	}
	FillMachine interface {
		Create(ctx context.Context) error
		TriggerState(ctx context.Context)
		Subscribe(event string) <-chan struct{}
		State() workflow.State
		Err() error
		Fill() *model.Fill
		ShouldRetry() bool
	}
	Metrics interface {
		ObserveCreate(market, side string, err error, started time.Time)
		ObserveStatus(market, blockOrderStatus string)
		ObserveWork(market string, err error)
		ObserveRecovered(n int)
	}
)
