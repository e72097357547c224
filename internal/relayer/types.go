package relayer

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	MakerService interface {
		CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error)
		PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlaceOrderStream, error)
		ExecuteOrder(ctx context.Context, req ExecuteOrderRequest) error
		CompleteOrder(ctx context.Context, req CompleteOrderRequest) error
		CancelOrder(ctx context.Context, req CancelOrderRequest) error
	}
	TakerService interface {
		CreateFill(ctx context.Context, req CreateFillRequest) (CreateFillResponse, error)
		FillOrder(ctx context.Context, req FillOrderRequest) (FillOrderResponse, error)
		SubscribeExecute(ctx context.Context, req SubscribeExecuteRequest) (ExecuteStream, error)
	}
	PaymentChannelNetworkService interface {
		GetAddress(ctx context.Context, symbol string) (string, error)
	}
	// PlaceOrderStream returns io.EOF once the relayer ends the stream.
	PlaceOrderStream interface {
		Recv() (PlaceOrderEvent, error)
		Close() error
	}
	ExecuteStream interface {
		Recv() (ExecuteEvent, error)
		Close() error
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
