package engine

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Engine is a payment channel node for a single currency. Amounts are in
	// quantums of that currency.
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
)
