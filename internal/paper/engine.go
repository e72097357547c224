package paper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var ErrInsufficientBalance = errors.New("insufficient channel balance")

// EngineConfig describes one simulated payment channel node. Balances are
// in quantums.
type EngineConfig struct {
	Symbol         string
	MaxPaymentSize int64
	Outbound       int64
	Inbound        int64
}

// Engine is a payment channel node whose channels only exist in memory.
type Engine struct {
	symbol         string
	maxPaymentSize int64
	swaps          *Swaps
	logger         *zap.Logger

	mu       sync.Mutex
	outbound int64
	inbound  int64
	invoices map[string]bool
}

func NewEngine(cfg EngineConfig, swaps *Swaps, logger *zap.Logger) (*Engine, error) {
	switch {
	case cfg.Symbol == "":
		return nil, errors.New("paper engine symbol is required")
	case cfg.MaxPaymentSize <= 0:
		return nil, fmt.Errorf("paper engine %s needs a positive max payment size", cfg.Symbol)
	case swaps == nil:
		return nil, errors.New("paper engine swaps are required")
	case logger == nil:
		return nil, errors.New("paper engine logger is required")
	}
	return &Engine{
		symbol:         cfg.Symbol,
		maxPaymentSize: cfg.MaxPaymentSize,
		swaps:          swaps,
		logger:         logger.Named("paper_engine").With(zap.String("symbol", cfg.Symbol)),
		outbound:       cfg.Outbound,
		inbound:        cfg.Inbound,
		invoices:       make(map[string]bool),
	}, nil
}

func (e *Engine) Symbol() string { return e.symbol }

func (e *Engine) MaxPaymentSize() int64 { return e.maxPaymentSize }

// Balances returns the outbound and inbound capacity left.
func (e *Engine) Balances() (outbound, inbound int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outbound, e.inbound
}

func (e *Engine) GetPaymentChannelNetworkAddress(context.Context) (string, error) {
	return "paper:" + strings.ToLower(e.symbol), nil
}

func (e *Engine) IsBalanceSufficient(_ context.Context, address string, amount int64, outbound bool) (bool, error) {
	if address == "" {
		return false, errors.New("address is required to check a channel balance")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if outbound {
		return e.outbound >= amount, nil
	}
	return e.inbound >= amount, nil
}

// CreateSwapHash creates a swap this engine receives amount for.
func (e *Engine) CreateSwapHash(_ context.Context, orderID string, amount int64) (string, error) {
	hash, err := e.swaps.New()
	if err != nil {
		return "", err
	}
	if err := e.swaps.Receive(hash, e, amount); err != nil {
		return "", err
	}
	e.logger.Debug("created swap hash", zap.String("order_id", orderID), zap.Int64("amount", amount))
	return hash, nil
}

// PrepareSwap makes this engine the receiver of a swap created elsewhere.
func (e *Engine) PrepareSwap(_ context.Context, orderID, swapHash string, amount int64) error {
	if err := e.swaps.Receive(swapHash, e, amount); err != nil {
		return err
	}
	e.logger.Debug("prepared swap", zap.String("order_id", orderID), zap.Int64("amount", amount))
	return nil
}

// ExecuteSwap pays amount toward address and settles the swap.
func (e *Engine) ExecuteSwap(_ context.Context, address, swapHash string, amount int64) error {
	if address == "" {
		return errors.New("address is required to execute a swap")
	}
	if amount > e.maxPaymentSize {
		return fmt.Errorf("payment of %d exceeds max payment size %d", amount, e.maxPaymentSize)
	}
	if err := e.debit(amount); err != nil {
		return err
	}
	return e.swaps.Settle(swapHash)
}

func (e *Engine) GetSettledSwapPreimage(ctx context.Context, swapHash string) (string, error) {
	return e.swaps.Preimage(ctx, swapHash)
}

func (e *Engine) PayInvoice(_ context.Context, paymentRequest string) error {
	if paymentRequest == "" {
		return errors.New("payment request is required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invoices[paymentRequest] = true
	return nil
}

func (e *Engine) CreateRefundInvoice(_ context.Context, paymentRequest string) (string, error) {
	if paymentRequest == "" {
		return "", errors.New("payment request is required")
	}
	return "refund:" + paymentRequest, nil
}

// Paid reports whether paymentRequest was paid by this engine.
func (e *Engine) Paid(paymentRequest string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.invoices[paymentRequest]
}

func (e *Engine) debit(amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.outbound < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, e.symbol, e.outbound, amount)
	}
	e.outbound -= amount
	e.inbound += amount
	return nil
}

func (e *Engine) credit(amount int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outbound += amount
	e.inbound -= amount
}
