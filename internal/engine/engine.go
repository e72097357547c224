// Package engine gives access to the per-currency payment channel engines.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"golang.org/x/sync/errgroup"
)

var ErrNoEngine = errors.New("no engine configured")

// Registry indexes engines by currency symbol.
type Registry struct {
	engines map[string]Engine
}

func NewRegistry(engines ...Engine) (*Registry, error) {
	r := &Registry{engines: make(map[string]Engine, len(engines))}
	for _, e := range engines {
		symbol := e.Symbol()
		if symbol == "" {
			return nil, errors.New("engine symbol is required")
		}
		if _, ok := r.engines[symbol]; ok {
			return nil, fmt.Errorf("engine for %s configured twice", symbol)
		}
		r.engines[symbol] = e
	}
	return r, nil
}

func (r *Registry) Get(symbol string) (Engine, error) {
	e, ok := r.engines[symbol]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoEngine, symbol)
	}
	return e, nil
}

// Symbols lists the configured currencies.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.engines))
	for s := range r.engines {
		out = append(out, s)
	}
	return out
}

// PayInvoice pays paymentRequest and creates the matching refund invoice,
// returning the refund request.
func PayInvoice(ctx context.Context, e Engine, paymentRequest string) (string, error) {
	var refund string
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refund, err = e.CreateRefundInvoice(ctx, paymentRequest)
		if err != nil {
			return fmt.Errorf("create refund invoice: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := e.PayInvoice(ctx, paymentRequest); err != nil {
			return fmt.Errorf("pay invoice: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return refund, nil
}

// Refunds are the refund requests for paid fee and deposit invoices.
type Refunds struct {
	Fee     string
	Deposit string
}

// PayInvoices settles the required fee and deposit invoices in parallel.
func PayInvoices(ctx context.Context, e Engine, obligations model.PaymentObligations) (Refunds, error) {
	var refunds Refunds
	g, ctx := errgroup.WithContext(ctx)
	if obligations.FeeRequired {
		g.Go(func() error {
			refund, err := PayInvoice(ctx, e, obligations.FeePaymentRequest)
			if err != nil {
				return fmt.Errorf("fee: %w", err)
			}
			refunds.Fee = refund
			return nil
		})
	}
	if obligations.DepositRequired {
		g.Go(func() error {
			refund, err := PayInvoice(ctx, e, obligations.DepositPaymentRequest)
			if err != nil {
				return fmt.Errorf("deposit: %w", err)
			}
			refunds.Deposit = refund
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Refunds{}, err
	}
	return refunds, nil
}
