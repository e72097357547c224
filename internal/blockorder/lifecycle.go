package blockorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
	"github.com/goodnatureofminers/swapbroker/internal/swap"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	"github.com/goodnatureofminers/swapbroker/pkg/workerpool"
	"go.uber.org/zap"
)

// watchOrder resolves the lifecycle events of an order. It must be called
// before the machine's first transition.
func (w *Worker) watchOrder(blockOrderID string, osm OrderMachine) {
	beforeExecute := osm.Subscribe(workflow.BeforeEvent(swap.TransitionExecute))
	completed := osm.Subscribe(swap.TransitionComplete)
	rejected := osm.Subscribe(swap.TransitionReject)
	cancelled := osm.Subscribe(swap.TransitionCancel)

	w.goBackground(func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-beforeExecute:
				beforeExecute = nil
				// a partial fill leaves the rest of the order to be worked again
				order := osm.Order()
				if remaining := order.BaseAmount - order.FillAmount; remaining > 0 {
					w.rework(ctx, blockOrderID, remaining)
				}
			case <-completed:
				w.checkCompletionInBackground(ctx, blockOrderID)
				return
			case <-rejected:
				w.failInBackground(ctx, blockOrderID, fmt.Errorf("order rejected: %w", osm.Err()))
				return
			case <-cancelled:
				return
			}
		}
	})
}

// watchFill resolves the lifecycle events of a fill. It must be called
// before the machine's first transition.
func (w *Worker) watchFill(blockOrderID string, fsm FillMachine) {
	executed := fsm.Subscribe(swap.TransitionExecute)
	rejected := fsm.Subscribe(swap.TransitionReject)
	cancelled := fsm.Subscribe(swap.TransitionCancel)

	w.goBackground(func(ctx context.Context) {
		select {
		case <-ctx.Done():
		case <-executed:
			w.checkCompletionInBackground(ctx, blockOrderID)
		case <-rejected:
			if fsm.ShouldRetry() {
				w.logger.Info("fill was refused because its order left the book, working its amount again",
					zap.String("block_order_id", blockOrderID))
				w.rework(ctx, blockOrderID, fsm.Fill().FillAmount)
				return
			}
			w.failInBackground(ctx, blockOrderID, fmt.Errorf("fill rejected: %w", fsm.Err()))
		case <-cancelled:
		}
	})
}

func (w *Worker) rework(ctx context.Context, blockOrderID string, amount int64) {
	bo, err := w.loadBlockOrder(ctx, blockOrderID)
	if err == nil {
		err = w.WorkBlockOrder(ctx, bo, amount)
	}
	if err != nil {
		w.failInBackground(ctx, blockOrderID, err)
	}
}

func (w *Worker) failInBackground(ctx context.Context, blockOrderID string, cause error) {
	logger := w.logger.With(zap.String("block_order_id", blockOrderID))
	if ctx.Err() != nil {
		logger.Warn("shutting down, leaving block order for recovery", zap.NamedError("cause", cause))
		return
	}
	err := w.FailBlockOrder(ctx, blockOrderID, cause)
	switch {
	case errors.Is(err, model.ErrBlockOrderNotActive):
		logger.Info("block order already finished", zap.NamedError("cause", cause))
	case err != nil:
		logger.Error("could not fail block order", zap.NamedError("cause", cause), zap.Error(err))
	}
}

func (w *Worker) checkCompletionInBackground(ctx context.Context, blockOrderID string) {
	if err := w.CheckBlockOrderCompletion(ctx, blockOrderID); err != nil && ctx.Err() == nil {
		w.logger.Error("could not check block order completion", zap.String("block_order_id", blockOrderID), zap.Error(err))
	}
}

// CheckBlockOrderCompletion completes the block order once its filled and
// executing children cover its amount.
func (w *Worker) CheckBlockOrderCompletion(ctx context.Context, blockOrderID string) error {
	return w.setStatus(ctx, blockOrderID, func(bo *model.BlockOrder) (bool, error) {
		if !bo.IsActive() {
			return false, nil
		}
		if err := w.populate(ctx, bo); err != nil {
			return false, err
		}
		filled, target := bo.FilledAmount(), bo.BaseAmount()
		if filled < target {
			w.logger.Debug("block order not complete yet",
				zap.String("block_order_id", bo.ID),
				zap.Int64("filled", filled),
				zap.Int64("target", target),
			)
			return false, nil
		}
		return true, bo.Complete()
	})
}

// FailBlockOrder cancels the open orders of the block order and marks it
// FAILED. Orders that cannot be cancelled do not prevent the failure.
func (w *Worker) FailBlockOrder(ctx context.Context, blockOrderID string, cause error) error {
	bo, err := w.GetBlockOrder(ctx, blockOrderID)
	if err != nil {
		return err
	}
	if !bo.IsActive() {
		return fmt.Errorf("fail block order %s: %w", blockOrderID, model.ErrBlockOrderNotActive)
	}
	w.logger.Error("failing block order", zap.String("block_order_id", blockOrderID), zap.NamedError("cause", cause))
	if err := w.cancelOpenOrders(ctx, bo); err != nil {
		w.logger.Error("could not cancel every open order of a failing block order",
			zap.String("block_order_id", blockOrderID), zap.Error(err))
	}
	return w.setStatus(ctx, blockOrderID, func(bo *model.BlockOrder) (bool, error) {
		return true, bo.Fail()
	})
}

// CancelBlockOrder cancels the open orders of the block order and marks it
// CANCELLED. If an order cannot be cancelled the block order is FAILED
// instead and the error returned.
func (w *Worker) CancelBlockOrder(ctx context.Context, blockOrderID string) error {
	bo, err := w.GetBlockOrder(ctx, blockOrderID)
	if err != nil {
		return err
	}
	if !bo.IsActive() {
		return fmt.Errorf("cancel block order %s: %w", blockOrderID, model.ErrBlockOrderNotActive)
	}
	if err := w.cancelOpenOrders(ctx, bo); err != nil {
		w.logger.Error("could not cancel every open order, failing block order",
			zap.String("block_order_id", blockOrderID), zap.Error(err))
		if failErr := w.setStatus(ctx, blockOrderID, func(bo *model.BlockOrder) (bool, error) {
			return true, bo.Fail()
		}); failErr != nil {
			w.logger.Error("could not fail block order", zap.String("block_order_id", blockOrderID), zap.Error(failErr))
		}
		return fmt.Errorf("cancel block order %s: %w", blockOrderID, err)
	}
	return w.setStatus(ctx, blockOrderID, func(bo *model.BlockOrder) (bool, error) {
		return true, bo.Cancel()
	})
}

// cancelOpenOrders asks the relayer to cancel every order of bo that is
// still on the book. Their machines learn about it from their streams.
func (w *Worker) cancelOpenOrders(ctx context.Context, bo *model.BlockOrder) error {
	var open []*model.Order
	for _, r := range bo.OpenOrders() {
		if r.Order.OrderID != "" {
			open = append(open, r.Order)
		}
	}
	return workerpool.ProcessAll(ctx, w.workers, open, func(ctx context.Context, order *model.Order) error {
		cancel := func() error {
			auth, err := w.identity.Authorize(order.OrderID)
			if err != nil {
				return backoff.Permanent(err)
			}
			return w.maker.CancelOrder(ctx, relayer.CancelOrderRequest{OrderID: order.OrderID, Authorization: auth})
		}
		if err := backoff.Retry(cancel, backoff.WithContext(w.cancelBackoff(), ctx)); err != nil {
			return fmt.Errorf("cancel order %s: %w", order.OrderID, err)
		}
		w.logger.Info("cancelled order on the relayer",
			zap.String("block_order_id", bo.ID),
			zap.String("order_id", order.OrderID),
		)
		return nil
	})
}

// setStatus runs fn on the freshly loaded block order and saves it when fn
// reports a change. Updates of one block order never interleave.
func (w *Worker) setStatus(ctx context.Context, blockOrderID string, fn func(bo *model.BlockOrder) (bool, error)) error {
	unlock := w.statuses.Lock(blockOrderID)
	defer unlock()

	bo, err := w.loadBlockOrder(ctx, blockOrderID)
	if err != nil {
		return err
	}
	changed, err := fn(bo)
	if err != nil || !changed {
		return err
	}
	if err := w.saveBlockOrder(ctx, bo); err != nil {
		return err
	}
	w.metrics.ObserveStatus(bo.MarketName, string(bo.Status()))
	w.logger.Info("block order status changed",
		zap.String("block_order_id", bo.ID),
		zap.String("status", string(bo.Status())),
	)
	return nil
}
