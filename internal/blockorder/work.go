package blockorder

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WorkBlockOrder fills or places depth base quantums of the block order.
// Nothing happens once the block order is no longer active.
func (w *Worker) WorkBlockOrder(ctx context.Context, blockOrder *model.BlockOrder, depth int64) (err error) {
	bo, err := w.loadBlockOrder(ctx, blockOrder.ID)
	if err != nil {
		return err
	}
	logger := w.logger.With(zap.String("block_order_id", bo.ID))
	if !bo.IsActive() {
		logger.Info("block order is not active, skipping work", zap.String("status", string(bo.Status())))
		return nil
	}
	if depth <= 0 {
		return fmt.Errorf("%w: depth of %d cannot be worked", model.ErrInvalidParams, depth)
	}
	book, ok := w.orderbooks[bo.MarketName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMarket, bo.MarketName)
	}
	defer func() {
		w.metrics.ObserveWork(bo.MarketName, err)
	}()

	logger.Info("working block order", zap.Int64("depth", depth), zap.Bool("market_order", bo.IsMarketOrder()))
	if bo.IsMarketOrder() {
		return w.workMarketBlockOrder(ctx, bo, book, depth)
	}
	return w.workLimitBlockOrder(ctx, bo, book, depth)
}

func (w *Worker) workMarketBlockOrder(ctx context.Context, bo *model.BlockOrder, book Orderbook, depth int64) error {
	orders, err := book.GetBestOrders(ctx, bo.InverseSide(), depth, nil)
	if err != nil {
		return fmt.Errorf("get best %s orders: %w", bo.MarketName, err)
	}
	planned, fillable, err := w.selectOrders(ctx, orders, depth)
	if err != nil {
		return err
	}
	if fillable < depth {
		return fmt.Errorf("%w: %d of %d available on %s", ErrInsufficientDepth, fillable, depth, bo.MarketName)
	}
	return w.fillOrders(ctx, bo, planned)
}

func (w *Worker) workLimitBlockOrder(ctx context.Context, bo *model.BlockOrder, book Orderbook, depth int64) error {
	price, _ := bo.QuantumPrice()
	orders, err := book.GetBestOrders(ctx, bo.InverseSide(), depth, &price)
	if err != nil {
		return fmt.Errorf("get best %s orders: %w", bo.MarketName, err)
	}
	planned, fillable, err := w.selectOrders(ctx, orders, depth)
	if err != nil {
		return err
	}
	if err := w.fillOrders(ctx, bo, planned); err != nil {
		return err
	}
	if remaining := depth - fillable; remaining > 0 {
		return w.placeOrders(ctx, bo, remaining)
	}
	return nil
}

type plannedFill struct {
	order  model.BookOrder
	amount int64
}

// selectOrders takes book orders in order until depth is covered. Orders
// placed by this broker are never filled.
func (w *Worker) selectOrders(ctx context.Context, orders []model.BookOrder, depth int64) ([]plannedFill, int64, error) {
	var (
		planned []plannedFill
		total   int64
	)
	for _, o := range orders {
		if total >= depth {
			break
		}
		own, err := w.ordersByOrderID.Keys(ctx, o.OrderID)
		if err != nil {
			return nil, 0, err
		}
		if len(own) > 0 {
			w.logger.Debug("skipping own order", zap.String("order_id", o.OrderID))
			continue
		}
		amount := min(o.BaseAmount, depth-total)
		planned = append(planned, plannedFill{order: o, amount: amount})
		total += amount
	}
	return planned, total, nil
}

// fillOrders starts one fill per planned order. A fill that fails to be
// created is rejected by its machine and resolved by its watcher.
func (w *Worker) fillOrders(ctx context.Context, bo *model.BlockOrder, planned []plannedFill) error {
	for _, p := range planned {
		fill, err := model.NewFill(bo.ID, p.order, p.amount)
		if err != nil {
			return err
		}
		fsm, err := w.machines.NewFill(fill)
		if err != nil {
			return err
		}
		w.watchFill(bo.ID, fsm)
		if err := fsm.Create(ctx); err != nil {
			w.logger.Warn("fill was not created",
				zap.String("block_order_id", bo.ID),
				zap.String("order_id", p.order.OrderID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// placeOrders places amount as orders no larger than either engine can pay.
func (w *Worker) placeOrders(ctx context.Context, bo *model.BlockOrder, amount int64) error {
	price, ok := bo.QuantumPrice()
	if !ok {
		return fmt.Errorf("block order %s has no price to place orders at", bo.ID)
	}
	baseEngine, err := w.engines.Get(bo.BaseSymbol())
	if err != nil {
		return err
	}
	counterEngine, err := w.engines.Get(bo.CounterSymbol())
	if err != nil {
		return err
	}
	maxPerOrder, err := maxOrderSize(baseEngine.MaxPaymentSize(), counterEngine.MaxPaymentSize(), price)
	if err != nil {
		return err
	}

	amounts := splitAmount(amount, maxPerOrder)
	w.logger.Info("placing orders",
		zap.String("block_order_id", bo.ID),
		zap.Int64("amount", amount),
		zap.Int("orders", len(amounts)),
	)
	for _, baseAmount := range amounts {
		if err := w.placeOrder(ctx, bo, baseAmount, price); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) placeOrder(ctx context.Context, bo *model.BlockOrder, baseAmount int64, price decimal.Decimal) error {
	counterAmount, err := safe.RoundInt64(price.Mul(decimal.NewFromInt(baseAmount)))
	if err != nil {
		return fmt.Errorf("counter amount of %d: %w", baseAmount, err)
	}
	order, err := model.NewOrder(bo.ID, model.OrderParams{
		Side:          bo.Side,
		BaseSymbol:    bo.BaseSymbol(),
		CounterSymbol: bo.CounterSymbol(),
		BaseAmount:    baseAmount,
		CounterAmount: counterAmount,
	})
	if err != nil {
		return err
	}
	osm, err := w.machines.NewOrder(order)
	if err != nil {
		return err
	}
	w.watchOrder(bo.ID, osm)
	if err := osm.Create(ctx); err != nil {
		w.logger.Warn("order was not created", zap.String("block_order_id", bo.ID), zap.Error(err))
	}
	return nil
}

// maxOrderSize is the largest base amount an order can carry when the base
// leg is bounded by baseMax and the counter leg by counterMax.
func maxOrderSize(baseMax, counterMax int64, quantumPrice decimal.Decimal) (int64, error) {
	if !quantumPrice.IsPositive() {
		return 0, fmt.Errorf("%w: price %s is not positive", model.ErrInvalidParams, quantumPrice)
	}
	counterBound, err := safe.FloorInt64(decimal.NewFromInt(counterMax).Div(quantumPrice))
	if err != nil {
		return 0, err
	}
	size := min(baseMax, counterBound)
	if size <= 0 {
		return 0, fmt.Errorf("%w: payment sizes %d and %d cannot carry an order at price %s",
			model.ErrInvalidParams, baseMax, counterMax, quantumPrice)
	}
	return size, nil
}

// splitAmount carves amount into chunks of maxPerOrder and a remainder.
func splitAmount(amount, maxPerOrder int64) []int64 {
	if amount <= 0 || maxPerOrder <= 0 {
		return nil
	}
	out := make([]int64, 0, (amount+maxPerOrder-1)/maxPerOrder)
	for amount > 0 {
		chunk := min(amount, maxPerOrder)
		out = append(out, chunk)
		amount -= chunk
	}
	return out
}
