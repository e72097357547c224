package swap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goodnatureofminers/swapbroker/internal/engine"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/relayer"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	"go.uber.org/zap"
)

var orderTransitions = []workflow.Transition{
	{Name: TransitionCreate, From: []workflow.State{model.OrderStateNone}, To: model.OrderStateCreated},
	{Name: TransitionPlace, From: []workflow.State{model.OrderStateCreated}, To: model.OrderStatePlaced},
	{Name: TransitionExecute, From: []workflow.State{model.OrderStatePlaced}, To: model.OrderStateExecuting},
	{Name: TransitionComplete, From: []workflow.State{model.OrderStateExecuting}, To: model.OrderStateCompleted},
	{Name: TransitionCancel, From: []workflow.State{model.OrderStateCreated, model.OrderStatePlaced}, To: model.OrderStateCancelled},
}

var orderTerminal = []workflow.State{model.OrderStateCancelled, model.OrderStateCompleted}

// OrderStateMachine places a maker order on the relayer and settles the swap
// once a taker fills it.
type OrderStateMachine struct {
	*machine
	deps Deps

	mu    sync.RWMutex
	order *model.Order
}

// NewOrderStateMachine prepares a machine for order. Subscribe to its
// events before calling Create.
func NewOrderStateMachine(deps Deps, order *model.Order) (*OrderStateMachine, error) {
	if order == nil {
		return nil, errors.New("order is required")
	}
	o := &OrderStateMachine{deps: deps, order: order}
	m, err := newMachine(machineConfig{
		deps:         deps,
		name:         "order",
		blockOrderID: order.BlockOrderID,
		transitions:  orderTransitions,
		terminal:     orderTerminal,
		metrics:      deps.OrderMetrics,
		key:          func() string { return o.Order().Key() },
		field:        model.OrderField,
		value:        func() any { return o.Order() },
	})
	if err != nil {
		return nil, err
	}
	o.machine = m
	return o, nil
}

// OrderFromStore rehydrates a machine from a stored record without running
// any transition logic.
func OrderFromStore(deps Deps, key string, value []byte) (*OrderStateMachine, error) {
	rec, raw, err := model.ParseOrderRecord(key, value)
	if err != nil {
		return nil, err
	}
	o, err := NewOrderStateMachine(deps, rec.Order)
	if err != nil {
		return nil, err
	}
	if err := o.inflate(raw); err != nil {
		return nil, fmt.Errorf("order %s: %w", key, err)
	}
	return o, nil
}

// Order returns a copy of the current order.
func (o *OrderStateMachine) Order() *model.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	order := *o.order
	return &order
}

func (o *OrderStateMachine) update(fn func(order *model.Order)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.order)
}

// Create registers the order with the relayer and, once created, places it.
func (o *OrderStateMachine) Create(ctx context.Context) error {
	return o.tryTo(ctx, TransitionCreate, func(ctx context.Context) error {
		order := o.Order()
		baseAddress, counterAddress, err := addresses(ctx, o.deps.Engines, order.BaseSymbol, order.CounterSymbol)
		if err != nil {
			return err
		}
		res, err := o.deps.Maker.CreateOrder(ctx, relayer.CreateOrderRequest{
			BaseSymbol:     order.BaseSymbol,
			CounterSymbol:  order.CounterSymbol,
			Side:           order.Side,
			BaseAmount:     order.BaseAmount,
			CounterAmount:  order.CounterAmount,
			BaseAddress:    baseAddress,
			CounterAddress: counterAddress,
		})
		if err != nil {
			return fmt.Errorf("create order on relayer: %w", err)
		}
		if res.OrderID == "" {
			return errors.New("relayer did not assign an order id")
		}
		o.update(func(order *model.Order) {
			order.MakerBaseAddress = baseAddress
			order.MakerCounterAddress = counterAddress
			order.SetCreatedParams(res.OrderID, res.PaymentObligations)
		})
		o.logger.Info("created order on the relayer", zap.String("order_id", res.OrderID))

		o.fsm.Defer(ctx, o.place)
		return nil
	})
}

func (o *OrderStateMachine) place(ctx context.Context) {
	var stream relayer.PlaceOrderStream
	err := o.tryTo(ctx, TransitionPlace, func(ctx context.Context) error {
		params, err := o.Order().ParamsForPlace()
		if err != nil {
			return err
		}
		outbound, err := o.deps.Engines.Get(params.OutboundSymbol)
		if err != nil {
			return err
		}
		refunds, err := engine.PayInvoices(ctx, outbound, params.PaymentObligations)
		if err != nil {
			return err
		}
		auth, err := o.deps.Identity.Authorize(params.OrderID)
		if err != nil {
			return err
		}
		s, err := o.deps.Maker.PlaceOrder(ctx, relayer.PlaceOrderRequest{
			OrderID:                     params.OrderID,
			FeeRefundPaymentRequest:     refunds.Fee,
			DepositRefundPaymentRequest: refunds.Deposit,
			Authorization:               auth,
		})
		if err != nil {
			return fmt.Errorf("place order on relayer: %w", err)
		}
		stream = s
		o.deferBlocking(ctx, func(ctx context.Context) { o.listen(ctx, s) })
		return nil
	})
	if err != nil && stream != nil {
		_ = stream.Close()
	}
}

// listen consumes the placement stream until the order is cancelled, filled
// or the stream breaks.
func (o *OrderStateMachine) listen(ctx context.Context, stream relayer.PlaceOrderStream) {
	defer stream.Close()

	for {
		event, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("placement stream ended before the order was filled")
			}
			o.reject(ctx, fmt.Errorf("place order stream: %w", err))
			return
		}

		switch event.OrderStatus {
		case relayer.OrderStatusCancelled:
			o.logger.Info("order cancelled by the relayer")
			_ = o.tryTo(ctx, TransitionCancel, nil)
			return
		case relayer.OrderStatusFilled:
			if event.Fill == nil {
				o.reject(ctx, errors.New("placement stream reported a fill without fill details"))
				return
			}
			fill := *event.Fill
			o.update(func(order *model.Order) {
				order.SetFilledParams(model.OrderFilledParams{
					SwapHash:     fill.SwapHash,
					FillAmount:   fill.FillAmount,
					TakerAddress: fill.TakerAddress,
				})
			})
			_ = o.tryTo(ctx, TransitionExecute, o.execute)
			return
		}
	}
}

func (o *OrderStateMachine) execute(ctx context.Context) error {
	order := o.Order()
	if order.FillAmount > order.BaseAmount {
		return fmt.Errorf("fill amount %d exceeds order amount %d", order.FillAmount, order.BaseAmount)
	}
	params, err := order.ParamsForPrepareSwap()
	if err != nil {
		return err
	}
	inbound, err := o.deps.Engines.Get(params.Symbol)
	if err != nil {
		return err
	}
	if err := inbound.PrepareSwap(ctx, params.OrderID, params.SwapHash, params.Amount); err != nil {
		return fmt.Errorf("prepare swap: %w", err)
	}
	auth, err := o.deps.Identity.Authorize(params.OrderID)
	if err != nil {
		return err
	}
	if err := o.deps.Maker.ExecuteOrder(ctx, relayer.ExecuteOrderRequest{OrderID: params.OrderID, Authorization: auth}); err != nil {
		return fmt.Errorf("execute order on relayer: %w", err)
	}
	o.deferBlocking(ctx, o.complete)
	return nil
}

func (o *OrderStateMachine) complete(ctx context.Context) {
	_ = o.tryTo(ctx, TransitionComplete, func(ctx context.Context) error {
		params, err := o.Order().ParamsForGetPreimage()
		if err != nil {
			return err
		}
		inbound, err := o.deps.Engines.Get(params.Symbol)
		if err != nil {
			return err
		}
		preimage, err := inbound.GetSettledSwapPreimage(ctx, params.SwapHash)
		if err != nil {
			return fmt.Errorf("get settled swap preimage: %w", err)
		}
		o.update(func(order *model.Order) { order.SetSettledParams(preimage) })

		completeParams, err := o.Order().ParamsForComplete()
		if err != nil {
			return err
		}
		auth, err := o.deps.Identity.Authorize(completeParams.OrderID)
		if err != nil {
			return err
		}
		if err := o.deps.Maker.CompleteOrder(ctx, relayer.CompleteOrderRequest{
			OrderID:       completeParams.OrderID,
			SwapPreimage:  completeParams.SwapPreimage,
			Authorization: auth,
		}); err != nil {
			return fmt.Errorf("complete order on relayer: %w", err)
		}
		return nil
	})
}

// cancelOnRelayer cancels an order whose placement stream was lost. The
// relayer usually dropped the order along with the stream, so a refusal is
// logged and the order is cancelled locally anyway.
func (o *OrderStateMachine) cancelOnRelayer(ctx context.Context) {
	_ = o.tryTo(ctx, TransitionCancel, func(ctx context.Context) error {
		orderID := o.Order().OrderID
		if orderID == "" {
			return nil
		}
		auth, err := o.deps.Identity.Authorize(orderID)
		if err != nil {
			return err
		}
		if err := o.deps.Maker.CancelOrder(ctx, relayer.CancelOrderRequest{OrderID: orderID, Authorization: auth}); err != nil {
			if ctx.Err() != nil {
				return err
			}
			o.logger.Warn("relayer refused to cancel order, cancelling locally",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
		return nil
	})
}

// TriggerState resumes a rehydrated machine: an executing order is driven
// to completion and an order interrupted before its fill is cancelled.
func (o *OrderStateMachine) TriggerState(ctx context.Context) {
	switch o.State() {
	case model.OrderStateExecuting:
		o.deferBlocking(ctx, o.complete)
	case model.OrderStateCreated, model.OrderStatePlaced:
		o.fsm.Defer(ctx, o.cancelOnRelayer)
	}
}
