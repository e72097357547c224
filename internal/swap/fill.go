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

var fillTransitions = []workflow.Transition{
	{Name: TransitionCreate, From: []workflow.State{model.FillStateNone}, To: model.FillStateCreated},
	{Name: TransitionFill, From: []workflow.State{model.FillStateCreated}, To: model.FillStateFilled},
	{Name: TransitionExecute, From: []workflow.State{model.FillStateFilled}, To: model.FillStateExecuted},
	{Name: TransitionCancel, From: []workflow.State{model.FillStateCreated}, To: model.FillStateCancelled},
}

var fillTerminal = []workflow.State{model.FillStateExecuted, model.FillStateCancelled}

// FillStateMachine takes an order from the book and sends our leg of the
// swap once the maker is ready.
type FillStateMachine struct {
	*machine
	deps Deps

	mu   sync.RWMutex
	fill *model.Fill
}

// NewFillStateMachine prepares a machine for fill. Subscribe to its events
// before calling Create.
func NewFillStateMachine(deps Deps, fill *model.Fill) (*FillStateMachine, error) {
	if fill == nil {
		return nil, errors.New("fill is required")
	}
	f := &FillStateMachine{deps: deps, fill: fill}
	m, err := newMachine(machineConfig{
		deps:         deps,
		name:         "fill",
		blockOrderID: fill.BlockOrderID,
		transitions:  fillTransitions,
		terminal:     fillTerminal,
		metrics:      deps.FillMetrics,
		key:          func() string { return f.Fill().Key() },
		field:        model.FillField,
		value:        func() any { return f.Fill() },
	})
	if err != nil {
		return nil, err
	}
	f.machine = m
	return f, nil
}

// FillFromStore rehydrates a machine from a stored record without running
// any transition logic.
func FillFromStore(deps Deps, key string, value []byte) (*FillStateMachine, error) {
	rec, raw, err := model.ParseFillRecord(key, value)
	if err != nil {
		return nil, err
	}
	f, err := NewFillStateMachine(deps, rec.Fill)
	if err != nil {
		return nil, err
	}
	if err := f.inflate(raw); err != nil {
		return nil, fmt.Errorf("fill %s: %w", key, err)
	}
	return f, nil
}

// Fill returns a copy of the current fill.
func (f *FillStateMachine) Fill() *model.Fill {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fill := *f.fill
	return &fill
}

func (f *FillStateMachine) update(fn func(fill *model.Fill)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.fill)
}

// ShouldRetry reports whether the fill was rejected only because its order
// left the book, in which case the amount can be worked again.
func (f *FillStateMachine) ShouldRetry() bool {
	if f.State() != model.FillStateRejected {
		return false
	}
	err := f.Err()
	if err == nil {
		return false
	}
	var fillErr *relayer.FillError
	if errors.As(err, &fillErr) {
		return fillErr.Code == relayer.FillErrorOrderNotPlaced
	}
	// rehydrated machines only keep the message, which is the code
	return err.Error() == relayer.FillErrorOrderNotPlaced
}

// Create requests the fill from the relayer and, once created, fills the
// order.
func (f *FillStateMachine) Create(ctx context.Context) error {
	return f.tryTo(ctx, TransitionCreate, func(ctx context.Context) error {
		fill := f.Fill()
		baseAddress, counterAddress, err := addresses(ctx, f.deps.Engines, fill.Order.BaseSymbol, fill.Order.CounterSymbol)
		if err != nil {
			return err
		}
		inbound, err := f.deps.Engines.Get(fill.InboundSymbol())
		if err != nil {
			return err
		}
		inboundAmount, err := fill.InboundAmount()
		if err != nil {
			return err
		}
		swapHash, err := inbound.CreateSwapHash(ctx, fill.Order.OrderID, inboundAmount)
		if err != nil {
			return fmt.Errorf("create swap hash: %w", err)
		}
		res, err := f.deps.Taker.CreateFill(ctx, relayer.CreateFillRequest{
			OrderID:             fill.Order.OrderID,
			SwapHash:            swapHash,
			FillAmount:          fill.FillAmount,
			TakerBaseAddress:    baseAddress,
			TakerCounterAddress: counterAddress,
		})
		if err != nil {
			return fmt.Errorf("create fill on relayer: %w", err)
		}
		if res.FillError != nil {
			return res.FillError
		}
		if res.FillID == "" {
			return errors.New("relayer did not assign a fill id")
		}
		f.update(func(fill *model.Fill) {
			fill.TakerBaseAddress = baseAddress
			fill.TakerCounterAddress = counterAddress
			fill.SetSwapHash(swapHash)
			fill.SetCreatedParams(res.FillID, res.PaymentObligations)
		})
		f.logger.Info("created fill on the relayer", zap.String("fill_id", res.FillID), zap.String("order_id", fill.Order.OrderID))

		f.fsm.Defer(ctx, f.fillOrder)
		return nil
	})
}

func (f *FillStateMachine) fillOrder(ctx context.Context) {
	_ = f.tryTo(ctx, TransitionFill, func(ctx context.Context) error {
		params, err := f.Fill().ParamsForFill()
		if err != nil {
			return err
		}
		outbound, err := f.deps.Engines.Get(params.OutboundSymbol)
		if err != nil {
			return err
		}
		refunds, err := engine.PayInvoices(ctx, outbound, params.PaymentObligations)
		if err != nil {
			return err
		}
		auth, err := f.deps.Identity.Authorize(params.FillID)
		if err != nil {
			return err
		}
		res, err := f.deps.Taker.FillOrder(ctx, relayer.FillOrderRequest{
			FillID:                      params.FillID,
			FeeRefundPaymentRequest:     refunds.Fee,
			DepositRefundPaymentRequest: refunds.Deposit,
			Authorization:               auth,
		})
		if err != nil {
			return fmt.Errorf("fill order on relayer: %w", err)
		}
		if res.FillError != nil {
			return res.FillError
		}
		f.deferBlocking(ctx, f.subscribeExecute)
		return nil
	})
}

// subscribeExecute waits for the maker to tell us where to send our leg.
func (f *FillStateMachine) subscribeExecute(ctx context.Context) {
	fillID := f.Fill().FillID
	auth, err := f.deps.Identity.Authorize(fillID)
	if err != nil {
		f.reject(ctx, err)
		return
	}
	stream, err := f.deps.Taker.SubscribeExecute(ctx, relayer.SubscribeExecuteRequest{FillID: fillID, Authorization: auth})
	if err != nil {
		f.reject(ctx, fmt.Errorf("subscribe execute: %w", err))
		return
	}
	defer stream.Close()

	for {
		event, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("execute stream ended before the maker was ready")
			}
			f.reject(ctx, fmt.Errorf("execute stream: %w", err))
			return
		}
		if event.MakerAddress == "" {
			continue
		}
		makerAddress := event.MakerAddress
		_ = f.tryTo(ctx, TransitionExecute, func(ctx context.Context) error {
			f.update(func(fill *model.Fill) { fill.SetExecuteParams(makerAddress) })
			return f.execute(ctx)
		})
		return
	}
}

func (f *FillStateMachine) execute(ctx context.Context) error {
	params, err := f.Fill().ParamsForSwap()
	if err != nil {
		return err
	}
	outbound, err := f.deps.Engines.Get(params.Symbol)
	if err != nil {
		return err
	}
	if err := outbound.ExecuteSwap(ctx, params.MakerAddress, params.SwapHash, params.Amount); err != nil {
		return fmt.Errorf("execute swap: %w", err)
	}
	return nil
}

// TriggerState resumes a rehydrated machine: a created fill was never
// confirmed and is cancelled, a filled one resumes waiting for the maker.
func (f *FillStateMachine) TriggerState(ctx context.Context) {
	switch f.State() {
	case model.FillStateCreated:
		f.fsm.Defer(ctx, func(ctx context.Context) {
			_ = f.tryTo(ctx, TransitionCancel, nil)
		})
	case model.FillStateFilled:
		f.deferBlocking(ctx, f.subscribeExecute)
	}
}
