package blockorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/swap"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	"go.uber.org/zap"
)

// errOrderNotPlaced makes a fake fill ask to be retried.
var errOrderNotPlaced = errors.New("order not placed")

var (
	fakeOrderTransitions = []workflow.Transition{
		{Name: swap.TransitionCreate, From: []workflow.State{model.OrderStateNone}, To: model.OrderStateCreated},
		{Name: swap.TransitionPlace, From: []workflow.State{model.OrderStateCreated}, To: model.OrderStatePlaced},
		{Name: swap.TransitionExecute, From: []workflow.State{model.OrderStatePlaced}, To: model.OrderStateExecuting},
		{Name: swap.TransitionComplete, From: []workflow.State{model.OrderStateExecuting}, To: model.OrderStateCompleted},
		{Name: swap.TransitionCancel, From: []workflow.State{model.OrderStateCreated, model.OrderStatePlaced}, To: model.OrderStateCancelled},
	}
	fakeFillTransitions = []workflow.Transition{
		{Name: swap.TransitionCreate, From: []workflow.State{model.FillStateNone}, To: model.FillStateCreated},
		{Name: swap.TransitionFill, From: []workflow.State{model.FillStateCreated}, To: model.FillStateFilled},
		{Name: swap.TransitionExecute, From: []workflow.State{model.FillStateFilled}, To: model.FillStateExecuted},
		{Name: swap.TransitionCancel, From: []workflow.State{model.FillStateCreated}, To: model.FillStateCancelled},
	}
)

// fakeMachines hands out machines built on the real workflow framework
// whose remote side is driven by the test.
type fakeMachines struct {
	orderStore swap.Store
	fillStore  swap.Store

	mu    sync.Mutex
	seq   int
	order []*fakeOrder
	fill  []*fakeFill
	// createOrder and createFill run inside the create transition.
	createOrder func(o *fakeOrder) error
	createFill  func(f *fakeFill) error
}

func newFakeMachines(orders, fills swap.Store) *fakeMachines {
	return &fakeMachines{orderStore: orders, fillStore: fills}
}

func (m *fakeMachines) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *fakeMachines) orders() []*fakeOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*fakeOrder(nil), m.order...)
}

func (m *fakeMachines) fills() []*fakeFill {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*fakeFill(nil), m.fill...)
}

func (m *fakeMachines) NewOrder(order *model.Order) (OrderMachine, error) {
	m.mu.Lock()
	id := m.nextID("order")
	create := m.createOrder
	m.mu.Unlock()

	o, err := newFakeOrder(m.orderStore, order, id, create)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.order = append(m.order, o)
	m.mu.Unlock()
	return o, nil
}

func (m *fakeMachines) NewFill(fill *model.Fill) (FillMachine, error) {
	m.mu.Lock()
	id := m.nextID("fill")
	create := m.createFill
	m.mu.Unlock()

	f, err := newFakeFill(m.fillStore, fill, id, create)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.fill = append(m.fill, f)
	m.mu.Unlock()
	return f, nil
}

func (m *fakeMachines) OrderFromStore(key string, value []byte) (OrderMachine, error) {
	rec, raw, err := model.ParseOrderRecord(key, value)
	if err != nil {
		return nil, err
	}
	o, err := newFakeOrder(m.orderStore, rec.Order, rec.Order.OrderID, nil)
	if err != nil {
		return nil, err
	}
	o.fsm.Inflate(raw)
	m.mu.Lock()
	m.order = append(m.order, o)
	m.mu.Unlock()
	return o, nil
}

func (m *fakeMachines) FillFromStore(key string, value []byte) (FillMachine, error) {
	rec, raw, err := model.ParseFillRecord(key, value)
	if err != nil {
		return nil, err
	}
	f, err := newFakeFill(m.fillStore, rec.Fill, rec.Fill.FillID, nil)
	if err != nil {
		return nil, err
	}
	f.fsm.Inflate(raw)
	m.mu.Lock()
	m.fill = append(m.fill, f)
	m.mu.Unlock()
	return f, nil
}

type fakeOrder struct {
	fsm    *workflow.Machine
	events *workflow.Events
	id     string
	create func(o *fakeOrder) error

	mu    sync.Mutex
	order *model.Order
}

func newFakeOrder(st swap.Store, order *model.Order, id string, create func(o *fakeOrder) error) (*fakeOrder, error) {
	o := &fakeOrder{events: workflow.NewEvents(), id: id, create: create, order: order}
	persistence, err := workflow.NewPersistence(workflow.PersistenceConfig{
		Store:  st,
		Key:    func() string { return model.ChildKey(order.BlockOrderID, id) },
		Fields: map[string]workflow.Field{model.OrderField: func() any { return o.Order() }},
	})
	if err != nil {
		return nil, err
	}
	o.fsm, err = workflow.New(workflow.Config{
		Initial:     workflow.StateNone,
		Transitions: fakeOrderTransitions,
		Terminal:    []workflow.State{model.OrderStateCancelled, model.OrderStateCompleted},
		Plugins:     []workflow.Plugin{workflow.NewRejection(zap.NewNop()), o.events, persistence},
		Scheduler:   workflow.Inline,
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (o *fakeOrder) Create(ctx context.Context) error {
	return o.fsm.TryTo(ctx, swap.TransitionCreate, func(context.Context) error {
		if o.create != nil {
			if err := o.create(o); err != nil {
				return err
			}
		}
		o.update(func(order *model.Order) { order.SetCreatedParams(o.id, model.PaymentObligations{}) })
		return nil
	})
}

// TriggerState mirrors the swap machines: executing completes, anything
// earlier is cancelled.
func (o *fakeOrder) TriggerState(ctx context.Context) {
	switch o.State() {
	case model.OrderStateExecuting:
		_ = o.fsm.TryTo(ctx, swap.TransitionComplete, nil)
	case model.OrderStateCreated, model.OrderStatePlaced:
		_ = o.fsm.TryTo(ctx, swap.TransitionCancel, nil)
	}
}

func (o *fakeOrder) Subscribe(event string) <-chan struct{} { return o.events.Subscribe(event) }

func (o *fakeOrder) State() workflow.State { return o.fsm.State() }

func (o *fakeOrder) Err() error { return o.fsm.Err() }

func (o *fakeOrder) Order() *model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	order := *o.order
	return &order
}

func (o *fakeOrder) update(fn func(order *model.Order)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.order)
}

func (o *fakeOrder) place(ctx context.Context) error {
	return o.fsm.TryTo(ctx, swap.TransitionPlace, nil)
}

// fillAndExecute reports a taker filling amount of the order.
func (o *fakeOrder) fillAndExecute(ctx context.Context, amount int64) error {
	o.update(func(order *model.Order) {
		order.SetFilledParams(model.OrderFilledParams{SwapHash: "hash-" + o.id, FillAmount: amount, TakerAddress: "taker"})
	})
	return o.fsm.TryTo(ctx, swap.TransitionExecute, nil)
}

func (o *fakeOrder) complete(ctx context.Context) error {
	return o.fsm.TryTo(ctx, swap.TransitionComplete, nil)
}

func (o *fakeOrder) reject(ctx context.Context, cause error) error {
	return o.fsm.Reject(ctx, cause)
}

type fakeFill struct {
	fsm    *workflow.Machine
	events *workflow.Events
	id     string
	create func(f *fakeFill) error

	mu   sync.Mutex
	fill *model.Fill
}

func newFakeFill(st swap.Store, fill *model.Fill, id string, create func(f *fakeFill) error) (*fakeFill, error) {
	f := &fakeFill{events: workflow.NewEvents(), id: id, create: create, fill: fill}
	persistence, err := workflow.NewPersistence(workflow.PersistenceConfig{
		Store:  st,
		Key:    func() string { return model.ChildKey(fill.BlockOrderID, id) },
		Fields: map[string]workflow.Field{model.FillField: func() any { return f.Fill() }},
	})
	if err != nil {
		return nil, err
	}
	f.fsm, err = workflow.New(workflow.Config{
		Initial:     workflow.StateNone,
		Transitions: fakeFillTransitions,
		Terminal:    []workflow.State{model.FillStateExecuted, model.FillStateCancelled},
		Plugins:     []workflow.Plugin{workflow.NewRejection(zap.NewNop()), f.events, persistence},
		Scheduler:   workflow.Inline,
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *fakeFill) Create(ctx context.Context) error {
	return f.fsm.TryTo(ctx, swap.TransitionCreate, func(context.Context) error {
		if f.create != nil {
			if err := f.create(f); err != nil {
				return err
			}
		}
		f.mu.Lock()
		f.fill.SetCreatedParams(f.id, model.PaymentObligations{})
		f.mu.Unlock()
		return nil
	})
}

func (f *fakeFill) TriggerState(ctx context.Context) {
	switch f.State() {
	case model.FillStateCreated:
		_ = f.fsm.TryTo(ctx, swap.TransitionCancel, nil)
	case model.FillStateFilled:
		_ = f.fsm.TryTo(ctx, swap.TransitionExecute, nil)
	}
}

func (f *fakeFill) Subscribe(event string) <-chan struct{} { return f.events.Subscribe(event) }

func (f *fakeFill) State() workflow.State { return f.fsm.State() }

func (f *fakeFill) Err() error { return f.fsm.Err() }

func (f *fakeFill) Fill() *model.Fill {
	f.mu.Lock()
	defer f.mu.Unlock()
	fill := *f.fill
	return &fill
}

func (f *fakeFill) ShouldRetry() bool {
	return f.State() == model.FillStateRejected && errors.Is(f.Err(), errOrderNotPlaced)
}

func (f *fakeFill) execute(ctx context.Context) error {
	if err := f.fsm.TryTo(ctx, swap.TransitionFill, nil); err != nil {
		return err
	}
	return f.fsm.TryTo(ctx, swap.TransitionExecute, nil)
}
