// Package swap implements the order (maker) and fill (taker) state machines
// that carry a block order through the atomic swap handshake.
package swap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/goodnatureofminers/swapbroker/internal/workflow"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Transition names shared by both machines.
const (
	TransitionCreate   = "create"
	TransitionPlace    = "place"
	TransitionFill     = "fillOrder"
	TransitionExecute  = "execute"
	TransitionComplete = "complete"
	TransitionCancel   = "cancel"
	TransitionReject   = workflow.TransitionReject
)

// Deps are the collaborators shared by every order and fill machine.
type Deps struct {
	Store        Store
	Logger       *zap.Logger
	Maker        MakerService
	Taker        TakerService
	Identity     Authorizer
	Engines      Engines
	Scheduler    workflow.Scheduler
	// Blocking runs continuations that wait on a relayer stream or on swap
	// settlement. It must not share workers with Scheduler.
	Blocking     workflow.Scheduler
	OrderMetrics TransitionMetrics
	FillMetrics  TransitionMetrics
	Now          func() time.Time
}

func (d Deps) validate() error {
	switch {
	case d.Store == nil:
		return errors.New("swap store is required")
	case d.Logger == nil:
		return errors.New("swap logger is required")
	case d.Maker == nil:
		return errors.New("swap maker service is required")
	case d.Taker == nil:
		return errors.New("swap taker service is required")
	case d.Identity == nil:
		return errors.New("swap identity is required")
	case d.Engines == nil:
		return errors.New("swap engines are required")
	case d.Scheduler == nil:
		return errors.New("swap scheduler is required")
	case d.Blocking == nil:
		return errors.New("swap blocking scheduler is required")
	}
	return nil
}

// machine is the plumbing shared by OrderStateMachine and FillStateMachine.
type machine struct {
	fsm      *workflow.Machine
	events   *workflow.Events
	dates    *workflow.Dates
	logger   *zap.Logger
	blocking workflow.Scheduler

	blockOrderID    string
	placeholderOnce sync.Once
	placeholder     string
}

type machineConfig struct {
	deps         Deps
	name         string
	blockOrderID string
	transitions  []workflow.Transition
	terminal     []workflow.State
	metrics      TransitionMetrics
	key          func() string
	field        string
	value        func() any
}

func newMachine(cfg machineConfig) (*machine, error) {
	if err := cfg.deps.validate(); err != nil {
		return nil, err
	}
	if cfg.blockOrderID == "" {
		return nil, fmt.Errorf("%s: block order id is required", cfg.name)
	}

	logger := cfg.deps.Logger.Named(cfg.name).With(zap.String("block_order_id", cfg.blockOrderID))
	m := &machine{
		events:       workflow.NewEvents(),
		dates:        workflow.NewDates(cfg.deps.Now),
		logger:       logger,
		blocking:     cfg.deps.Blocking,
		blockOrderID: cfg.blockOrderID,
	}
	persistence, err := workflow.NewPersistence(workflow.PersistenceConfig{
		Store: cfg.deps.Store,
		Key:   m.keyOr(cfg.key),
		Fields: map[string]workflow.Field{
			cfg.field:        cfg.value,
			model.DatesField: func() any { return m.dates.Snapshot() },
		},
	})
	if err != nil {
		return nil, err
	}

	plugins := []workflow.Plugin{workflow.NewRejection(logger)}
	if cfg.metrics != nil {
		plugins = append(plugins, workflow.NewInstrumentation(cfg.metrics))
	}
	plugins = append(plugins,
		workflow.NewLogging(logger),
		m.events,
		m.dates,
		persistence,
	)

	m.fsm, err = workflow.New(workflow.Config{
		Initial:     workflow.StateNone,
		Transitions: cfg.transitions,
		Terminal:    cfg.terminal,
		Plugins:     plugins,
		Scheduler:   cfg.deps.Scheduler,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// keyOr falls back to a placeholder key under the block order when the
// relayer has not assigned an id, so a failed creation is still recorded.
func (m *machine) keyOr(key func() string) func() string {
	return func() string {
		if k := key(); k != "" {
			return k
		}
		m.placeholderOnce.Do(func() {
			m.placeholder = model.ChildKey(m.blockOrderID, model.NewPlaceholderID())
		})
		return m.placeholder
	}
}

func (m *machine) inflate(rec workflow.Record) error {
	var dates map[workflow.State]time.Time
	if err := rec.Decode(model.DatesField, &dates); err != nil {
		return err
	}
	m.dates.Restore(dates)
	m.fsm.Inflate(rec)
	return nil
}

func (m *machine) BlockOrderID() string { return m.blockOrderID }

func (m *machine) State() workflow.State { return m.fsm.State() }

func (m *machine) Err() error { return m.fsm.Err() }

func (m *machine) IsTerminal() bool { return m.fsm.IsTerminal() }

// Entered returns when state was last entered.
func (m *machine) Entered(state workflow.State) (time.Time, bool) {
	return m.dates.Entered(state)
}

// Subscribe returns a channel closed the next time event fires. Events are
// transition names, optionally prefixed by workflow.BeforeEvent.
func (m *machine) Subscribe(event string) <-chan struct{} {
	return m.events.Subscribe(event)
}

// tryTo runs a transition and logs its failure. The machine has already been
// rejected when an error is returned.
func (m *machine) tryTo(ctx context.Context, name string, action workflow.Action) error {
	err := m.fsm.TryTo(ctx, name, action)
	if err != nil {
		m.logger.Debug("transition failed", zap.String("transition", name), zap.Error(err))
	}
	return err
}

// deferBlocking is Defer for continuations that may wait indefinitely. The
// scheduler only hands fn over to the blocking scheduler.
func (m *machine) deferBlocking(ctx context.Context, fn func(ctx context.Context)) {
	m.fsm.Defer(ctx, func(ctx context.Context) {
		m.blocking.Schedule(func() { fn(ctx) })
	})
}

// reject records a failure noticed outside of a transition, such as a
// broken stream. Shutdown leaves the machine untouched for recovery.
func (m *machine) reject(ctx context.Context, cause error) {
	if ctx.Err() != nil {
		return
	}
	m.logger.Error("rejecting", zap.String("state", string(m.State())), zap.Error(cause))
	if err := m.fsm.Reject(ctx, cause); err != nil {
		m.logger.Error("reject failed", zap.Error(err))
	}
}

// addresses resolves this node's payment channel addresses for both legs.
func addresses(ctx context.Context, engines Engines, baseSymbol, counterSymbol string) (base, counter string, err error) {
	baseEngine, err := engines.Get(baseSymbol)
	if err != nil {
		return "", "", err
	}
	counterEngine, err := engines.Get(counterSymbol)
	if err != nil {
		return "", "", err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if base, err = baseEngine.GetPaymentChannelNetworkAddress(gctx); err != nil {
			return fmt.Errorf("%s address: %w", baseSymbol, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if counter, err = counterEngine.GetPaymentChannelNetworkAddress(gctx); err != nil {
			return fmt.Errorf("%s address: %w", counterSymbol, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return base, counter, nil
}
