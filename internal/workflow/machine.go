// Package workflow implements a finite state machine runtime whose
// cross-cutting behaviour (rejection, persistence, logging, events) is
// supplied by plugins composed at construction time.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// State names a node of a machine's transition graph.
type State string

const (
	StateNone     State = "none"
	StateRejected State = "rejected"
	// Wildcard matches any source state in Transition.From.
	Wildcard State = "*"
)

const (
	TransitionReject = "reject"
	TransitionGoto   = "goto"
)

var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrTransitionInProgress = errors.New("transition in progress")
)

// Transition is an edge of the transition graph.
type Transition struct {
	Name string
	From []State
	To   State
}

func (t Transition) allows(from State) bool {
	for _, s := range t.From {
		if s == Wildcard || s == from {
			return true
		}
	}
	return false
}

// Lifecycle describes the transition currently being run.
type Lifecycle struct {
	Transition string
	From       State
	To         State
}

// Action is the business logic of a transition. It runs after the
// BeforeTransition hooks and before the state changes; an error aborts the
// transition without changing state.
type Action func(ctx context.Context) error

// Runner executes a named transition. Plugins wrap runners to add middleware.
type Runner func(ctx context.Context, name string, action Action) error

// Config describes a machine.
// StateRejected is always terminal.
type Config struct {
	Initial     State
	Transitions []Transition
	Terminal    []State
	Plugins     []Plugin
	Scheduler   Scheduler
}

type transitionKey struct{}

type continuation struct {
	ctx context.Context
	fn  func(context.Context)
}

// Machine is a single state machine instance.
type Machine struct {
	transitions map[string]Transition
	terminal    map[State]struct{}
	hooks       []Hooks
	run         Runner
	scheduler   Scheduler

	// transitionMu serializes transitions; mu guards the fields below.
	transitionMu sync.Mutex
	mu           sync.RWMutex
	state        State
	history      []State
	err          error
	pending      *continuation
}

// New builds a machine from cfg. Plugins are applied in order: their
// transitions are added to the graph, their hooks run in list order and the
// first plugin's middleware is the outermost.
func New(cfg Config) (*Machine, error) {
	if cfg.Scheduler == nil {
		return nil, errors.New("workflow scheduler is required")
	}
	initial := cfg.Initial
	if initial == "" {
		initial = StateNone
	}

	m := &Machine{
		transitions: make(map[string]Transition),
		terminal:    make(map[State]struct{}, len(cfg.Terminal)),
		scheduler:   cfg.Scheduler,
		state:       initial,
	}

	transitions := append([]Transition(nil), cfg.Transitions...)
	for _, p := range cfg.Plugins {
		transitions = append(transitions, p.Transitions()...)
		m.hooks = append(m.hooks, p.Hooks())
	}
	for _, t := range transitions {
		if t.Name == "" || t.To == "" {
			return nil, fmt.Errorf("transition %q is incomplete", t.Name)
		}
		if t.Name == TransitionGoto {
			return nil, fmt.Errorf("transition name %q is reserved", t.Name)
		}
		if _, ok := m.transitions[t.Name]; ok {
			return nil, fmt.Errorf("duplicate transition %q", t.Name)
		}
		m.transitions[t.Name] = t
	}
	m.terminal[StateRejected] = struct{}{}
	for _, s := range cfg.Terminal {
		m.terminal[s] = struct{}{}
	}

	m.run = m.fire
	for i := len(cfg.Plugins) - 1; i >= 0; i-- {
		m.run = cfg.Plugins[i].Wrap(m, m.run)
	}
	return m, nil
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// History returns the states entered so far, oldest first.
func (m *Machine) History() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]State(nil), m.history...)
}

// Err returns the error recorded by the last rejection, if any.
func (m *Machine) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// IsTerminal reports whether the machine can no longer transition.
func (m *Machine) IsTerminal() bool {
	_, ok := m.terminal[m.State()]
	return ok
}

// Can reports whether the named transition is legal from the current state.
func (m *Machine) Can(name string) bool {
	t, ok := m.transitions[name]
	if !ok {
		return false
	}
	state := m.State()
	if _, terminal := m.terminal[state]; terminal {
		return false
	}
	return t.allows(state)
}

// Transitions lists the transitions legal from the current state.
func (m *Machine) Transitions() []string {
	names := make([]string, 0, len(m.transitions))
	for name := range m.transitions {
		if m.Can(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Fire runs a transition without plugin middleware. Errors are returned
// unchanged and never trigger a rejection.
func (m *Machine) Fire(ctx context.Context, name string, action Action) error {
	return m.fire(ctx, name, action)
}

// TryTo runs a transition through the plugin middleware. With the Rejection
// plugin installed any failure moves the machine to StateRejected; the
// original error is still returned so callers can log it.
func (m *Machine) TryTo(ctx context.Context, name string, action Action) error {
	return m.run(ctx, name, action)
}

// Reject moves the machine to StateRejected, recording cause.
func (m *Machine) Reject(ctx context.Context, cause error) error {
	if cause == nil {
		cause = errors.New("rejected")
	}
	return m.fire(ctx, TransitionReject, func(context.Context) error {
		m.mu.Lock()
		m.err = cause
		m.mu.Unlock()
		return nil
	})
}

// Goto sets the state directly. No hooks run and nothing is persisted; it
// exists to rehydrate machines from storage.
func (m *Machine) Goto(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// Inflate restores a stored record onto the machine via Goto.
func (m *Machine) Inflate(rec Record) {
	m.mu.Lock()
	m.history = append([]State(nil), rec.History...)
	if rec.Error != "" {
		m.err = errors.New(rec.Error)
	}
	m.mu.Unlock()
	m.Goto(rec.State)
}

// Defer schedules fn to run after the transition executing on ctx has fully
// resolved. Only the latest continuation queued by a transition is kept and
// it is dropped if the transition fails. Outside a transition fn is handed
// to the scheduler immediately.
func (m *Machine) Defer(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithValue(ctx, transitionKey{}, (*Machine)(nil))
	if owner, _ := ctx.Value(transitionKey{}).(*Machine); owner == m {
		m.mu.Lock()
		m.pending = &continuation{ctx: detached, fn: fn}
		m.mu.Unlock()
		return
	}
	m.scheduler.Schedule(func() { fn(detached) })
}

func (m *Machine) fire(ctx context.Context, name string, action Action) error {
	if owner, _ := ctx.Value(transitionKey{}).(*Machine); owner == m {
		return fmt.Errorf("%w: %s", ErrTransitionInProgress, name)
	}

	m.transitionMu.Lock()
	next, err := m.transition(context.WithValue(ctx, transitionKey{}, m), name, action)
	m.transitionMu.Unlock()

	if next != nil {
		m.scheduler.Schedule(func() { next.fn(next.ctx) })
	}
	return err
}

func (m *Machine) transition(ctx context.Context, name string, action Action) (*continuation, error) {
	from := m.State()
	t, ok := m.transitions[name]
	_, terminal := m.terminal[from]
	if !ok || terminal || !t.allows(from) {
		return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, name, from)
	}
	lc := Lifecycle{Transition: name, From: from, To: t.To}

	m.takePending()
	for _, h := range m.hooks {
		if h.BeforeTransition == nil {
			continue
		}
		if err := h.BeforeTransition(ctx, m, lc); err != nil {
			return nil, fmt.Errorf("before %s: %w", name, err)
		}
	}
	if action != nil {
		if err := action(ctx); err != nil {
			m.takePending()
			return nil, err
		}
	}
	for _, h := range m.hooks {
		if h.LeaveState == nil {
			continue
		}
		if err := h.LeaveState(ctx, m, lc); err != nil {
			m.takePending()
			return nil, fmt.Errorf("leave %s: %w", from, err)
		}
	}

	m.mu.Lock()
	m.state = t.To
	m.history = append(m.history, t.To)
	m.mu.Unlock()

	for _, h := range m.hooks {
		if h.EnterState == nil {
			continue
		}
		if err := h.EnterState(ctx, m, lc); err != nil {
			m.takePending()
			return nil, fmt.Errorf("enter %s: %w", t.To, err)
		}
	}
	for _, h := range m.hooks {
		if h.AfterTransition != nil {
			h.AfterTransition(ctx, m, lc)
		}
	}
	return m.takePending(), nil
}

func (m *Machine) takePending() *continuation {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pending
	m.pending = nil
	return p
}
