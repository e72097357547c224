package workflow

import "context"

// Hooks are lifecycle observers. Any of them may be nil. An error returned
// by BeforeTransition aborts the transition; errors from LeaveState and
// EnterState fail it after the fact.
type Hooks struct {
	BeforeTransition func(ctx context.Context, m *Machine, lc Lifecycle) error
	LeaveState       func(ctx context.Context, m *Machine, lc Lifecycle) error
	EnterState       func(ctx context.Context, m *Machine, lc Lifecycle) error
	AfterTransition  func(ctx context.Context, m *Machine, lc Lifecycle)
}

// Plugin contributes transitions, hooks and middleware to a machine.
type Plugin interface {
	Transitions() []Transition
	Hooks() Hooks
	Wrap(m *Machine, next Runner) Runner
}

// BasePlugin is a no-op Plugin meant for embedding.
type BasePlugin struct{}

func (BasePlugin) Transitions() []Transition { return nil }

func (BasePlugin) Hooks() Hooks { return Hooks{} }

func (BasePlugin) Wrap(_ *Machine, next Runner) Runner { return next }
