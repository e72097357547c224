package workflow

import (
	"context"
	"sync"
)

const beforePrefix = "before:"

// BeforeEvent names the event emitted before a transition's action runs.
func BeforeEvent(transition string) string {
	return beforePrefix + transition
}

// Events delivers one-shot notifications. "before:<transition>" is emitted
// when a transition starts and "<transition>" once it has completed.
type Events struct {
	BasePlugin
	mu          sync.Mutex
	subscribers map[string][]chan struct{}
}

func NewEvents() *Events {
	return &Events{subscribers: make(map[string][]chan struct{})}
}

// Subscribe returns a channel closed the next time event is emitted.
func (e *Events) Subscribe(event string) <-chan struct{} {
	ch := make(chan struct{})
	e.mu.Lock()
	e.subscribers[event] = append(e.subscribers[event], ch)
	e.mu.Unlock()
	return ch
}

func (e *Events) emit(event string) {
	e.mu.Lock()
	subscribers := e.subscribers[event]
	delete(e.subscribers, event)
	e.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}

func (e *Events) Hooks() Hooks {
	return Hooks{
		BeforeTransition: func(_ context.Context, _ *Machine, lc Lifecycle) error {
			e.emit(BeforeEvent(lc.Transition))
			return nil
		},
		AfterTransition: func(_ context.Context, _ *Machine, lc Lifecycle) {
			e.emit(lc.Transition)
		},
	}
}
