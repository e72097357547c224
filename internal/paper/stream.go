package paper

import (
	"context"
	"io"
	"sync"

	"github.com/goodnatureofminers/swapbroker/internal/relayer"
)

// stream delivers events in order until it is ended by the exchange or
// closed by the reader.
type stream[T any] struct {
	ctx    context.Context
	events chan T

	mu        sync.Mutex
	ended     bool
	closeOnce sync.Once
	closed    chan struct{}
}

func newStream[T any](ctx context.Context) *stream[T] {
	return &stream[T]{ctx: ctx, events: make(chan T, 4), closed: make(chan struct{})}
}

// send reports false once the stream ended or the reader is gone.
func (s *stream[T]) send(ev T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false
	}
	select {
	case s.events <- ev:
		return true
	case <-s.closed:
		return false
	case <-s.ctx.Done():
		return false
	}
}

// end makes Recv return io.EOF after the buffered events.
func (s *stream[T]) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ended {
		s.ended = true
		close(s.events)
	}
}

func (s *stream[T]) Recv() (T, error) {
	var zero T
	select {
	case ev, ok := <-s.events:
		if !ok {
			return zero, io.EOF
		}
		return ev, nil
	case <-s.closed:
		return zero, io.EOF
	case <-s.ctx.Done():
		return zero, s.ctx.Err()
	}
}

func (s *stream[T]) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

var (
	_ relayer.PlaceOrderStream = (*stream[relayer.PlaceOrderEvent])(nil)
	_ relayer.ExecuteStream    = (*stream[relayer.ExecuteEvent])(nil)
)
