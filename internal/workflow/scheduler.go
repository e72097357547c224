package workflow

import (
	"sync"

	"go.uber.org/zap"
)

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// Inline runs continuations synchronously on the goroutine that resolved
// the transition. Useful in tests where ordering must be deterministic.
var Inline Scheduler = SchedulerFunc(func(fn func()) { fn() })

// WorkQueue is an unbounded FIFO of continuations drained by a fixed number
// of goroutines. Schedule never blocks.
type WorkQueue struct {
	logger  *zap.Logger
	workers int

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	wg      sync.WaitGroup
}

func NewWorkQueue(logger *zap.Logger, workers int) *WorkQueue {
	if workers < 1 {
		workers = 1
	}
	q := &WorkQueue{logger: logger, workers: workers}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Start launches the draining goroutines.
func (q *WorkQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
}

// Stop discards queued work and waits for running continuations to return.
func (q *WorkQueue) Stop() {
	q.mu.Lock()
	q.stopped = true
	dropped := len(q.queue)
	q.queue = nil
	q.cond.Broadcast()
	q.mu.Unlock()

	q.wg.Wait()
	if dropped > 0 {
		q.logger.Info("work queue stopped with pending continuations", zap.Int("dropped", dropped))
	}
}

func (q *WorkQueue) Schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		q.logger.Warn("work queue stopped, dropping continuation")
		return
	}
	q.queue = append(q.queue, fn)
	q.cond.Signal()
}

func (q *WorkQueue) run() {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		for len(q.queue) == 0 && !q.stopped {
			q.cond.Wait()
		}
		if q.stopped {
			q.mu.Unlock()
			return
		}
		fn := q.queue[0]
		q.queue[0] = nil
		q.queue = q.queue[1:]
		q.mu.Unlock()

		q.execute(fn)
	}
}

func (q *WorkQueue) execute(fn func()) {
	defer recoverContinuation(q.logger)
	fn()
}

// Goroutines runs every continuation on a goroutine of its own. Use it for
// continuations that block for the life of a machine, such as stream
// consumers, so they never hold one of the WorkQueue's workers.
type Goroutines struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewGoroutines(logger *zap.Logger) *Goroutines {
	return &Goroutines{logger: logger}
}

func (g *Goroutines) Schedule(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer recoverContinuation(g.logger)
		fn()
	}()
}

// Wait blocks until every scheduled continuation has returned. Cancel the
// contexts the continuations run on first.
func (g *Goroutines) Wait() {
	g.wg.Wait()
}

func recoverContinuation(logger *zap.Logger) {
	if r := recover(); r != nil {
		logger.Error("continuation panicked", zap.Any("panic", r))
	}
}
