// Package workerpool runs a function over a slice with bounded concurrency.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// Process calls process for every item with at most workerCount calls in
// flight. The first failure cancels the context handed to the remaining
// calls, stops dispatching, and is returned.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once  sync.Once
		first error
	)
	run(ctx, workerCount, items, func(ctx context.Context, item T) {
		if ctx.Err() != nil {
			return
		}
		if err := process(ctx, item); err != nil {
			once.Do(func() {
				first = err
				cancel()
			})
		}
	})
	if first != nil {
		return first
	}
	return ctx.Err()
}

// ProcessAll is Process without the early stop: every item is processed and
// all failures are returned joined.
func ProcessAll[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	run(ctx, workerCount, items, func(ctx context.Context, item T) {
		if err := process(ctx, item); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	})
	return errors.Join(errs...)
}

// run feeds items to workerCount goroutines until items are exhausted or ctx
// is done, and waits for them.
func run[T any](ctx context.Context, workerCount int, items []T, fn func(context.Context, T)) {
	if workerCount < 1 {
		workerCount = 1
	}
	tasks := make(chan T)
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				fn(ctx, item)
			}
		}()
	}

dispatch:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break dispatch
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()
}
