// Package clock holds context-aware waiting helpers.
package clock

import (
	"context"
	"errors"
	"time"
)

// SleepWithContext pauses for d and reports ctx.Err() if ctx ends first. A
// non-positive d only checks ctx.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	return wait(ctx, timer.C)
}

// Poll calls check every interval until it reports done, fails, or ctx is
// done. The first check runs immediately.
func Poll(ctx context.Context, interval time.Duration, check func() (bool, error)) error {
	if interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := wait(ctx, ticker.C); err != nil {
			return err
		}
	}
}

func wait(ctx context.Context, tick <-chan time.Time) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}
