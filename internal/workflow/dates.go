package workflow

import (
	"context"
	"sync"
	"time"
)

// Dates records when each state was entered. It must be listed before
// Persistence so the timestamp is part of the persisted record.
type Dates struct {
	BasePlugin
	now   func() time.Time
	mu    sync.RWMutex
	dates map[State]time.Time
}

func NewDates(now func() time.Time) *Dates {
	if now == nil {
		now = time.Now
	}
	return &Dates{now: now, dates: make(map[State]time.Time)}
}

func (d *Dates) Hooks() Hooks {
	return Hooks{
		EnterState: func(_ context.Context, _ *Machine, lc Lifecycle) error {
			d.mu.Lock()
			d.dates[lc.To] = d.now().UTC()
			d.mu.Unlock()
			return nil
		},
	}
}

// Entered returns the time state was last entered.
func (d *Dates) Entered(state State) (time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.dates[state]
	return t, ok
}

// Snapshot returns a copy suitable for persistence.
func (d *Dates) Snapshot() map[State]time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[State]time.Time, len(d.dates))
	for k, v := range d.dates {
		out[k] = v
	}
	return out
}

// Restore replaces the recorded dates, used when rehydrating.
func (d *Dates) Restore(dates map[State]time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dates = make(map[State]time.Time, len(dates))
	for k, v := range dates {
		d.dates[k] = v
	}
}
