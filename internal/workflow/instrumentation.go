package workflow

import (
	"context"
	"time"
)

// Instrumentation reports every TryTo outcome to metrics.
type Instrumentation struct {
	BasePlugin
	metrics TransitionMetrics
}

func NewInstrumentation(metrics TransitionMetrics) *Instrumentation {
	return &Instrumentation{metrics: metrics}
}

func (i *Instrumentation) Wrap(_ *Machine, next Runner) Runner {
	return func(ctx context.Context, name string, action Action) (err error) {
		started := time.Now()
		defer func() {
			i.metrics.ObserveTransition(name, err, started)
		}()
		return next(ctx, name, action)
	}
}
