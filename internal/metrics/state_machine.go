package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "transitions_total",
		Help:      "Count of state machine transitions attempted.",
	}, []string{"machine", "transition", "status"})
	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "transition_duration_seconds",
		Help:      "Duration of state machine transitions including relayer and engine calls.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{"machine", "transition", "status"})
)

// StateMachine tracks transitions of one kind of machine (order or fill).
type StateMachine struct {
	machine string
}

func NewStateMachine(machine string) *StateMachine {
	return &StateMachine{machine: orUnknown(machine)}
}

func (m StateMachine) ObserveTransition(transition string, err error, started time.Time) {
	s := status(err)
	transitionsTotal.WithLabelValues(m.machine, transition, s).Inc()
	transitionDuration.WithLabelValues(m.machine, transition, s).Observe(time.Since(started).Seconds())
}
