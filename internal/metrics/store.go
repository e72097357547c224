package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Count of key-value store operations.",
	}, []string{"operation", "partition", "status"})
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of key-value store operations.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"operation", "partition", "status"})
)

// Store tracks operations against the local key-value store.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (m Store) Observe(operation, partition string, err error, started time.Time) {
	s := status(err)
	storeOperationsTotal.WithLabelValues(operation, orUnknown(partition), s).Inc()
	storeOperationDuration.WithLabelValues(operation, orUnknown(partition), s).Observe(time.Since(started).Seconds())
}
