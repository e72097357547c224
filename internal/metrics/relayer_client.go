package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	relayerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "relayer_client",
		Name:      "operations_total",
		Help:      "Count of relayer RPC operations.",
	}, []string{"operation", "status"})
	relayerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "relayer_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of relayer RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// RelayerClient tracks metrics for calls to the relayer.
type RelayerClient struct{}

func NewRelayerClient() *RelayerClient {
	return &RelayerClient{}
}

// Observe records a single relayer call outcome and duration.
func (m RelayerClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	relayerRequestsTotal.WithLabelValues(operation, s).Inc()
	relayerRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
