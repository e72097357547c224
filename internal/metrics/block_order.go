package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockOrderCreateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_order_worker",
		Name:      "create_total",
		Help:      "Count of block order creation attempts.",
	}, []string{"market", "side", "status"})
	blockOrderCreateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_order_worker",
		Name:      "create_duration_seconds",
		Help:      "Duration of block order creation including the funds check.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"market", "side", "status"})
	blockOrderStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_order_worker",
		Name:      "status_changes_total",
		Help:      "Count of block orders reaching a terminal status.",
	}, []string{"market", "status"})
	blockOrderWorkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_order_worker",
		Name:      "work_total",
		Help:      "Count of block order work passes.",
	}, []string{"market", "status"})
	blockOrderRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_order_worker",
		Name:      "recovered_total",
		Help:      "Count of indeterminate orders and fills resumed on startup.",
	})
)

// BlockOrderWorker tracks the orchestration of block orders.
type BlockOrderWorker struct{}

func NewBlockOrderWorker() *BlockOrderWorker {
	return &BlockOrderWorker{}
}

func (m BlockOrderWorker) ObserveCreate(market, side string, err error, started time.Time) {
	s := status(err)
	blockOrderCreateTotal.WithLabelValues(orUnknown(market), orUnknown(side), s).Inc()
	blockOrderCreateDuration.WithLabelValues(orUnknown(market), orUnknown(side), s).Observe(time.Since(started).Seconds())
}

func (m BlockOrderWorker) ObserveStatus(market, blockOrderStatus string) {
	blockOrderStatusTotal.WithLabelValues(orUnknown(market), blockOrderStatus).Inc()
}

func (m BlockOrderWorker) ObserveWork(market string, err error) {
	blockOrderWorkTotal.WithLabelValues(orUnknown(market), status(err)).Inc()
}

func (m BlockOrderWorker) ObserveRecovered(n int) {
	blockOrderRecoveredTotal.Add(float64(n))
}
