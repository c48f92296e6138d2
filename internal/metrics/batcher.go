package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batcherFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batcher",
		Name:      "flush_total",
		Help:      "Count of batch flushes.",
	}, []string{"batcher", "status"})
	batcherFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batcher",
		Name:      "flush_duration_seconds",
		Help:      "Duration of batch flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"batcher", "status"})
	batcherFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batcher",
		Name:      "flush_size",
		Help:      "Number of items per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"batcher"})
)

// Batcher tracks flushes of one named batcher.
type Batcher struct {
	name string
}

// NewBatcher constructs a Batcher collector.
func NewBatcher(name string) *Batcher {
	if name == "" {
		name = "unknown"
	}
	return &Batcher{name: name}
}

// ObserveFlush records a flush outcome, its size and duration.
func (m Batcher) ObserveFlush(err error, size int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	batcherFlushTotal.WithLabelValues(m.name, status).Inc()
	batcherFlushDuration.WithLabelValues(m.name, status).Observe(time.Since(started).Seconds())
	batcherFlushSize.WithLabelValues(m.name).Observe(float64(size))
}
