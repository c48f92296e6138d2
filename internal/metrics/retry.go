package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "retry",
	Name:      "scheduled_total",
	Help:      "Count of scheduled retries by policy and call.",
}, []string{"variant", "call"})

// Retry counts retries scheduled by the retry wrappers.
type Retry struct{}

// NewRetry creates a Retry metrics collector.
func NewRetry() *Retry {
	return &Retry{}
}

// ObserveRetry records one scheduled retry.
func (Retry) ObserveRetry(variant, label string) {
	retriesTotal.WithLabelValues(variant, label).Inc()
}
