package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "ticks_total",
		Help:      "Count of poll ticks by outcome.",
	}, []string{"kind", "target", "status"})
	pollerTickDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "tick_duration_seconds",
		Help:      "Duration of poll ticks.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"kind", "target", "status"})
	pollerReachable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "target_reachable",
		Help:      "Whether the last poll reached the target (1) or not (0).",
	}, []string{"kind", "target"})
	pollerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poller",
		Name:      "baking_events_total",
		Help:      "Count of derived baking and endorsing events.",
	}, []string{"target", "event"})
)

// Poller tracks metrics for one polling loop.
type Poller struct {
	kind   string
	target string
}

// NewPoller constructs a Poller collector for a target of the given kind.
func NewPoller(kind, target string) *Poller {
	if kind == "" {
		kind = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	return &Poller{kind: kind, target: target}
}

// ObserveTick records the outcome of one tick. reachable is false when the target could not be contacted.
func (m Poller) ObserveTick(err error, reachable bool, started time.Time) {
	status := "success"
	switch {
	case !reachable:
		status = "unreachable"
	case err != nil:
		status = "error"
	}
	pollerTicksTotal.WithLabelValues(m.kind, m.target, status).Inc()
	pollerTickDuration.WithLabelValues(m.kind, m.target, status).Observe(time.Since(started).Seconds())

	up := 0.0
	if reachable {
		up = 1
	}
	pollerReachable.WithLabelValues(m.kind, m.target).Set(up)
}

// ObserveEvent counts a derived baking event.
func (m Poller) ObserveEvent(event string) {
	pollerEventsTotal.WithLabelValues(m.target, event).Inc()
}
