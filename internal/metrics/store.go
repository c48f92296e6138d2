package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeUpsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "upserts_total",
		Help:      "Count of read model upserts.",
	}, []string{"kind", "status"})
	storeRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "records",
		Help:      "Number of records held by the read model.",
	}, []string{"kind"})
)

// Store tracks read model writes.
type Store struct{}

// NewStore creates a Store metrics collector.
func NewStore() *Store {
	return &Store{}
}

// ObserveUpsert records an upsert outcome and the resulting record count.
func (Store) ObserveUpsert(kind string, err error, records int) {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeUpsertsTotal.WithLabelValues(kind, status).Inc()
	storeRecords.WithLabelValues(kind).Set(float64(records))
}
