// Package metrics exposes application metrics collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tezwatch"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of Tezos node RPC operations.",
	}, []string{"operation", "node", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Tezos node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "node", "status"})
)

// RPCClient tracks metrics for RPC calls to one Tezos node.
type RPCClient struct {
	node string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(node string) *RPCClient {
	if node == "" {
		node = "unknown"
	}
	return &RPCClient{node: node}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := rpcStatus(err)
	rpcRequestsTotal.WithLabelValues(operation, m.node, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.node, status).Observe(time.Since(started).Seconds())
}

func rpcStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, tezos.ErrNotFound):
		return "not_found"
	case tezos.IsUnreachable(err):
		return "unreachable"
	default:
		return "error"
	}
}
