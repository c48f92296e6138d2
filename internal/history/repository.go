// Package history keeps node snapshots and baker events in ClickHouse.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// NodeSnapshot is one row of node_snapshots.
type NodeSnapshot struct {
	URL           string
	Name          string
	UnableToReach bool
	SyncStatus    string
	PeerCount     *int32
	HeadLevel     int64
	HeadHash      string
	Protocol      string
	TezosVersion  string
	Error         string
	RecordedAt    time.Time
}

// BakerEvent is one row of baker_events.
type BakerEvent struct {
	Address    string
	Kind       string
	Level      int64
	Cycle      int64
	Timestamp  time.Time
	RecordedAt time.Time
}

type Repository struct {
	conn    Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: nativeConn{conn: conn}, metrics: metrics}, nil
}

// Close releases the connection.
func (r *Repository) Close() error { return r.conn.Close() }

// nativeConn narrows driver.Conn to Conn.
type nativeConn struct {
	conn driver.Conn
}

func (c nativeConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c nativeConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

func (c nativeConn) Close() error { return c.conn.Close() }
