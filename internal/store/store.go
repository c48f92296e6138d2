// Package store holds the process-wide read model: the latest NodeRecord and
// BakerRecord of every target plus the current NetworkInfo.
//
// Writers replace whole records under the write lock and readers receive deep
// copies, so a reader never observes a partially updated record.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store closed")
	// ErrStaleRecord rejects an upsert whose UpdatedAt is older than the stored record.
	ErrStaleRecord = errors.New("stale record")
)

// Observer records upserts.
type Observer interface {
	ObserveUpsert(kind string, err error, records int)
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	closed   bool
	nodes    *table[model.NodeRecord]
	bakers   *table[model.BakerRecord]
	network  model.NetworkInfo
	hasNet   bool
	observer Observer
}

// New returns an empty Store. observer may be nil.
func New(observer Observer) *Store {
	return &Store{
		nodes: newTable("node",
			func(r model.NodeRecord) string { return r.Key() },
			func(r model.NodeRecord) time.Time { return r.UpdatedAt },
			model.NodeRecord.Clone),
		bakers: newTable("baker",
			func(r model.BakerRecord) string { return r.Key() },
			func(r model.BakerRecord) time.Time { return r.UpdatedAt },
			model.BakerRecord.Clone),
		observer: observer,
	}
}

// RegisterNodes seeds placeholder records in configuration order. Keys already present keep their record.
func (s *Store) RegisterNodes(records ...model.NodeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, r := range records {
		s.nodes.register(r)
	}
	return nil
}

// RegisterBakers seeds placeholder records in configuration order. Keys already present keep their record.
func (s *Store) RegisterBakers(records ...model.BakerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, r := range records {
		s.bakers.register(r)
	}
	return nil
}

// UpsertNode replaces the record stored under r.URL.
func (s *Store) UpsertNode(r model.NodeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.upsertLocked(func() error { return s.nodes.upsert(r) })
	s.observe("node", err, s.nodes.len())
	return err
}

// UpsertBaker replaces the record stored under r.Address.
func (s *Store) UpsertBaker(r model.BakerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.upsertLocked(func() error { return s.bakers.upsert(r) })
	s.observe("baker", err, s.bakers.len())
	return err
}

// SetNetworkInfo replaces the network summary unless it is older than the stored one.
func (s *Store) SetNetworkInfo(info model.NetworkInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.upsertLocked(func() error {
		if s.hasNet && info.UpdatedAt.Before(s.network.UpdatedAt) {
			return fmt.Errorf("network info at %s: %w", info.UpdatedAt.Format(time.RFC3339Nano), ErrStaleRecord)
		}
		s.network = info
		s.hasNet = true
		return nil
	})
	records := 0
	if s.hasNet {
		records = 1
	}
	s.observe("network", err, records)
	return err
}

func (s *Store) upsertLocked(apply func() error) error {
	if s.closed {
		return ErrClosed
	}
	return apply()
}

func (s *Store) observe(kind string, err error, records int) {
	if s.observer != nil {
		s.observer.ObserveUpsert(kind, err, records)
	}
}

// ListNodes returns a page of node records in configuration order and the total count.
// A negative offset is treated as zero and a non-positive limit returns everything after offset.
func (s *Store) ListNodes(offset, limit int) ([]model.NodeRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, 0, ErrClosed
	}
	items, total := s.nodes.page(offset, limit)
	return items, total, nil
}

// ListBakers returns a page of baker records in configuration order and the total count.
func (s *Store) ListBakers(offset, limit int) ([]model.BakerRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, 0, ErrClosed
	}
	items, total := s.bakers.page(offset, limit)
	return items, total, nil
}

// Node returns the record of one node.
func (s *Store) Node(url string) (model.NodeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.NodeRecord{}, false, ErrClosed
	}
	r, ok := s.nodes.get(url)
	return r, ok, nil
}

// Baker returns the record of one baker.
func (s *Store) Baker(address string) (model.BakerRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.BakerRecord{}, false, ErrClosed
	}
	r, ok := s.bakers.get(address)
	return r, ok, nil
}

// NetworkInfo returns the network summary; ok is false until a node poll succeeded.
func (s *Store) NetworkInfo() (model.NetworkInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.NetworkInfo{}, false, ErrClosed
	}
	return s.network, s.hasNet, nil
}

// Counts returns the number of node and baker records.
func (s *Store) Counts() (nodes, bakers int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, 0, ErrClosed
	}
	return s.nodes.len(), s.bakers.len(), nil
}

// Close makes every further call fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
