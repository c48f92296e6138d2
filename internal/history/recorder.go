package history

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/pkg/batcher"
	"github.com/goodnatureofminers/tezwatch-backend/pkg/safe"
	"go.uber.org/zap"
)

// Recorder buffers snapshots and events and writes them in batches.
// It implements poller.HistoryRecorder.
type Recorder struct {
	snapshots *batcher.Batcher[NodeSnapshot]
	events    *batcher.Batcher[BakerEvent]
	now       func() time.Time
}

// RecorderConfig sizes both batchers.
type RecorderConfig struct {
	Batch            batcher.Config
	SnapshotObserver batcher.Observer
	EventObserver    batcher.Observer
}

// NewRecorder creates a Recorder writing to w. Call Start before recording.
func NewRecorder(w Writer, logger *zap.Logger, cfg RecorderConfig) *Recorder {
	return &Recorder{
		snapshots: batcher.New(logger.Named("node_snapshots"), cfg.Batch, w.InsertNodeSnapshots, cfg.SnapshotObserver),
		events:    batcher.New(logger.Named("baker_events"), cfg.Batch, w.InsertBakerEvents, cfg.EventObserver),
		now:       time.Now,
	}
}

// Start runs the flush loops until ctx is done or Stop is called.
func (r *Recorder) Start(ctx context.Context) {
	r.snapshots.Start(ctx)
	r.events.Start(ctx)
}

// Stop flushes whatever is buffered and waits for both loops.
func (r *Recorder) Stop() {
	r.snapshots.Stop()
	r.events.Stop()
}

// RecordNodeSnapshot queues the state of a node.
func (r *Recorder) RecordNodeSnapshot(ctx context.Context, rec model.NodeRecord) error {
	s := NodeSnapshot{
		URL:           rec.URL,
		Name:          rec.Name,
		UnableToReach: rec.UnableToReach,
		SyncStatus:    string(rec.SyncStatus),
		Protocol:      rec.Protocol,
		TezosVersion:  rec.TezosVersion,
		Error:         rec.Error,
		RecordedAt:    rec.UpdatedAt,
	}
	if rec.PeerCount != nil {
		peers, err := safe.Int32(*rec.PeerCount)
		if err != nil {
			return fmt.Errorf("peer count: %w", err)
		}
		s.PeerCount = &peers
	}
	if head, ok := rec.Head(); ok {
		s.HeadLevel = head.Level
		s.HeadHash = head.Hash
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = r.now().UTC()
	}
	if err := r.snapshots.Add(ctx, s); err != nil {
		return fmt.Errorf("queue node snapshot: %w", err)
	}
	return nil
}

// RecordBakerEvents queues new events of address.
func (r *Recorder) RecordBakerEvents(ctx context.Context, address string, events []model.BakingEvent) error {
	recorded := r.now().UTC()
	for _, e := range events {
		row := BakerEvent{
			Address:    address,
			Kind:       string(e.Kind),
			Level:      e.Level,
			Cycle:      e.Cycle,
			Timestamp:  e.Timestamp,
			RecordedAt: recorded,
		}
		if err := r.events.Add(ctx, row); err != nil {
			return fmt.Errorf("queue baker event: %w", err)
		}
	}
	return nil
}
