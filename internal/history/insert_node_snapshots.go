package history

import (
	"context"
	"fmt"
	"time"
)

const insertNodeSnapshotsQuery = `
INSERT INTO node_snapshots (
	url,
	name,
	unable_to_reach,
	sync_status,
	peer_count,
	head_level,
	head_hash,
	protocol,
	tezos_version,
	error,
	recorded_at
) VALUES`

// InsertNodeSnapshots stores node snapshot rows.
func (r *Repository) InsertNodeSnapshots(ctx context.Context, rows []NodeSnapshot) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_node_snapshots", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertNodeSnapshotsQuery)
	if err != nil {
		return fmt.Errorf("prepare node snapshots batch: %w", err)
	}

	for _, s := range rows {
		if err = batch.Append(
			s.URL,
			s.Name,
			s.UnableToReach,
			s.SyncStatus,
			s.PeerCount,
			s.HeadLevel,
			s.HeadHash,
			s.Protocol,
			s.TezosVersion,
			s.Error,
			s.RecordedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append node snapshot: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert node snapshots: %w", err)
	}
	return nil
}
