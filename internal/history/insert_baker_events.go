package history

import (
	"context"
	"fmt"
	"time"
)

const insertBakerEventsQuery = `
INSERT INTO baker_events (
	address,
	kind,
	level,
	cycle,
	timestamp,
	recorded_at
) VALUES`

// InsertBakerEvents stores baker event rows. Rows repeating (address, level, kind)
// collapse on merge.
func (r *Repository) InsertBakerEvents(ctx context.Context, rows []BakerEvent) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_baker_events", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBakerEventsQuery)
	if err != nil {
		return fmt.Errorf("prepare baker events batch: %w", err)
	}

	for _, e := range rows {
		if err = batch.Append(
			e.Address,
			e.Kind,
			e.Level,
			e.Cycle,
			e.Timestamp,
			e.RecordedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append baker event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert baker events: %w", err)
	}
	return nil
}
