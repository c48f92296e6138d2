package history

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
)

const recentBakerEventsQuery = `
SELECT kind, level, cycle, timestamp
FROM baker_events FINAL
WHERE address = ?
ORDER BY
	level DESC,
	multiIf(kind IN ('baked', 'missed_bake'), 0, kind IN ('endorsed', 'missed_endorsement'), 1, 2) ASC
LIMIT ?`

// RecentBakerEvents returns up to limit events of address, most-recent-first, in the
// order a baker poller produces them.
func (r *Repository) RecentBakerEvents(ctx context.Context, address string, limit int) (_ []model.BakingEvent, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recent_baker_events", err, start)
	}()

	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.conn.Query(ctx, recentBakerEventsQuery, address, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent baker events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	events := make([]model.BakingEvent, 0, limit)
	for rows.Next() {
		var (
			e    model.BakingEvent
			kind string
		)
		if err = rows.Scan(&kind, &e.Level, &e.Cycle, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan baker event: %w", err)
		}
		e.Kind = model.EventKind(kind)
		e.Timestamp = e.Timestamp.UTC()
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate baker events: %w", err)
	}
	return events, nil
}
