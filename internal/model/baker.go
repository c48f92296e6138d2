package model

import (
	"sort"
	"time"
)

// EventKind classifies a baking or endorsing outcome.
type EventKind string

const (
	EventBaked             EventKind = "baked"
	EventMissedBake        EventKind = "missed_bake"
	EventDoubleBaked       EventKind = "double_baked"
	EventEndorsed          EventKind = "endorsed"
	EventMissedEndorsement EventKind = "missed_endorsement"
	EventDoubleEndorsed    EventKind = "double_endorsed"
)

// IsFault reports whether the event is worth alerting on.
func (k EventKind) IsFault() bool {
	switch k {
	case EventMissedBake, EventDoubleBaked, EventMissedEndorsement, EventDoubleEndorsed:
		return true
	default:
		return false
	}
}

// DefaultEventsLimit bounds BakerRecord.RecentEvents unless configured otherwise.
const DefaultEventsLimit = 10

// BakingEvent is one derived outcome for a baker at a level.
type BakingEvent struct {
	Kind      EventKind `json:"kind"`
	Level     int64     `json:"level"`
	Cycle     int64     `json:"cycle"`
	Timestamp time.Time `json:"timestamp"`
}

// BakerRecord is the latest known state of a monitored delegate, keyed by address.
// Balances are in mutez.
type BakerRecord struct {
	Address          string        `json:"address"`
	Name             string        `json:"name"`
	Balance          int64         `json:"balance"`
	FrozenBalance    int64         `json:"frozen_balance"`
	StakingBalance   int64         `json:"staking_balance"`
	Deactivated      bool          `json:"deactivated"`
	GracePeriod      int64         `json:"grace_period"`
	RecentEvents     []BakingEvent `json:"recent_events"`
	LastCheckedLevel int64         `json:"last_checked_level"`
	UnableToReach    bool          `json:"unable_to_reach"`
	Error            string        `json:"error,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Key returns the unique store key of the record.
func (r BakerRecord) Key() string { return r.Address }

// rank orders kinds that share a level: bakes, then endorsements, then denunciations.
func (k EventKind) rank() int {
	switch k {
	case EventBaked, EventMissedBake:
		return 0
	case EventEndorsed, EventMissedEndorsement:
		return 1
	default:
		return 2
	}
}

// PushEvents merges events into RecentEvents, dropping any (kind, level) pair
// already present. RecentEvents stays ordered by level descending and is
// truncated to limit. It returns the events that were actually added.
func (r *BakerRecord) PushEvents(limit int, events ...BakingEvent) []BakingEvent {
	type eventKey struct {
		kind  EventKind
		level int64
	}
	seen := make(map[eventKey]struct{}, len(r.RecentEvents)+len(events))
	merged := make([]BakingEvent, 0, len(r.RecentEvents)+len(events))
	for _, e := range r.RecentEvents {
		seen[eventKey{e.Kind, e.Level}] = struct{}{}
		merged = append(merged, e)
	}
	var added []BakingEvent
	for _, e := range events {
		k := eventKey{e.Kind, e.Level}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, e)
		added = append(added, e)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Level != merged[j].Level {
			return merged[i].Level > merged[j].Level
		}
		return merged[i].Kind.rank() < merged[j].Kind.rank()
	})
	if limit <= 0 {
		merged = nil
	} else if len(merged) > limit {
		merged = merged[:limit]
	}
	r.RecentEvents = merged
	return added
}

// Clone returns a deep copy safe to hand to readers.
func (r BakerRecord) Clone() BakerRecord {
	out := r
	out.RecentEvents = append([]BakingEvent(nil), r.RecentEvents...)
	return out
}
