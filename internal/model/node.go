// Package model defines the normalized records served by the read model.
package model

import "time"

// SyncStatus describes the bootstrap state reported by a node.
type SyncStatus string

const (
	SyncSynced   SyncStatus = "synced"
	SyncUnsynced SyncStatus = "unsynced"
	SyncStuck    SyncStatus = "stuck"
	SyncUnknown  SyncStatus = "unknown"
)

// ParseSyncStatus maps the RPC sync_state value onto SyncStatus.
func ParseSyncStatus(v string) SyncStatus {
	switch SyncStatus(v) {
	case SyncSynced, SyncUnsynced, SyncStuck:
		return SyncStatus(v)
	default:
		return SyncUnknown
	}
}

// RecentBlocksLimit bounds NodeRecord.RecentBlocks.
const RecentBlocksLimit = 3

// RecentBlock is a head block observed by a node poll.
type RecentBlock struct {
	Hash      string    `json:"hash"`
	Level     int64     `json:"level"`
	Timestamp time.Time `json:"timestamp"`
	Priority  int       `json:"priority"`
	Protocol  string    `json:"protocol"`
}

// NodeRecord is the latest known state of a monitored node, keyed by URL.
type NodeRecord struct {
	URL           string        `json:"url"`
	Name          string        `json:"name"`
	UnableToReach bool          `json:"unable_to_reach"`
	SyncStatus    SyncStatus    `json:"sync_status"`
	PeerCount     *int          `json:"peer_count,omitempty"`
	ChainName     string        `json:"chain_name"`
	Protocol      string        `json:"protocol"`
	TezosVersion  string        `json:"tezos_version"`
	CommitHash    string        `json:"commit_hash"`
	RecentBlocks  []RecentBlock `json:"recent_blocks"`
	Error         string        `json:"error,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Key returns the unique store key of the record.
func (r NodeRecord) Key() string { return r.URL }

// Head returns the most recent block, if any.
func (r NodeRecord) Head() (RecentBlock, bool) {
	if len(r.RecentBlocks) == 0 {
		return RecentBlock{}, false
	}
	return r.RecentBlocks[0], true
}

// PushBlock prepends b unless it is already the most recent block.
// Blocks with a hash already present deeper in the list are moved to the front.
func (r *NodeRecord) PushBlock(b RecentBlock) {
	if head, ok := r.Head(); ok && head.Hash == b.Hash {
		return
	}
	kept := make([]RecentBlock, 0, len(r.RecentBlocks))
	for _, existing := range r.RecentBlocks {
		if existing.Hash != b.Hash {
			kept = append(kept, existing)
		}
	}
	r.RecentBlocks = Prepend(kept, RecentBlocksLimit, b)
}

// Clone returns a deep copy safe to hand to readers.
func (r NodeRecord) Clone() NodeRecord {
	out := r
	if r.PeerCount != nil {
		peers := *r.PeerCount
		out.PeerCount = &peers
	}
	out.RecentBlocks = append([]RecentBlock(nil), r.RecentBlocks...)
	return out
}
