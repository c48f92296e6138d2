package tezos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BlockHeader is the protocol-independent part of a block header.
type BlockHeader struct {
	Hash      string
	Level     int64
	Timestamp time.Time
	Protocol  string
	ChainID   string
	// Priority is the baking priority before Ithaca and the payload round afterwards.
	Priority int
}

// Bootstrapped is the answer of /chains/main/is_bootstrapped.
type Bootstrapped struct {
	Bootstrapped bool   `json:"bootstrapped"`
	SyncState    string `json:"sync_state"`
}

// Version is the answer of /version.
type Version struct {
	Version struct {
		Major          int             `json:"major"`
		Minor          int             `json:"minor"`
		AdditionalInfo json.RawMessage `json:"additional_info"`
	} `json:"version"`
	NetworkVersion struct {
		ChainName string `json:"chain_name"`
	} `json:"network_version"`
	CommitInfo struct {
		CommitHash string `json:"commit_hash"`
		CommitDate string `json:"commit_date"`
	} `json:"commit_info"`
}

// String renders the version as major.minor with the release suffix, e.g. "13.0" or "14.0~rc1".
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d", v.Version.Major, v.Version.Minor)
	return base + additionalInfoSuffix(v.Version.AdditionalInfo)
}

func additionalInfoSuffix(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "", "release":
			return ""
		default:
			return "+" + s
		}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return ""
	}
	for kind, val := range obj {
		var n int
		if err := json.Unmarshal(val, &n); err == nil {
			return fmt.Sprintf("~%s%d", kind, n)
		}
		return "~" + kind
	}
	return ""
}

// Constants holds the subset of protocol constants the monitor needs.
type Constants struct {
	BlocksPerCycle  int64 `json:"blocks_per_cycle"`
	PreservedCycles int64 `json:"preserved_cycles"`
}

// LevelInfo locates a block within its cycle.
type LevelInfo struct {
	Level         int64
	Cycle         int64
	CyclePosition int64
}

// Block is a decoded block with the operations relevant to baker accounting.
type Block struct {
	Header    BlockHeader
	LevelInfo LevelInfo
	// Baker produced the block.
	Baker string
	// Endorsers lists delegates whose endorsements (attestations) for the previous level are included.
	Endorsers []string
	Evidence  []Evidence
}

// EvidenceKind distinguishes double baking from double endorsing.
type EvidenceKind string

const (
	EvidenceDoubleBaking    EvidenceKind = "double_baking"
	EvidenceDoubleEndorsing EvidenceKind = "double_endorsing"
)

// Evidence is a denunciation included in a block.
type Evidence struct {
	Kind     EvidenceKind
	Offender string
	// Level is the level of the misbehaviour, not the inclusion level.
	Level int64
}

// Delegate is the normalized balance view of a baker; amounts are mutez.
type Delegate struct {
	Balance        int64
	FrozenBalance  int64
	StakingBalance int64
	Deactivated    bool
	GracePeriod    int64
}

// Right is a baking or endorsing slot assignment of a delegate at a level.
type Right struct {
	Level    int64
	Delegate string
	// Priority is the round (or priority) for baking rights and the first slot for endorsing rights.
	Priority int
}

// Mutez is a tez amount encoded as a decimal string on the wire.
type Mutez int64

func (m *Mutez) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse mutez %q: %w", s, err)
	}
	*m = Mutez(v)
	return nil
}
