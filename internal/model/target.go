package model

import "time"

// TargetKind tells pollers what a PollTarget points at.
type TargetKind string

const (
	TargetNode  TargetKind = "node"
	TargetBaker TargetKind = "baker"
)

// PollTarget is a configured node URL or baker address. Immutable once loaded.
type PollTarget struct {
	Kind     TargetKind
	Key      string
	Name     string
	Interval time.Duration
	// NodeURL is the node a baker is checked against.
	NodeURL string
}

// DisplayName falls back to the key when no name is configured.
func (t PollTarget) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Key
}
