package model

import "time"

// NetworkInfo is derived from the most recent successful node poll.
type NetworkInfo struct {
	Cycle          int64     `json:"cycle"`
	CyclePosition  int64     `json:"cycle_position"`
	BlocksPerCycle int64     `json:"blocks_per_cycle"`
	Level          int64     `json:"level"`
	ChainName      string    `json:"chain_name"`
	Protocol       string    `json:"protocol"`
	UpdatedAt      time.Time `json:"updated_at"`
}
