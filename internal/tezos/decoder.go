package tezos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Decoder turns protocol-specific RPC payloads into the normalized types of this package.
type Decoder interface {
	Name() string
	Metadata(raw json.RawMessage) (LevelInfo, string, error)
	Block(raw json.RawMessage) (Block, error)
	Delegate(raw json.RawMessage) (Delegate, error)
	BakingRightsParams(level int64) map[string]string
	BakingRights(raw json.RawMessage) ([]Right, error)
	EndorsingRightsPath() string
	EndorsingRights(raw json.RawMessage) ([]Right, error)
}

type rawHeader struct {
	Hash         string    `json:"hash"`
	Level        int64     `json:"level"`
	Timestamp    time.Time `json:"timestamp"`
	Protocol     string    `json:"protocol"`
	ChainID      string    `json:"chain_id"`
	Priority     *int      `json:"priority"`
	PayloadRound *int      `json:"payload_round"`
}

func (h rawHeader) normalize() BlockHeader {
	out := BlockHeader{
		Hash:      h.Hash,
		Level:     h.Level,
		Timestamp: h.Timestamp.UTC(),
		Protocol:  h.Protocol,
		ChainID:   h.ChainID,
	}
	switch {
	case h.PayloadRound != nil:
		out.Priority = *h.PayloadRound
	case h.Priority != nil:
		out.Priority = *h.Priority
	}
	return out
}

// DecodeHeader decodes a /header answer. The header shape is stable across protocols
// apart from the priority/payload_round rename.
func DecodeHeader(raw json.RawMessage) (BlockHeader, error) {
	var h rawHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return BlockHeader{}, fmt.Errorf("decode header: %w", err)
	}
	if h.Hash == "" {
		return BlockHeader{}, fmt.Errorf("decode header: missing hash")
	}
	return h.normalize(), nil
}

type rawLevel struct {
	Level         int64 `json:"level"`
	Cycle         int64 `json:"cycle"`
	CyclePosition int64 `json:"cycle_position"`
}

type rawMetadata struct {
	Baker     string    `json:"baker"`
	Level     *rawLevel `json:"level"`
	LevelInfo *rawLevel `json:"level_info"`
}

func (m rawMetadata) levelInfo() (LevelInfo, error) {
	l := m.LevelInfo
	if l == nil {
		l = m.Level
	}
	if l == nil {
		return LevelInfo{}, fmt.Errorf("metadata without level info")
	}
	return LevelInfo{Level: l.Level, Cycle: l.Cycle, CyclePosition: l.CyclePosition}, nil
}

type rawBalanceUpdate struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Delegate string `json:"delegate"`
	Change   Mutez  `json:"change"`
}

type rawContent struct {
	Kind  string `json:"kind"`
	Level int64  `json:"level"`
	BH1   *struct {
		Level int64 `json:"level"`
	} `json:"bh1"`
	Op1 *struct {
		Operations struct {
			Level int64 `json:"level"`
		} `json:"operations"`
	} `json:"op1"`
	Metadata *struct {
		Delegate          string             `json:"delegate"`
		ForbiddenDelegate string             `json:"forbidden_delegate"`
		PunishedDelegate  string             `json:"punished_delegate"`
		BalanceUpdates    []rawBalanceUpdate `json:"balance_updates"`
		Misbehaviour      *struct {
			Level int64 `json:"level"`
		} `json:"misbehaviour"`
	} `json:"metadata"`
}

type rawOperation struct {
	Hash     string       `json:"hash"`
	Contents []rawContent `json:"contents"`
}

type rawBlock struct {
	Protocol   string           `json:"protocol"`
	ChainID    string           `json:"chain_id"`
	Hash       string           `json:"hash"`
	Header     rawHeader        `json:"header"`
	Metadata   rawMetadata      `json:"metadata"`
	Operations [][]rawOperation `json:"operations"`
}

type rawBakingRight struct {
	Level    int64  `json:"level"`
	Delegate string `json:"delegate"`
	Priority *int   `json:"priority"`
	Round    *int   `json:"round"`
}

type kindSet map[string]struct{}

func newKindSet(kinds ...string) kindSet {
	s := make(kindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

func (s kindSet) has(kind string) bool {
	_, ok := s[kind]
	return ok
}

// dialect is a Decoder configured for one family of protocols.
type dialect struct {
	name                string
	roundParam          string
	endorsingRightsPath string
	endorsementKinds    kindSet
	doubleBakingKinds   kindSet
	doubleEndorseKinds  kindSet
	delegate            func(json.RawMessage) (Delegate, error)
	endorsingRights     func(json.RawMessage) ([]Right, error)
}

func (d *dialect) Name() string { return d.name }

func (d *dialect) Metadata(raw json.RawMessage) (LevelInfo, string, error) {
	var m rawMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return LevelInfo{}, "", fmt.Errorf("decode metadata: %w", err)
	}
	info, err := m.levelInfo()
	if err != nil {
		return LevelInfo{}, "", err
	}
	return info, m.Baker, nil
}

func (d *dialect) Block(raw json.RawMessage) (Block, error) {
	var b rawBlock
	if err := json.Unmarshal(raw, &b); err != nil {
		return Block{}, fmt.Errorf("decode block: %w", err)
	}
	header := b.Header.normalize()
	header.Hash = b.Hash
	header.Protocol = b.Protocol
	header.ChainID = b.ChainID

	info, err := b.Metadata.levelInfo()
	if err != nil {
		return Block{}, fmt.Errorf("block %s: %w", b.Hash, err)
	}

	out := Block{
		Header:    header,
		LevelInfo: info,
		Baker:     b.Metadata.Baker,
	}
	if len(b.Operations) > 0 {
		seen := make(map[string]struct{})
		for _, op := range b.Operations[0] {
			for _, c := range op.Contents {
				if !d.endorsementKinds.has(c.Kind) || c.Metadata == nil || c.Metadata.Delegate == "" {
					continue
				}
				if _, dup := seen[c.Metadata.Delegate]; dup {
					continue
				}
				seen[c.Metadata.Delegate] = struct{}{}
				out.Endorsers = append(out.Endorsers, c.Metadata.Delegate)
			}
		}
	}
	if len(b.Operations) > 2 {
		for _, op := range b.Operations[2] {
			for _, c := range op.Contents {
				var kind EvidenceKind
				switch {
				case d.doubleBakingKinds.has(c.Kind):
					kind = EvidenceDoubleBaking
				case d.doubleEndorseKinds.has(c.Kind):
					kind = EvidenceDoubleEndorsing
				default:
					continue
				}
				offender := evidenceOffender(c)
				if offender == "" {
					continue
				}
				out.Evidence = append(out.Evidence, Evidence{
					Kind:     kind,
					Offender: offender,
					Level:    evidenceLevel(c, info.Level),
				})
			}
		}
	}
	return out, nil
}

func evidenceOffender(c rawContent) string {
	if c.Metadata == nil {
		return ""
	}
	if c.Metadata.PunishedDelegate != "" {
		return c.Metadata.PunishedDelegate
	}
	if c.Metadata.ForbiddenDelegate != "" {
		return c.Metadata.ForbiddenDelegate
	}
	for _, u := range c.Metadata.BalanceUpdates {
		if u.Delegate != "" && u.Change < 0 {
			return u.Delegate
		}
	}
	return ""
}

func evidenceLevel(c rawContent, inclusion int64) int64 {
	switch {
	case c.Metadata != nil && c.Metadata.Misbehaviour != nil && c.Metadata.Misbehaviour.Level > 0:
		return c.Metadata.Misbehaviour.Level
	case c.BH1 != nil && c.BH1.Level > 0:
		return c.BH1.Level
	case c.Op1 != nil && c.Op1.Operations.Level > 0:
		return c.Op1.Operations.Level
	default:
		return inclusion
	}
}

func (d *dialect) Delegate(raw json.RawMessage) (Delegate, error) {
	return d.delegate(raw)
}

func (d *dialect) BakingRightsParams(level int64) map[string]string {
	return map[string]string{
		"level":      strconv.FormatInt(level, 10),
		d.roundParam: "0",
	}
}

func (d *dialect) BakingRights(raw json.RawMessage) ([]Right, error) {
	var rights []rawBakingRight
	if err := json.Unmarshal(raw, &rights); err != nil {
		return nil, fmt.Errorf("decode baking rights: %w", err)
	}
	out := make([]Right, 0, len(rights))
	for _, r := range rights {
		priority := 0
		switch {
		case r.Round != nil:
			priority = *r.Round
		case r.Priority != nil:
			priority = *r.Priority
		}
		out = append(out, Right{Level: r.Level, Delegate: r.Delegate, Priority: priority})
	}
	return out, nil
}

func (d *dialect) EndorsingRightsPath() string { return d.endorsingRightsPath }

func (d *dialect) EndorsingRights(raw json.RawMessage) ([]Right, error) {
	return d.endorsingRights(raw)
}
