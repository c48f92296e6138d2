package tezos

import (
	"encoding/json"
	"fmt"
)

var (
	// Emmy covers the priority-based protocols up to Hangzhou.
	Emmy Decoder = &dialect{
		name:                "emmy",
		roundParam:          "max_priority",
		endorsingRightsPath: "endorsing_rights",
		endorsementKinds:    newKindSet("endorsement", "endorsement_with_slot"),
		doubleBakingKinds:   newKindSet("double_baking_evidence"),
		doubleEndorseKinds:  newKindSet("double_endorsement_evidence"),
		delegate:            decodeEmmyDelegate,
		endorsingRights:     decodeSlotRights,
	}
	// Tenderbake covers Ithaca through Nairobi.
	Tenderbake Decoder = &dialect{
		name:                "tenderbake",
		roundParam:          "max_round",
		endorsingRightsPath: "endorsing_rights",
		endorsementKinds:    newKindSet("endorsement"),
		doubleBakingKinds:   newKindSet("double_baking_evidence"),
		doubleEndorseKinds:  newKindSet("double_endorsement_evidence", "double_preendorsement_evidence"),
		delegate:            decodeTenderbakeDelegate,
		endorsingRights:     decodeCommitteeRights,
	}
	// Attestation covers Oxford onwards, where endorsements were renamed attestations.
	Attestation Decoder = &dialect{
		name:                "attestation",
		roundParam:          "max_round",
		endorsingRightsPath: "attestation_rights",
		endorsementKinds:    newKindSet("attestation", "attestation_with_dal", "endorsement"),
		doubleBakingKinds:   newKindSet("double_baking_evidence"),
		doubleEndorseKinds: newKindSet(
			"double_attestation_evidence",
			"double_preattestation_evidence",
			"double_endorsement_evidence",
			"double_preendorsement_evidence",
		),
		delegate:        decodeTenderbakeDelegate,
		endorsingRights: decodeCommitteeRights,
	}
)

// protocolPrefixes maps the leading characters of a protocol hash to its decoder.
var protocolPrefixes = map[string]Decoder{
	"PtCJ7pwo": Emmy,
	"PsYLVpVv": Emmy,
	"PsddFKi3": Emmy,
	"Pt24m4xi": Emmy,
	"PsBabyM1": Emmy,
	"PsCARTHA": Emmy,
	"PsDELPH1": Emmy,
	"PtEdo2Zk": Emmy,
	"PsFLoren": Emmy,
	"PtGRANAD": Emmy,
	"PtHangz2": Emmy,
	"Psithaca": Tenderbake,
	"PtJakart": Tenderbake,
	"PtKathma": Tenderbake,
	"PtLimaPt": Tenderbake,
	"PtMumbai": Tenderbake,
	"PtNairob": Tenderbake,
	"Proxford": Attestation,
	"PtParisB": Attestation,
	"PsParisC": Attestation,
	"PsQuebec": Attestation,
	"PsRiotum": Attestation,
}

// DecoderFor selects the decoder for a protocol hash. Unknown protocols are assumed
// to be newer than every known one.
func DecoderFor(protocol string) Decoder {
	if len(protocol) >= 8 {
		if d, ok := protocolPrefixes[protocol[:8]]; ok {
			return d
		}
	}
	return Attestation
}

type emmyDelegate struct {
	Balance        Mutez `json:"balance"`
	FrozenBalance  Mutez `json:"frozen_balance"`
	StakingBalance Mutez `json:"staking_balance"`
	Deactivated    bool  `json:"deactivated"`
	GracePeriod    int64 `json:"grace_period"`
}

func decodeEmmyDelegate(raw json.RawMessage) (Delegate, error) {
	var d emmyDelegate
	if err := json.Unmarshal(raw, &d); err != nil {
		return Delegate{}, fmt.Errorf("decode delegate: %w", err)
	}
	return Delegate{
		Balance:        int64(d.Balance),
		FrozenBalance:  int64(d.FrozenBalance),
		StakingBalance: int64(d.StakingBalance),
		Deactivated:    d.Deactivated,
		GracePeriod:    d.GracePeriod,
	}, nil
}

type tenderbakeDelegate struct {
	FullBalance           *Mutez `json:"full_balance"`
	OwnFullBalance        *Mutez `json:"own_full_balance"`
	CurrentFrozenDeposits *Mutez `json:"current_frozen_deposits"`
	TotalStaked           *Mutez `json:"total_staked"`
	StakingBalance        Mutez  `json:"staking_balance"`
	Deactivated           bool   `json:"deactivated"`
	GracePeriod           int64  `json:"grace_period"`
}

func decodeTenderbakeDelegate(raw json.RawMessage) (Delegate, error) {
	var d tenderbakeDelegate
	if err := json.Unmarshal(raw, &d); err != nil {
		return Delegate{}, fmt.Errorf("decode delegate: %w", err)
	}
	return Delegate{
		Balance:        int64(firstMutez(d.OwnFullBalance, d.FullBalance)),
		FrozenBalance:  int64(firstMutez(d.TotalStaked, d.CurrentFrozenDeposits)),
		StakingBalance: int64(d.StakingBalance),
		Deactivated:    d.Deactivated,
		GracePeriod:    d.GracePeriod,
	}, nil
}

func firstMutez(values ...*Mutez) Mutez {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

type slotRight struct {
	Level    int64  `json:"level"`
	Delegate string `json:"delegate"`
	Slots    []int  `json:"slots"`
}

func decodeSlotRights(raw json.RawMessage) ([]Right, error) {
	var rights []slotRight
	if err := json.Unmarshal(raw, &rights); err != nil {
		return nil, fmt.Errorf("decode endorsing rights: %w", err)
	}
	out := make([]Right, 0, len(rights))
	for _, r := range rights {
		first := 0
		if len(r.Slots) > 0 {
			first = r.Slots[0]
		}
		out = append(out, Right{Level: r.Level, Delegate: r.Delegate, Priority: first})
	}
	return out, nil
}

type committeeRight struct {
	Level     int64 `json:"level"`
	Delegates []struct {
		Delegate  string `json:"delegate"`
		FirstSlot int    `json:"first_slot"`
	} `json:"delegates"`
}

func decodeCommitteeRights(raw json.RawMessage) ([]Right, error) {
	var rights []committeeRight
	if err := json.Unmarshal(raw, &rights); err != nil {
		return nil, fmt.Errorf("decode endorsing rights: %w", err)
	}
	var out []Right
	for _, r := range rights {
		for _, d := range r.Delegates {
			out = append(out, Right{Level: r.Level, Delegate: d.Delegate, Priority: d.FirstSlot})
		}
	}
	return out, nil
}

// ShortProtocol trims a protocol hash for log fields.
func ShortProtocol(protocol string) string {
	if len(protocol) <= 12 {
		return protocol
	}
	return protocol[:12]
}
