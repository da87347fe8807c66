// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// The canonical encoding flattens every map into a list sorted by account id,
// so that equal records always encode to equal bytes. Index maps are derived
// from the validator lists and are left out.

type rlpValidator struct {
	AccountID unc.AccountID
	PublicKey unc.PublicKey
	Power     *uint256.Int
	Pledge    *uint256.Int
}

type rlpAmount struct {
	AccountID unc.AccountID
	Amount    *uint256.Int
}

type rlpKickout struct {
	AccountID unc.AccountID
	Kind      uint8
	Produced  uint64
	Expected  uint64
	Power     *uint256.Int
	Pledge    *uint256.Int
	Threshold *uint256.Int
}

type rlpInfo struct {
	Height                   uint64
	Validators               []rlpValidator
	BlockProducersSettlement []uint64
	ChunkProducersSettlement [][]uint64
	Fishermen                []rlpValidator
	PowerChange              []rlpAmount
	PledgeChange             []rlpAmount
	ValidatorReward          []rlpAmount
	ValidatorKickout         []rlpKickout
	MintedAmount             *uint256.Int
	SeatPrice                *uint256.Int
	ProtocolVersion          uint32
	RngSeed                  unc.Bytes32
	Mandates                 *mandates.Mandates
}

type rlpBlockSummary struct {
	ThisBlockHash            unc.Bytes32
	LastBlockHash            unc.Bytes32
	PrevEpochLastHash        unc.Bytes32
	Validators               []rlpValidator
	BlockProducersSettlement []uint64
	ChunkProducersSettlement [][]uint64
	Fishermen                []rlpValidator
	PowerChange              []rlpAmount
	PledgeChange             []rlpAmount
	ValidatorReward          []rlpAmount
	SeatPrice                *uint256.Int
	MintedAmount             *uint256.Int
	AllPowerProposals        []rlpAmount
	AllPledgeProposals       []rlpAmount
	ValidatorKickout         []rlpKickout
	Mandates                 *mandates.Mandates
}

func encodeValidators(vs []validator.Validator) []rlpValidator {
	out := make([]rlpValidator, 0, len(vs))
	for i := range vs {
		out = append(out, rlpValidator{
			AccountID: vs[i].AccountID,
			PublicKey: vs[i].PublicKey,
			Power:     &vs[i].Power,
			Pledge:    &vs[i].Pledge,
		})
	}
	return out
}

func encodeAmounts(m map[unc.AccountID]uint256.Int) []rlpAmount {
	ids := make([]unc.AccountID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]rlpAmount, 0, len(ids))
	for _, id := range ids {
		v := m[id]
		out = append(out, rlpAmount{AccountID: id, Amount: &v})
	}
	return out
}

func encodeKickouts(k validator.Kickouts) []rlpKickout {
	ids := make([]unc.AccountID, 0, len(k))
	for id := range k {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]rlpKickout, 0, len(ids))
	for _, id := range ids {
		r := k[id]
		out = append(out, rlpKickout{
			AccountID: id,
			Kind:      uint8(r.Kind),
			Produced:  r.Produced,
			Expected:  r.Expected,
			Power:     &r.Power,
			Pledge:    &r.Pledge,
			Threshold: &r.Threshold,
		})
	}
	return out
}

func orEmpty(m *mandates.Mandates) *mandates.Mandates {
	if m == nil {
		return mandates.Empty()
	}
	return m
}

// EncodeRLP implements rlp.Encoder.
func (i *Info) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &rlpInfo{
		Height:                   i.Height,
		Validators:               encodeValidators(i.Validators),
		BlockProducersSettlement: i.BlockProducersSettlement,
		ChunkProducersSettlement: i.ChunkProducersSettlement,
		Fishermen:                encodeValidators(i.Fishermen),
		PowerChange:              encodeAmounts(i.PowerChange),
		PledgeChange:             encodeAmounts(i.PledgeChange),
		ValidatorReward:          encodeAmounts(i.ValidatorReward),
		ValidatorKickout:         encodeKickouts(i.ValidatorKickout),
		MintedAmount:             &i.MintedAmount,
		SeatPrice:                &i.SeatPrice,
		ProtocolVersion:          i.ProtocolVersion,
		RngSeed:                  i.RngSeed,
		Mandates:                 orEmpty(i.Mandates),
	})
}

// Canonical returns the canonical encoding.
func (i *Info) Canonical() ([]byte, error) {
	return rlp.EncodeToBytes(i)
}

// Digest returns the blake2b hash of the canonical encoding.
func (i *Info) Digest() (unc.Bytes32, error) {
	return digest(i)
}

// EncodeRLP implements rlp.Encoder.
func (s *BlockSummary) EncodeRLP(w io.Writer) error {
	power := make([]rlpAmount, 0, len(s.AllPowerProposals))
	for j := range s.AllPowerProposals {
		p := &s.AllPowerProposals[j]
		power = append(power, rlpAmount{AccountID: p.AccountID, Amount: &p.Power})
	}
	pledge := make([]rlpAmount, 0, len(s.AllPledgeProposals))
	for j := range s.AllPledgeProposals {
		p := &s.AllPledgeProposals[j]
		pledge = append(pledge, rlpAmount{AccountID: p.AccountID, Amount: &p.Pledge})
	}
	return rlp.Encode(w, &rlpBlockSummary{
		ThisBlockHash:            s.ThisBlockHash,
		LastBlockHash:            s.LastBlockHash,
		PrevEpochLastHash:        s.PrevEpochLastHash,
		Validators:               encodeValidators(s.Validators),
		BlockProducersSettlement: s.BlockProducersSettlement,
		ChunkProducersSettlement: s.ChunkProducersSettlement,
		Fishermen:                encodeValidators(s.Fishermen),
		PowerChange:              encodeAmounts(s.PowerChange),
		PledgeChange:             encodeAmounts(s.PledgeChange),
		ValidatorReward:          encodeAmounts(s.ValidatorReward),
		SeatPrice:                &s.SeatPrice,
		MintedAmount:             &s.MintedAmount,
		AllPowerProposals:        power,
		AllPledgeProposals:       pledge,
		ValidatorKickout:         encodeKickouts(s.ValidatorKickout),
		Mandates:                 orEmpty(s.Mandates),
	})
}

// Canonical returns the canonical encoding.
func (s *BlockSummary) Canonical() ([]byte, error) {
	return rlp.EncodeToBytes(s)
}

// Digest returns the blake2b hash of the canonical encoding.
func (s *BlockSummary) Digest() (unc.Bytes32, error) {
	return digest(s)
}

func digest(val rlp.Encoder) (h unc.Bytes32, err error) {
	h = unc.Blake2bFn(func(w io.Writer) {
		err = val.EncodeRLP(w)
	})
	return
}
