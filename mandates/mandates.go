// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package mandates splits validator pledge into mandates, the unit of per-block
// chunk validation weight, and assigns them to shards.
package mandates

import (
	"encoding/binary"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/log"
	"github.com/unc-network/epochsel/shuffle"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

var logger = log.WithContext("pkg", "mandates")

// MaxMandatesPerValidator caps the whole mandates a single validator is given.
const MaxMandatesPerValidator = 1 << 16

// Config of the mandate split.
type Config struct {
	PledgePerMandate    unc.Balance
	MinMandatesPerShard uint64
	NumShards           uint64
}

// NewConfig creates a config.
func NewConfig(pledgePerMandate *uint256.Int, minMandatesPerShard, numShards uint64) Config {
	return Config{
		PledgePerMandate:    *pledgePerMandate,
		MinMandatesPerShard: minMandatesPerShard,
		NumShards:           numShards,
	}
}

// Partial is the remainder of a pledge that does not make a whole mandate.
type Partial struct {
	ID     unc.ValidatorID
	Weight unc.Balance
}

// Mandates of one epoch. The value is immutable.
type Mandates struct {
	config   Config
	mandates []unc.ValidatorID
	partials []Partial
}

// New splits the pledge of every validator into whole mandates and a partial one.
// Validator ids are positions in validators.
// The set is empty when the config has no pledge per mandate or no shard.
// A validator never gets more than MaxMandatesPerValidator whole mandates.
func New(cfg Config, validators []validator.Validator) *Mandates {
	m := &Mandates{config: cfg}
	if cfg.PledgePerMandate.IsZero() || cfg.NumShards == 0 {
		return m
	}

	var whole, rem uint256.Int
	for i := range validators {
		whole.DivMod(&validators[i].Pledge, &cfg.PledgePerMandate, &rem)
		count := uint64(MaxMandatesPerValidator)
		if whole.IsUint64() && whole.Uint64() <= count {
			count = whole.Uint64()
		} else {
			logger.Warn("mandates capped", "validator", validators[i].AccountID, "mandates", &whole, "cap", count)
		}
		for range count {
			m.mandates = append(m.mandates, unc.ValidatorID(i))
		}
		if !rem.IsZero() {
			m.partials = append(m.partials, Partial{ID: unc.ValidatorID(i), Weight: rem})
		}
	}

	if want := cfg.MinMandatesPerShard * cfg.NumShards; uint64(len(m.mandates)) < want {
		logger.Warn("not enough mandates for all shards", "mandates", len(m.mandates), "want", want)
	}
	return m
}

// Empty returns the mandate set used when chunk validation is disabled.
func Empty() *Mandates {
	return &Mandates{}
}

// Config returns the config the set was built with.
func (m *Mandates) Config() Config { return m.config }

// IsEmpty reports whether the set holds no mandate at all.
func (m *Mandates) IsEmpty() bool {
	return len(m.mandates) == 0 && len(m.partials) == 0
}

// NumMandates returns the number of whole mandates.
func (m *Mandates) NumMandates() int { return len(m.mandates) }

// Mandates returns the owner of each whole mandate.
func (m *Mandates) Mandates() []unc.ValidatorID { return slices.Clone(m.mandates) }

// Partials returns the partial mandates.
func (m *Mandates) Partials() []Partial { return slices.Clone(m.partials) }

// Weight is what one validator holds on one shard.
type Weight struct {
	Mandates uint64
	Partial  unc.Balance
}

// Assignment holds the mandates of each shard by validator id.
type Assignment []map[unc.ValidatorID]Weight

// Sample shuffles the mandates with seed and deals them round robin to the shards.
// Partials continue the round robin where the whole mandates stopped.
func (m *Mandates) Sample(seed unc.Bytes32) Assignment {
	if m.config.NumShards == 0 {
		return nil
	}
	numShards := m.config.NumShards
	out := make(Assignment, numShards)
	for i := range out {
		out[i] = make(map[unc.ValidatorID]Weight)
	}

	mandates := slices.Clone(m.mandates)
	shuffle.Permute(seed.Bytes(), mandates)
	for i, id := range mandates {
		shard := uint64(i) % numShards
		w := out[shard][id]
		w.Mandates++
		out[shard][id] = w
	}

	partials := slices.Clone(m.partials)
	var salt [8]byte
	binary.BigEndian.PutUint64(salt[:], uint64(len(mandates)))
	shuffle.Permute(unc.Sha256(seed.Bytes(), salt[:]).Bytes(), partials)
	start := uint64(len(mandates)) % numShards
	for i, p := range partials {
		shard := (start + uint64(i)) % numShards
		w := out[shard][p.ID]
		w.Partial.Add(&w.Partial, &p.Weight)
		out[shard][p.ID] = w
	}
	return out
}

type rlpPartial struct {
	ID     uint64
	Weight *uint256.Int
}

type rlpMandates struct {
	PledgePerMandate    *uint256.Int
	MinMandatesPerShard uint64
	NumShards           uint64
	Mandates            []uint64
	Partials            []rlpPartial
}

// EncodeRLP implements rlp.Encoder.
func (m *Mandates) EncodeRLP(w io.Writer) error {
	partials := make([]rlpPartial, 0, len(m.partials))
	for i := range m.partials {
		partials = append(partials, rlpPartial{ID: m.partials[i].ID, Weight: &m.partials[i].Weight})
	}
	return rlp.Encode(w, &rlpMandates{
		PledgePerMandate:    &m.config.PledgePerMandate,
		MinMandatesPerShard: m.config.MinMandatesPerShard,
		NumShards:           m.config.NumShards,
		Mandates:            m.mandates,
		Partials:            partials,
	})
}
