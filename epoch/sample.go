// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/unc-network/epochsel/sampler"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// ProducerSampler picks the block and chunk producer of a height among the
// settlements of an epoch. Block producers are weighted by power, chunk
// producers by pledge.
type ProducerSampler struct {
	seed   unc.RngSeed
	blocks settlementSampler
	chunks []settlementSampler
}

type settlementSampler struct {
	ids   []unc.ValidatorID
	index *sampler.WeightedIndex
}

// NewProducerSampler builds the samplers of every settlement of info.
func NewProducerSampler(info *Info) (*ProducerSampler, error) {
	blocks, err := newSettlementSampler(info, info.BlockProducersSettlement, byPower)
	if err != nil {
		return nil, errors.Wrap(err, "block producers")
	}
	ps := &ProducerSampler{
		seed:   info.RngSeed,
		blocks: blocks,
		chunks: make([]settlementSampler, len(info.ChunkProducersSettlement)),
	}
	for shard, ids := range info.ChunkProducersSettlement {
		if ps.chunks[shard], err = newSettlementSampler(info, ids, byPledge); err != nil {
			return nil, errors.Wrapf(err, "chunk producers of shard %d", shard)
		}
	}
	return ps, nil
}

func byPower(v *validator.Validator) uint256.Int  { return v.Power }
func byPledge(v *validator.Validator) uint256.Int { return v.Pledge }

func newSettlementSampler(info *Info, ids []unc.ValidatorID, weight func(*validator.Validator) uint256.Int) (settlementSampler, error) {
	weights := make([]uint256.Int, len(ids))
	for i, id := range ids {
		v, ok := info.Validator(id)
		if !ok {
			return settlementSampler{}, errors.Errorf("unknown validator id %d", id)
		}
		weights[i] = weight(&v)
	}
	index, err := sampler.NewWeightedIndex(weights)
	if err != nil {
		return settlementSampler{}, err
	}
	return settlementSampler{ids: ids, index: index}, nil
}

// BlockProducer returns the block producer of height.
func (ps *ProducerSampler) BlockProducer(height unc.BlockHeight) unc.ValidatorID {
	var h [8]byte
	binary.LittleEndian.PutUint64(h[:], height)
	seed := unc.Sha256(ps.seed.Bytes(), h[:])
	return ps.blocks.ids[ps.blocks.index.Sample(seed)]
}

// ChunkProducer returns the chunk producer of shard at height.
func (ps *ProducerSampler) ChunkProducer(height unc.BlockHeight, shard unc.ShardID) (unc.ValidatorID, error) {
	if shard >= uint64(len(ps.chunks)) {
		return 0, errors.Errorf("shard %d out of range [0, %d)", shard, len(ps.chunks))
	}
	var h, s [8]byte
	binary.LittleEndian.PutUint64(h[:], height)
	binary.LittleEndian.PutUint64(s[:], shard)
	seed := unc.Sha256(ps.seed.Bytes(), h[:], s[:])
	c := &ps.chunks[shard]
	return c.ids[c.index.Sample(seed)], nil
}
