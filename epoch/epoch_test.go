// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

func newValidator(id string, pledge uint64) validator.Validator {
	return validator.Validator{
		AccountID: unc.AccountID(id),
		PublicKey: unc.PublicKey("ed25519:" + id),
		Power:     *uint256.NewInt(1),
		Pledge:    *uint256.NewInt(pledge),
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"no shard", func(c *Config) { c.NumShards = 0 }, "num shards must be positive"},
		{"no seat", func(c *Config) { c.NumBlockProducerSeats = 0 }, "num block producer seats must be positive"},
		{"seats per shard", func(c *Config) { c.NumShards = 2 }, "block producer seats per shard: want 2 entries, got 1"},
		{"hidden seats", func(c *Config) { c.AvgHiddenValidatorSeatsPerShard = []uint64{1, 2} }, "hidden validator seats per shard: want 1 entries, got 2"},
		{"zero denom", func(c *Config) { c.MinimumPledgeRatio = unc.NewRatio(1, 0) }, "minimum pledge ratio has zero denominator"},
		{"ratio one", func(c *Config) { c.MinimumPledgeRatio = unc.NewRatio(3, 3) }, "minimum pledge ratio 3/3 must be below one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			assert.EqualError(t, c.Validate(), tt.errMsg)
		})
	}

	c := DefaultConfig()
	c.AvgHiddenValidatorSeatsPerShard = nil
	assert.NoError(t, c.Validate())
	assert.Equal(t, uint64(0), c.NumHiddenValidatorSeats())

	c.NumShards = 2
	c.NumBlockProducerSeatsPerShard = []uint64{3, 3}
	c.AvgHiddenValidatorSeatsPerShard = []uint64{1, 2}
	assert.NoError(t, c.Validate())
	assert.Equal(t, uint64(3), c.NumHiddenValidatorSeats())
}

func TestGenesisInfo(t *testing.T) {
	vs := []validator.Validator{newValidator("alice", 100), newValidator("bob", 50)}
	fs := []validator.Validator{newValidator("carol", 10)}
	info := NewGenesisInfo(vs, fs, 55, 2)

	assert.Equal(t, uint64(0), info.Height)
	assert.Equal(t, []unc.ValidatorID{0, 1}, info.BlockProducersSettlement)
	assert.Equal(t, [][]unc.ValidatorID{{0, 1}, {0, 1}}, info.ChunkProducersSettlement)
	assert.Equal(t, uint64(2), info.NumShards())
	assert.True(t, info.IsValidator("alice"))
	assert.False(t, info.IsValidator("carol"))
	assert.True(t, info.IsFisherman("carol"))
	assert.True(t, info.Mandates.IsEmpty())

	v, ok := info.Validator(1)
	require.True(t, ok)
	assert.Equal(t, unc.AccountID("bob"), v.AccountID)
	_, ok = info.Validator(2)
	assert.False(t, ok)

	v, ok = info.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "100", v.Pledge.Dec())
	_, ok = info.Lookup("dave")
	assert.False(t, ok)
}

func TestBlockInfo(t *testing.T) {
	hash := unc.Blake2b([]byte("block"))
	b := NewBlockInfo(7, hash, []validator.Validator{newValidator("alice", 1)}, []validator.Validator{newValidator("bob", 1)})

	assert.Equal(t, map[unc.AccountID]unc.ValidatorID{"alice": 0}, b.ValidatorToIndex)
	assert.True(t, b.IsValidator("alice"))
	assert.True(t, b.IsFisherman("bob"))
	assert.False(t, b.IsFisherman("alice"))

	s := &BlockSummary{
		ThisBlockHash:    unc.Blake2b([]byte("next")),
		LastBlockHash:    hash,
		Validators:       b.Validators,
		ValidatorToIndex: b.ValidatorToIndex,
		Fishermen:        b.Fishermen,
		FishermenToIndex: b.FishermenToIndex,
	}
	assert.True(t, s.IsValidator("alice"))
	assert.True(t, s.IsFisherman("bob"))

	next := s.NextBlockInfo(8)
	assert.Equal(t, uint64(8), next.Height)
	assert.Equal(t, s.ThisBlockHash, next.Hash)
	assert.Equal(t, b.ValidatorToIndex, next.ValidatorToIndex)
}

func newInfo() *Info {
	vs := []validator.Validator{newValidator("alice", 100), newValidator("bob", 50), newValidator("carol", 25)}
	info := NewGenesisInfo(vs, nil, 143, 2)
	info.Height = 3
	info.ChunkProducersSettlement = [][]unc.ValidatorID{{0, 2}, {1}}
	info.PledgeChange = map[unc.AccountID]unc.Balance{
		"alice": *uint256.NewInt(100),
		"bob":   *uint256.NewInt(50),
		"carol": *uint256.NewInt(25),
		"dave":  *uint256.NewInt(0),
	}
	info.ValidatorKickout = validator.Kickouts{
		"dave": validator.NotEnoughPledgeReason(uint256.NewInt(4), uint256.NewInt(25)),
		"erin": validator.UnpledgeReason(),
	}
	info.SeatPrice = *uint256.NewInt(25)
	info.RngSeed = unc.Sha256([]byte("seed"))
	info.Mandates = mandates.New(mandates.NewConfig(uint256.NewInt(25), 0, 2), vs)
	return info
}

func TestInfoDigest(t *testing.T) {
	a := newInfo()
	b := newInfo()

	encA, err := a.Canonical()
	require.NoError(t, err)
	encB, err := b.Canonical()
	require.NoError(t, err)
	assert.Equal(t, encA, encB, "map iteration order must not leak into the encoding")

	da, err := a.Digest()
	require.NoError(t, err)
	assert.Equal(t, unc.Blake2b(encA), da)

	b.SeatPrice = *uint256.NewInt(26)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, db)

	// a nil mandate set encodes like an empty one
	c, d := newInfo(), newInfo()
	c.Mandates = nil
	d.Mandates = mandates.Empty()
	dc, err := c.Digest()
	require.NoError(t, err)
	dd, err := d.Digest()
	require.NoError(t, err)
	assert.Equal(t, dd, dc)
}

func TestBlockSummaryDigest(t *testing.T) {
	newSummary := func() *BlockSummary {
		info := newInfo()
		return &BlockSummary{
			ThisBlockHash:            unc.Blake2b([]byte("this")),
			LastBlockHash:            unc.Blake2b([]byte("last")),
			Validators:               info.Validators,
			ValidatorToIndex:         info.ValidatorToIndex,
			BlockProducersSettlement: info.BlockProducersSettlement,
			ChunkProducersSettlement: info.ChunkProducersSettlement,
			PledgeChange:             info.PledgeChange,
			SeatPrice:                info.SeatPrice,
			AllPledgeProposals: []validator.PledgeProposal{
				info.Validators[0].PledgeProposal(),
				info.Validators[1].PledgeProposal(),
			},
			AllPowerProposals: []validator.PowerProposal{info.Validators[0].PowerProposal()},
			ValidatorKickout:  info.ValidatorKickout,
		}
	}

	a, b := newSummary(), newSummary()
	da, err := a.Digest()
	require.NoError(t, err)
	db, err := b.Digest()
	require.NoError(t, err)
	assert.Equal(t, da, db)

	b.AllPowerProposals = nil
	db, err = b.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
}

func TestProducerSampler(t *testing.T) {
	info := newInfo()
	// powers run opposite to the 100:50:25 pledges
	info.Validators[0].Power = *uint256.NewInt(25)
	info.Validators[1].Power = *uint256.NewInt(50)
	info.Validators[2].Power = *uint256.NewInt(100)
	ps, err := NewProducerSampler(info)
	require.NoError(t, err)

	counts := make(map[unc.ValidatorID]int)
	for h := range uint64(3500) {
		id := ps.BlockProducer(h)
		assert.Equal(t, id, ps.BlockProducer(h), "sampling must be deterministic")
		counts[id]++
	}
	assert.Len(t, counts, 3)
	assert.Greater(t, counts[2], counts[1])
	assert.Greater(t, counts[1], counts[0])

	chunks := make(map[unc.ValidatorID]int)
	for h := range uint64(1000) {
		id, err := ps.ChunkProducer(h, 1)
		require.NoError(t, err)
		assert.Equal(t, unc.ValidatorID(1), id)

		id, err = ps.ChunkProducer(h, 0)
		require.NoError(t, err)
		assert.Contains(t, []unc.ValidatorID{0, 2}, id)
		chunks[id]++
	}
	// shard 0 holds alice and carol, pledges 100:25
	assert.Greater(t, chunks[0], chunks[2])

	_, err = ps.ChunkProducer(0, 2)
	assert.EqualError(t, err, "shard 2 out of range [0, 2)")
}

func TestProducerSamplerPowerOnly(t *testing.T) {
	vs := []validator.Validator{newValidator("alice", 1_000_000), newValidator("bob", 1)}
	vs[0].Power = *uint256.NewInt(0)
	vs[1].Power = *uint256.NewInt(1_000_000)
	info := NewGenesisInfo(vs, nil, 143, 1)
	info.ChunkProducersSettlement = [][]unc.ValidatorID{{0, 1}}
	info.RngSeed = unc.Sha256([]byte("power"))
	ps, err := NewProducerSampler(info)
	require.NoError(t, err)

	chunks := make(map[unc.ValidatorID]int)
	for h := range uint64(1000) {
		assert.Equal(t, unc.ValidatorID(1), ps.BlockProducer(h))
		id, err := ps.ChunkProducer(h, 0)
		require.NoError(t, err)
		chunks[id]++
	}
	assert.Greater(t, chunks[0], 990)

	// every block producer without power
	vs[1].Power = *uint256.NewInt(0)
	_, err = NewProducerSampler(NewGenesisInfo(vs, nil, 143, 1))
	assert.EqualError(t, err, "block producers: total weight is zero")
}

func TestProducerSamplerErrors(t *testing.T) {
	info := newInfo()
	info.ChunkProducersSettlement = [][]unc.ValidatorID{{0}, {9}}
	_, err := NewProducerSampler(info)
	assert.EqualError(t, err, "chunk producers of shard 1: unknown validator id 9")

	info = newInfo()
	info.BlockProducersSettlement = nil
	_, err = NewProducerSampler(info)
	assert.EqualError(t, err, "block producers: no weights")
}
