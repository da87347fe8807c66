// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mandates

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

func validators(pledges ...uint64) []validator.Validator {
	out := make([]validator.Validator, len(pledges))
	for i, p := range pledges {
		out[i] = validator.Validator{AccountID: unc.AccountID(rune('a' + i)), Pledge: *uint256.NewInt(p)}
	}
	return out
}

func TestNew(t *testing.T) {
	m := New(NewConfig(uint256.NewInt(10), 1, 3), validators(30, 25, 7))

	assert.Equal(t, []unc.ValidatorID{0, 0, 0, 1, 1}, m.Mandates())
	assert.Equal(t, []Partial{
		{ID: 1, Weight: *uint256.NewInt(5)},
		{ID: 2, Weight: *uint256.NewInt(7)},
	}, m.Partials())
	assert.Equal(t, 5, m.NumMandates())
	assert.False(t, m.IsEmpty())
	assert.Equal(t, uint64(3), m.Config().NumShards)
}

func TestNewCapped(t *testing.T) {
	huge, err := unc.ParseAmount("1000000000000000000000000000000")
	require.NoError(t, err)
	vs := validators(5, 0)
	vs[1].Pledge = *huge

	m := New(NewConfig(uint256.NewInt(2), 0, 1), vs)
	assert.Equal(t, 2+MaxMandatesPerValidator, m.NumMandates())
	ids := m.Mandates()
	assert.Equal(t, []unc.ValidatorID{0, 0}, ids[:2])
	for _, id := range ids[2:] {
		assert.Equal(t, unc.ValidatorID(1), id)
	}
	assert.Equal(t, []Partial{{ID: 0, Weight: *uint256.NewInt(1)}}, m.Partials())

	// exactly at the cap
	vs[1].Pledge = *uint256.NewInt(2 * MaxMandatesPerValidator)
	assert.Equal(t, 2+MaxMandatesPerValidator, New(NewConfig(uint256.NewInt(2), 0, 1), vs).NumMandates())
}

func TestNewEmpty(t *testing.T) {
	assert.True(t, New(NewConfig(new(uint256.Int), 0, 2), validators(30)).IsEmpty())
	assert.True(t, New(NewConfig(uint256.NewInt(1), 0, 0), validators(30)).IsEmpty())
	assert.True(t, Empty().IsEmpty())
	assert.Nil(t, Empty().Sample(unc.Bytes32{}))
}

func TestSampleConservesPledge(t *testing.T) {
	vals := validators(30, 25, 7, 99, 1)
	m := New(NewConfig(uint256.NewInt(10), 0, 4), vals)

	assignment := m.Sample(unc.Sha256([]byte("seed")))
	require.Len(t, assignment, 4)

	ppm := uint256.NewInt(10)
	perValidator := make([]uint256.Int, len(vals))
	perShard := make([]uint64, 4)
	for shard, weights := range assignment {
		for id, w := range weights {
			var whole uint256.Int
			whole.Mul(uint256.NewInt(w.Mandates), ppm)
			perValidator[id].Add(&perValidator[id], &whole)
			perValidator[id].Add(&perValidator[id], &w.Partial)
			perShard[shard] += w.Mandates
		}
	}
	for i := range vals {
		assert.Equal(t, vals[i].Pledge, perValidator[i], "validator %d", i)
	}
	// 3+2+0+9+0 = 14 whole mandates dealt round robin over 4 shards
	assert.Equal(t, []uint64{4, 4, 3, 3}, perShard)
}

func TestSampleDeterministic(t *testing.T) {
	m := New(NewConfig(uint256.NewInt(3), 0, 2), validators(10, 20, 30))
	seed := unc.Sha256([]byte("x"))
	assert.Equal(t, m.Sample(seed), m.Sample(seed))
}

func TestEncodeRLP(t *testing.T) {
	a := New(NewConfig(uint256.NewInt(10), 0, 2), validators(30, 25))
	b := New(NewConfig(uint256.NewInt(10), 0, 2), validators(30, 26))

	encA, err := rlp.EncodeToBytes(a)
	require.NoError(t, err)
	encB, err := rlp.EncodeToBytes(b)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(encA, encB))

	again, err := rlp.EncodeToBytes(a)
	require.NoError(t, err)
	assert.Equal(t, encA, again)

	_, err = rlp.EncodeToBytes(Empty())
	assert.NoError(t, err)
}
