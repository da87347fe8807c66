// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sampler

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weights(ws ...uint64) []uint256.Int {
	out := make([]uint256.Int, len(ws))
	for i, w := range ws {
		out[i].SetUint64(w)
	}
	return out
}

func seedOf(i int) [32]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(i))
	return sha256.Sum256(b[:])
}

func TestNewWeightedIndexErrors(t *testing.T) {
	_, err := NewWeightedIndex(nil)
	assert.Error(t, err)

	_, err = NewWeightedIndex(weights(0, 0))
	assert.ErrorIs(t, err, ErrZeroWeight)
}

func TestSampleSkipsZeroWeight(t *testing.T) {
	wi, err := NewWeightedIndex(weights(0, 5, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 4, wi.Len())

	for i := range 1000 {
		idx := wi.Sample(seedOf(i))
		assert.Contains(t, []int{1, 3}, idx)
	}
}

func TestSampleDistribution(t *testing.T) {
	wi, err := NewWeightedIndex(weights(1, 2, 3, 4))
	require.NoError(t, err)

	const n = 20000
	counts := make([]int, 4)
	for i := range n {
		counts[wi.Sample(seedOf(i))]++
	}
	for i, c := range counts {
		want := float64(n) * float64(i+1) / 10
		assert.InDelta(t, want, float64(c), want*0.1, "index %d", i)
	}
}

func TestSampleDeterministic(t *testing.T) {
	wi, err := NewWeightedIndex(weights(7, 1, 9))
	require.NoError(t, err)
	for i := range 100 {
		assert.Equal(t, wi.Sample(seedOf(i)), wi.Sample(seedOf(i)))
	}
}

func TestSingleWeight(t *testing.T) {
	wi, err := NewWeightedIndex(weights(3))
	require.NoError(t, err)
	assert.Equal(t, 0, wi.Sample(seedOf(1)))
}
