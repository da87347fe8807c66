// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

import (
	"crypto/sha256"
	"encoding/binary"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unc-network/epochsel/unc"
)

func TestShuffle(t *testing.T) {
	perm := make([]int, 10)
	Shuffle([]byte("seed"), perm)

	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)

	again := make([]int, 10)
	Shuffle([]byte("seed"), again)
	assert.Equal(t, perm, again)

	other := make([]int, 10)
	Shuffle([]byte("other seed"), other)
	assert.NotEqual(t, perm, other)
}

func TestShuffleRecorded(t *testing.T) {
	perm := make([]int, 10)
	Shuffle([]byte("seed"), perm)
	assert.Equal(t, []int{3, 4, 2, 1, 9, 7, 5, 6, 0, 8}, perm)

	perm = make([]int, 20)
	Shuffle([]byte("seed"), perm)
	assert.Equal(t, []int{3, 1, 2, 14, 11, 7, 13, 10, 9, 12, 8, 5, 4, 0, 16, 15, 19, 18, 17, 6}, perm)
}

func TestCounterRand(t *testing.T) {
	r := newCounterRand([]byte("seed"))
	first := unc.Blake2b([]byte("seed"), make([]byte, 8))
	for i := 0; i < 32; i += 8 {
		assert.Equal(t, binary.LittleEndian.Uint64(first[i:]), r.next())
	}
	second := unc.Blake2b([]byte("seed"), []byte{1, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, binary.LittleEndian.Uint64(second[:]), r.next())

	for range 1000 {
		assert.Less(t, r.bounded(7), uint64(7))
	}
	assert.Equal(t, uint64(0), r.bounded(1))
	assert.Panics(t, func() { r.bounded(0) })
}

func TestShuffleDistribution(t *testing.T) {
	sum := make([]int, 10)
	perm := make([]int, 10)
	for i := range 10000 {
		Shuffle([]byte{byte(i), byte(i >> 8)}, perm)
		for j := range sum {
			sum[j] += perm[j]
		}
	}
	// every slot averages 4.5
	for _, s := range sum {
		assert.InDelta(t, 45000, s, 3000)
	}
}

func TestPermuteSmall(t *testing.T) {
	var empty []string
	Permute([]byte("x"), empty)
	one := []string{"a"}
	Permute([]byte("x"), one)
	assert.Equal(t, []string{"a"}, one)
}

func TestHC128TestVector(t *testing.T) {
	rng := newHC128([32]byte{})
	want := []uint32{0x73150082, 0x3bfd03a0, 0xfb2fd77f, 0xaa63af0e}
	for _, w := range want {
		assert.Equal(t, w, rng.Uint32())
	}
}

func TestHC128Uint64(t *testing.T) {
	a := newHC128([32]byte{1})
	b := newHC128([32]byte{1})
	for range 40 {
		lo := uint64(a.Uint32())
		hi := uint64(a.Uint32())
		assert.Equal(t, hi<<32|lo, b.Uint64())
	}
}

func TestLegacyShuffleSanity(t *testing.T) {
	seed := sha256.Sum256([]byte{1, 2, 3, 4, 5})
	for i := range uint64(10) {
		items := make([]uint64, 0, i)
		for j := range i {
			items = append(items, j)
		}
		LegacyShuffle(seed, items)
		assert.Len(t, items, int(i))
		slices.Sort(items)
		for j := range i {
			assert.Equal(t, j, items[j])
		}
	}
}

func TestLegacyShuffleReproducible(t *testing.T) {
	seed := sha256.Sum256([]byte{1, 2, 3, 4, 5})
	items := make([]uint64, 100)
	for i := range items {
		items[i] = uint64(i)
	}
	LegacyShuffle(seed, items)
	assert.Equal(t, []uint64{
		28, 64, 35, 39, 5, 19, 91, 93, 32, 55, 49, 86, 7, 34, 58, 48, 65, 11, 0, 3, 63,
		85, 96, 12, 23, 76, 29, 69, 31, 45, 1, 15, 33, 61, 38, 74, 87, 10, 62, 9, 40,
		56, 98, 8, 52, 75, 99, 13, 57, 44, 6, 79, 89, 84, 68, 36, 94, 53, 80, 70, 42,
		88, 73, 2, 72, 25, 20, 67, 37, 97, 41, 71, 47, 59, 24, 66, 54, 21, 18, 26, 60,
		92, 50, 77, 81, 14, 43, 17, 90, 95, 78, 16, 30, 46, 22, 83, 27, 4, 51, 82,
	}, items)
}

func TestLegacyIndexBound(t *testing.T) {
	rng := newHC128(sha256.Sum256([]byte("bound")))
	for bound := uint64(1); bound < 200; bound++ {
		assert.Less(t, legacyIndex(rng, bound), bound)
	}
}
