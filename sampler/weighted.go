// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sampler implements the alias method for sampling an index in
// proportion to its weight with a single 32 byte seed.
package sampler

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ErrZeroWeight is returned when the weights sum to zero.
var ErrZeroWeight = errors.New("total weight is zero")

// WeightedIndex samples indices of a weight list. Build cost is linear, each
// sample is constant time.
type WeightedIndex struct {
	weightSum   uint256.Int
	noAliasOdds []uint256.Int
	aliases     []uint64
}

// NewWeightedIndex builds the alias table for weights.
func NewWeightedIndex(weights []uint256.Int) (*WeightedIndex, error) {
	if len(weights) == 0 {
		return nil, errors.New("no weights")
	}
	n := uint256.NewInt(uint64(len(weights)))

	wi := &WeightedIndex{
		noAliasOdds: make([]uint256.Int, len(weights)),
		aliases:     make([]uint64, len(weights)),
	}
	for i := range weights {
		wi.weightSum.Add(&wi.weightSum, &weights[i])
		wi.noAliasOdds[i].Mul(&weights[i], n)
	}
	if wi.weightSum.IsZero() {
		return nil, ErrZeroWeight
	}

	var smaller, larger []int
	for i := range wi.noAliasOdds {
		if wi.noAliasOdds[i].Lt(&wi.weightSum) {
			smaller = append(smaller, i)
		} else {
			larger = append(larger, i)
		}
	}

	for len(smaller) > 0 && len(larger) > 0 {
		s := smaller[len(smaller)-1]
		smaller = smaller[:len(smaller)-1]
		l := larger[len(larger)-1]
		larger = larger[:len(larger)-1]

		wi.aliases[s] = uint64(l)
		// odds[l] + odds[s] >= weightSum holds since odds[l] >= weightSum
		odds := &wi.noAliasOdds[l]
		odds.Add(odds, &wi.noAliasOdds[s])
		odds.Sub(odds, &wi.weightSum)
		if odds.Lt(&wi.weightSum) {
			smaller = append(smaller, l)
		} else {
			larger = append(larger, l)
		}
	}
	// leftovers are full buckets, up to rounding
	for _, i := range append(smaller, larger...) {
		wi.aliases[i] = uint64(i)
		wi.noAliasOdds[i] = wi.weightSum
	}
	return wi, nil
}

// Len returns the number of weights.
func (wi *WeightedIndex) Len() int {
	return len(wi.aliases)
}

// Sample picks an index. The first 8 bytes of seed choose the bucket, the next
// 16 bytes choose between the bucket and its alias.
func (wi *WeightedIndex) Sample(seed [32]byte) int {
	idx := binary.LittleEndian.Uint64(seed[0:8]) % uint64(len(wi.aliases))

	// 128-bit little-endian integer from seed[8:24]
	var w uint256.Int
	w.SetBytes(reverse(seed[8:24]))
	w.Mod(&w, &wi.weightSum)

	if w.Lt(&wi.noAliasOdds[idx]) {
		return int(idx)
	}
	return int(wi.aliases[idx])
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
