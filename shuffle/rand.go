// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

import (
	"encoding/binary"
	"math"

	"github.com/unc-network/epochsel/unc"
)

// counterRand expands a seed into blocks of blake2b(seed || LE64(round)) and
// reads them as little-endian 64-bit words.
type counterRand struct {
	seed  []byte
	round uint64
	block unc.Bytes32
	used  int
}

func newCounterRand(seed []byte) *counterRand {
	return &counterRand{seed: seed, used: len(unc.Bytes32{})}
}

func (r *counterRand) next() uint64 {
	if r.used == len(r.block) {
		var ctr [8]byte
		binary.LittleEndian.PutUint64(ctr[:], r.round)
		r.block = unc.Blake2b(r.seed, ctr[:])
		r.round++
		r.used = 0
	}
	v := binary.LittleEndian.Uint64(r.block[r.used:])
	r.used += 8
	return v
}

// bounded returns a uniform integer in [0, n). Words at or above the largest
// multiple of n are skipped.
func (r *counterRand) bounded(n uint64) uint64 {
	if n == 0 {
		panic("shuffle: bound must be positive")
	}
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		if v := r.next(); v < limit {
			return v % n
		}
	}
}
