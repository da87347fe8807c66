// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

import "math/bits"

// LegacyShuffle permutes items in place with the HC-128 generator seeded by seed,
// walking from the last index down and swapping each position with a uniform
// index at or below it.
//
// Frozen: the epochs produced by the legacy selection algorithm depend on
// this exact sequence of swaps.
func LegacyShuffle[T any](seed [32]byte, items []T) {
	if len(items) < 2 {
		return
	}
	rng := newHC128(seed)
	for i := len(items) - 1; i >= 1; i-- {
		j := legacyIndex(rng, uint64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}

// legacyIndex returns a uniform value in [0, bound) by widening multiplication
// with rejection.
func legacyIndex(rng *hc128, bound uint64) uint64 {
	zone := (bound << bits.LeadingZeros64(bound)) - 1
	for {
		hi, lo := bits.Mul64(rng.Uint64(), bound)
		if lo < zone {
			return hi
		}
	}
}
