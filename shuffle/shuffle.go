// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shuffle provides the deterministic permutations used by validator
// selection. Every function here is consensus critical: the output for a given
// seed must never change.
package shuffle

// Shuffle fills perm with a Fisher–Yates permutation of [0, len(perm)) drawn
// from the blake2b counter stream of seed.
func Shuffle(seed []byte, perm []int) {
	for i := range perm {
		perm[i] = i
	}
	Permute(seed, perm)
}

// Permute shuffles items in place with the same generator as Shuffle.
func Permute[T any](seed []byte, items []T) {
	size := len(items)
	if size < 2 {
		return
	}
	rng := newCounterRand(seed)
	for i := 0; i < size-1; i++ {
		j := i + int(rng.bounded(uint64(size-i)))
		items[i], items[j] = items[j], items[i]
	}
}
