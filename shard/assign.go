// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shard assigns chunk producers to shards.
package shard

import (
	"container/heap"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// ErrNotEnoughValidators is returned when the producers can not give every
// shard its minimum number of validators.
var ErrNotEnoughValidators = errors.New("not enough validators")

// Assign distributes chunk producers over numShards shards.
//
// Every shard first receives minPerShard distinct producers, cycling through
// cps in order and always topping up the shard with the fewest producers, then
// the least pledge. A producer may serve several shards when there are fewer
// producers than seats. Producers left after that go, in order, to the shard
// with the least total pledge.
func Assign(cps []validator.Validator, numShards, minPerShard uint64) ([][]validator.Validator, error) {
	if uint64(len(cps)) < minPerShard {
		return nil, ErrNotEnoughValidators
	}
	if numShards == 0 {
		if len(cps) > 0 {
			return nil, ErrNotEnoughValidators
		}
		return nil, nil
	}

	shards := make([]*shardLoad, numShards)
	for i := range shards {
		shards[i] = &shardLoad{id: unc.ShardID(i), members: make(map[unc.AccountID]struct{})}
	}

	// fill every shard up to the minimum
	required := numShards * minPerShard
	fill := &loadHeap{less: byCount}
	for _, s := range shards {
		heap.Push(fill, s)
	}
	var assigned uint64
	for next := 0; assigned < required; next++ {
		cp := &cps[next%len(cps)]

		var skipped []*shardLoad
		var target *shardLoad
		for fill.Len() > 0 {
			s := heap.Pop(fill).(*shardLoad)
			if s.holds(cp.AccountID) {
				skipped = append(skipped, s)
				continue
			}
			target = s
			break
		}
		for _, s := range skipped {
			heap.Push(fill, s)
		}
		if target == nil {
			continue
		}
		target.add(cp)
		assigned++
		if uint64(len(target.validators)) < minPerShard {
			heap.Push(fill, target)
		}
	}

	// spread the rest by pledge
	if required < uint64(len(cps)) {
		spread := &loadHeap{less: byPledge}
		for _, s := range shards {
			heap.Push(spread, s)
		}
		for i := required; i < uint64(len(cps)); i++ {
			s := heap.Pop(spread).(*shardLoad)
			s.add(&cps[i])
			heap.Push(spread, s)
		}
	}

	out := make([][]validator.Validator, numShards)
	for i, s := range shards {
		out[i] = s.validators
	}
	return out, nil
}

type shardLoad struct {
	id         unc.ShardID
	pledge     uint256.Int
	validators []validator.Validator
	members    map[unc.AccountID]struct{}
	index      int
}

func (s *shardLoad) holds(id unc.AccountID) bool {
	_, ok := s.members[id]
	return ok
}

func (s *shardLoad) add(v *validator.Validator) {
	s.validators = append(s.validators, *v)
	s.members[v.AccountID] = struct{}{}
	s.pledge.Add(&s.pledge, &v.Pledge)
}

// byCount orders by (number of validators, pledge, shard id).
func byCount(a, b *shardLoad) bool {
	if len(a.validators) != len(b.validators) {
		return len(a.validators) < len(b.validators)
	}
	if c := a.pledge.Cmp(&b.pledge); c != 0 {
		return c < 0
	}
	return a.id < b.id
}

// byPledge orders by (pledge, number of validators, shard id).
func byPledge(a, b *shardLoad) bool {
	if c := a.pledge.Cmp(&b.pledge); c != 0 {
		return c < 0
	}
	if len(a.validators) != len(b.validators) {
		return len(a.validators) < len(b.validators)
	}
	return a.id < b.id
}

type loadHeap struct {
	items []*shardLoad
	less  func(a, b *shardLoad) bool
}

func (h *loadHeap) Len() int           { return len(h.items) }
func (h *loadHeap) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h *loadHeap) Swap(i, j int) {
	h.items[i].index = j
	h.items[j].index = i
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *loadHeap) Push(value any) {
	s := value.(*shardLoad)
	s.index = len(h.items)
	h.items = append(h.items, s)
}

func (h *loadHeap) Pop() any {
	n := len(h.items)
	s := h.items[n-1]
	s.index = -1
	h.items = h.items[:n-1]
	return s
}
