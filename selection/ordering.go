// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"container/heap"
	"strings"

	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// rankPledge orders pledge proposals by pledge, highest first, then by account
// id, smallest first. It returns a negative number when a ranks before b.
func rankPledge(a, b *validator.PledgeProposal) int {
	if c := b.Pledge.Cmp(&a.Pledge); c != 0 {
		return c
	}
	return compareAccount(a.AccountID, b.AccountID)
}

func compareAccount(a, b unc.AccountID) int {
	return strings.Compare(string(a), string(b))
}

// proposalQueue is a priority queue popping the best ranked proposal first.
type proposalQueue[T any] struct {
	items []T
	rank  func(a, b *T) int
}

func newPledgeQueue(pool map[unc.AccountID]validator.PledgeProposal) *proposalQueue[validator.PledgeProposal] {
	q := &proposalQueue[validator.PledgeProposal]{
		items: make([]validator.PledgeProposal, 0, len(pool)),
		rank:  rankPledge,
	}
	for _, p := range pool {
		q.items = append(q.items, p)
	}
	heap.Init(q)
	return q
}

func (q *proposalQueue[T]) Len() int           { return len(q.items) }
func (q *proposalQueue[T]) Less(i, j int) bool { return q.rank(&q.items[i], &q.items[j]) < 0 }
func (q *proposalQueue[T]) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *proposalQueue[T]) Push(x any) {
	q.items = append(q.items, x.(T))
}

func (q *proposalQueue[T]) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}

func (q *proposalQueue[T]) pop() T {
	return heap.Pop(q).(T)
}

func (q *proposalQueue[T]) push(item T) {
	heap.Push(q, item)
}
