// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// ratio is the minimum share of the selected total pledge a single seat needs.
type ratio struct {
	num, den uint256.Int
}

func newRatio(r unc.Ratio) ratio {
	var out ratio
	out.num.SetUint64(r.Num)
	out.den.SetUint64(r.Denom)
	return out
}

// perShard spreads the ratio over numShards shards.
func (r ratio) perShard(numShards uint64) ratio {
	out := r
	out.den.Mul(&r.den, uint256.NewInt(numShards))
	return out
}

// exceededBy reports whether pledge/(total+pledge) > num/den.
func (r *ratio) exceededBy(pledge, total *uint256.Int) bool {
	var lhs, rhs uint256.Int
	lhs.Mul(pledge, &r.den)
	rhs.Add(total, pledge)
	rhs.Mul(&rhs, &r.num)
	return lhs.Gt(&rhs)
}

// selectValidators pops the best ranked pledge proposals for up to maxSeats
// seats. It stops at the first proposal too small against the pledge already
// selected and puts it back, none ranked below it could pass either.
//
// The threshold is one above the smallest selected pledge when all seats are
// filled. Otherwise it is the smallest pledge that passes the ratio against
// the selected total, computed with the exact formula when fixThreshold is
// set and with the historical one that ignores the candidate's own pledge
// when it is not.
func selectValidators(
	pool *pools,
	queue *proposalQueue[validator.PledgeProposal],
	maxSeats unc.NumSeats,
	minRatio ratio,
	fixThreshold bool,
) ([]validator.Validator, *uint256.Int) {
	n := min(maxSeats, uint64(queue.Len()))
	selected := make([]validator.Validator, 0, n)

	var total uint256.Int
	for range n {
		p := queue.pop()
		var withP uint256.Int
		withP.Add(&total, &p.Pledge)
		if withP.IsZero() || !minRatio.exceededBy(&p.Pledge, &total) {
			queue.push(p)
			break
		}
		power := pool.powerOf(p.AccountID)
		selected = append(selected, validator.FromPledge(&p, &power))
		total = withP
	}

	if uint64(len(selected)) == maxSeats && maxSeats > 0 {
		last := &selected[len(selected)-1].Pledge
		return selected, new(uint256.Int).AddUint64(last, 1)
	}

	var num, den uint256.Int
	num.Mul(&minRatio.num, &total)
	if fixThreshold {
		den.Sub(&minRatio.den, &minRatio.num)
	} else {
		den.Set(&minRatio.den)
	}
	return selected, ceilDiv(&num, &den)
}

func ceilDiv(x, y *uint256.Int) *uint256.Int {
	var q, r uint256.Int
	q.DivMod(x, y, &r)
	if !r.IsZero() {
		q.AddUint64(&q, 1)
	}
	return &q
}
