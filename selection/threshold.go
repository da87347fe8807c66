// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/unc"
)

// ThresholdError is returned when the pledges can not fill the seats even at
// one unit of pledge per seat.
type ThresholdError struct {
	PledgeSum unc.Balance
	NumSeats  unc.NumSeats
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("total pledge %s is below the %d seats to fill", e.PledgeSum.Dec(), e.NumSeats)
}

// FindThreshold returns the largest seat price t >= 1 such that the sum of
// pledge/t over all pledges, rounded down each, is at least numSeats.
func FindThreshold(pledges []unc.Balance, numSeats unc.NumSeats) (*uint256.Int, error) {
	var sum uint256.Int
	for i := range pledges {
		sum.Add(&sum, &pledges[i])
	}
	seats := uint256.NewInt(numSeats)
	if sum.Lt(seats) || sum.IsZero() {
		return nil, &ThresholdError{PledgeSum: sum, NumSeats: numSeats}
	}

	var (
		left  = uint256.NewInt(1)
		right = new(uint256.Int).AddUint64(&sum, 1)
		next  uint256.Int
		mid   uint256.Int
	)
	for {
		if next.AddUint64(left, 1).Eq(right) {
			return left, nil
		}
		mid.Add(left, right)
		mid.Rsh(&mid, 1)
		if fillsSeats(pledges, &mid, seats) {
			left.Set(&mid)
		} else {
			right.Set(&mid)
		}
	}
}

// fillsSeats reports whether pledges hold at least seats seats at the given price.
func fillsSeats(pledges []unc.Balance, price, seats *uint256.Int) bool {
	var total, q uint256.Int
	for i := range pledges {
		q.Div(&pledges[i], price)
		total.Add(&total, &q)
		if !total.Lt(seats) {
			return true
		}
	}
	return false
}
