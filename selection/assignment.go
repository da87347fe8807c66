// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// assignment is the outcome of either selection algorithm, before it is
// packaged as an epoch info or a block summary.
type assignment struct {
	pool *pools

	validators       []validator.Validator
	validatorToIndex map[unc.AccountID]unc.ValidatorID
	blockProducers   []unc.ValidatorID
	chunkProducers   [][]unc.ValidatorID
	fishermen        []validator.Validator
	pledgeChange     map[unc.AccountID]unc.Balance
	kickouts         validator.Kickouts
	seatPrice        uint256.Int
	mandates         *mandates.Mandates
}

func newAssignment(pool *pools, kickouts validator.Kickouts) *assignment {
	return &assignment{
		pool:             pool,
		validatorToIndex: make(map[unc.AccountID]unc.ValidatorID),
		fishermen:        pool.fishermen,
		pledgeChange:     pool.pledgeChange,
		kickouts:         kickouts.Clone(),
	}
}

// add appends v to the validators and returns its id.
func (a *assignment) add(v validator.Validator) unc.ValidatorID {
	id := unc.ValidatorID(len(a.validators))
	a.validatorToIndex[v.AccountID] = id
	a.validators = append(a.validators, v)
	return id
}

func (a *assignment) fishermenToIndex() map[unc.AccountID]unc.ValidatorID {
	out := make(map[unc.AccountID]unc.ValidatorID, len(a.fishermen))
	for i := range a.fishermen {
		out[a.fishermen[i].AccountID] = unc.ValidatorID(i)
	}
	return out
}
