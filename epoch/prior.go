// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// Prior is the validator set a resolution starts from: the previous epoch
// for epoch resolution, the previous block for block resolution.
type Prior interface {
	// AllValidators returns validators in id order.
	AllValidators() []validator.Validator
	// AllFishermen returns fishermen in id order.
	AllFishermen() []validator.Validator
	IsValidator(id unc.AccountID) bool
	IsFisherman(id unc.AccountID) bool
}

var (
	_ Prior = (*Info)(nil)
	_ Prior = (*BlockInfo)(nil)
)

func indexOf(vs []validator.Validator) map[unc.AccountID]unc.ValidatorID {
	out := make(map[unc.AccountID]unc.ValidatorID, len(vs))
	for i := range vs {
		out[vs[i].AccountID] = unc.ValidatorID(i)
	}
	return out
}
