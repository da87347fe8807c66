// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build debug

package selection

import (
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

func assertUniqueProposals(power []validator.PowerProposal, pledge []validator.PledgeProposal) {
	seen := make(map[unc.AccountID]struct{}, len(power))
	for _, p := range power {
		if _, ok := seen[p.AccountID]; ok {
			panic("power proposals should not have duplicates: " + string(p.AccountID))
		}
		seen[p.AccountID] = struct{}{}
	}
	clear(seen)
	for _, p := range pledge {
		if _, ok := seen[p.AccountID]; ok {
			panic("pledge proposals should not have duplicates: " + string(p.AccountID))
		}
		seen[p.AccountID] = struct{}{}
	}
}
