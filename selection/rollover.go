// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// pools are the proposals a selection runs on, after the validators and
// fishermen of the prior set are carried over.
type pools struct {
	power        map[unc.AccountID]validator.PowerProposal
	pledge       map[unc.AccountID]validator.PledgeProposal
	powerChange  map[unc.AccountID]unc.Power
	pledgeChange map[unc.AccountID]unc.Balance
	// fishermen carried over as they are, they never enter the pledge pool
	fishermen []validator.Validator
}

// rollover merges new proposals with the prior set. For every account, in
// order of priority:
//  1. a kicked out account is left out and its pledge change is zero
//  2. a new pledge proposal wins over the prior pledge
//  3. a prior validator keeps its pledge
//  4. a prior fisherman without a new pledge proposal stays a fisherman
//
// Power is carried over the same way, independently of pledge. Rewards are
// not added to the carried pledge.
func rollover(
	powerProposals []validator.PowerProposal,
	pledgeProposals []validator.PledgeProposal,
	prior epoch.Prior,
	kickouts validator.Kickouts,
) *pools {
	p := &pools{
		power:        make(map[unc.AccountID]validator.PowerProposal, len(powerProposals)),
		pledge:       make(map[unc.AccountID]validator.PledgeProposal, len(pledgeProposals)),
		powerChange:  make(map[unc.AccountID]unc.Power),
		pledgeChange: make(map[unc.AccountID]unc.Balance),
	}

	for _, pp := range powerProposals {
		p.powerChange[pp.AccountID] = pp.Power
		p.power[pp.AccountID] = pp
	}

	for _, pp := range pledgeProposals {
		if kickouts.Has(pp.AccountID) {
			p.pledgeChange[pp.AccountID] = uint256.Int{}
			continue
		}
		p.pledgeChange[pp.AccountID] = pp.Pledge
		p.pledge[pp.AccountID] = pp
	}

	for _, v := range prior.AllValidators() {
		if kickouts.Has(v.AccountID) {
			p.pledgeChange[v.AccountID] = uint256.Int{}
			continue
		}
		pledge, ok := p.pledge[v.AccountID]
		if !ok {
			pledge = v.PledgeProposal()
			p.pledge[v.AccountID] = pledge
		}
		p.pledgeChange[v.AccountID] = pledge.Pledge

		power, ok := p.power[v.AccountID]
		if !ok {
			power = v.PowerProposal()
			p.power[v.AccountID] = power
		}
		p.powerChange[v.AccountID] = power.Power
	}

	for _, f := range prior.AllFishermen() {
		if kickouts.Has(f.AccountID) {
			p.pledgeChange[f.AccountID] = uint256.Int{}
			continue
		}
		if _, ok := p.pledge[f.AccountID]; !ok {
			p.powerChange[f.AccountID] = f.Power
			p.pledgeChange[f.AccountID] = f.Pledge
			p.fishermen = append(p.fishermen, f)
		}
	}
	return p
}

// powerOf returns the power proposed for an account, zero if there is none.
func (p *pools) powerOf(id unc.AccountID) unc.Power {
	return p.power[id].Power
}

// powerProposals returns the power pool ordered by account id.
func (p *pools) powerProposals() []validator.PowerProposal {
	out := make([]validator.PowerProposal, 0, len(p.power))
	for _, pp := range p.power {
		out = append(out, pp)
	}
	slices.SortFunc(out, func(a, b validator.PowerProposal) int {
		return compareAccount(a.AccountID, b.AccountID)
	})
	return out
}

// pledgeProposals returns the pledge pool ordered by account id.
func (p *pools) pledgeProposals() []validator.PledgeProposal {
	out := make([]validator.PledgeProposal, 0, len(p.pledge))
	for _, pp := range p.pledge {
		out = append(out, pp)
	}
	slices.SortFunc(out, func(a, b validator.PledgeProposal) int {
		return compareAccount(a.AccountID, b.AccountID)
	})
	return out
}
