// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"fmt"

	"github.com/unc-network/epochsel/unc"
)

// PowerProposal is an announcement of the compute power an account offers for the next epoch.
type PowerProposal struct {
	AccountID unc.AccountID
	PublicKey unc.PublicKey
	Power     unc.Power
}

// PledgeProposal is an announcement of the pledge an account locks for the next epoch.
type PledgeProposal struct {
	AccountID unc.AccountID
	PublicKey unc.PublicKey
	Pledge    unc.Balance
}

// Validator is the power and pledge record of a validator or fisherman.
type Validator struct {
	AccountID unc.AccountID
	PublicKey unc.PublicKey
	Power     unc.Power
	Pledge    unc.Balance
}

// FromPledge builds a validator record from a pledge proposal and the power selected for it.
func FromPledge(p *PledgeProposal, power *unc.Power) Validator {
	return Validator{
		AccountID: p.AccountID,
		PublicKey: p.PublicKey,
		Power:     *power,
		Pledge:    p.Pledge,
	}
}

// PledgeProposal returns the record viewed as a pledge proposal.
func (v *Validator) PledgeProposal() PledgeProposal {
	return PledgeProposal{AccountID: v.AccountID, PublicKey: v.PublicKey, Pledge: v.Pledge}
}

// PowerProposal returns the record viewed as a power proposal.
func (v *Validator) PowerProposal() PowerProposal {
	return PowerProposal{AccountID: v.AccountID, PublicKey: v.PublicKey, Power: v.Power}
}

func (v Validator) String() string {
	return fmt.Sprintf("%s(pledge=%s, power=%s)", v.AccountID, v.Pledge.Dec(), v.Power.Dec())
}

// DedupPowerProposals removes duplicated accounts. The last proposal of an account wins
// and keeps the position of its first occurrence.
func DedupPowerProposals(proposals []PowerProposal) []PowerProposal {
	return dedup(proposals, func(p *PowerProposal) unc.AccountID { return p.AccountID })
}

// DedupPledgeProposals removes duplicated accounts. The last proposal of an account wins
// and keeps the position of its first occurrence.
func DedupPledgeProposals(proposals []PledgeProposal) []PledgeProposal {
	return dedup(proposals, func(p *PledgeProposal) unc.AccountID { return p.AccountID })
}

func dedup[T any](items []T, key func(*T) unc.AccountID) []T {
	pos := make(map[unc.AccountID]int, len(items))
	out := make([]T, 0, len(items))
	for i := range items {
		id := key(&items[i])
		if at, ok := pos[id]; ok {
			out[at] = items[i]
			continue
		}
		pos[id] = len(out)
		out = append(out, items[i])
	}
	return out
}
