// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/shuffle"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// legacyAssignment fills seats the way epochs before the alias selection
// algorithm did: one seat price for every block producer and hidden seat,
// each proposal holding pledge/price seats, and the seats shuffled with the
// epoch seed.
func legacyAssignment(cfg *epoch.Config, seed unc.RngSeed, prior epoch.Prior, in *Input) (*assignment, error) {
	pool := rollover(in.PowerProposals, in.PledgeProposals, prior, in.Kickouts)
	a := newAssignment(pool, in.Kickouts)

	proposals := pool.pledgeProposals()
	pledges := make([]unc.Balance, len(proposals))
	for i := range proposals {
		pledges[i] = proposals[i].Pledge
	}
	totalSeats := cfg.NumBlockProducerSeats + cfg.NumHiddenValidatorSeats()
	threshold, err := FindThreshold(pledges, totalSeats)
	if err != nil {
		return nil, err
	}
	a.seatPrice = *threshold

	var candidates []validator.Validator
	for i := range proposals {
		p := &proposals[i]
		power := pool.powerOf(p.AccountID)
		v := validator.FromPledge(p, &power)
		switch {
		case !p.Pledge.Lt(threshold):
			candidates = append(candidates, v)
		case !p.Pledge.Lt(&cfg.FishermenThreshold):
			a.fishermen = append(a.fishermen, v)
		default:
			a.pledgeChange[p.AccountID] = uint256.Int{}
			if prior.IsValidator(p.AccountID) || prior.IsFisherman(p.AccountID) {
				a.kickouts[p.AccountID] = validator.NotEnoughPledgeReason(&p.Pledge, threshold)
			}
		}
	}

	// one entry per seat a candidate can pay for
	var seats []unc.ValidatorID
	var n uint256.Int
	for i := range candidates {
		n.Div(&candidates[i].Pledge, threshold)
		for range n.Uint64() {
			seats = append(seats, unc.ValidatorID(i))
		}
	}
	if uint64(len(seats)) < totalSeats {
		panic("bug in find_threshold")
	}
	shuffle.LegacyShuffle(seed, seats)

	settlement := slices.Clone(seats[:cfg.NumBlockProducerSeats])
	kept := make([]bool, len(candidates))
	for _, id := range settlement {
		kept[id] = true
	}

	// rebase ids onto the candidates that got a seat
	rebased := make([]unc.ValidatorID, len(candidates))
	for i := range candidates {
		if kept[i] {
			rebased[i] = a.add(candidates[i])
			continue
		}
		v := &candidates[i]
		if !v.Pledge.Lt(&cfg.FishermenThreshold) {
			a.fishermen = append(a.fishermen, *v)
			continue
		}
		a.pledgeChange[v.AccountID] = uint256.Int{}
		if prior.IsValidator(v.AccountID) || prior.IsFisherman(v.AccountID) {
			a.kickouts[v.AccountID] = validator.NoSeatReason()
		}
	}
	for i, id := range settlement {
		settlement[i] = rebased[id]
	}
	a.blockProducers = settlement

	a.chunkProducers = make([][]unc.ValidatorID, 0, len(cfg.NumBlockProducerSeatsPerShard))
	var last uint64
	for _, numSeats := range cfg.NumBlockProducerSeatsPerShard {
		shard := make([]unc.ValidatorID, 0, numSeats)
		for range numSeats {
			shard = append(shard, settlement[last])
			last = (last + 1) % cfg.NumBlockProducerSeats
		}
		a.chunkProducers = append(a.chunkProducers, shard)
	}

	a.mandates = mandates.Empty()
	return a, nil
}
