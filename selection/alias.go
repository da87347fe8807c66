// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// aliasAssignment selects block producers and chunk producers by pledge
// under the minimum pledge ratio. selectVersion gates the threshold formula,
// nextVersion gates chunk only producers and mandates.
func (r *Resolver) aliasAssignment(
	cfg *epoch.Config,
	prior epoch.Prior,
	in *Input,
	selectVersion, nextVersion unc.ProtocolVersion,
) (*assignment, error) {
	pool := rollover(in.PowerProposals, in.PledgeProposals, prior, in.Kickouts)
	a := newAssignment(pool, in.Kickouts)

	var (
		minRatio     = newRatio(cfg.MinimumPledgeRatio)
		fixThreshold = r.features.Enabled(unc.FixStakingThreshold, selectVersion)
		chunkOnly    = r.features.Enabled(unc.ChunkOnlyProducers, nextVersion)
	)

	bpQueue := newPledgeQueue(pool.pledge)
	blockProducers, bpThreshold := selectValidators(pool, bpQueue, cfg.NumBlockProducerSeats, minRatio, fixThreshold)

	var (
		cpQueue        = bpQueue
		chunkProducers = blockProducers
		cpThreshold    = bpThreshold
	)
	if chunkOnly {
		cpQueue = newPledgeQueue(pool.pledge)
		chunkProducers, cpThreshold = selectValidators(
			pool,
			cpQueue,
			cfg.NumBlockProducerSeats+cfg.NumChunkOnlyProducerSeats,
			minRatio.perShard(cfg.NumShards),
			fixThreshold,
		)
	}

	// a block producer proposal may also end up a chunk producer
	threshold := bpThreshold
	if cpThreshold.Lt(threshold) {
		threshold = cpThreshold
	}
	a.seatPrice = *threshold

	// proposals selected for neither role
	for cpQueue.Len() > 0 {
		p := cpQueue.pop()
		if !p.Pledge.Lt(&cfg.FishermenThreshold) {
			power := pool.powerOf(p.AccountID)
			a.fishermen = append(a.fishermen, validator.FromPledge(&p, &power))
			continue
		}
		a.pledgeChange[p.AccountID] = uint256.Int{}
		if prior.IsValidator(p.AccountID) || prior.IsFisherman(p.AccountID) {
			a.kickouts[p.AccountID] = validator.NotEnoughPledgeReason(&p.Pledge, threshold)
		}
	}

	a.blockProducers = make([]unc.ValidatorID, 0, len(blockProducers))
	for _, bp := range blockProducers {
		a.blockProducers = append(a.blockProducers, a.add(bp))
	}

	if len(chunkProducers) == 0 {
		return nil, &NotEnoughValidatorsError{NumValidators: 0, NumShards: cfg.NumShards}
	}
	if chunkOnly {
		shards, err := r.assignShards(chunkProducers, cfg.NumShards, cfg.MinimumValidatorsPerShard)
		if err != nil {
			return nil, &NotEnoughValidatorsError{
				NumValidators: uint64(len(chunkProducers)),
				NumShards:     cfg.NumShards,
				cause:         err,
			}
		}
		a.chunkProducers = make([][]unc.ValidatorID, len(shards))
		for s, members := range shards {
			ids := make([]unc.ValidatorID, 0, len(members))
			for _, v := range members {
				id, ok := a.validatorToIndex[v.AccountID]
				if !ok {
					id = a.add(v)
				}
				ids = append(ids, id)
			}
			a.chunkProducers[s] = ids
		}
	} else {
		a.chunkProducers = make([][]unc.ValidatorID, cfg.NumShards)
		var next int
		for s := range a.chunkProducers {
			numSeats := min(cfg.NumBlockProducerSeatsPerShard[s], uint64(len(a.blockProducers)))
			ids := make([]unc.ValidatorID, 0, numSeats)
			for range numSeats {
				ids = append(ids, a.blockProducers[next])
				next = (next + 1) % len(a.blockProducers)
			}
			a.chunkProducers[s] = ids
		}
	}

	if r.features.Enabled(unc.ChunkValidation, nextVersion) {
		a.mandates = r.buildMandates(mandates.NewConfig(threshold, 0, cfg.NumShards), a.validators)
	} else {
		a.mandates = mandates.Empty()
	}
	return a, nil
}
