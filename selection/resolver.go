// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package selection resolves the validator set of the next epoch or block from
// the prior set and the proposals collected for it.
package selection

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/log"
	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/shard"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

var logger = log.WithContext("pkg", "selection")

// ShardAssigner spreads chunk producers over shards, giving each shard at least
// minPerShard of them.
type ShardAssigner func(cps []validator.Validator, numShards, minPerShard uint64) ([][]validator.Validator, error)

// MandateBuilder builds the mandates of the final validator list.
type MandateBuilder func(cfg mandates.Config, validators []validator.Validator) *mandates.Mandates

// Algorithm is the seat selection algorithm used at a protocol version.
type Algorithm uint8

const (
	// AlgorithmLegacy fills seats by a seeded shuffle of seat price sized shares.
	AlgorithmLegacy Algorithm = iota
	// AlgorithmAlias selects by pledge under the minimum pledge ratio.
	AlgorithmAlias
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmLegacy:
		return "legacy"
	case AlgorithmAlias:
		return "alias"
	default:
		return "Algorithm(" + strconv.Itoa(int(a)) + ")"
	}
}

// NotEnoughValidatorsError is returned when the chunk producers can not cover
// every shard.
type NotEnoughValidatorsError struct {
	NumValidators uint64
	NumShards     uint64
	cause         error
}

func (e *NotEnoughValidatorsError) Error() string {
	msg := fmt.Sprintf("not enough validators: %d for %d shards", e.NumValidators, e.NumShards)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Cause returns the shard assignment failure, if any.
func (e *NotEnoughValidatorsError) Cause() error { return e.cause }

func (e *NotEnoughValidatorsError) Unwrap() error { return e.cause }

// Input is what a resolution consumes besides the prior set.
type Input struct {
	PowerProposals  []validator.PowerProposal
	PledgeProposals []validator.PledgeProposal
	Kickouts        validator.Kickouts
	// Rewards are reported in the output as they are and not added to pledge.
	Rewards      map[unc.AccountID]unc.Balance
	MintedAmount unc.Balance
}

// Resolver computes validator assignments. It holds no state between calls
// and is safe for concurrent use.
type Resolver struct {
	features      unc.FeatureSchedule
	assignShards  ShardAssigner
	buildMandates MandateBuilder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithShardAssigner replaces shard.Assign.
func WithShardAssigner(fn ShardAssigner) Option {
	return func(r *Resolver) { r.assignShards = fn }
}

// WithMandateBuilder replaces mandates.New.
func WithMandateBuilder(fn MandateBuilder) Option {
	return func(r *Resolver) { r.buildMandates = fn }
}

// New creates a resolver gating protocol features with features.
func New(features unc.FeatureSchedule, opts ...Option) *Resolver {
	r := &Resolver{
		features:      features,
		assignShards:  shard.Assign,
		buildMandates: mandates.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Features returns the feature schedule of the resolver.
func (r *Resolver) Features() unc.FeatureSchedule { return r.features }

// AlgorithmAt returns the selection algorithm in force at version.
func (r *Resolver) AlgorithmAt(version unc.ProtocolVersion) Algorithm {
	if r.features.Enabled(unc.AliasValidatorSelectionAlgorithm, version) {
		return AlgorithmAlias
	}
	return AlgorithmLegacy
}

// ProposalsToEpochInfo resolves the epoch following prev. The algorithm and
// the threshold formula follow lastVersion, the version prev ran with, while
// chunk only producers and mandates follow nextVersion.
func (r *Resolver) ProposalsToEpochInfo(
	cfg *epoch.Config,
	seed unc.RngSeed,
	prev *epoch.Info,
	in Input,
	nextVersion, lastVersion unc.ProtocolVersion,
) (*epoch.Info, error) {
	const cadence = "epoch"
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, r.failed(cadence, errors.Wrap(err, "epoch config"))
	}
	normalize(&in)

	algo := r.AlgorithmAt(lastVersion)
	var (
		a   *assignment
		err error
	)
	if algo == AlgorithmAlias {
		a, err = r.aliasAssignment(cfg, prev, &in, lastVersion, nextVersion)
	} else {
		a, err = legacyAssignment(cfg, seed, prev, &in)
	}
	if err != nil {
		return nil, r.failed(cadence, err)
	}

	info := &epoch.Info{
		Height:                   prev.Height + 1,
		Validators:               a.validators,
		ValidatorToIndex:         a.validatorToIndex,
		BlockProducersSettlement: a.blockProducers,
		ChunkProducersSettlement: a.chunkProducers,
		Fishermen:                a.fishermen,
		FishermenToIndex:         a.fishermenToIndex(),
		PowerChange:              a.pool.powerChange,
		PledgeChange:             a.pledgeChange,
		ValidatorReward:          maps.Clone(in.Rewards),
		ValidatorKickout:         a.kickouts,
		MintedAmount:             in.MintedAmount,
		SeatPrice:                a.seatPrice,
		ProtocolVersion:          nextVersion,
		RngSeed:                  seed,
		Mandates:                 a.mandates,
	}
	r.resolved(cadence, algo, a, start)
	return info, nil
}

// ProposalsToBlockSummary resolves the block following prev. Blocks are always
// resolved with the alias algorithm, every feature is gated on nextVersion.
func (r *Resolver) ProposalsToBlockSummary(
	cfg *epoch.Config,
	thisHash, lastHash unc.Bytes32,
	seed unc.RngSeed,
	prev *epoch.BlockInfo,
	in Input,
	nextVersion unc.ProtocolVersion,
) (*epoch.BlockSummary, error) {
	const cadence = "block"
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, r.failed(cadence, errors.Wrap(err, "epoch config"))
	}
	normalize(&in)

	a, err := r.aliasAssignment(cfg, prev, &in, nextVersion, nextVersion)
	if err != nil {
		return nil, r.failed(cadence, err)
	}

	summary := &epoch.BlockSummary{
		ThisBlockHash:            thisHash,
		LastBlockHash:            lastHash,
		Validators:               a.validators,
		ValidatorToIndex:         a.validatorToIndex,
		BlockProducersSettlement: a.blockProducers,
		ChunkProducersSettlement: a.chunkProducers,
		Fishermen:                a.fishermen,
		FishermenToIndex:         a.fishermenToIndex(),
		PowerChange:              a.pool.powerChange,
		PledgeChange:             a.pledgeChange,
		ValidatorReward:          maps.Clone(in.Rewards),
		SeatPrice:                a.seatPrice,
		MintedAmount:             in.MintedAmount,
		AllPowerProposals:        a.pool.powerProposals(),
		AllPledgeProposals:       a.pool.pledgeProposals(),
		ValidatorKickout:         a.kickouts,
		Mandates:                 a.mandates,
	}
	r.resolved(cadence, AlgorithmAlias, a, start)
	logger.Trace("block summary resolved", "block", thisHash.AbbrevString(), "seed", seed.AbbrevString())
	return summary, nil
}

// normalize drops duplicated proposals, keeping the last one of each account.
func normalize(in *Input) {
	in.PowerProposals = validator.DedupPowerProposals(in.PowerProposals)
	in.PledgeProposals = validator.DedupPledgeProposals(in.PledgeProposals)
	assertUniqueProposals(in.PowerProposals, in.PledgeProposals)
	if in.Rewards == nil {
		in.Rewards = map[unc.AccountID]unc.Balance{}
	}
}

func (r *Resolver) failed(cadence string, err error) error {
	metricResolutionErrors().AddWithLabel(1, map[string]string{"cadence": cadence})
	var nev *NotEnoughValidatorsError
	if errors.As(err, &nev) {
		logger.Warn("not enough validators", "cadence", cadence, "validators", nev.NumValidators, "shards", nev.NumShards)
	}
	return err
}

func (r *Resolver) resolved(cadence string, algo Algorithm, a *assignment, start time.Time) {
	metricResolutions().AddWithLabel(1, map[string]string{"cadence": cadence, "algorithm": algo.String()})
	metricResolveDuration().Observe(time.Since(start).Milliseconds())
	metricSelectedValidators().SetWithLabel(int64(len(a.validators)), map[string]string{"cadence": cadence, "role": "validator"})
	metricSelectedValidators().SetWithLabel(int64(len(a.fishermen)), map[string]string{"cadence": cadence, "role": "fisherman"})

	logger.Debug("validators resolved",
		"cadence", cadence,
		"algorithm", algo,
		"seatPrice", &a.seatPrice,
		"validators", len(a.validators),
		"blockProducers", len(a.blockProducers),
		"fishermen", len(a.fishermen),
		"kickouts", len(a.kickouts),
	)
}
