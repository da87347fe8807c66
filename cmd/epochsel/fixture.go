// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/selection"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// Amounts are decimal strings, yaml integers can not hold 128 bits.

type fixtureValidator struct {
	AccountID string `yaml:"account_id"`
	PublicKey string `yaml:"public_key"`
	Pledge    string `yaml:"pledge"`
	Power     string `yaml:"power"`
}

type fixtureProposal struct {
	AccountID string `yaml:"account_id"`
	PublicKey string `yaml:"public_key"`
	Amount    string `yaml:"amount"`
}

type fixtureKickout struct {
	AccountID string `yaml:"account_id"`
	Reason    string `yaml:"reason"`
	Produced  uint64 `yaml:"produced"`
	Expected  uint64 `yaml:"expected"`
	Power     string `yaml:"power"`
	Pledge    string `yaml:"pledge"`
	Threshold string `yaml:"threshold"`
}

type fixtureConfig struct {
	EpochLength                     uint64    `yaml:"epoch_length"`
	NumShards                       uint64    `yaml:"num_shards"`
	NumBlockProducerSeats           uint64    `yaml:"num_block_producer_seats"`
	NumBlockProducerSeatsPerShard   []uint64  `yaml:"num_block_producer_seats_per_shard"`
	AvgHiddenValidatorSeatsPerShard []uint64  `yaml:"avg_hidden_validator_seats_per_shard"`
	FishermenThreshold              string    `yaml:"fishermen_threshold"`
	NumChunkOnlyProducerSeats       uint64    `yaml:"num_chunk_only_producer_seats"`
	MinimumValidatorsPerShard       uint64    `yaml:"minimum_validators_per_shard"`
	MinimumPledgeRatio              unc.Ratio `yaml:"minimum_pledge_ratio"`
}

type fixturePrev struct {
	Height     uint64             `yaml:"height"`
	Hash       unc.Bytes32        `yaml:"hash"`
	Validators []fixtureValidator `yaml:"validators"`
	Fishermen  []fixtureValidator `yaml:"fishermen"`
}

type fixtureBlock struct {
	ThisHash unc.Bytes32 `yaml:"this_hash"`
	LastHash unc.Bytes32 `yaml:"last_hash"`
}

type fixtureExpect struct {
	Digest unc.Bytes32 `yaml:"digest"`
}

// fixture is a resolution recorded as yaml.
type fixture struct {
	Features        *unc.FeatureSchedule `yaml:"features"`
	Config          fixtureConfig        `yaml:"config"`
	Seed            unc.Bytes32          `yaml:"seed"`
	NextVersion     unc.ProtocolVersion  `yaml:"next_version"`
	LastVersion     unc.ProtocolVersion  `yaml:"last_version"`
	Prev            fixturePrev          `yaml:"prev"`
	PowerProposals  []fixtureProposal    `yaml:"power_proposals"`
	PledgeProposals []fixtureProposal    `yaml:"pledge_proposals"`
	Kickouts        []fixtureKickout     `yaml:"kickouts"`
	Rewards         map[string]string    `yaml:"rewards"`
	MintedAmount    string               `yaml:"minted_amount"`
	Block           *fixtureBlock        `yaml:"block"`
	Expect          *fixtureExpect       `yaml:"expect"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := &fixture{NextVersion: unc.LatestProtocolVersion, LastVersion: unc.LatestProtocolVersion}
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrapf(err, "decode fixture %v", path)
	}
	return f, nil
}

// amount parses an optional decimal amount, empty is zero.
func amount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return unc.ParseAmount(s)
}

func (c *fixtureConfig) build() (*epoch.Config, error) {
	fishermen, err := amount(c.FishermenThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "fishermen_threshold")
	}
	cfg := &epoch.Config{
		EpochLength:                     c.EpochLength,
		NumShards:                       c.NumShards,
		NumBlockProducerSeats:           c.NumBlockProducerSeats,
		NumBlockProducerSeatsPerShard:   c.NumBlockProducerSeatsPerShard,
		AvgHiddenValidatorSeatsPerShard: c.AvgHiddenValidatorSeatsPerShard,
		FishermenThreshold:              *fishermen,
		NumChunkOnlyProducerSeats:       c.NumChunkOnlyProducerSeats,
		MinimumValidatorsPerShard:       c.MinimumValidatorsPerShard,
		MinimumPledgeRatio:              c.MinimumPledgeRatio,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildValidators(in []fixtureValidator) ([]validator.Validator, error) {
	out := make([]validator.Validator, 0, len(in))
	for _, v := range in {
		pledge, err := amount(v.Pledge)
		if err != nil {
			return nil, errors.Wrapf(err, "pledge of %v", v.AccountID)
		}
		power, err := amount(v.Power)
		if err != nil {
			return nil, errors.Wrapf(err, "power of %v", v.AccountID)
		}
		out = append(out, validator.Validator{
			AccountID: unc.AccountID(v.AccountID),
			PublicKey: unc.PublicKey(v.PublicKey),
			Pledge:    *pledge,
			Power:     *power,
		})
	}
	return out, nil
}

func (p *fixturePrev) sets() (vs, fs []validator.Validator, err error) {
	if vs, err = buildValidators(p.Validators); err != nil {
		return nil, nil, errors.Wrap(err, "prev validators")
	}
	if fs, err = buildValidators(p.Fishermen); err != nil {
		return nil, nil, errors.Wrap(err, "prev fishermen")
	}
	return vs, fs, nil
}

// epochInfo returns the prior epoch, with every validator producing blocks
// and chunks of every shard.
func (f *fixture) epochInfo() (*epoch.Info, error) {
	vs, fs, err := f.Prev.sets()
	if err != nil {
		return nil, err
	}
	info := epoch.NewGenesisInfo(vs, fs, f.LastVersion, f.Config.NumShards)
	info.Height = f.Prev.Height
	return info, nil
}

func (f *fixture) blockInfo() (*epoch.BlockInfo, error) {
	vs, fs, err := f.Prev.sets()
	if err != nil {
		return nil, err
	}
	return epoch.NewBlockInfo(f.Prev.Height, f.Prev.Hash, vs, fs), nil
}

func (f *fixture) input() (selection.Input, error) {
	var in selection.Input
	for _, p := range f.PowerProposals {
		power, err := amount(p.Amount)
		if err != nil {
			return in, errors.Wrapf(err, "power proposal of %v", p.AccountID)
		}
		in.PowerProposals = append(in.PowerProposals, validator.PowerProposal{
			AccountID: unc.AccountID(p.AccountID),
			PublicKey: unc.PublicKey(p.PublicKey),
			Power:     *power,
		})
	}
	for _, p := range f.PledgeProposals {
		pledge, err := amount(p.Amount)
		if err != nil {
			return in, errors.Wrapf(err, "pledge proposal of %v", p.AccountID)
		}
		in.PledgeProposals = append(in.PledgeProposals, validator.PledgeProposal{
			AccountID: unc.AccountID(p.AccountID),
			PublicKey: unc.PublicKey(p.PublicKey),
			Pledge:    *pledge,
		})
	}

	in.Kickouts = make(validator.Kickouts, len(f.Kickouts))
	for _, k := range f.Kickouts {
		reason, err := k.reason()
		if err != nil {
			return in, errors.Wrapf(err, "kickout of %v", k.AccountID)
		}
		in.Kickouts[unc.AccountID(k.AccountID)] = reason
	}

	in.Rewards = make(map[unc.AccountID]unc.Balance, len(f.Rewards))
	for id, s := range f.Rewards {
		reward, err := amount(s)
		if err != nil {
			return in, errors.Wrapf(err, "reward of %v", id)
		}
		in.Rewards[unc.AccountID(id)] = *reward
	}

	minted, err := amount(f.MintedAmount)
	if err != nil {
		return in, errors.Wrap(err, "minted_amount")
	}
	in.MintedAmount = *minted
	return in, nil
}

func (k *fixtureKickout) reason() (validator.KickoutReason, error) {
	kind, ok := validator.ParseKickoutKind(k.Reason)
	if !ok {
		return validator.KickoutReason{}, errors.Errorf("unknown reason %q", k.Reason)
	}
	power, err := amount(k.Power)
	if err != nil {
		return validator.KickoutReason{}, err
	}
	pledge, err := amount(k.Pledge)
	if err != nil {
		return validator.KickoutReason{}, err
	}
	threshold, err := amount(k.Threshold)
	if err != nil {
		return validator.KickoutReason{}, err
	}
	return validator.KickoutReason{
		Kind:      kind,
		Produced:  k.Produced,
		Expected:  k.Expected,
		Power:     *power,
		Pledge:    *pledge,
		Threshold: *threshold,
	}, nil
}
