// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// Info is the validator assignment of an epoch. An account's position in
// Validators is its ValidatorID for the epoch, settlements refer to validators
// by that id.
//
// Info is immutable once built, readers may share it across goroutines and
// must not modify any field.
type Info struct {
	Height                   uint64
	Validators               []validator.Validator
	ValidatorToIndex         map[unc.AccountID]unc.ValidatorID
	BlockProducersSettlement []unc.ValidatorID
	ChunkProducersSettlement [][]unc.ValidatorID
	Fishermen                []validator.Validator
	FishermenToIndex         map[unc.AccountID]unc.ValidatorID
	PowerChange              map[unc.AccountID]unc.Power
	PledgeChange             map[unc.AccountID]unc.Balance
	ValidatorReward          map[unc.AccountID]unc.Balance
	ValidatorKickout         validator.Kickouts
	MintedAmount             unc.Balance
	SeatPrice                unc.Balance
	ProtocolVersion          unc.ProtocolVersion
	RngSeed                  unc.RngSeed
	Mandates                 *mandates.Mandates
}

// NewGenesisInfo creates the epoch that precedes the first resolution, with
// the given validators all producing blocks and every shard chunk.
func NewGenesisInfo(validators, fishermen []validator.Validator, version unc.ProtocolVersion, numShards uint64) *Info {
	bps := make([]unc.ValidatorID, len(validators))
	for i := range bps {
		bps[i] = unc.ValidatorID(i)
	}
	cps := make([][]unc.ValidatorID, numShards)
	for i := range cps {
		cps[i] = bps
	}
	return &Info{
		Validators:               validators,
		ValidatorToIndex:         indexOf(validators),
		BlockProducersSettlement: bps,
		ChunkProducersSettlement: cps,
		Fishermen:                fishermen,
		FishermenToIndex:         indexOf(fishermen),
		PowerChange:              map[unc.AccountID]unc.Power{},
		PledgeChange:             map[unc.AccountID]unc.Balance{},
		ValidatorReward:          map[unc.AccountID]unc.Balance{},
		ValidatorKickout:         validator.Kickouts{},
		ProtocolVersion:          version,
		Mandates:                 mandates.Empty(),
	}
}

func (i *Info) AllValidators() []validator.Validator { return i.Validators }
func (i *Info) AllFishermen() []validator.Validator  { return i.Fishermen }

func (i *Info) IsValidator(id unc.AccountID) bool {
	_, ok := i.ValidatorToIndex[id]
	return ok
}

func (i *Info) IsFisherman(id unc.AccountID) bool {
	_, ok := i.FishermenToIndex[id]
	return ok
}

// Validator returns the validator with the given id.
func (i *Info) Validator(id unc.ValidatorID) (validator.Validator, bool) {
	if id >= uint64(len(i.Validators)) {
		return validator.Validator{}, false
	}
	return i.Validators[id], true
}

// Lookup returns the validator of an account.
func (i *Info) Lookup(id unc.AccountID) (validator.Validator, bool) {
	idx, ok := i.ValidatorToIndex[id]
	if !ok {
		return validator.Validator{}, false
	}
	return i.Validators[idx], true
}

// NumShards returns the number of chunk producer settlements.
func (i *Info) NumShards() uint64 {
	return uint64(len(i.ChunkProducersSettlement))
}
