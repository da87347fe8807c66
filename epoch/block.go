// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"github.com/unc-network/epochsel/mandates"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

// BlockInfo is the validator set of a block, the starting point of the
// resolution of its child.
type BlockInfo struct {
	Height           unc.BlockHeight
	Hash             unc.Bytes32
	Validators       []validator.Validator
	ValidatorToIndex map[unc.AccountID]unc.ValidatorID
	Fishermen        []validator.Validator
	FishermenToIndex map[unc.AccountID]unc.ValidatorID
}

// NewBlockInfo creates a block info, indexing validators and fishermen by position.
func NewBlockInfo(height unc.BlockHeight, hash unc.Bytes32, validators, fishermen []validator.Validator) *BlockInfo {
	return &BlockInfo{
		Height:           height,
		Hash:             hash,
		Validators:       validators,
		ValidatorToIndex: indexOf(validators),
		Fishermen:        fishermen,
		FishermenToIndex: indexOf(fishermen),
	}
}

func (b *BlockInfo) AllValidators() []validator.Validator { return b.Validators }
func (b *BlockInfo) AllFishermen() []validator.Validator  { return b.Fishermen }

func (b *BlockInfo) IsValidator(id unc.AccountID) bool {
	_, ok := b.ValidatorToIndex[id]
	return ok
}

func (b *BlockInfo) IsFisherman(id unc.AccountID) bool {
	_, ok := b.FishermenToIndex[id]
	return ok
}

// BlockSummary is the validator assignment resolved for a single block.
// Like Info it is immutable once built.
type BlockSummary struct {
	ThisBlockHash     unc.Bytes32
	LastBlockHash     unc.Bytes32
	PrevEpochLastHash unc.Bytes32

	Validators               []validator.Validator
	ValidatorToIndex         map[unc.AccountID]unc.ValidatorID
	BlockProducersSettlement []unc.ValidatorID
	ChunkProducersSettlement [][]unc.ValidatorID
	Fishermen                []validator.Validator
	FishermenToIndex         map[unc.AccountID]unc.ValidatorID
	PowerChange              map[unc.AccountID]unc.Power
	PledgeChange             map[unc.AccountID]unc.Balance
	ValidatorReward          map[unc.AccountID]unc.Balance
	SeatPrice                unc.Balance
	MintedAmount             unc.Balance

	// AllPowerProposals and AllPledgeProposals are the rolled over proposal
	// pools the selection ran on, ordered by account id.
	AllPowerProposals  []validator.PowerProposal
	AllPledgeProposals []validator.PledgeProposal

	ValidatorKickout validator.Kickouts
	Mandates         *mandates.Mandates
}

// NextBlockInfo returns the block info to resolve the block following this one.
func (s *BlockSummary) NextBlockInfo(height unc.BlockHeight) *BlockInfo {
	return NewBlockInfo(height, s.ThisBlockHash, s.Validators, s.Fishermen)
}

func (s *BlockSummary) IsValidator(id unc.AccountID) bool {
	_, ok := s.ValidatorToIndex[id]
	return ok
}

func (s *BlockSummary) IsFisherman(id unc.AccountID) bool {
	_, ok := s.FishermenToIndex[id]
	return ok
}
