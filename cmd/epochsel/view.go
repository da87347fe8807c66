// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/unc-network/epochsel/epoch"
	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

type validatorView struct {
	AccountID unc.AccountID `json:"accountId"`
	PublicKey unc.PublicKey `json:"publicKey"`
	Pledge    string        `json:"pledge"`
	Power     string        `json:"power"`
}

// resolutionView is the json output of a resolved epoch or block.
type resolutionView struct {
	Height          uint64                   `json:"height,omitempty"`
	ThisBlockHash   *unc.Bytes32             `json:"thisBlockHash,omitempty"`
	Validators      []validatorView          `json:"validators"`
	BlockProducers  []unc.ValidatorID        `json:"blockProducers"`
	ChunkProducers  [][]unc.ValidatorID      `json:"chunkProducers"`
	Fishermen       []validatorView          `json:"fishermen"`
	Kickouts        map[unc.AccountID]string `json:"kickouts"`
	PledgeChange    map[unc.AccountID]string `json:"pledgeChange"`
	SeatPrice       string                   `json:"seatPrice"`
	MintedAmount    string                   `json:"mintedAmount"`
	ProtocolVersion unc.ProtocolVersion      `json:"protocolVersion,omitempty"`
	NumMandates     int                      `json:"numMandates"`
	Digest          unc.Bytes32              `json:"digest"`
}

func newValidatorViews(vs []validator.Validator) []validatorView {
	out := make([]validatorView, len(vs))
	for i := range vs {
		out[i] = validatorView{
			AccountID: vs[i].AccountID,
			PublicKey: vs[i].PublicKey,
			Pledge:    vs[i].Pledge.Dec(),
			Power:     vs[i].Power.Dec(),
		}
	}
	return out
}

func newKickoutViews(k validator.Kickouts) map[unc.AccountID]string {
	out := make(map[unc.AccountID]string, len(k))
	for id, reason := range k {
		out[id] = reason.String()
	}
	return out
}

func newAmountViews(m map[unc.AccountID]unc.Balance) map[unc.AccountID]string {
	out := make(map[unc.AccountID]string, len(m))
	for id, v := range m {
		out[id] = v.Dec()
	}
	return out
}

func newInfoView(info *epoch.Info, digest unc.Bytes32) *resolutionView {
	return &resolutionView{
		Height:          info.Height,
		Validators:      newValidatorViews(info.Validators),
		BlockProducers:  info.BlockProducersSettlement,
		ChunkProducers:  info.ChunkProducersSettlement,
		Fishermen:       newValidatorViews(info.Fishermen),
		Kickouts:        newKickoutViews(info.ValidatorKickout),
		PledgeChange:    newAmountViews(info.PledgeChange),
		SeatPrice:       info.SeatPrice.Dec(),
		MintedAmount:    info.MintedAmount.Dec(),
		ProtocolVersion: info.ProtocolVersion,
		NumMandates:     info.Mandates.NumMandates(),
		Digest:          digest,
	}
}

func newSummaryView(s *epoch.BlockSummary, digest unc.Bytes32) *resolutionView {
	hash := s.ThisBlockHash
	return &resolutionView{
		ThisBlockHash:  &hash,
		Validators:     newValidatorViews(s.Validators),
		BlockProducers: s.BlockProducersSettlement,
		ChunkProducers: s.ChunkProducersSettlement,
		Fishermen:      newValidatorViews(s.Fishermen),
		Kickouts:       newKickoutViews(s.ValidatorKickout),
		PledgeChange:   newAmountViews(s.PledgeChange),
		SeatPrice:      s.SeatPrice.Dec(),
		MintedAmount:   s.MintedAmount.Dec(),
		NumMandates:    s.Mandates.NumMandates(),
		Digest:         digest,
	}
}
