// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/unc-network/epochsel/unc"
)

// Config of validator selection for an epoch. It is read only during resolution.
type Config struct {
	EpochLength uint64
	NumShards   uint64

	NumBlockProducerSeats           unc.NumSeats
	NumBlockProducerSeatsPerShard   []unc.NumSeats
	AvgHiddenValidatorSeatsPerShard []unc.NumSeats

	// FishermenThreshold is the minimal pledge of a fisherman.
	FishermenThreshold unc.Balance

	NumChunkOnlyProducerSeats unc.NumSeats
	MinimumValidatorsPerShard uint64
	// MinimumPledgeRatio is the smallest share of the selected total pledge a
	// single validator must bring.
	MinimumPledgeRatio unc.Ratio
}

// DefaultConfig returns a single shard config.
func DefaultConfig() *Config {
	return &Config{
		EpochLength:                     43200,
		NumShards:                       1,
		NumBlockProducerSeats:           100,
		NumBlockProducerSeatsPerShard:   []unc.NumSeats{100},
		AvgHiddenValidatorSeatsPerShard: []unc.NumSeats{0},
		FishermenThreshold:              *uint256.NewInt(0),
		NumChunkOnlyProducerSeats:       300,
		MinimumValidatorsPerShard:       1,
		MinimumPledgeRatio:              unc.NewRatio(160, 1_000_000),
	}
}

// Validate checks the config is usable for selection.
func (c *Config) Validate() error {
	if c.NumShards == 0 {
		return errors.New("num shards must be positive")
	}
	if c.NumBlockProducerSeats == 0 {
		return errors.New("num block producer seats must be positive")
	}
	if uint64(len(c.NumBlockProducerSeatsPerShard)) != c.NumShards {
		return errors.Errorf("block producer seats per shard: want %d entries, got %d",
			c.NumShards, len(c.NumBlockProducerSeatsPerShard))
	}
	if n := uint64(len(c.AvgHiddenValidatorSeatsPerShard)); n != 0 && n != c.NumShards {
		return errors.Errorf("hidden validator seats per shard: want %d entries, got %d", c.NumShards, n)
	}
	if c.MinimumPledgeRatio.Denom == 0 {
		return errors.New("minimum pledge ratio has zero denominator")
	}
	if !c.MinimumPledgeRatio.LessThanOne() {
		return errors.Errorf("minimum pledge ratio %d/%d must be below one",
			c.MinimumPledgeRatio.Num, c.MinimumPledgeRatio.Denom)
	}
	return nil
}

// NumHiddenValidatorSeats sums the hidden seats of all shards.
func (c *Config) NumHiddenValidatorSeats() unc.NumSeats {
	var n unc.NumSeats
	for _, s := range c.AvgHiddenValidatorSeatsPerShard {
		n += s
	}
	return n
}
