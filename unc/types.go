// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unc

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

type (
	// AccountID is a human readable account name. Ordering is byte-wise.
	AccountID string
	// PublicKey is the opaque validator signing key, e.g. "ed25519:<base58>".
	PublicKey string

	// ValidatorID is the index of a validator inside an epoch record.
	ValidatorID = uint64
	// ShardID identifies a shard.
	ShardID = uint64
	// NumSeats counts seats.
	NumSeats = uint64
	// BlockHeight is the height of a block.
	BlockHeight = uint64
	// ProtocolVersion is the network protocol version.
	ProtocolVersion = uint32

	// Balance is an amount of pledged tokens. Values never exceed 128 bits.
	Balance = uint256.Int
	// Power is the compute power declared by a validator. Values never exceed 128 bits.
	Power = uint256.Int
)

// MaxU128 is the largest value a Balance or Power may hold.
var MaxU128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// CheckU128 returns an error if v does not fit into 128 bits.
func CheckU128(v *uint256.Int) error {
	if v.BitLen() > 128 {
		return errors.Errorf("value %s overflows u128", v.Dec())
	}
	return nil
}

// ParseAmount parses a decimal amount and checks it fits into 128 bits.
func ParseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parse amount %q", s)
	}
	if err := CheckU128(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Ratio is a rational number Num/Denom.
type Ratio struct {
	Num   uint64 `yaml:"num" json:"num"`
	Denom uint64 `yaml:"denom" json:"denom"`
}

// NewRatio creates a ratio.
func NewRatio(num, denom uint64) Ratio {
	return Ratio{Num: num, Denom: denom}
}

// IsZero returns if the numerator is zero.
func (r Ratio) IsZero() bool {
	return r.Num == 0
}

// LessThanOne returns if the ratio is a valid value in [0, 1).
func (r Ratio) LessThanOne() bool {
	return r.Denom != 0 && r.Num < r.Denom
}
