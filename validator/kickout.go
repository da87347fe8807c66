// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/unc-network/epochsel/unc"
)

// KickoutKind enumerates why an account lost its seat.
type KickoutKind uint8

const (
	// Slashed for misbehaviour.
	Slashed KickoutKind = iota + 1
	// NotEnoughBlocks produced compared to the expected number.
	NotEnoughBlocks
	// NotEnoughChunks produced compared to the expected number.
	NotEnoughChunks
	// Unpowered withdrew its power.
	Unpowered
	// NotEnoughPower to reach the power threshold.
	NotEnoughPower
	// Unpledge withdrew its pledge.
	Unpledge
	// NotEnoughPledge to reach the seat price.
	NotEnoughPledge
	// DidNotGetASeat in the legacy seat shuffle.
	DidNotGetASeat
)

var kickoutKindNames = map[KickoutKind]string{
	Slashed:         "Slashed",
	NotEnoughBlocks: "NotEnoughBlocks",
	NotEnoughChunks: "NotEnoughChunks",
	Unpowered:       "Unpowered",
	NotEnoughPower:  "NotEnoughPower",
	Unpledge:        "Unpledge",
	NotEnoughPledge: "NotEnoughPledge",
	DidNotGetASeat:  "DidNotGetASeat",
}

func (k KickoutKind) String() string {
	if s, ok := kickoutKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("KickoutKind(%d)", uint8(k))
}

// ParseKickoutKind is the inverse of KickoutKind.String.
func ParseKickoutKind(s string) (KickoutKind, bool) {
	for k, name := range kickoutKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// KickoutReason explains why an account left the validator set. Only the fields
// belonging to Kind are set.
type KickoutReason struct {
	Kind      KickoutKind
	Produced  uint64
	Expected  uint64
	Power     unc.Power
	Pledge    unc.Balance
	Threshold uint256.Int
}

func SlashedReason() KickoutReason   { return KickoutReason{Kind: Slashed} }
func UnpoweredReason() KickoutReason { return KickoutReason{Kind: Unpowered} }
func UnpledgeReason() KickoutReason  { return KickoutReason{Kind: Unpledge} }
func NoSeatReason() KickoutReason    { return KickoutReason{Kind: DidNotGetASeat} }

func NotEnoughBlocksReason(produced, expected uint64) KickoutReason {
	return KickoutReason{Kind: NotEnoughBlocks, Produced: produced, Expected: expected}
}

func NotEnoughChunksReason(produced, expected uint64) KickoutReason {
	return KickoutReason{Kind: NotEnoughChunks, Produced: produced, Expected: expected}
}

func NotEnoughPowerReason(power, threshold *uint256.Int) KickoutReason {
	return KickoutReason{Kind: NotEnoughPower, Power: *power, Threshold: *threshold}
}

func NotEnoughPledgeReason(pledge, threshold *uint256.Int) KickoutReason {
	return KickoutReason{Kind: NotEnoughPledge, Pledge: *pledge, Threshold: *threshold}
}

func (r KickoutReason) String() string {
	switch r.Kind {
	case NotEnoughBlocks, NotEnoughChunks:
		return fmt.Sprintf("%v{produced: %d, expected: %d}", r.Kind, r.Produced, r.Expected)
	case NotEnoughPower:
		return fmt.Sprintf("%v{power: %s, threshold: %s}", r.Kind, r.Power.Dec(), r.Threshold.Dec())
	case NotEnoughPledge:
		return fmt.Sprintf("%v{pledge: %s, threshold: %s}", r.Kind, r.Pledge.Dec(), r.Threshold.Dec())
	default:
		return r.Kind.String()
	}
}

// Kickouts maps kicked out accounts to their reason.
type Kickouts map[unc.AccountID]KickoutReason

// Has reports whether id is kicked out.
func (k Kickouts) Has(id unc.AccountID) bool {
	_, ok := k[id]
	return ok
}

// Clone returns a shallow copy. A nil map clones into an empty one.
func (k Kickouts) Clone() Kickouts {
	out := make(Kickouts, len(k))
	for id, r := range k {
		out[id] = r
	}
	return out
}
