// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unc-network/epochsel/unc"
)

func balances(vals ...uint64) []unc.Balance {
	out := make([]unc.Balance, len(vals))
	for i, v := range vals {
		out[i].SetUint64(v)
	}
	return out
}

func TestFindThreshold(t *testing.T) {
	tests := []struct {
		name    string
		pledges []uint64
		seats   uint64
		want    uint64
	}{
		{"three accounts three seats", []uint64{1000, 2000, 300}, 3, 1000},
		{"one unit per seat", []uint64{1, 1, 1}, 3, 1},
		{"single pledge", []uint64{10}, 5, 2},
		{"two pledges", []uint64{100, 50}, 3, 50},
		{"exact fit", []uint64{3}, 3, 1},
		{"no seat", []uint64{7}, 0, 7},
		{"many seats", []uint64{1_000_000, 1_000_000, 1_000_000, 1_000_000}, 100, 40_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindThreshold(balances(tt.pledges...), tt.seats)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Uint64())
		})
	}
}

func TestFindThresholdU128(t *testing.T) {
	pledge := new(uint256.Int).Set(unc.MaxU128)
	got, err := FindThreshold([]unc.Balance{*pledge}, 1)
	require.NoError(t, err)
	assert.Equal(t, unc.MaxU128.Dec(), got.Dec())

	got, err = FindThreshold([]unc.Balance{*pledge}, 2)
	require.NoError(t, err)
	want := new(uint256.Int).Rsh(unc.MaxU128, 1)
	assert.Equal(t, want.Dec(), got.Dec())
}

func TestFindThresholdError(t *testing.T) {
	_, err := FindThreshold(balances(1, 1), 3)
	require.Error(t, err)
	assert.EqualError(t, err, "total pledge 2 is below the 3 seats to fill")

	var te *ThresholdError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, uint64(2), te.PledgeSum.Uint64())
	assert.Equal(t, uint64(3), te.NumSeats)

	_, err = FindThreshold(nil, 0)
	assert.True(t, errors.As(err, &te))
}

func TestFindThresholdIsMaximal(t *testing.T) {
	f := fuzz.NewWithSeed(42).NilChance(0).NumElements(1, 12).Funcs(
		func(v *unc.Balance, c fuzz.Continue) { v.SetUint64(c.Uint64() % 10_000) },
	)
	for range 200 {
		var pledges []unc.Balance
		f.Fuzz(&pledges)
		var seats uint16
		f.Fuzz(&seats)
		numSeats := uint64(seats%50) + 1

		got, err := FindThreshold(pledges, numSeats)
		if err != nil {
			var te *ThresholdError
			require.True(t, errors.As(err, &te))
			assert.True(t, te.PledgeSum.Lt(uint256.NewInt(numSeats)))
			continue
		}
		seatsInt := uint256.NewInt(numSeats)
		assert.True(t, fillsSeats(pledges, got, seatsInt), "threshold %s must fill the seats", got)
		assert.False(t, fillsSeats(pledges, new(uint256.Int).AddUint64(got, 1), seatsInt), "threshold %s must be maximal", got)
	}
}

func TestFindThresholdMonotonic(t *testing.T) {
	f := fuzz.NewWithSeed(7).NilChance(0).NumElements(1, 10).Funcs(
		func(v *unc.Balance, c fuzz.Continue) { v.SetUint64(c.Uint64()%5_000 + 1) },
	)
	for range 200 {
		var pledges []unc.Balance
		f.Fuzz(&pledges)
		var seats, bump uint8
		f.Fuzz(&seats)
		f.Fuzz(&bump)
		numSeats := uint64(seats%20) + 1

		before, err := FindThreshold(pledges, numSeats)
		if err != nil {
			continue
		}
		again, err := FindThreshold(pledges, numSeats)
		require.NoError(t, err)
		assert.Equal(t, before, again)

		i := int(bump) % len(pledges)
		pledges[i].AddUint64(&pledges[i], uint64(bump)+1)
		after, err := FindThreshold(pledges, numSeats)
		require.NoError(t, err)
		assert.False(t, after.Lt(before), "raising a pledge lowered the threshold from %s to %s", before, after)
	}
}
