// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shard

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unc-network/epochsel/unc"
	"github.com/unc-network/epochsel/validator"
)

func producers(pledges ...uint64) []validator.Validator {
	out := make([]validator.Validator, len(pledges))
	for i, p := range pledges {
		out[i] = validator.Validator{AccountID: unc.AccountID(fmt.Sprintf("cp%d", i)), Pledge: *uint256.NewInt(p)}
	}
	return out
}

func ids(shards [][]validator.Validator) [][]string {
	out := make([][]string, len(shards))
	for i, s := range shards {
		out[i] = []string{}
		for _, v := range s {
			out[i] = append(out[i], string(v.AccountID))
		}
	}
	return out
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name      string
		pledges   []uint64
		numShards uint64
		min       uint64
		want      [][]string
	}{
		{"spread by pledge", []uint64{30, 20, 10}, 2, 1, [][]string{{"cp0"}, {"cp1", "cp2"}}},
		{"repeat when short", []uint64{30, 20, 10}, 2, 2, [][]string{{"cp0", "cp1"}, {"cp1", "cp2"}}},
		{"one shard", []uint64{5, 4}, 1, 1, [][]string{{"cp0", "cp1"}}},
		{"no minimum", []uint64{5, 4, 3, 2}, 2, 0, [][]string{{"cp0", "cp3"}, {"cp1", "cp2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assign(producers(tt.pledges...), tt.numShards, tt.min)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAssignMinimumMet(t *testing.T) {
	cps := producers(9, 8, 7, 6, 5, 4, 3)
	got, err := Assign(cps, 4, 3)
	require.NoError(t, err)
	for _, s := range got {
		assert.GreaterOrEqual(t, len(s), 3)
		seen := map[unc.AccountID]bool{}
		for _, v := range s {
			assert.False(t, seen[v.AccountID], "duplicate in shard")
			seen[v.AccountID] = true
		}
	}
}

func TestAssignErrors(t *testing.T) {
	_, err := Assign(producers(1), 2, 2)
	assert.ErrorIs(t, err, ErrNotEnoughValidators)

	_, err = Assign(producers(1), 0, 0)
	assert.ErrorIs(t, err, ErrNotEnoughValidators)

	got, err := Assign(nil, 0, 0)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = Assign(nil, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{}, {}}, ids(got))
}
