// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes32JSON(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	require.NoError(t, json.Unmarshal([]byte(originalHex), &b))

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, originalHex, string(out))

	out, err = json.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, originalHex, string(out))
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("zz" + "00000000000000000000000000000000000000000000000000006d6173746572")
	assert.EqualError(t, err, "invalid prefix")

	b := MustParseBytes32("00000000000000000000000000000000000000000000000000006d6173746572")
	assert.False(t, b.IsZero())
	assert.True(t, Bytes32{}.IsZero())
	assert.Equal(t, BytesToBytes32([]byte("master")), b)
}

func TestHashes(t *testing.T) {
	assert.Equal(t,
		"0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		Blake2b([]byte{}).String())
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))

	assert.Equal(t,
		"0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sha256().String())
	assert.Equal(t, Sha256([]byte("ab")), Sha256([]byte("a"), []byte("b")))
}

func TestCheckU128(t *testing.T) {
	assert.NoError(t, CheckU128(MaxU128))
	assert.Error(t, CheckU128(new(uint256.Int).AddUint64(MaxU128, 1)))

	v, err := ParseAmount("340282366920938463463374607431768211455")
	require.NoError(t, err)
	assert.Equal(t, MaxU128, v)

	_, err = ParseAmount("340282366920938463463374607431768211456")
	assert.Error(t, err)
	_, err = ParseAmount("12a")
	assert.Error(t, err)
}

func TestRatio(t *testing.T) {
	assert.True(t, NewRatio(1, 2).LessThanOne())
	assert.False(t, NewRatio(2, 2).LessThanOne())
	assert.False(t, NewRatio(1, 0).LessThanOne())
	assert.True(t, NewRatio(0, 5).IsZero())
}

func TestFeatureSchedule(t *testing.T) {
	tests := []struct {
		feature ProtocolFeature
		version ProtocolVersion
		want    bool
	}{
		{AliasValidatorSelectionAlgorithm, 54, false},
		{AliasValidatorSelectionAlgorithm, 55, true},
		{ChunkOnlyProducers, 55, false},
		{ChunkOnlyProducers, 56, true},
		{FixStakingThreshold, 125, false},
		{FixStakingThreshold, 126, true},
		{ChunkValidation, 136, false},
		{ChunkValidation, LatestProtocolVersion, true},
	}
	for _, tt := range tests {
		t.Run(tt.feature.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFeatures.Enabled(tt.feature, tt.version))
		})
	}

	assert.False(t, NoFeatures.Enabled(ChunkValidation, math.MaxUint32))
	assert.Equal(t, "", NoFeatures.String())
	assert.Equal(t, "ALIAS: v55, COP: v56, FST: v126, CV: v137", DefaultFeatures.String())
	assert.Equal(t, "ProtocolFeature(9)", ProtocolFeature(9).String())
}

func TestCustomFeatures(t *testing.T) {
	fs, ok := GetFeatures("default")
	require.True(t, ok)
	assert.Equal(t, DefaultFeatures, fs)

	assert.Error(t, SetCustomFeatures("none", DefaultFeatures))

	custom := NoFeatures
	custom.ChunkOnlyProducers = 1
	require.NoError(t, SetCustomFeatures("unc_test_custom", custom))
	fs, ok = GetFeatures("unc_test_custom")
	require.True(t, ok)
	assert.True(t, fs.Enabled(ChunkOnlyProducers, 1))
	assert.False(t, fs.Enabled(AliasValidatorSelectionAlgorithm, 1))
}
