// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unc

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ProtocolFeature names a protocol change gated on the protocol version.
type ProtocolFeature int

const (
	AliasValidatorSelectionAlgorithm ProtocolFeature = iota
	ChunkOnlyProducers
	FixStakingThreshold
	ChunkValidation
)

func (f ProtocolFeature) String() string {
	switch f {
	case AliasValidatorSelectionAlgorithm:
		return "AliasValidatorSelectionAlgorithm"
	case ChunkOnlyProducers:
		return "ChunkOnlyProducers"
	case FixStakingThreshold:
		return "FixStakingThreshold"
	case ChunkValidation:
		return "ChunkValidation"
	default:
		return fmt.Sprintf("ProtocolFeature(%d)", int(f))
	}
}

// LatestProtocolVersion is the newest protocol version known to this build.
const LatestProtocolVersion ProtocolVersion = 143

// FeatureSchedule holds the activation version of each protocol feature.
// A feature is enabled for every version greater than or equal to its activation.
type FeatureSchedule struct {
	AliasValidatorSelectionAlgorithm ProtocolVersion `yaml:"alias_validator_selection_algorithm"`
	ChunkOnlyProducers               ProtocolVersion `yaml:"chunk_only_producers"`
	FixStakingThreshold              ProtocolVersion `yaml:"fix_staking_threshold"`
	ChunkValidation                  ProtocolVersion `yaml:"chunk_validation"`
}

// Activation returns the first version where f is enabled.
func (fs FeatureSchedule) Activation(f ProtocolFeature) ProtocolVersion {
	switch f {
	case AliasValidatorSelectionAlgorithm:
		return fs.AliasValidatorSelectionAlgorithm
	case ChunkOnlyProducers:
		return fs.ChunkOnlyProducers
	case FixStakingThreshold:
		return fs.FixStakingThreshold
	case ChunkValidation:
		return fs.ChunkValidation
	default:
		return math.MaxUint32
	}
}

// Enabled reports whether f is active at version v.
func (fs FeatureSchedule) Enabled(f ProtocolFeature, v ProtocolVersion) bool {
	act := fs.Activation(f)
	return act != math.MaxUint32 && v >= act
}

func (fs FeatureSchedule) String() string {
	var strs []string
	push := func(name string, v ProtocolVersion) {
		if v != math.MaxUint32 {
			strs = append(strs, fmt.Sprintf("%v: v%v", name, v))
		}
	}

	push("ALIAS", fs.AliasValidatorSelectionAlgorithm)
	push("COP", fs.ChunkOnlyProducers)
	push("FST", fs.FixStakingThreshold)
	push("CV", fs.ChunkValidation)

	return strings.Join(strs, ", ")
}

// NoFeatures a special schedule without any feature enabled.
var NoFeatures = FeatureSchedule{
	AliasValidatorSelectionAlgorithm: math.MaxUint32,
	ChunkOnlyProducers:               math.MaxUint32,
	FixStakingThreshold:              math.MaxUint32,
	ChunkValidation:                  math.MaxUint32,
}

// DefaultFeatures is the production schedule.
var DefaultFeatures = FeatureSchedule{
	AliasValidatorSelectionAlgorithm: 55,
	ChunkOnlyProducers:               56,
	FixStakingThreshold:              126,
	ChunkValidation:                  137,
}

var (
	schedulesMu sync.RWMutex
	schedules   = map[string]FeatureSchedule{
		"default": DefaultFeatures,
		"none":    NoFeatures,
	}
)

// GetFeatures returns the named schedule.
func GetFeatures(name string) (FeatureSchedule, bool) {
	schedulesMu.RLock()
	defer schedulesMu.RUnlock()
	fs, ok := schedules[name]
	return fs, ok
}

// SetCustomFeatures registers a schedule under the given name.
func SetCustomFeatures(name string, fs FeatureSchedule) error {
	schedulesMu.Lock()
	defer schedulesMu.Unlock()
	if _, ok := schedules[name]; ok {
		return errors.New("can not overwrite feature schedule")
	}
	schedules[name] = fs
	return nil
}
