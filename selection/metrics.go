// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package selection

import "github.com/unc-network/epochsel/metrics"

var (
	metricResolutions        = metrics.LazyLoadCounterVec("resolutions_count", []string{"cadence", "algorithm"})
	metricResolutionErrors   = metrics.LazyLoadCounterVec("resolution_errors_count", []string{"cadence"})
	metricResolveDuration    = metrics.LazyLoadHistogram("resolve_duration_ms", metrics.BucketResolveMs)
	metricSelectedValidators = metrics.LazyLoadGaugeVec("selected_validators", []string{"cadence", "role"})
)
