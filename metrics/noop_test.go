// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	Counter("count1").Add(1)
	Histogram("hist1", nil).Observe(3)
	HistogramVec("hist2", []string{"cadence"}, nil).ObserveWithLabels(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	CounterVec("countVec1", []string{"cadence"}).AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	GaugeVec("gaugeVec1", []string{"cadence"}).SetWithLabel(1, nil)
	Gauge("gauge1").Set(2)

	families, err := Gather()
	require.NoError(t, err)
	assert.Empty(t, families)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	assert.Empty(t, buf.String())
}
