// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gatherByName(t *testing.T) map[string]*dto.MetricFamily {
	families, err := Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	metrics = newPrometheusMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })

	count1 := Counter("count1")
	countVec := CounterVec("countVec1", []string{"zeroOrOne"})
	hist := Histogram("hist1", BucketResolveMs)
	histVec := HistogramVec("hist2", []string{"zeroOrOne"}, nil)
	gauge1 := Gauge("gauge1")
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	count1.Add(1)
	for range 5 {
		Counter("count2").Add(1)
	}

	total := 0
	for i := range 10 {
		labels := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		hist.Observe(int64(i))
		histVec.ObserveWithLabels(int64(i), labels)
		countVec.AddWithLabel(int64(i), labels)
		gaugeVec.AddWithLabel(int64(i), labels)
		gauge1.Add(int64(i))
		total += i
	}
	gaugeVec.SetWithLabel(100, map[string]string{"zeroOrOne": "0"})

	m := gatherByName(t)
	require.Equal(t, float64(1), m["epochsel_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), m["epochsel_count2"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(total), m["epochsel_hist1"].Metric[0].GetHistogram().GetSampleSum())

	sumHistVec := m["epochsel_hist2"].Metric[0].GetHistogram().GetSampleSum() +
		m["epochsel_hist2"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(total), sumHistVec)

	sumCountVec := m["epochsel_countVec1"].Metric[0].GetCounter().GetValue() +
		m["epochsel_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(total), sumCountVec)

	require.Equal(t, float64(total), m["epochsel_gauge1"].Metric[0].GetGauge().GetValue())
	// label "0" was overwritten, label "1" holds 1+3+5+7+9
	sumGaugeVec := m["epochsel_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		m["epochsel_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(125), sumGaugeVec)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	assert.Contains(t, buf.String(), "# TYPE epochsel_count1 counter")
	assert.Contains(t, buf.String(), "epochsel_count2 5")
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, noopMeter{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())

	// same name returns the same meter
	require.Same(t, lazyCounter(), Counter("lazyCounter"))
}
