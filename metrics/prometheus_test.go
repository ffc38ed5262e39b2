// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	require.FailNow(t, "metric family not found", name)
	return nil
}

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	assert.Nil(t, m.GetOrCreateHandler())

	// none of these may panic
	m.GetOrCreateCountVecMeter("cv", nil).AddWithLabel(1, nil)
	m.GetOrCreateGaugeVecMeter("gv", nil).SetWithLabel(1, nil)
	m.GetOrCreateHistogramVecMeter("hv", nil, nil).ObserveWithLabels(1, nil)
}

func TestPromMetrics(t *testing.T) {
	prom := newPrometheusMetrics()

	count := prom.GetOrCreateCountVecMeter("count1", []string{"op"})
	count.AddWithLabel(2, map[string]string{"op": "crank"})
	prom.GetOrCreateCountVecMeter("count1", []string{"op"}).AddWithLabel(3, map[string]string{"op": "crank"})

	countVec := prom.GetOrCreateCountVecMeter("ops_total", []string{"op", "result"})
	countVec.AddWithLabel(1, map[string]string{"op": "stake", "result": "ok"})
	countVec.AddWithLabel(1, map[string]string{"op": "stake", "result": "ok"})
	countVec.AddWithLabel(1, map[string]string{"op": "stake", "result": "revert"})

	gauge := prom.GetOrCreateGaugeVecMeter("gauge_vec", []string{"kind"})
	gauge.SetWithLabel(10, map[string]string{"kind": "a"})
	gauge.AddWithLabel(5, map[string]string{"kind": "a"})

	hist := prom.GetOrCreateHistogramVecMeter("duration_ms", []string{"op"}, BucketOpMillis)
	hist.ObserveWithLabels(3, map[string]string{"op": "stake"})
	hist.ObserveWithLabels(7, map[string]string{"op": "stake"})

	families, err := prom.registry.Gather()
	require.NoError(t, err)

	c := findFamily(t, families, "stakeledger_count1")
	assert.Equal(t, float64(5), c.GetMetric()[0].GetCounter().GetValue())

	ops := findFamily(t, families, "stakeledger_ops_total")
	assert.Len(t, ops.GetMetric(), 2)

	g := findFamily(t, families, "stakeledger_gauge_vec")
	assert.Equal(t, float64(15), g.GetMetric()[0].GetGauge().GetValue())

	h := findFamily(t, families, "stakeledger_duration_ms")
	assert.Equal(t, uint64(2), h.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(10), h.GetMetric()[0].GetHistogram().GetSampleSum())
}

func TestPromHandler(t *testing.T) {
	prom := newPrometheusMetrics()
	prom.GetOrCreateCountVecMeter("served", []string{"op"}).AddWithLabel(1, map[string]string{"op": "stake"})

	rec := httptest.NewRecorder()
	prom.GetOrCreateHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `stakeledger_served{op="stake"} 1`))
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	get := LazyLoad(func() int {
		calls++
		return 7
	})
	assert.Equal(t, 7, get())
	assert.Equal(t, 7, get())
	assert.Equal(t, 1, calls)
}
