package stability_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagsin-net/heuristic/stability"
)

func feed(h *stability.History, kind stability.EntityKind, id, metric string, values ...float64) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		h.Add(kind, id, metric, v, base.Add(time.Duration(i)*time.Second))
	}
}

func TestMetricStatsFor_ConstantSeriesHasZeroVarianceAndHighScore(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	feed(h, stability.EntityNode, "A", "cpu_load", 5, 5, 5, 5, 5)

	a := stability.NewAnalyzer(h)
	stats := a.MetricStatsFor(stability.EntityNode, "A", "cpu_load")

	require.Equal(t, 5, stats.N)
	require.InDelta(t, 5, stats.Mean, 1e-9)
	require.InDelta(t, 0, stats.Variance, 1e-9)
	require.InDelta(t, 0, stats.CV, 1e-9)
	require.InDelta(t, 1, stats.StabilityScore, 1e-9)
	require.Empty(t, stats.Anomalies)
}

func TestMetricStatsFor_EmptySeriesIsZeroValue(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	a := stability.NewAnalyzer(h)

	stats := a.MetricStatsFor(stability.EntityNode, "nope", "cpu_load")
	require.Equal(t, stability.MetricStats{}, stats)
}

func TestMetricStatsFor_ZeroMeanYieldsInfiniteCV(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	feed(h, stability.EntityLink, "A-B", "delay_ms", -1, 1, -1, 1)

	a := stability.NewAnalyzer(h)
	stats := a.MetricStatsFor(stability.EntityLink, "A-B", "delay_ms")

	require.Equal(t, 0.0, stats.Mean)
	require.True(t, math.IsInf(stats.CV, 1))
}

func TestMetricStatsFor_OutlierIsFlaggedAsAnomaly(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	// With the sample standard deviation, no point of an n-sample series
	// lies more than (n-1)/sqrt(n) deviations from the mean, so at least
	// 12 samples are needed before one outlier can pass a threshold of 3.
	// Nineteen ones and one 100 put the outlier about 4.25 deviations out.
	values := make([]float64, 0, 20)
	for i := 0; i < 19; i++ {
		values = append(values, 1)
	}
	values = append(values, 100)
	feed(h, stability.EntityNode, "A", "jitter_ms", values...)

	a := stability.NewAnalyzer(h)
	stats := a.MetricStatsFor(stability.EntityNode, "A", "jitter_ms")

	require.Len(t, stats.Anomalies, 1)
	require.Equal(t, 100.0, stats.Anomalies[0].Value)
}

func TestEntityStability_UsesCanonicalWeightsOnExactMatch(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	feed(h, stability.EntityNode, "A", "cpu_load", 1, 1, 1)
	feed(h, stability.EntityNode, "A", "jitter_ms", 1, 1, 1)
	feed(h, stability.EntityNode, "A", "queue_len", 1, 1, 1)
	feed(h, stability.EntityNode, "A", "throughput_mbps", 1, 1, 1)

	a := stability.NewAnalyzer(h)
	es := a.EntityStability(stability.EntityNode, "A")

	require.InDelta(t, 1, es.Score, 1e-9)
	require.Len(t, es.PerMetric, 4)
}

func TestEntityStability_FallsBackToArithmeticMeanOnPartialMetrics(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	feed(h, stability.EntityNode, "A", "cpu_load", 1, 1, 1)

	a := stability.NewAnalyzer(h)
	es := a.EntityStability(stability.EntityNode, "A")

	require.InDelta(t, 1, es.Score, 1e-9)
}

func TestNetworkStability_BlendsNodeAndLinkWhenBothPresent(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	feed(h, stability.EntityNode, "A", "cpu_load", 1, 1, 1)
	feed(h, stability.EntityLink, "A-B", "delay_ms", 1, 1, 1)

	a := stability.NewAnalyzer(h)
	ns := a.NetworkStability()

	require.True(t, ns.HasNode)
	require.True(t, ns.HasLink)
	require.InDelta(t, 0.4*ns.AvgNode+0.6*ns.AvgLink, ns.Overall, 1e-9)
}

func TestNetworkStability_EmptyHistoryIsZero(t *testing.T) {
	h := stability.NewHistory(50, 0.3)
	a := stability.NewAnalyzer(h)

	ns := a.NetworkStability()
	require.False(t, ns.HasNode)
	require.False(t, ns.HasLink)
	require.Equal(t, 0.0, ns.Overall)
}
