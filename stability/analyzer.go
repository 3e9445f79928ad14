package stability

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultAnomalyThreshold is the default z-like threshold of spec §4.6.
const DefaultAnomalyThreshold = 3.0

// canonicalNodeMetrics and canonicalLinkMetrics are the metric sets and
// fixed weights spec §4.6 combines with, when an entity's measured
// metrics match exactly.
var (
	canonicalNodeMetrics = map[string]float64{
		"cpu_load":        0.30,
		"jitter_ms":       0.30,
		"queue_len":       0.20,
		"throughput_mbps": 0.20,
	}
	canonicalLinkMetrics = map[string]float64{
		"delay_ms":       0.35,
		"jitter_ms":      0.35,
		"loss_rate":      0.20,
		"bandwidth_mbps": 0.10,
	}
)

// MetricStats is the single-time-series statistics of spec §4.6.
type MetricStats struct {
	N               int
	Mean            float64
	Variance        float64
	Std             float64
	CV              float64 // +Inf if Mean == 0
	Trend           float64 // least-squares slope over the index axis
	StabilityScore  float64
	Anomalies       []Sample
}

// Analyzer computes statistics over a History's recorded series.
type Analyzer struct {
	history          *History
	anomalyThreshold float64
}

// NewAnalyzer returns an Analyzer reading from h, using
// DefaultAnomalyThreshold.
func NewAnalyzer(h *History) *Analyzer {
	return &Analyzer{history: h, anomalyThreshold: DefaultAnomalyThreshold}
}

// MetricStatsFor computes MetricStats for one (entity, metric) series,
// using gonum.org/v1/gonum/stat for mean, sample variance, and the
// least-squares trend slope.
func (a *Analyzer) MetricStatsFor(kind EntityKind, id, metric string) MetricStats {
	samples := a.history.History(kind, id, metric)
	n := len(samples)
	if n == 0 {
		return MetricStats{}
	}

	values := make([]float64, n)
	for i, s := range samples {
		values[i] = s.Value
	}

	mean := stat.Mean(values, nil)

	var variance, std float64
	if n > 1 {
		variance = stat.Variance(values, nil)
		std = math.Sqrt(variance)
	}

	cv := math.Inf(1)
	if mean != 0 {
		cv = std / mean
	}

	var trend float64
	if n >= 3 {
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
		}
		_, slope := stat.LinearRegression(xs, values, nil, false)
		trend = slope
	}

	stabilityScore := clamp01(0.6*math.Max(0, 1-cv/2) + 0.4*math.Max(0, 1-10*math.Abs(trend)/(mean+0.001)))

	var anomalies []Sample
	denom := std + 0.001
	for i, v := range values {
		if math.Abs(v-mean)/denom > a.anomalyThreshold {
			anomalies = append(anomalies, samples[i])
		}
	}

	return MetricStats{
		N:              n,
		Mean:           mean,
		Variance:       variance,
		Std:            std,
		CV:             cv,
		Trend:          trend,
		StabilityScore: stabilityScore,
		Anomalies:      anomalies,
	}
}

// EntityStability is the aggregate stability of one entity, combining
// its per-metric scores.
type EntityStability struct {
	Entity    EntityRef
	Score     float64
	PerMetric map[string]MetricStats
}

// EntityStability computes the aggregate stability of one entity: if
// its measured metrics exactly match the canonical set for its kind,
// metrics are combined with the fixed weights of spec §4.6; otherwise
// the arithmetic mean of whatever per-metric scores are present is used.
func (a *Analyzer) EntityStability(kind EntityKind, id string) EntityStability {
	metrics := a.history.MetricsFor(kind, id)
	per := make(map[string]MetricStats, len(metrics))
	for _, m := range metrics {
		per[m] = a.MetricStatsFor(kind, id, m)
	}

	weights := canonicalWeights(kind)
	score := combine(per, weights)

	return EntityStability{Entity: EntityRef{Kind: kind, ID: id}, Score: score, PerMetric: per}
}

func canonicalWeights(kind EntityKind) map[string]float64 {
	if kind == EntityNode {
		return canonicalNodeMetrics
	}

	return canonicalLinkMetrics
}

// combine applies the fixed weights when the metric set matches
// exactly, falling back to an arithmetic mean otherwise.
func combine(per map[string]MetricStats, weights map[string]float64) float64 {
	if len(per) == 0 {
		return 0
	}

	if sameKeys(per, weights) {
		score := 0.0
		for metric, w := range weights {
			score += w * per[metric].StabilityScore
		}

		return clamp01(score)
	}

	sum := 0.0
	for _, s := range per {
		sum += s.StabilityScore
	}

	return clamp01(sum / float64(len(per)))
}

func sameKeys(a map[string]MetricStats, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			return false
		}
	}

	return true
}

// NetworkStability is the whole-network aggregate of spec §4.6.
type NetworkStability struct {
	AvgNode, MinNode, VarNode float64
	AvgLink, MinLink, VarLink float64
	HasNode, HasLink          bool
	Overall                   float64
}

// NetworkStability averages/min/variances node and link entity
// stabilities and blends them 0.4/0.6 (node/link) when both kinds are
// present, falling back to whichever kind is present, or 0 if neither.
func (a *Analyzer) NetworkStability() NetworkStability {
	var nodeScores, linkScores []float64
	for _, ref := range a.history.Entities() {
		s := a.EntityStability(ref.Kind, ref.ID)
		if ref.Kind == EntityNode {
			nodeScores = append(nodeScores, s.Score)
		} else {
			linkScores = append(linkScores, s.Score)
		}
	}

	var ns NetworkStability
	if len(nodeScores) > 0 {
		ns.HasNode = true
		ns.AvgNode = stat.Mean(nodeScores, nil)
		ns.MinNode = minOf(nodeScores)
		if len(nodeScores) > 1 {
			ns.VarNode = stat.Variance(nodeScores, nil)
		}
	}
	if len(linkScores) > 0 {
		ns.HasLink = true
		ns.AvgLink = stat.Mean(linkScores, nil)
		ns.MinLink = minOf(linkScores)
		if len(linkScores) > 1 {
			ns.VarLink = stat.Variance(linkScores, nil)
		}
	}

	switch {
	case ns.HasNode && ns.HasLink:
		ns.Overall = 0.4*ns.AvgNode + 0.6*ns.AvgLink
	case ns.HasNode:
		ns.Overall = ns.AvgNode
	case ns.HasLink:
		ns.Overall = ns.AvgLink
	default:
		ns.Overall = 0
	}

	return ns
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}

	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
