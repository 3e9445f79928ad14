package routing

import (
	"errors"

	"github.com/sagsin-net/heuristic/graphmodel"
)

// ErrBrokenPath indicates BuildRoute was asked to cost a path containing
// a pair of consecutive nodes that are no longer adjacent in the view.
// Internal algorithm bug if ever observed from a freshly-found path.
var ErrBrokenPath = errors.New("routing: path contains a non-adjacent hop")

// Route is the uniform result contract of spec §4.2: every algorithm
// either returns nothing (no route) or one Route, built by reading
// edge attributes from the same GraphView the search used.
type Route struct {
	Path             []string
	TotalWeight      float64
	TotalDelayMs     float64
	TotalJitterMs    float64
	AverageLossRate  float64
	MinBandwidthMbps float64
	HopCount         int
	StabilityScore   float64
}

// TrivialRoute is the Route for src == dst: a single-node path with all
// weights and hop count zero and perfect stability (spec §4.2).
func TrivialRoute(node string) *Route {
	return &Route{
		Path:             []string{node},
		TotalWeight:      0,
		TotalDelayMs:     0,
		TotalJitterMs:    0,
		AverageLossRate:  0,
		MinBandwidthMbps: 0,
		HopCount:         0,
		StabilityScore:   1,
	}
}

// BuildRoute derives a Route by summing/averaging edge attributes along
// path, reading from view — never from a potentially newer snapshot.
func BuildRoute(view *graphmodel.GraphView, path []string) (*Route, error) {
	if len(path) == 1 {
		return TrivialRoute(path[0]), nil
	}

	r := &Route{Path: path, HopCount: len(path) - 1}

	var lossSum float64
	minBw := -1.0
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		w, ok := view.Weight(u, v)
		if !ok {
			return nil, ErrBrokenPath
		}
		m, _ := view.LinkMetrics(u, v)

		r.TotalWeight += w
		r.TotalDelayMs += m.DelayMs
		r.TotalJitterMs += m.JitterMs
		lossSum += m.LossRate
		if minBw < 0 || m.BandwidthMbps < minBw {
			minBw = m.BandwidthMbps
		}
	}
	if minBw < 0 {
		minBw = 0
	}
	r.MinBandwidthMbps = minBw
	r.AverageLossRate = lossSum / float64(r.HopCount)
	r.StabilityScore = clamp01(1 - r.TotalJitterMs/1000 - r.AverageLossRate*10)

	return r, nil
}

// clamp01 restricts v to the closed interval [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
