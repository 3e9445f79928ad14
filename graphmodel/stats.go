package graphmodel

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// GraphStats is the read-only summary produced by GraphStore.Stats: size,
// shape, and per-node centrality measures over the current topology.
type GraphStats struct {
	NodeCount         int
	EdgeCount         int
	Density           float64
	AverageDegree     float64
	Connected         bool
	Diameter          float64 // only meaningful when Connected
	AverageClustering float64

	Degree      map[string]int
	Betweenness map[string]float64
	Closeness   map[string]float64
	Centrality  map[string]float64 // 0.4*degree + 0.4*betweenness + 0.2*closeness, each min-max normalized
}

// CriticalNode is one entry of a top-k critical-node ranking.
type CriticalNode struct {
	ID    string
	Score float64
}

// Stats computes the structural statistics of spec §4.1: counts,
// density, average degree, diameter (when connected), average
// clustering coefficient, and degree/betweenness/closeness centrality.
//
// Betweenness and closeness are computed by mirroring the graph into a
// gonum simple.WeightedUndirectedGraph and calling
// gonum.org/v1/gonum/graph/network, the way
// vanderheijden86-beadwork/pkg/analysis/graph.go computes its own graph
// analytics over a gonum simple graph.
func (g *GraphStore) Stats() *GraphStats {
	m := g.AdjacencyMatrix()
	n := m.N()

	stats := &GraphStats{
		NodeCount:   n,
		Degree:      make(map[string]int, n),
		Betweenness: make(map[string]float64, n),
		Closeness:   make(map[string]float64, n),
		Centrality:  make(map[string]float64, n),
	}
	if n == 0 {
		return stats
	}

	gg := simple.NewWeightedUndirectedGraph(0, inf)
	for i := 0; i < n; i++ {
		gg.AddNode(simple.Node(int64(i)))
	}

	edgeCount := 0
	for i := 0; i < n; i++ {
		id, _ := m.IDAt(i)
		deg := 0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w := m.Data[i][j]
			if isInf(w) {
				continue
			}
			deg++
			if j > i {
				edgeCount++
				gg.SetWeightedEdge(gg.NewWeightedEdge(simple.Node(int64(i)), simple.Node(int64(j)), w))
			}
		}
		stats.Degree[id] = deg
	}
	stats.EdgeCount = edgeCount

	if n > 1 {
		stats.Density = 2 * float64(edgeCount) / float64(n*(n-1))
		sumDeg := 0
		for _, d := range stats.Degree {
			sumDeg += d
		}
		stats.AverageDegree = float64(sumDeg) / float64(n)
	}

	bw := network.Betweenness(gg)
	cl := network.Closeness(gg)
	for i := 0; i < n; i++ {
		id, _ := m.IDAt(i)
		stats.Betweenness[id] = bw[int64(i)]
		stats.Closeness[id] = cl[int64(i)]
	}

	stats.AverageClustering = averageClustering(m)
	stats.Diameter, stats.Connected = diameter(m)
	stats.Centrality = weightedCentrality(stats.Degree, stats.Betweenness, stats.Closeness)

	return stats
}

// weightedCentrality blends degree/betweenness/closeness with the fixed
// weights of spec §4.1 (0.4/0.4/0.2), after min-max normalizing each
// component to [0,1] so none dominates purely from differing units.
func weightedCentrality(degree map[string]int, betweenness, closeness map[string]float64) map[string]float64 {
	ids := make([]string, 0, len(degree))
	for id := range degree {
		ids = append(ids, id)
	}

	degNorm := normalizeInts(degree, ids)
	bwNorm := normalizeFloats(betweenness, ids)
	clNorm := normalizeFloats(closeness, ids)

	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		out[id] = 0.4*degNorm[id] + 0.4*bwNorm[id] + 0.2*clNorm[id]
	}

	return out
}

func normalizeInts(m map[string]int, ids []string) map[string]float64 {
	min, max := int(^uint(0)>>1), 0
	for _, id := range ids {
		v := m[id]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make(map[string]float64, len(ids))
	span := float64(max - min)
	for _, id := range ids {
		if span == 0 {
			out[id] = 0
			continue
		}
		out[id] = float64(m[id]-min) / span
	}

	return out
}

func normalizeFloats(m map[string]float64, ids []string) map[string]float64 {
	min, max := 0.0, 0.0
	first := true
	for _, id := range ids {
		v := m[id]
		if first || v < min {
			min = v
		}
		if first || v > max {
			max = v
		}
		first = false
	}
	out := make(map[string]float64, len(ids))
	span := max - min
	for _, id := range ids {
		if span == 0 {
			out[id] = 0
			continue
		}
		out[id] = (m[id] - min) / span
	}

	return out
}

// averageClustering computes the mean local clustering coefficient:
// for a node with neighbor set S, the fraction of pairs in S that are
// themselves linked. Nodes with degree < 2 contribute 0. This is a
// purely structural measure (edge presence only, not weight), computed
// directly over the adjacency matrix since gonum's graph/network
// package does not expose a clustering-coefficient routine.
func averageClustering(m *AdjacencyMatrix) float64 {
	n := m.N()
	if n == 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < n; i++ {
		var nbrs []int
		for j := 0; j < n; j++ {
			if i != j && !isInf(m.Data[i][j]) {
				nbrs = append(nbrs, j)
			}
		}
		k := len(nbrs)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if !isInf(m.Data[nbrs[a]][nbrs[b]]) {
					links++
				}
			}
		}
		possible := k * (k - 1) / 2
		total += float64(links) / float64(possible)
	}

	return total / float64(n)
}

// diameter returns the maximum finite pairwise distance in the
// Floyd-Warshall closure of m, and whether the graph is fully connected
// (every pair reachable). When not connected, the diameter value is 0
// and should be ignored, per spec §4.1 ("when connected").
func diameter(m *AdjacencyMatrix) (float64, bool) {
	n := m.N()
	if n <= 1 {
		return 0, true
	}

	dist := m.FloydWarshall()
	maxDist := 0.0
	connected := true
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if isInf(dist[i][j]) {
				connected = false
				continue
			}
			if dist[i][j] > maxDist {
				maxDist = dist[i][j]
			}
		}
	}
	if !connected {
		return 0, false
	}

	return maxDist, true
}

// TopKCritical ranks nodes by Centrality descending, breaking ties by
// higher degree then lexicographic id (spec §4.1), and returns the
// top k (or fewer, if the graph has fewer nodes).
func (s *GraphStats) TopKCritical(k int) []CriticalNode {
	ids := make([]string, 0, len(s.Centrality))
	for id := range s.Centrality {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if s.Centrality[a] != s.Centrality[b] {
			return s.Centrality[a] > s.Centrality[b]
		}
		if s.Degree[a] != s.Degree[b] {
			return s.Degree[a] > s.Degree[b]
		}

		return a < b
	})
	if k > len(ids) {
		k = len(ids)
	}
	out := make([]CriticalNode, k)
	for i := 0; i < k; i++ {
		out[i] = CriticalNode{ID: ids[i], Score: s.Centrality[ids[i]]}
	}

	return out
}
