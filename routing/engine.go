package routing

import (
	"container/heap"
	"context"
	"errors"
	"sort"

	"github.com/sagsin-net/heuristic/graphmodel"
)

// AlgoName identifies one of the three routing algorithms by the wire
// name used in RouteRequest/AlgorithmRunRequest (spec §6).
type AlgoName string

const (
	AlgoAStar    AlgoName = "astar"
	AlgoDijkstra AlgoName = "dijkstra"
	AlgoGreedy   AlgoName = "greedy"
)

// ErrInvalidAlgorithm is the InvalidArgument error kind of spec §7,
// returned when FindOptimalRoute is asked to dispatch an unknown
// algorithm name.
var ErrInvalidAlgorithm = errors.New("routing: unknown algorithm name")

type algoFunc func(ctx context.Context, view *graphmodel.GraphView, src, dst string, sink Sink) (*Route, error)

var algorithms = map[AlgoName]algoFunc{
	AlgoAStar:    AStar,
	AlgoDijkstra: Dijkstra,
	AlgoGreedy:   Greedy,
}

// Engine dispatches route queries to the named algorithm and implements
// the multi-path queries (k-shortest, backup) that sit above a single
// algorithm run.
type Engine struct{}

// NewEngine returns a ready-to-use Engine. Engine holds no state of its
// own; all per-query state lives in the GraphView passed to each call.
func NewEngine() *Engine { return &Engine{} }

// FindOptimalRoute dispatches by algo name, handling the two cases that
// are common to every algorithm once: an unknown src/dst (no route, no
// error) and the trivial src==dst path. Everything else is delegated to
// the algorithm's own implementation, which emits its own step events.
func (e *Engine) FindOptimalRoute(ctx context.Context, view *graphmodel.GraphView, src, dst string, algo AlgoName, sink Sink) (*Route, error) {
	fn, ok := algorithms[algo]
	if !ok {
		return nil, ErrInvalidAlgorithm
	}

	if !view.HasNode(src) || !view.HasNode(dst) {
		emit(sink, Event{Algo: string(algo), Kind: EventComplete, Node: dst})
		return nil, nil
	}

	if src == dst {
		route := TrivialRoute(src)
		emit(sink, Event{Algo: string(algo), Kind: EventComplete, Node: dst, Path: route.Path})
		return route, nil
	}

	return fn(ctx, view, src, dst, sink)
}

// FindKShortestPaths returns up to k distinct simple paths from src to
// dst in non-decreasing order of total_weight, via Yen's algorithm over
// view. Duplicate paths are never emitted. No step events are produced;
// this is a batch query, not a single algorithm run to visualize.
func (e *Engine) FindKShortestPaths(view *graphmodel.GraphView, src, dst string, k int) ([]*Route, error) {
	if k <= 0 || !view.HasNode(src) || !view.HasNode(dst) {
		return nil, nil
	}
	if src == dst {
		return []*Route{TrivialRoute(src)}, nil
	}

	first, ok := shortestPath(view, src, dst, nil, nil)
	if !ok {
		return nil, nil
	}

	paths := [][]string{first}
	var candidates []kCandidate

	for len(paths) < k {
		prev := paths[len(paths)-1]
		for i := 0; i < len(prev)-1; i++ {
			spurNode := prev[i]
			rootPath := prev[:i+1]

			excludedEdges := make(map[[2]string]bool)
			for _, p := range paths {
				if hasPrefix(p, rootPath) && len(p) > i+1 {
					excludedEdges[canonicalEdge(p[i], p[i+1])] = true
				}
			}
			excludedNodes := make(map[string]bool)
			for _, n := range rootPath[:len(rootPath)-1] {
				excludedNodes[n] = true
			}

			spurPath, ok := shortestPath(view, spurNode, dst, excludedNodes, excludedEdges)
			if !ok {
				continue
			}

			total := append(append([]string{}, rootPath[:len(rootPath)-1]...), spurPath...)
			if containsPath(paths, total) || containsCandidate(candidates, total) {
				continue
			}
			candidates = append(candidates, kCandidate{path: total, weight: pathWeight(view, total)})
		}

		if len(candidates) == 0 {
			break
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].weight != candidates[j].weight {
				return candidates[i].weight < candidates[j].weight
			}

			return pathLess(candidates[i].path, candidates[j].path)
		})
		paths = append(paths, candidates[0].path)
		candidates = candidates[1:]
	}

	routes := make([]*Route, 0, len(paths))
	for _, p := range paths {
		r, err := BuildRoute(view, p)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	return routes, nil
}

// FindBackupRoutes builds a view with the primary path's edges removed
// and finds a single alternative route on it, reporting metrics against
// the original (unrestricted) view's weights, per spec §4.4. Returns
// (nil, nil) if no alternative exists.
func (e *Engine) FindBackupRoutes(view *graphmodel.GraphView, src, dst string, primary []string) (*Route, error) {
	if len(primary) < 2 {
		return nil, nil
	}

	restricted := view.WithoutEdges(edgePairs(primary))
	path, ok := shortestPath(restricted, src, dst, nil, nil)
	if !ok {
		return nil, nil
	}

	return BuildRoute(view, path)
}

type kCandidate struct {
	path   []string
	weight float64
}

func edgePairs(path []string) [][2]string {
	pairs := make([][2]string, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		pairs = append(pairs, [2]string{path[i], path[i+1]})
	}

	return pairs
}

func canonicalEdge(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}

	return [2]string{b, a}
}

func hasPrefix(path, prefix []string) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}

	return true
}

func containsPath(paths [][]string, p []string) bool {
	for _, q := range paths {
		if equalPath(q, p) {
			return true
		}
	}

	return false
}

func containsCandidate(cands []kCandidate, p []string) bool {
	for _, c := range cands {
		if equalPath(c.path, p) {
			return true
		}
	}

	return false
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func pathLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func pathWeight(view *graphmodel.GraphView, path []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, _ := view.Weight(path[i], path[i+1])
		total += w
	}

	return total
}

// shortestPath is Dijkstra over view with optional node/edge exclusions,
// used internally by k-shortest-paths and backup-route queries. It
// produces no step events — those are only meaningful for the single
// visualized run driven by FindOptimalRoute.
func shortestPath(view *graphmodel.GraphView, src, dst string, excludedNodes map[string]bool, excludedEdges map[[2]string]bool) ([]string, bool) {
	if src == dst {
		return []string{src}, true
	}

	dist := map[string]float64{src: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := make(distPQ, 0, view.Len())
	heap.Init(&pq)
	heap.Push(&pq, &distItem{id: src, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*distItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			return reconstructPath(prev, src, dst), true
		}

		for _, v := range view.Neighbors(u) {
			if visited[v] || excludedNodes[v] {
				continue
			}
			if excludedEdges[canonicalEdge(u, v)] {
				continue
			}
			w, ok := view.Weight(u, v)
			if !ok {
				continue
			}
			nd := d + w
			if cur, ok := dist[v]; ok && nd >= cur {
				continue
			}
			dist[v] = nd
			prev[v] = u
			heap.Push(&pq, &distItem{id: v, dist: nd})
		}
	}

	return nil, false
}
