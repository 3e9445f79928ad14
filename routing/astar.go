package routing

import (
	"container/heap"
	"context"

	"github.com/sagsin-net/heuristic/graphmodel"
)

// defaultIsolatedWeight is min_outgoing_weight(u) when u has no incident
// edges (spec §4.3).
const defaultIsolatedWeight = 100.0

// AStar computes the minimum-composite-weight path from src to dst over
// view using a topology-based heuristic: min_outgoing_weight(u) times
// the unweighted BFS hop count to dst, falling back to a type-based
// estimate when dst is unreachable by BFS. The open set is a min-heap
// ordered by f=g+h, ties broken by lower g then node-id lex order. A
// node, once popped and visited, is never re-expanded — the heuristic
// is consistent given the weight floor and non-negative h.
func AStar(ctx context.Context, view *graphmodel.GraphView, src, dst string, sink Sink) (*Route, error) {
	gScore := map[string]float64{src: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := make(astarPQ, 0, view.Len())
	heap.Init(&pq)
	heap.Push(&pq, &astarItem{id: src, g: 0, f: heuristic(view, src, dst)})

	found := false
	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		item := heap.Pop(&pq).(*astarItem)
		u := item.id
		if visited[u] {
			continue
		}
		visited[u] = true
		emit(sink, Event{
			Algo: "astar", Kind: EventExpand, Node: u,
			G: item.g, HasG: true, F: item.f, HasF: true,
			OpenSize: pq.Len(), HasOpenSize: true,
		})

		if u == dst {
			found = true
			break
		}

		for _, v := range view.Neighbors(u) {
			if visited[v] {
				continue
			}
			w, ok := view.Weight(u, v)
			if !ok {
				continue
			}
			ng := gScore[u] + w
			if cur, ok := gScore[v]; ok && ng >= cur {
				continue
			}
			gScore[v] = ng
			prev[v] = u
			nf := ng + heuristic(view, v, dst)
			heap.Push(&pq, &astarItem{id: v, g: ng, f: nf})
			emit(sink, Event{Algo: "astar", Kind: EventConsider, From: u, To: v, G: ng, HasG: true, F: nf, HasF: true})
		}
	}

	if !found {
		emit(sink, Event{Algo: "astar", Kind: EventComplete, Node: dst})
		return nil, nil
	}

	path := reconstructPath(prev, src, dst)
	route, err := BuildRoute(view, path)
	if err != nil {
		return nil, err
	}
	emit(sink, Event{Algo: "astar", Kind: EventComplete, Node: dst, Path: path, G: gScore[dst], HasG: true})

	return route, nil
}

// heuristic is h(u,v) = min_outgoing_weight(u) * max(1, hops(u,v)).
func heuristic(view *graphmodel.GraphView, u, v string) float64 {
	if u == v {
		return 0
	}

	hops := bfsHops(view, u, v)
	if hops < 0 {
		hops = typeFallbackHops(view, u, v)
	}
	if hops < 1 {
		hops = 1
	}

	return minOutgoingWeight(view, u) * float64(hops)
}

// minOutgoingWeight is the minimum edge weight among u's incident
// edges, or defaultIsolatedWeight if u has none.
func minOutgoingWeight(view *graphmodel.GraphView, u string) float64 {
	best := -1.0
	for _, n := range view.Neighbors(u) {
		w, ok := view.Weight(u, n)
		if !ok {
			continue
		}
		if best < 0 || w < best {
			best = w
		}
	}
	if best < 0 {
		return defaultIsolatedWeight
	}

	return best
}

// bfsHops is the unweighted hop distance from u to v, or -1 if v is
// unreachable from u by BFS.
func bfsHops(view *graphmodel.GraphView, u, v string) int {
	if u == v {
		return 0
	}

	visited := map[string]bool{u: true}
	queue := []string{u}
	depth := map[string]int{u: 0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range view.Neighbors(cur) {
			if visited[n] {
				continue
			}
			visited[n] = true
			depth[n] = depth[cur] + 1
			if n == v {
				return depth[n]
			}
			queue = append(queue, n)
		}
	}

	return -1
}

// typeFallbackHops estimates hop count by node type when BFS finds no
// path at all: same type -> 1, either endpoint a ground station -> 2,
// otherwise -> 3 (spec §4.3).
func typeFallbackHops(view *graphmodel.GraphView, u, v string) int {
	un, _ := view.Node(u)
	vn, _ := view.Node(v)
	if un.Type == vn.Type {
		return 1
	}
	if un.Type == graphmodel.NodeTypeGroundStation || vn.Type == graphmodel.NodeTypeGroundStation {
		return 2
	}

	return 3
}

// astarItem is one (vertex, g, f) entry in A*'s open set.
type astarItem struct {
	id   string
	g, f float64
}

// astarPQ orders by f ascending, ties broken by lower g then node-id
// lex order, per spec §4.3.
type astarPQ []*astarItem

func (pq astarPQ) Len() int { return len(pq) }
func (pq astarPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].g != pq[j].g {
		return pq[i].g < pq[j].g
	}

	return pq[i].id < pq[j].id
}
func (pq astarPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *astarPQ) Push(x interface{}) { *pq = append(*pq, x.(*astarItem)) }
func (pq *astarPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
