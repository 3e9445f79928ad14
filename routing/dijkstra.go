package routing

import (
	"container/heap"
	"context"

	"github.com/sagsin-net/heuristic/graphmodel"
)

// Dijkstra computes the minimum-composite-weight path from src to dst
// over view, emitting a relax event per edge that improves a distance
// and a final complete event carrying the resulting path (or none).
//
// Complexity: O((V+E) log V), using a lazy-decrease-key heap — stale
// entries are pushed rather than patched in place and skipped on pop
// once their vertex is finalized, mirroring dijkstra.Dijkstra in the
// teacher package.
func Dijkstra(ctx context.Context, view *graphmodel.GraphView, src, dst string, sink Sink) (*Route, error) {
	dist := map[string]float64{src: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := make(distPQ, 0, view.Len())
	heap.Init(&pq)
	heap.Push(&pq, &distItem{id: src, dist: 0})

	found := false
	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		item := heap.Pop(&pq).(*distItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true
		emit(sink, Event{Algo: "dijkstra", Kind: EventExpand, Node: u, Dist: d, HasDist: true})

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
			nd := d + w
			if cur, ok := dist[v]; ok && nd >= cur {
				continue
			}
			dist[v] = nd
			prev[v] = u
			heap.Push(&pq, &distItem{id: v, dist: nd})
			emit(sink, Event{Algo: "dijkstra", Kind: EventRelax, From: u, To: v, Dist: nd, HasDist: true})
		}
	}

	if !found {
		emit(sink, Event{Algo: "dijkstra", Kind: EventComplete, Node: dst})
		return nil, nil
	}

	path := reconstructPath(prev, src, dst)
	route, err := BuildRoute(view, path)
	if err != nil {
		return nil, err
	}
	emit(sink, Event{Algo: "dijkstra", Kind: EventComplete, Node: dst, Path: path, Dist: dist[dst], HasDist: true})

	return route, nil
}

// reconstructPath walks prev backwards from dst to src and reverses it.
func reconstructPath(prev map[string]string, src, dst string) []string {
	path := []string{dst}
	cur := dst
	for cur != src {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// distItem is one (vertex, tentative distance) entry in the lazy
// min-heap used by Dijkstra and by the engine's shortestPath; A* keeps
// its own astarItem heap.
type distItem struct {
	id   string
	dist float64
	f    float64 // never set or read; distPQ orders by dist and id only
}

// distPQ orders by dist ascending, breaking ties by node id for a
// deterministic exploration order (spec §4.3: "ties on f broken by
// lower g, then by node-id lex order" for A*; Dijkstra has no stated
// tie rule so the same deterministic order is used).
type distPQ []*distItem

func (pq distPQ) Len() int { return len(pq) }
func (pq distPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}
func (pq distPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *distPQ) Push(x interface{}) { *pq = append(*pq, x.(*distItem)) }
func (pq *distPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
