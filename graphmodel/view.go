package graphmodel

import "sort"

// edgeView is the read-only projection of an edge exposed to algorithms.
type edgeView struct {
	Weight  float64
	Metrics LinkMetrics
}

// GraphView is an immutable, point-in-time copy of the graph's topology.
// Routing algorithms take a View once at the start of a query and read
// only from it thereafter, so an in-flight ApplySnapshot can never change
// the graph out from under a running search (spec §5).
type GraphView struct {
	nodes     map[string]Node
	adjacency map[string]map[string]edgeView
	ids       []string
	index     map[string]int
}

// SnapshotView returns a consistent, independent copy of the graph. It is
// the only way routing code should touch graph data: a single RLock is
// held just long enough to copy, so long-running algorithms never block
// a concurrent ApplySnapshot.
func (g *GraphStore) SnapshotView() *GraphView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make(map[string]Node, len(g.nodes))
	for id, n := range g.nodes {
		nodes[id] = n
	}

	adjacency := make(map[string]map[string]edgeView, len(g.adjacency))
	for id, nbrs := range g.adjacency {
		cp := make(map[string]edgeView, len(nbrs))
		for n, e := range nbrs {
			cp[n] = edgeView{Weight: e.Weight, Metrics: e.Link.Metrics}
		}
		adjacency[id] = cp
	}

	ids := make([]string, len(g.ids))
	copy(ids, g.ids)

	index := make(map[string]int, len(g.index))
	for k, v := range g.index {
		index[k] = v
	}

	return &GraphView{nodes: nodes, adjacency: adjacency, ids: ids, index: index}
}

// HasNode reports whether id exists in this view.
func (v *GraphView) HasNode(id string) bool {
	_, ok := v.nodes[id]

	return ok
}

// Node returns the node record for id and whether it was present.
func (v *GraphView) Node(id string) (Node, bool) {
	n, ok := v.nodes[id]

	return n, ok
}

// Neighbors returns the sorted neighbor ids of id: nil if id is unknown,
// an empty slice if id is isolated.
func (v *GraphView) Neighbors(id string) []string {
	nbrs, ok := v.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// Weight returns the composite weight of edge (u,v) and whether it exists.
func (v *GraphView) Weight(u, v2 string) (float64, bool) {
	nbrs, ok := v.adjacency[u]
	if !ok {
		return inf, false
	}
	e, ok := nbrs[v2]
	if !ok {
		return inf, false
	}

	return e.Weight, true
}

// LinkMetrics returns the metrics tuple of edge (u,v) and whether it exists.
func (v *GraphView) LinkMetrics(u, v2 string) (LinkMetrics, bool) {
	nbrs, ok := v.adjacency[u]
	if !ok {
		return LinkMetrics{}, false
	}
	e, ok := nbrs[v2]
	if !ok {
		return LinkMetrics{}, false
	}

	return e.Metrics, true
}

// IDs returns the sorted list of all node ids in this view.
func (v *GraphView) IDs() []string {
	out := make([]string, len(v.ids))
	copy(out, v.ids)

	return out
}

// Len reports the number of nodes in this view.
func (v *GraphView) Len() int { return len(v.nodes) }

// WithoutEdges returns a derived view with the given undirected edges
// removed from adjacency. Node data, ids and index are shared with v;
// the adjacency map is copied into a second independent map, so v
// itself is left unchanged. Used by the routing engine to compute edge-disjoint backup routes
// (spec §4.4).
func (v *GraphView) WithoutEdges(pairs [][2]string) *GraphView {
	adjacency := make(map[string]map[string]edgeView, len(v.adjacency))
	for id, nbrs := range v.adjacency {
		cp := make(map[string]edgeView, len(nbrs))
		for n, e := range nbrs {
			cp[n] = e
		}
		adjacency[id] = cp
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		if nbrs, ok := adjacency[a]; ok {
			delete(nbrs, b)
		}
		if nbrs, ok := adjacency[b]; ok {
			delete(nbrs, a)
		}
	}

	return &GraphView{nodes: v.nodes, adjacency: adjacency, ids: v.ids, index: v.index}
}
