package graphmodel

import "fmt"

// AdjacencyMatrix is an N×N dense view of the current graph's composite
// weights, plus the id<->index bijection that produced it. It is
// rebuilt wholesale on every ApplySnapshot (spec invariant: "Node <->
// adjacency-matrix index mapping is a bijection over current nodes").
type AdjacencyMatrix struct {
	Data  [][]float64
	ids   []string
	index map[string]int
}

// IndexOf returns the row/column index for id, or (-1, false) if id is
// not part of this matrix.
func (m *AdjacencyMatrix) IndexOf(id string) (int, bool) {
	i, ok := m.index[id]

	return i, ok
}

// IDAt returns the node id at row/column i, or ("", false) if i is out
// of range.
func (m *AdjacencyMatrix) IDAt(i int) (string, bool) {
	if i < 0 || i >= len(m.ids) {
		return "", false
	}

	return m.ids[i], true
}

// N returns the matrix order (number of nodes).
func (m *AdjacencyMatrix) N() int { return len(m.ids) }

// AdjacencyMatrix builds the dense N×N composite-weight matrix for the
// current graph: 0 on the diagonal, +Inf for missing edges, the
// composite weight elsewhere, symmetric since the graph is undirected.
//
// Loop order is fixed (row-major, i then j) for deterministic output,
// matching the convention of matrix/impl_floydwarshall.go in the
// teacher package this is grounded on.
func (g *GraphStore) AdjacencyMatrix() *AdjacencyMatrix {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.ids)
	ids := make([]string, n)
	copy(ids, g.ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	data := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				row[j] = 0
			default:
				row[j] = inf
			}
		}
		data[i] = row
	}

	for i := 0; i < n; i++ {
		nbrs := g.adjacency[ids[i]]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if e, ok := nbrs[ids[j]]; ok {
				data[i][j] = e.Weight
			}
		}
	}

	return &AdjacencyMatrix{Data: data, ids: ids, index: index}
}

// FloydWarshall computes the all-pairs shortest composite-weight
// distance closure of m, in place on a copy, using the fixed k->i->j
// loop order carried over from matrix/impl_floydwarshall.go.
func (m *AdjacencyMatrix) FloydWarshall() [][]float64 {
	n := m.N()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		copy(dist[i], m.Data[i])
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := dist[i][k]
			if isInf(ik) {
				continue
			}
			for j := 0; j < n; j++ {
				kj := dist[k][j]
				if isInf(kj) {
					continue
				}
				if cand := ik + kj; cand < dist[i][j] {
					dist[i][j] = cand
				}
			}
		}
	}

	return dist
}

func isInf(v float64) bool { return v > 1e300 }

// String renders the matrix for debugging/test failure messages.
func (m *AdjacencyMatrix) String() string {
	return fmt.Sprintf("AdjacencyMatrix{n=%d}", m.N())
}
