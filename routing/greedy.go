package routing

import (
	"context"
	"math"

	"github.com/sagsin-net/heuristic/graphmodel"
)

// typePriority orders node types for greedy's type_heuristic term
// (spec §4.3).
var typePriority = map[graphmodel.NodeType]int{
	graphmodel.NodeTypeGroundStation: 1,
	graphmodel.NodeTypeSatellite:     2,
	graphmodel.NodeTypeShip:          3,
	graphmodel.NodeTypeDrone:         4,
	graphmodel.NodeTypeMobileDevice:  5,
	graphmodel.NodeTypeUnknown:       6,
}

// mobilityPenalty is added to type_heuristic when the candidate node's
// own type is mobile.
const mobilityPenalty = 10.0

// typeHeuristic scores how well-matched u is to the destination type v:
// 5 if identical, else 15x the priority gap, plus a mobility penalty if
// u is a mobile_device or drone.
func typeHeuristic(u, v graphmodel.NodeType) float64 {
	if u == v {
		return 5
	}
	score := 15 * math.Abs(float64(typePriority[u]-typePriority[v]))
	if u == graphmodel.NodeTypeMobileDevice || u == graphmodel.NodeTypeDrone {
		score += mobilityPenalty
	}

	return score
}

// Greedy walks from src to dst, at each step picking the unvisited
// neighbor minimizing 0.6*weight(current,n) + 0.4*type_heuristic(n,dst).
// It fails (returns nil, nil) if the current node runs out of unvisited
// neighbors, would have to revisit a node, or the walk exceeds the
// graph's node count — a safety bound against runaway loops.
func Greedy(ctx context.Context, view *graphmodel.GraphView, src, dst string, sink Sink) (*Route, error) {
	dstNode, _ := view.Node(dst)

	path := []string{src}
	visited := map[string]bool{src: true}
	current := src
	limit := view.Len()

	for current != dst {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if len(path) > limit {
			emit(sink, Event{Algo: "greedy", Kind: EventComplete, Node: dst})
			return nil, nil
		}

		best := ""
		bestCost := math.Inf(1)
		for _, n := range view.Neighbors(current) {
			if visited[n] {
				continue
			}
			w, ok := view.Weight(current, n)
			if !ok {
				continue
			}
			nNode, _ := view.Node(n)
			cost := 0.6*w + 0.4*typeHeuristic(nNode.Type, dstNode.Type)
			if cost < bestCost || (cost == bestCost && n < best) {
				best, bestCost = n, cost
			}
		}

		if best == "" || visited[best] {
			emit(sink, Event{Algo: "greedy", Kind: EventComplete, Node: dst})
			return nil, nil
		}

		emit(sink, Event{Algo: "greedy", Kind: EventSelect, From: current, To: best})
		visited[best] = true
		path = append(path, best)
		current = best
	}

	route, err := BuildRoute(view, path)
	if err != nil {
		return nil, err
	}
	emit(sink, Event{Algo: "greedy", Kind: EventComplete, Node: dst, Path: path})

	return route, nil
}
