package httpapi

import (
	"github.com/sagsin-net/heuristic/facade"
	"github.com/sagsin-net/heuristic/graphmodel"
	"github.com/sagsin-net/heuristic/routing"
)

func snapshotFromWire(w graphSnapshotWire) graphmodel.Snapshot {
	nodes := make([]graphmodel.Node, len(w.Nodes))
	for i, n := range w.Nodes {
		nodes[i] = graphmodel.Node{
			ID:     n.ID,
			Type:   graphmodel.ParseNodeType(n.Type),
			Status: n.Status,
			Metrics: graphmodel.NodeMetrics{
				CPULoad:        n.CPULoad,
				JitterMs:       n.JitterMs,
				QueueLen:       n.QueueLen,
				ThroughputMbps: n.ThroughputMbps,
			},
		}
	}

	links := make([]graphmodel.Link, len(w.Links))
	for i, l := range w.Links {
		links[i] = graphmodel.Link{
			Src:       l.Src,
			Dst:       l.Dst,
			Available: l.Available,
			Metrics: graphmodel.LinkMetrics{
				DelayMs:       l.DelayMs,
				JitterMs:      l.JitterMs,
				LossRate:      l.LossRate,
				BandwidthMbps: l.BandwidthMbps,
			},
		}
	}

	return graphmodel.Snapshot{Timestamp: w.Timestamp, Nodes: nodes, Links: links}
}

func routeResponseFromResult(r facade.RouteResult) routeResponseWire {
	out := routeResponseWire{Success: r.Success, Message: r.Message}
	if r.Route != nil {
		out.Path = r.Route.Path
		out.TotalWeight = r.Route.TotalWeight
		out.TotalDelayMs = r.Route.TotalDelayMs
		out.StabilityScore = r.Route.StabilityScore
		out.HopCount = r.Route.HopCount
	}

	return out
}

func routeResponseFromRoute(r *routing.Route) *routeResponseWire {
	if r == nil {
		return nil
	}

	return &routeResponseWire{
		Success:        true,
		Path:           r.Path,
		TotalWeight:    r.TotalWeight,
		TotalDelayMs:   r.TotalDelayMs,
		StabilityScore: r.StabilityScore,
		HopCount:       r.HopCount,
	}
}

func streamEventToWire(ev facade.StreamEvent) streamEventWire {
	out := streamEventWire{Kind: string(ev.Kind), Algo: string(ev.Algo), Src: ev.Src, Dst: ev.Dst}

	if ev.Step != nil {
		s := ev.Step
		out.Action = string(s.Kind)
		out.Node = s.Node
		out.From = s.From
		out.To = s.To
		if s.HasOpenSize {
			v := s.OpenSize
			out.OpenSize = &v
		}
		if s.HasG {
			v := s.G
			out.G = &v
		}
		if s.HasF {
			v := s.F
			out.F = &v
		}
		if s.HasDist {
			v := s.Dist
			out.Dist = &v
		}
	}

	if ev.Kind == facade.StreamComplete {
		out.Result = routeResponseFromRoute(ev.Result)
	}

	return out
}

func algoFromString(s string) routing.AlgoName {
	if s == "" {
		return routing.AlgoAStar
	}

	return routing.AlgoName(s)
}

