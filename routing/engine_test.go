package routing_test

import (
	"context"
	"testing"

	"github.com/sagsin-net/heuristic/graphmodel"
	"github.com/sagsin-net/heuristic/routing"
)

func squareStore(t *testing.T) *graphmodel.GraphStore {
	t.Helper()
	store := graphmodel.NewGraphStore()
	ss := graphmodel.Snapshot{
		Timestamp: "2026-01-01T00:00:00Z",
		Nodes: []graphmodel.Node{
			{ID: "A", Status: graphmodel.StatusUp},
			{ID: "B", Status: graphmodel.StatusUp},
			{ID: "C", Status: graphmodel.StatusUp},
			{ID: "D", Status: graphmodel.StatusUp},
		},
		Links: []graphmodel.Link{
			{Src: "A", Dst: "B", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
			{Src: "B", Dst: "D", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
			{Src: "A", Dst: "C", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
			{Src: "C", Dst: "D", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
		},
	}
	if _, err := store.ApplySnapshot(ss); err != nil {
		t.Fatal(err)
	}

	return store
}

func TestEngine_FindOptimalRoute_UnknownAlgorithm(t *testing.T) {
	view := squareStore(t).SnapshotView()
	engine := routing.NewEngine()

	_, err := engine.FindOptimalRoute(context.Background(), view, "A", "D", routing.AlgoName("bogus"), nil)
	if err != routing.ErrInvalidAlgorithm {
		t.Fatalf("expected ErrInvalidAlgorithm, got %v", err)
	}
}

func TestEngine_FindOptimalRoute_UnknownNodeYieldsNoRouteNoError(t *testing.T) {
	view := squareStore(t).SnapshotView()
	engine := routing.NewEngine()

	route, err := engine.FindOptimalRoute(context.Background(), view, "A", "nope", routing.AlgoDijkstra, nil)
	if err != nil {
		t.Fatal(err)
	}
	if route != nil {
		t.Fatalf("expected nil route, got %v", route)
	}
}

func TestEngine_FindKShortestPaths_NonDecreasingAndDeduped(t *testing.T) {
	view := squareStore(t).SnapshotView()
	engine := routing.NewEngine()

	routes, err := engine.FindKShortestPaths(view, "A", "D", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 distinct simple paths, got %d", len(routes))
	}
	if routes[0].TotalWeight > routes[1].TotalWeight {
		t.Errorf("expected non-decreasing weights, got %v then %v", routes[0].TotalWeight, routes[1].TotalWeight)
	}

	seen := make(map[string]bool)
	for _, r := range routes {
		key := ""
		for _, n := range r.Path {
			key += n
		}
		if seen[key] {
			t.Fatalf("duplicate path emitted: %v", r.Path)
		}
		seen[key] = true
	}
}

func TestEngine_FindBackupRoutes_EdgeDisjointFromPrimary(t *testing.T) {
	view := squareStore(t).SnapshotView()
	engine := routing.NewEngine()

	primary, err := routing.Dijkstra(context.Background(), view, "A", "D", nil)
	if err != nil {
		t.Fatal(err)
	}
	if primary == nil {
		t.Fatal("expected a primary route")
	}

	backup, err := engine.FindBackupRoutes(view, "A", "D", primary.Path)
	if err != nil {
		t.Fatal(err)
	}
	if backup == nil {
		t.Fatal("expected a backup route")
	}

	primaryEdges := make(map[[2]string]bool)
	for i := 0; i+1 < len(primary.Path); i++ {
		a, b := primary.Path[i], primary.Path[i+1]
		if a > b {
			a, b = b, a
		}
		primaryEdges[[2]string{a, b}] = true
	}
	for i := 0; i+1 < len(backup.Path); i++ {
		a, b := backup.Path[i], backup.Path[i+1]
		if a > b {
			a, b = b, a
		}
		if primaryEdges[[2]string{a, b}] {
			t.Fatalf("backup route reuses primary edge %s-%s", a, b)
		}
	}
}

func TestEngine_FindBackupRoutes_NoAlternativeReturnsNil(t *testing.T) {
	store := graphmodel.NewGraphStore()
	ss := graphmodel.Snapshot{
		Timestamp: "2026-01-01T00:00:00Z",
		Nodes: []graphmodel.Node{
			{ID: "A", Status: graphmodel.StatusUp},
			{ID: "B", Status: graphmodel.StatusUp},
		},
		Links: []graphmodel.Link{
			{Src: "A", Dst: "B", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
		},
	}
	if _, err := store.ApplySnapshot(ss); err != nil {
		t.Fatal(err)
	}
	view := store.SnapshotView()
	engine := routing.NewEngine()

	backup, err := engine.FindBackupRoutes(view, "A", "B", []string{"A", "B"})
	if err != nil {
		t.Fatal(err)
	}
	if backup != nil {
		t.Fatalf("expected no backup route, got %v", backup)
	}
}
