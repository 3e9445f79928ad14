package routing_test

import (
	"context"
	"testing"

	"github.com/sagsin-net/heuristic/graphmodel"
	"github.com/sagsin-net/heuristic/routing"
)

func TestGreedy_ReachesDestinationOnTriangle(t *testing.T) {
	view := triangleStore(t).SnapshotView()

	route, err := routing.Greedy(context.Background(), view, "A", "C", nil)
	if err != nil {
		t.Fatal(err)
	}
	if route == nil {
		t.Fatal("expected a route, got nil")
	}
	if route.Path[0] != "A" || route.Path[len(route.Path)-1] != "C" {
		t.Errorf("unexpected route endpoints: %v", route.Path)
	}
}

func TestGreedy_DeadEndYieldsNoRouteNoError(t *testing.T) {
	store := graphmodel.NewGraphStore()
	ss := graphmodel.Snapshot{
		Timestamp: "2026-01-01T00:00:00Z",
		Nodes: []graphmodel.Node{
			{ID: "A", Status: graphmodel.StatusUp},
			{ID: "B", Status: graphmodel.StatusUp},
			{ID: "Z", Status: graphmodel.StatusUp},
		},
		Links: []graphmodel.Link{
			{Src: "A", Dst: "B", Available: true, Metrics: graphmodel.LinkMetrics{DelayMs: 1, BandwidthMbps: 100}},
		},
	}
	if _, err := store.ApplySnapshot(ss); err != nil {
		t.Fatal(err)
	}
	view := store.SnapshotView()

	route, err := routing.Greedy(context.Background(), view, "A", "Z", nil)
	if err != nil {
		t.Fatal(err)
	}
	if route != nil {
		t.Fatalf("expected no route from a dead end, got %v", route)
	}
}

func TestGreedy_EmitsSelectEventsInOrder(t *testing.T) {
	view := triangleStore(t).SnapshotView()

	var events []routing.Event
	sink := func(ev routing.Event) { events = append(events, ev) }

	_, err := routing.Greedy(context.Background(), view, "A", "C", sink)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 || events[len(events)-1].Kind != routing.EventComplete {
		t.Fatalf("expected the last event to be complete, got %v", events)
	}
	from := "A"
	for i, ev := range events[:len(events)-1] {
		if ev.Kind != routing.EventSelect || ev.From != from {
			t.Fatalf("event %d = %+v; want a select from %s", i, ev, from)
		}
		from = ev.To
	}
	if from != "C" {
		t.Errorf("select events end at %s; want C", from)
	}
}
