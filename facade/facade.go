// Package facade is the single entry point spec §4.7 describes: it
// forwards to the graph store and stability history, dispatches route
// queries to the routing engine, and is the only component that
// converts internal sentinel errors into the external ErrKind
// classification of spec §7. No error is silently swallowed here;
// every rejected snapshot, NotFound/NoPath outcome, and internal
// algorithm error is logged once with the operation and ids involved.
package facade

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sagsin-net/heuristic/graphmodel"
	"github.com/sagsin-net/heuristic/internal/obslog"
	"github.com/sagsin-net/heuristic/routing"
	"github.com/sagsin-net/heuristic/stability"
)

// Facade bundles the graph store, stability history/analyzer, and
// routing engine behind the three operations of spec §4.7.
type Facade struct {
	store    *graphmodel.GraphStore
	history  *stability.History
	analyzer *stability.Analyzer
	engine   *routing.Engine
	runs     *recentRuns
	metrics  *Metrics
	log      *obslog.Logger
}

// New builds a Facade with its own GraphStore and stability History,
// ready to serve requests.
func New(historyWindow int, emaAlpha float64, recentRunsCap int, metrics *Metrics, log *obslog.Logger) *Facade {
	if log == nil {
		log = obslog.Default()
	}

	h := stability.NewHistory(historyWindow, emaAlpha)

	return &Facade{
		store:    graphmodel.NewGraphStore(),
		history:  h,
		analyzer: stability.NewAnalyzer(h),
		engine:   routing.NewEngine(),
		runs:     newRecentRuns(recentRunsCap),
		metrics:  metrics,
		log:      log.With("component", "facade"),
	}
}

// Store exposes the underlying GraphStore for read-only structural
// queries (Stats, TopKCritical) that sit outside the three facade
// operations spec.md names.
func (f *Facade) Store() *graphmodel.GraphStore { return f.store }

// Analyzer exposes the stability analyzer for diagnostic queries.
func (f *Facade) Analyzer() *stability.Analyzer { return f.analyzer }

// ApplyResult is the UpdateResponse shape of spec §6.
type ApplyResult struct {
	Success bool
	Message string
}

// ApplySnapshot forwards ss to the graph store. On success, every node
// and link metric in ss is ingested into the stability history under
// the snapshot's own timestamp, per spec §4.7. On failure (malformed
// timestamp, the Transient kind of spec §7), the store and history are
// left untouched.
func (f *Facade) ApplySnapshot(ss graphmodel.Snapshot) ApplyResult {
	ok, err := f.store.ApplySnapshot(ss)
	if err != nil {
		f.log.Warn("snapshot rejected", "op", "apply_snapshot", "error", err.Error())
		f.recordSnapshot("rejected")

		return ApplyResult{Success: false, Message: err.Error()}
	}
	if !ok {
		// Unreachable with the current ApplySnapshot contract, but kept
		// so ApplyResult always mirrors the (bool, error) it wraps.
		return ApplyResult{Success: false, Message: "snapshot not applied"}
	}

	ts := f.store.LastUpdate()
	for _, n := range ss.Nodes {
		f.history.Add(stability.EntityNode, n.ID, "cpu_load", n.Metrics.CPULoad, ts)
		f.history.Add(stability.EntityNode, n.ID, "jitter_ms", n.Metrics.JitterMs, ts)
		f.history.Add(stability.EntityNode, n.ID, "queue_len", float64(n.Metrics.QueueLen), ts)
		f.history.Add(stability.EntityNode, n.ID, "throughput_mbps", n.Metrics.ThroughputMbps, ts)
	}
	for _, l := range ss.Links {
		id := linkEntityID(l.Src, l.Dst)
		f.history.Add(stability.EntityLink, id, "delay_ms", l.Metrics.DelayMs, ts)
		f.history.Add(stability.EntityLink, id, "jitter_ms", l.Metrics.JitterMs, ts)
		f.history.Add(stability.EntityLink, id, "loss_rate", l.Metrics.LossRate, ts)
		f.history.Add(stability.EntityLink, id, "bandwidth_mbps", l.Metrics.BandwidthMbps, ts)
	}

	f.recordSnapshot("applied")
	if f.metrics != nil {
		f.metrics.NodeCount.Set(float64(f.store.NodeCount()))
		f.metrics.EdgeCount.Set(float64(f.store.EdgeCount()))
	}
	f.log.Info("snapshot applied", "op", "apply_snapshot", "nodes", len(ss.Nodes), "links", len(ss.Links))

	return ApplyResult{Success: true, Message: "applied"}
}

// linkEntityID is the canonical entity id used to key a link's
// stability series, independent of which endpoint order the wire
// message carried.
func linkEntityID(src, dst string) string {
	if src <= dst {
		return src + "~" + dst
	}

	return dst + "~" + src
}

// RouteResult is the RouteResponse shape of spec §6.
type RouteResult struct {
	Success bool
	Route   *routing.Route
	Message string
}

// RequestRoute dispatches to the routing engine and returns a
// structured result: InvalidArgument surfaces as an error; an unknown
// src/dst or an algorithm that never reaches dst both surface as
// Success=false with a message (NotFound / NoPath, spec §7), never as
// an error.
func (f *Facade) RequestRoute(ctx context.Context, src, dst string, algo routing.AlgoName) (RouteResult, error) {
	view := f.store.SnapshotView()

	route, err := f.engine.FindOptimalRoute(ctx, view, src, dst, algo, nil)
	if err != nil {
		if errors.Is(err, routing.ErrInvalidAlgorithm) {
			f.log.Warn("route request rejected", "op", "request_route", "algo", string(algo), "error", err.Error())
			f.recordRoute(algo, "invalid_argument")

			return RouteResult{}, err
		}
		f.log.Error("route request failed", "op", "request_route", "algo", string(algo), "src", src, "dst", dst, "error", err.Error())
		f.recordRoute(algo, "internal")

		return RouteResult{}, err
	}

	if route == nil {
		outcome := "no_path"
		if !view.HasNode(src) || !view.HasNode(dst) {
			outcome = "not_found"
		}
		f.log.Info("route not found", "op", "request_route", "algo", string(algo), "src", src, "dst", dst, "outcome", outcome)
		f.recordRoute(algo, outcome)

		return RouteResult{Success: false, Message: "no route found"}, nil
	}

	f.recordRoute(algo, "found")

	return RouteResult{Success: true, Route: route}, nil
}

// RunAlgorithmStream emits a RunStart, zero or more Step events mirrored
// from the routing algorithm, then a terminal Complete event, per spec
// §4.7. If the algorithm is unknown, the error is returned out-of-band
// and no Complete is emitted. A canceled context aborts the run cleanly
// with no Complete event, per spec §5's cancellation rule.
func (f *Facade) RunAlgorithmStream(ctx context.Context, src, dst string, algo routing.AlgoName, sink StreamSink) error {
	runID := uuid.NewString()
	emitStream(sink, StreamEvent{Kind: StreamRunStart, RunID: runID, Algo: algo, Src: src, Dst: dst})

	view := f.store.SnapshotView()
	adapter := func(ev routing.Event) {
		emitStream(sink, StreamEvent{Kind: StreamStep, RunID: runID, Algo: algo, Src: src, Dst: dst, Step: &ev})
	}

	route, err := f.engine.FindOptimalRoute(ctx, view, src, dst, algo, adapter)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			f.log.Info("algorithm run canceled", "op", "run_algorithm_stream", "run_id", runID, "algo", string(algo))

			return err
		}

		f.log.Error("algorithm run failed", "op", "run_algorithm_stream", "run_id", runID, "algo", string(algo), "error", err.Error())
		f.recordRoute(algo, "invalid_argument")

		return err
	}

	f.runs.add(RunRecord{RunID: runID, Algo: algo, Src: src, Dst: dst, Success: route != nil, Route: route})
	if route != nil {
		f.recordRoute(algo, "found")
	} else {
		f.recordRoute(algo, "no_path")
	}
	emitStream(sink, StreamEvent{Kind: StreamComplete, RunID: runID, Algo: algo, Src: src, Dst: dst, Result: route})

	return nil
}

// RecentRuns returns up to limit of the most recently completed
// RunAlgorithmStream invocations for algo, most recent first.
func (f *Facade) RecentRuns(algo routing.AlgoName, limit int) []RunRecord {
	return f.runs.recent(algo, limit)
}

// FindKShortestPaths forwards to the routing engine's Yen's-algorithm
// query over a fresh consistent view, per spec §4.4.
func (f *Facade) FindKShortestPaths(src, dst string, k int) ([]*routing.Route, error) {
	view := f.store.SnapshotView()

	return f.engine.FindKShortestPaths(view, src, dst, k)
}

// FindBackupRoutes forwards to the routing engine's edge-disjoint
// backup-route query over a fresh consistent view, per spec §4.4.
func (f *Facade) FindBackupRoutes(src, dst string, primary []string) (*routing.Route, error) {
	view := f.store.SnapshotView()

	return f.engine.FindBackupRoutes(view, src, dst, primary)
}

func (f *Facade) recordSnapshot(outcome string) {
	if f.metrics != nil {
		f.metrics.SnapshotsTotal.WithLabelValues(outcome).Inc()
	}
}

func (f *Facade) recordRoute(algo routing.AlgoName, outcome string) {
	if f.metrics != nil {
		f.metrics.RouteRequestsTotal.WithLabelValues(string(algo), outcome).Inc()
	}
}

func emitStream(sink StreamSink, ev StreamEvent) {
	if sink != nil {
		sink(ev)
	}
}
