package facade

import "github.com/sagsin-net/heuristic/routing"

// StreamEventKind tags a StreamEvent, mirroring spec §6's
// AlgorithmStreamEvent sum type: RunStart | Step | Complete.
type StreamEventKind string

const (
	StreamRunStart StreamEventKind = "run_start"
	StreamStep     StreamEventKind = "step"
	StreamComplete StreamEventKind = "complete"
)

// StreamEvent is one event of a RunAlgorithmStream invocation.
type StreamEvent struct {
	Kind    StreamEventKind
	RunID   string
	Algo    routing.AlgoName
	Src     string
	Dst     string
	Step    *routing.Event // set only when Kind == StreamStep
	Result  *routing.Route // set only when Kind == StreamComplete and a route was found
}

// StreamSink receives StreamEvents synchronously, the same contract as
// routing.Sink one layer up.
type StreamSink func(StreamEvent)
