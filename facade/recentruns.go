package facade

import (
	"sync"
	"time"

	"github.com/sagsin-net/heuristic/routing"
)

// RunRecord is one completed RunAlgorithmStream invocation, kept purely
// for diagnostics. Grounded on the later heuristic_service.py variants'
// small in-memory ring of completed routes per algorithm.
type RunRecord struct {
	RunID     string
	Algo      routing.AlgoName
	Src, Dst  string
	Success   bool
	Route     *routing.Route
	Timestamp time.Time
}

// recentRuns is a bounded, per-algorithm FIFO ring of RunRecord, the
// same capping discipline stability.History applies to its sample
// windows.
type recentRuns struct {
	mu   sync.Mutex
	cap  int
	runs map[routing.AlgoName][]RunRecord
}

func newRecentRuns(capacity int) *recentRuns {
	if capacity <= 0 {
		capacity = 20
	}

	return &recentRuns{cap: capacity, runs: make(map[routing.AlgoName][]RunRecord)}
}

func (r *recentRuns) add(rec RunRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append(r.runs[rec.Algo], rec)
	if len(list) > r.cap {
		list = list[len(list)-r.cap:]
	}
	r.runs[rec.Algo] = list
}

// recent returns up to limit of the most recent records for algo, most
// recent first.
func (r *recentRuns) recent(algo routing.AlgoName, limit int) []RunRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.runs[algo]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}

	out := make([]RunRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = list[len(list)-1-i]
	}

	return out
}
