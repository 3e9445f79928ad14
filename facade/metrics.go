package facade

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ambient Prometheus instrumentation of SPEC_FULL.md's
// DOMAIN STACK section: counters for applied/rejected snapshots and
// route requests, plus gauges for the current topology size. Each
// Facade owns its own Registry rather than registering against the
// global default, so multiple Facades (as in tests) never collide on
// duplicate registration.
type Metrics struct {
	Registry *prometheus.Registry

	SnapshotsTotal     *prometheus.CounterVec
	RouteRequestsTotal *prometheus.CounterVec
	NodeCount          prometheus.Gauge
	EdgeCount          prometheus.Gauge
}

const metricsNamespace = "heuristic"

// NewMetrics builds and registers a fresh set of metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		SnapshotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "snapshots_total",
				Help:      "Total number of ApplySnapshot calls by outcome",
			},
			[]string{"outcome"}, // applied, rejected
		),
		RouteRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "route_requests_total",
				Help:      "Total number of route requests by algorithm and outcome",
			},
			[]string{"algo", "outcome"}, // found, not_found, no_path, invalid_argument, internal
		),
		NodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "node_count",
			Help:      "Number of nodes in the current graph",
		}),
		EdgeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "edge_count",
			Help:      "Number of edges in the current graph",
		}),
	}

	reg.MustRegister(m.SnapshotsTotal, m.RouteRequestsTotal, m.NodeCount, m.EdgeCount)

	return m
}
