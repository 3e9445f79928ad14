// Package routing implements the three shortest-path algorithms (A*,
// Dijkstra, greedy) that share one Route result contract and one
// step-event stream, plus the engine that dispatches between them and
// offers k-shortest-paths and edge-disjoint backup-route queries.
//
// Every algorithm reads a single graphmodel.GraphView taken once at the
// start of a query; an in-flight snapshot update can never change the
// graph under a running search.
package routing
