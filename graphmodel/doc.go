// Package graphmodel holds the network topology: nodes, links, their
// derived composite edge weight, and the thread-safe store that
// algorithms in package routing read a consistent view of.
//
// A Graph is undirected and simple: a snapshot fully replaces prior
// state (apply_snapshot never patches). Unavailable links and links
// touching a non-"UP" node are retained with a prohibitive weight
// rather than removed, so routing can discover "only-bad-path"
// situations instead of seeing a disconnection.
package graphmodel
