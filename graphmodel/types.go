package graphmodel

import (
	"errors"
	"time"
)

// Sentinel errors for the graphmodel package. Callers branch with errors.Is;
// sentinels are never wrapped with formatted strings at the definition site.
var (
	// ErrBadTimestamp indicates a snapshot's Timestamp failed RFC-3339 parsing.
	// apply_snapshot rejects the snapshot without touching existing state.
	ErrBadTimestamp = errors.New("graphmodel: snapshot timestamp is not RFC-3339")

	// ErrUnknownNode indicates an operation referenced a node id the current
	// graph does not contain.
	ErrUnknownNode = errors.New("graphmodel: unknown node id")
)

// NodeType classifies a node by the kind of platform it represents.
// The zero value is NodeTypeUnknown.
type NodeType string

// Recognized node types. Any value outside this set is treated as
// NodeTypeUnknown by ParseNodeType.
const (
	NodeTypeSatellite     NodeType = "satellite"
	NodeTypeGroundStation NodeType = "ground_station"
	NodeTypeShip          NodeType = "ship"
	NodeTypeDrone         NodeType = "drone"
	NodeTypeMobileDevice  NodeType = "mobile_device"
	NodeTypeUnknown       NodeType = "unknown"
)

// ParseNodeType normalizes a wire-supplied type string, defaulting to
// NodeTypeUnknown for anything not in the recognized set.
func ParseNodeType(s string) NodeType {
	switch NodeType(s) {
	case NodeTypeSatellite, NodeTypeGroundStation, NodeTypeShip, NodeTypeDrone, NodeTypeMobileDevice:
		return NodeType(s)
	default:
		return NodeTypeUnknown
	}
}

// StatusUp is the only status value routing treats as healthy; any other
// value (including the empty string) is "not UP" for weight-composition
// purposes, per spec §3.
const StatusUp = "UP"

// NodeMetrics is the per-node metrics tuple carried in a snapshot.
type NodeMetrics struct {
	CPULoad        float64 // roughly in [0,1]
	JitterMs       float64 // >= 0
	QueueLen       int     // >= 0
	ThroughputMbps float64 // >= 0
}

// Node is a single network participant as of the most recently applied
// snapshot.
type Node struct {
	ID          string
	Type        NodeType
	Status      string
	Metrics     NodeMetrics
	LastUpdated time.Time
}

// Up reports whether this node's status is exactly StatusUp.
func (n Node) Up() bool { return n.Status == StatusUp }

// LinkMetrics is the per-link metrics tuple carried in a snapshot.
type LinkMetrics struct {
	DelayMs       float64
	JitterMs      float64
	LossRate      float64 // in [0,1]
	BandwidthMbps float64 // >= 0
}

// Link describes one undirected connection between two nodes as of the
// most recently applied snapshot. Src/Dst are the wire-order endpoints;
// the graph treats (Src,Dst) and (Dst,Src) identically.
type Link struct {
	Src         string
	Dst         string
	Available   bool
	Metrics     LinkMetrics
	LastUpdated time.Time
}

// Snapshot is a complete description of the network at a point in time.
// Applying a Snapshot fully replaces prior graph state; there is no
// incremental update path (spec Non-goals).
type Snapshot struct {
	Timestamp string
	Nodes     []Node
	Links     []Link
}
