package httpapi

// These are the wire message shapes of spec §6: field order is
// transport-defined (here: JSON), not part of the core contract. This
// package is the only place that converts between them and the core
// graphmodel/routing/facade types.

type nodeWire struct {
	ID     string `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Status string `json:"status" yaml:"status"`

	CPULoad        float64 `json:"cpu_load" yaml:"cpu_load"`
	JitterMs       float64 `json:"jitter_ms" yaml:"jitter_ms"`
	QueueLen       int     `json:"queue_len" yaml:"queue_len"`
	ThroughputMbps float64 `json:"throughput_mbps" yaml:"throughput_mbps"`
}

type linkWire struct {
	Src       string `json:"src" yaml:"src"`
	Dst       string `json:"dst" yaml:"dst"`
	Available bool   `json:"available" yaml:"available"`

	DelayMs       float64 `json:"delay_ms" yaml:"delay_ms"`
	JitterMs      float64 `json:"jitter_ms" yaml:"jitter_ms"`
	LossRate      float64 `json:"loss_rate" yaml:"loss_rate"`
	BandwidthMbps float64 `json:"bandwidth_mbps" yaml:"bandwidth_mbps"`
}

// graphSnapshotWire is the GraphSnapshot message of spec §6.
type graphSnapshotWire struct {
	Timestamp string     `json:"timestamp" yaml:"timestamp"`
	Nodes     []nodeWire `json:"nodes" yaml:"nodes"`
	Links     []linkWire `json:"links" yaml:"links"`
}

// updateResponseWire is the UpdateResponse message of spec §6.
type updateResponseWire struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// routeRequestWire is the RouteRequest message of spec §6.
type routeRequestWire struct {
	SourceNodeID      string `json:"source_node_id" binding:"required"`
	DestinationNodeID string `json:"destination_node_id" binding:"required"`
	Algorithm         string `json:"algorithm"`
}

// routeResponseWire is the RouteResponse message of spec §6.
type routeResponseWire struct {
	Success        bool     `json:"success"`
	Path           []string `json:"path,omitempty"`
	TotalWeight    float64  `json:"total_weight,omitempty"`
	TotalDelayMs   float64  `json:"total_delay_ms,omitempty"`
	StabilityScore float64  `json:"stability_score,omitempty"`
	HopCount       int      `json:"hop_count,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// kShortestRequestWire requests the top-k distinct paths between two nodes.
type kShortestRequestWire struct {
	SourceNodeID      string `json:"source_node_id" binding:"required"`
	DestinationNodeID string `json:"destination_node_id" binding:"required"`
	K                 int    `json:"k" binding:"required"`
}

// backupRequestWire requests an edge-disjoint alternative to an
// already-computed primary path.
type backupRequestWire struct {
	SourceNodeID      string   `json:"source_node_id" binding:"required"`
	DestinationNodeID string   `json:"destination_node_id" binding:"required"`
	PrimaryPath       []string `json:"primary_path" binding:"required"`
}

// algorithmRunRequestWire is the AlgorithmRunRequest message of spec §6,
// carried as websocket query parameters (algo, src, dst).
type algorithmRunRequestWire struct {
	Algo string `form:"algo" binding:"required"`
	Src  string `form:"src" binding:"required"`
	Dst  string `form:"dst" binding:"required"`
}

// streamEventWire is the JSON wire form of facade.StreamEvent, matching
// spec §6's AlgorithmStreamEvent sum type.
type streamEventWire struct {
	Kind string `json:"kind"`
	Algo string `json:"algo"`
	Src  string `json:"src"`
	Dst  string `json:"dst"`

	// Step fields, present only when kind == "step".
	Action      string   `json:"action,omitempty"`
	Node        string   `json:"node,omitempty"`
	From        string   `json:"from,omitempty"`
	To          string   `json:"to,omitempty"`
	OpenSize    *int     `json:"open_size,omitempty"`
	G           *float64 `json:"g,omitempty"`
	F           *float64 `json:"f,omitempty"`
	Dist        *float64 `json:"dist,omitempty"`

	// Result, present only when kind == "complete" and a route was found.
	Result *routeResponseWire `json:"result,omitempty"`
}

// criticalNodeWire is one entry of the top-k critical-node ranking.
type criticalNodeWire struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}
