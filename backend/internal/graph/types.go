package graph

// ============================================================================
// Concept Graph Types
// ============================================================================

// Node is a single concept in the graph. IDs are dense integers assigned in
// insertion order, so a node's ID doubles as its index in the snapshot.
// The coordinates are placeholders the frontend layout engine overwrites.
type Node struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// Edge is a directed source-to-target connection between two node IDs.
// Parent edges point from parent to child; similarity edges point from the
// newly ingested node to the matched one.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Snapshot is a full copy of the graph as served to clients.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IngestResult reports what a single ingest did. SimilarConnections counts
// every label the matcher returned, including the ingested concept itself.
type IngestResult struct {
	NodeID             int
	SimilarConnections int
}
