package graph

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot is an exportable copy of a graph, handed to download surfaces.
// Its nodes/links layout is the ingestion format, so a snapshot can be fed
// straight back into ingestion.
type Snapshot struct {
	ID      string    `json:"id" yaml:"id"`
	TakenAt time.Time `json:"taken_at" yaml:"taken_at"`
	Nodes   []Node    `json:"nodes" yaml:"nodes"`
	Links   []Link    `json:"links" yaml:"links"`
}

// NewSnapshot copies g into a new snapshot with a fresh id.
func NewSnapshot(g Graph) Snapshot {
	c := g.Clone()
	return Snapshot{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
		Nodes:   c.Nodes,
		Links:   c.Links,
	}
}

// Graph returns the snapshot contents as a graph.
func (s Snapshot) Graph() Graph {
	return Graph{Nodes: s.Nodes, Links: s.Links}.Clone()
}

// EncodeJSON returns the snapshot as pretty-printed JSON.
func (s Snapshot) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// EncodeYAML returns the snapshot as YAML.
func (s Snapshot) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
