// Package graph holds the node/link data model of the relationship graph.
package graph

import (
	"sort"
)

// Link types recognized by the palette and the type filter. The set is open:
// any other string is kept and rendered with the default color.
const (
	LinkInvestigacion = "investigacion"
	LinkSenalamiento  = "senalamiento"
	LinkAlianza       = "alianza"
	LinkNegocio       = "negocio"
	LinkAsociacion    = "asociacion"

	// DefaultLinkType is assumed for links without a type.
	DefaultLinkType = LinkAsociacion
)

// Node types seen in campaign graphs.
const (
	NodePersona       = "persona"
	NodeContrato      = "contrato"
	NodeInvestigacion = "investigacion"
)

// Node is an entity in the relationship graph: a person, organization,
// contract or investigation.
type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Type  string   `json:"type,omitempty" yaml:"type,omitempty"`
	Party string   `json:"party,omitempty" yaml:"party,omitempty"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Img   string   `json:"img,omitempty" yaml:"img,omitempty"`
}

// DisplayName returns the label, falling back to the id.
func (n Node) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is a typed, weighted relationship between two node ids.
type Link struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Type   string  `json:"type,omitempty" yaml:"type,omitempty"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// TypeOrDefault returns the link type, or "asociacion" when unset.
func (l Link) TypeOrDefault() string {
	if l.Type == "" {
		return DefaultLinkType
	}
	return l.Type
}

// WeightOrDefault returns the weight, or 1 when unset or not positive.
func (l Link) WeightOrDefault() float64 {
	if l.Weight <= 0 {
		return 1
	}
	return l.Weight
}

// Graph is a complete nodes/links snapshot.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
}

// Stats holds summary counts.
type Stats struct {
	Nodes     int
	Links     int
	NodeTypes int
	LinkTypes int
	Parties   int
	Tags      int
}

// Empty returns a graph with no nodes and no links.
func Empty() Graph {
	return Graph{Nodes: make([]Node, 0), Links: make([]Link, 0)}
}

// Clone returns a deep copy that shares no slices with g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	for i, n := range g.Nodes {
		if n.Tags != nil {
			n.Tags = append([]string(nil), n.Tags...)
		}
		out.Nodes[i] = n
	}
	copy(out.Links, g.Links)
	return out
}

// NodeByID looks up a node by exact id.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Stats returns summary statistics.
func (g Graph) Stats() Stats {
	nodeTypes := make(map[string]bool)
	linkTypes := make(map[string]bool)
	parties := make(map[string]bool)
	tags := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.Type != "" {
			nodeTypes[n.Type] = true
		}
		if n.Party != "" {
			parties[n.Party] = true
		}
		for _, t := range n.Tags {
			tags[t] = true
		}
	}
	for _, l := range g.Links {
		linkTypes[l.TypeOrDefault()] = true
	}
	return Stats{
		Nodes:     len(g.Nodes),
		Links:     len(g.Links),
		NodeTypes: len(nodeTypes),
		LinkTypes: len(linkTypes),
		Parties:   len(parties),
		Tags:      len(tags),
	}
}

// Degree returns the number of links touching each node id. Links whose
// endpoints are missing from the graph still count for the id they name.
func (g Graph) Degree() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, l := range g.Links {
		deg[l.Source]++
		if l.Target != l.Source {
			deg[l.Target]++
		}
	}
	return deg
}

// SortedIDs returns all node ids in lexical order.
func (g Graph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}
