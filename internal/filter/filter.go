// Package filter derives the working subgraph shown by the view from the
// current graph, a text query and a link-type selection.
package filter

import (
	"sort"
	"strings"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/textnorm"
)

// Result is the filtered subgraph. Every link in Links has both endpoints in
// Nodes.
type Result struct {
	Nodes []graph.Node
	Links []graph.Link
}

// Graph returns the result as a graph value.
func (r Result) Graph() graph.Graph {
	return graph.Graph{Nodes: r.Nodes, Links: r.Links}
}

// NodeIDs returns the set of node ids in the result.
func (r Result) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(r.Nodes))
	for _, n := range r.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// Apply filters g. It never modifies g; the returned slices are fresh.
//
// A node matches when the query is empty or its label, id or tags contain the
// query. A link survives when its type equals linkType (or linkType is empty;
// untyped links count as "asociacion") and at least one endpoint matches.
// Matching nodes are then kept if the query is non-empty, if a surviving link
// touches them, or if the graph yields no links at all and no type is
// selected. An explicit search never hides what it found, while a type filter
// hides every node it leaves unconnected, down to an empty view when no link
// has the selected type. Finally only links with both endpoints kept are
// returned.
func Apply(g graph.Graph, query, linkType string) Result {
	q := textnorm.Normalize(query)
	lt := textnorm.Normalize(linkType)

	matches := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if q == "" || strings.Contains(haystack(n), q) {
			matches[n.ID] = true
		}
	}

	var candidates []graph.Link
	for _, l := range g.Links {
		if lt != "" && textnorm.Normalize(l.TypeOrDefault()) != lt {
			continue
		}
		if !matches[l.Source] && !matches[l.Target] {
			continue
		}
		candidates = append(candidates, l)
	}

	linked := make(map[string]bool, 2*len(candidates))
	for _, l := range candidates {
		linked[l.Source] = true
		linked[l.Target] = true
	}

	res := Result{
		Nodes: make([]graph.Node, 0, len(matches)),
		Links: make([]graph.Link, 0, len(candidates)),
	}
	kept := make(map[string]bool, len(matches))
	for _, n := range g.Nodes {
		if !matches[n.ID] {
			continue
		}
		if q != "" || linked[n.ID] || (len(linked) == 0 && lt == "") {
			kept[n.ID] = true
			res.Nodes = append(res.Nodes, cloneNode(n))
		}
	}
	for _, l := range candidates {
		if kept[l.Source] && kept[l.Target] {
			res.Links = append(res.Links, l)
		}
	}
	return res
}

// LinkTypes returns the distinct normalized link types present in g, sorted.
// Links without a type are reported under the default type. The host uses it
// to populate the type selector.
func LinkTypes(g graph.Graph) []string {
	seen := make(map[string]bool)
	for _, l := range g.Links {
		seen[textnorm.Normalize(l.TypeOrDefault())] = true
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func haystack(n graph.Node) string {
	return textnorm.Join(n.Label, n.ID, strings.Join(n.Tags, " "))
}

func cloneNode(n graph.Node) graph.Node {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	return n
}
