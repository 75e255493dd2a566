// Package ingest turns a textual graph description into a validated graph and
// installs it into a graph.Model.
//
// Validation is fail-fast and stops at the first problem, in this order: the
// document shape, then each node (id present, id not seen before), then each
// link (source and target present). Link endpoints are not resolved against
// the node set here; dangling links are pruned later by the filter.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
)

// Format names a serialization of the graph description.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown graph format: %s (use json or yaml)", s)
	}
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a graph description.
func Parse(data []byte, format Format) (graph.Graph, error) {
	raw, err := decode(data, format)
	if err != nil {
		return graph.Graph{}, err
	}
	return Validate(raw)
}

// Install parses data and, only if it is valid, replaces the model's graph.
// On error the model is left untouched.
func Install(m *graph.Model, data []byte, format Format) (graph.Graph, error) {
	g, err := Parse(data, format)
	if err != nil {
		return graph.Graph{}, err
	}
	if err := m.Replace(g, nil); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

func decode(data []byte, format Format) (any, error) {
	var v any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGraph, err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGraph, err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedGraph)
		}
	default:
		return nil, fmt.Errorf("unknown graph format: %s", format)
	}
	return v, nil
}

// Validate checks a decoded document (maps, slices and scalars as produced by
// encoding/json or yaml.v3) and converts it to a typed graph.
func Validate(raw any) (graph.Graph, error) {
	root, ok := raw.(map[string]any)
	if !ok {
		return graph.Graph{}, ErrMalformedGraph
	}
	rawNodes, okNodes := root["nodes"].([]any)
	rawLinks, okLinks := root["links"].([]any)
	if !okNodes || !okLinks {
		return graph.Graph{}, ErrMalformedGraph
	}

	g := graph.Graph{
		Nodes: make([]graph.Node, 0, len(rawNodes)),
		Links: make([]graph.Link, 0, len(rawLinks)),
	}

	seen := make(map[string]bool, len(rawNodes))
	for i, item := range rawNodes {
		fields, _ := item.(map[string]any)
		n := nodeFrom(fields)
		if n.ID == "" {
			return graph.Graph{}, &ValidationError{Err: ErrMissingNodeID, Index: i}
		}
		if seen[n.ID] {
			return graph.Graph{}, &ValidationError{Err: ErrDuplicateNodeID, Index: i, ID: n.ID}
		}
		seen[n.ID] = true
		g.Nodes = append(g.Nodes, n)
	}

	for i, item := range rawLinks {
		fields, _ := item.(map[string]any)
		l := linkFrom(fields)
		if l.Source == "" || l.Target == "" {
			return graph.Graph{}, &ValidationError{Err: ErrMissingLinkEndpoint, Index: i}
		}
		g.Links = append(g.Links, l)
	}

	return g, nil
}

// ValidateGraph applies the per-item checks to an already typed graph. It is
// the validator used when a host hands over a graph.Graph directly.
func ValidateGraph(g graph.Graph) error {
	seen := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return &ValidationError{Err: ErrMissingNodeID, Index: i}
		}
		if seen[n.ID] {
			return &ValidationError{Err: ErrDuplicateNodeID, Index: i, ID: n.ID}
		}
		seen[n.ID] = true
	}
	for i, l := range g.Links {
		if l.Source == "" || l.Target == "" {
			return &ValidationError{Err: ErrMissingLinkEndpoint, Index: i}
		}
	}
	return nil
}

func nodeFrom(m map[string]any) graph.Node {
	return graph.Node{
		ID:    scalar(m["id"]),
		Label: scalar(m["label"]),
		Type:  scalar(m["type"]),
		Party: scalar(m["party"]),
		Tags:  stringList(m["tags"]),
		Notes: scalar(m["notes"]),
		Img:   scalar(m["img"]),
	}
}

func linkFrom(m map[string]any) graph.Link {
	return graph.Link{
		Source: scalar(m["source"]),
		Target: scalar(m["target"]),
		Type:   scalar(m["type"]),
		Weight: number(m["weight"]),
		Label:  scalar(m["label"]),
	}
}

// scalar renders strings and numbers as a string; anything else (objects,
// arrays, booleans, null) counts as absent.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		// 1, 1.0 and 1e0 name the same id, as they do in YAML.
		if i, err := x.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return strconv.FormatUint(u, 10)
		}
		if f, err := x.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := scalar(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// number reads a non-negative weight. Unparseable or negative values become 0,
// which Link.WeightOrDefault treats as the default weight.
func number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case json.Number:
		f, _ = x.Float64()
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float64:
		f = x
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
