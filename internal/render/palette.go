// Package render draws view frames as SVG documents and Graphviz DOT.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/textnorm"
)

// Color is an sRGB color with a fractional alpha, as written in CSS.
type Color struct {
	R, G, B uint8
	A       float64
}

// CSS returns the color as rgba(r, g, b, a).
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex returns the color as #rrggbbaa, which Graphviz understands.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(c.A*255+0.5))
}

// Link colors by type.
var (
	ColorInvestigacion = Color{99, 102, 241, 0.9}
	ColorSenalamiento  = Color{239, 68, 68, 0.9}
	ColorAlianza       = Color{34, 197, 94, 0.9}
	ColorNegocio       = Color{245, 158, 11, 0.9}
	ColorAsociacion    = Color{148, 163, 184, 0.85}
)

// Node fills.
var (
	NodeInvestigacion = Color{99, 102, 241, 0.85}
	NodeContrato      = Color{245, 158, 11, 0.85}
	NodePersona       = Color{148, 163, 184, 0.85}
	NodeMorena        = Color{22, 163, 74, 0.9}
	NodePRI           = Color{239, 68, 68, 0.9}
	NodeDefault       = Color{226, 232, 240, 0.85}
)

// Strokes and label colors.
var (
	StrokeNode     = Color{0, 0, 0, 0.35}
	StrokeSelected = Color{231, 233, 238, 0.9}
	LabelFill      = Color{231, 233, 238, 0.9}
	LabelHalo      = Color{11, 16, 32, 0.85}
	Background     = Color{11, 16, 32, 1}
)

// LinkColor picks the stroke for a link type. Unknown and empty types get
// the asociacion gray.
func LinkColor(linkType string) Color {
	switch textnorm.Normalize(linkType) {
	case graph.LinkInvestigacion:
		return ColorInvestigacion
	case graph.LinkSenalamiento:
		return ColorSenalamiento
	case graph.LinkAlianza:
		return ColorAlianza
	case graph.LinkNegocio:
		return ColorNegocio
	default:
		return ColorAsociacion
	}
}

// NodeColor picks the fill for a node: by type first, then by party.
func NodeColor(n graph.Node) Color {
	t := textnorm.Normalize(n.Type)
	switch {
	case strings.Contains(t, graph.NodeInvestigacion):
		return NodeInvestigacion
	case strings.Contains(t, graph.NodeContrato):
		return NodeContrato
	case strings.Contains(t, graph.NodePersona):
		return NodePersona
	}

	p := textnorm.Normalize(n.Party)
	switch {
	case strings.Contains(p, "morena"):
		return NodeMorena
	case strings.Contains(p, "pri"):
		return NodePRI
	}
	return NodeDefault
}

// StrokeWidth is the link stroke width: the weight, never thinner than 1.
func StrokeWidth(l graph.Link) float64 {
	return max(1, l.WeightOrDefault())
}

// LinkKey identifies a link across re-renders.
func LinkKey(l graph.Link) string {
	return l.Source + "->" + l.Target + ":" + l.Type + ":" + l.Label
}
