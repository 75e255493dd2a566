package render

import (
	"fmt"
	"strings"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/view"
)

// DOT returns the frame in Graphviz DOT format. Node positions are written
// as pinned pos attributes so `neato -n` reproduces the layout; DOT's y axis
// points up, so y is negated.
func DOT(fr view.Frame) string {
	var b strings.Builder
	b.WriteString("digraph teapa {\n")
	b.WriteString("  outputorder=edgesfirst;\n")
	b.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.28, label=\"\"];\n\n")

	for _, n := range fr.Nodes {
		attrs := []string{
			fmt.Sprintf("xlabel=%q", n.DisplayName()),
			fmt.Sprintf("fillcolor=%q", NodeColor(n.Node).Hex()),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X, -n.Y),
		}
		if n.Selected {
			attrs = append(attrs, "penwidth=3")
		}
		b.WriteString(fmt.Sprintf("  %q [%s];\n", n.ID, strings.Join(attrs, ", ")))
	}

	b.WriteString("\n")
	for _, l := range fr.Links {
		attrs := []string{
			fmt.Sprintf("color=%q", LinkColor(l.Type).Hex()),
			fmt.Sprintf("penwidth=%g", StrokeWidth(l.Link)),
		}
		if l.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", l.Label))
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [%s];\n", l.Source, l.Target, strings.Join(attrs, ", ")))
	}

	b.WriteString("}\n")
	return b.String()
}
