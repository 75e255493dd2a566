package view

import (
	"strings"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
)

// Placeholder is shown in the detail panel while nothing is selected.
const Placeholder = "Selecciona un nodo…"

// Detail is the content of the detail panel: an optional image above a
// monospace key/value summary.
type Detail struct {
	Empty    bool
	Image    string
	ImageAlt string
	Lines    []string
}

// DetailFor builds the panel content for n. Optional fields are omitted when
// empty.
func DetailFor(n graph.Node) Detail {
	d := Detail{Image: n.Img, ImageAlt: n.DisplayName()}
	d.Lines = append(d.Lines, "Nombre: "+n.DisplayName())
	if n.Type != "" {
		d.Lines = append(d.Lines, "Tipo: "+n.Type)
	}
	if n.Party != "" {
		d.Lines = append(d.Lines, "Partido: "+n.Party)
	}
	if len(n.Tags) > 0 {
		d.Lines = append(d.Lines, "Tags: "+strings.Join(n.Tags, ", "))
	}
	if n.Notes != "" {
		d.Lines = append(d.Lines, "Notas: "+n.Notes)
	}
	return d
}

// Text returns the summary block, or the placeholder when empty.
func (d Detail) Text() string {
	if d.Empty {
		return Placeholder
	}
	return strings.Join(d.Lines, "\n")
}
