package view

import (
	"github.com/unknownshopper/teapaparalosteapanecos/internal/force"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
)

// Frame is everything a renderer needs to draw one frame. It is a copy;
// renderers may keep it.
type Frame struct {
	Width, Height float64
	NodeRadius    float64
	Viewport      Viewport
	Nodes         []FrameNode
	Links         []FrameLink
	Selected      string
	State         force.State
	Alpha         float64
}

// FrameNode is a node with its current position.
type FrameNode struct {
	graph.Node
	X, Y     float64
	Selected bool
	Pinned   bool
}

// FrameLink is a link with its endpoint positions.
type FrameLink struct {
	graph.Link
	X1, Y1 float64
	X2, Y2 float64
}

// Renderer draws frames. The view calls it after each simulation tick.
type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

// Render calls f.
func (f RendererFunc) Render(fr Frame) error { return f(fr) }

func (c *Controller) buildFrame() Frame {
	fr := Frame{
		Width:      c.opts.Width,
		Height:     c.opts.Height,
		NodeRadius: c.opts.NodeRadius,
		Viewport:   c.viewport,
		Selected:   c.selected,
		State:      c.sim.State(),
		Alpha:      c.sim.Alpha(),
		Nodes:      make([]FrameNode, 0, len(c.filtered.Nodes)),
		Links:      make([]FrameLink, 0, len(c.filtered.Links)),
	}

	pos := c.sim.Positions()
	for _, n := range c.filtered.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		fr.Nodes = append(fr.Nodes, FrameNode{
			Node:     n,
			X:        p.X,
			Y:        p.Y,
			Selected: n.ID == c.selected,
			Pinned:   c.sim.Pinned(n.ID),
		})
	}
	for _, l := range c.filtered.Links {
		s, okS := pos[l.Source]
		t, okT := pos[l.Target]
		if !okS || !okT {
			// cannot happen for filter output; drop rather than draw a dangling edge
			continue
		}
		fr.Links = append(fr.Links, FrameLink{Link: l, X1: s.X, Y1: s.Y, X2: t.X, Y2: t.Y})
	}
	return fr
}
