// Package view is the interaction controller of the relationship graph. It
// owns the graph model, the active filter, the running force simulation, the
// selection and the pan/zoom viewport, and turns pointer and search input
// into re-filtered, re-laid-out frames.
//
// A Controller is driven from one goroutine. Run owns that goroutine for
// interactive use; batch callers may call the methods directly.
package view

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/config"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/filter"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/force"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ingest"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
)

// Options configure a Controller.
type Options struct {
	Params     force.Params
	Width      float64
	Height     float64
	MinScale   float64
	MaxScale   float64
	NodeRadius float64
	FPS        int
	Seed       int64 // 0 seeds from the clock
}

// OptionsFromConfig maps a loaded config onto controller options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Params:     force.FromConfig(cfg),
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		MinScale:   cfg.Viewport.MinScale,
		MaxScale:   cfg.Viewport.MaxScale,
		NodeRadius: cfg.Viewport.NodeRadius,
		FPS:        cfg.Loop.FPS,
		Seed:       cfg.Simulation.Seed,
	}
}

// DefaultOptions returns options built from the default config.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// Controller ties the model, filter, simulation and viewport together.
type Controller struct {
	id    string
	opts  Options
	log   *slog.Logger
	model *graph.Model
	rnd   *rand.Rand

	query    string
	linkType string
	filtered filter.Result

	sim  *force.Simulation
	last map[string]force.Point

	selected string
	dragging string
	viewport Viewport
}

// New returns a controller showing an empty graph. A nil logger discards.
func New(opts Options, log *slog.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.MinScale <= 0 {
		opts.MinScale = 0.25
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = opts.MinScale
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	c := &Controller{
		id:       id,
		opts:     opts,
		log:      log.With(logging.FieldViewID, id),
		model:    graph.NewModel(),
		rnd:      rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		last:     make(map[string]force.Point),
		viewport: Identity,
	}
	c.refresh()
	return c
}

// ID identifies this view in logs.
func (c *Controller) ID() string { return c.id }

// Apply parses and installs a graph document. On any error the displayed
// graph, filter and selection are left untouched.
func (c *Controller) Apply(data []byte, format ingest.Format) error {
	g, err := ingest.Parse(data, format)
	if err != nil {
		c.log.Warn("graph rejected", logging.Err(err))
		return err
	}
	return c.Install(g)
}

// Install validates g and makes it the displayed graph. The selection is
// cleared and any drag in progress is released; the query and link-type
// filter are kept.
func (c *Controller) Install(g graph.Graph) error {
	if err := c.model.Replace(g, ingest.ValidateGraph); err != nil {
		c.log.Warn("graph rejected", logging.Err(err))
		return err
	}
	c.selected = ""
	c.dragging = ""

	keep := make(map[string]force.Point, len(g.Nodes))
	for _, n := range g.Nodes {
		if p, ok := c.last[n.ID]; ok {
			keep[n.ID] = p
		}
	}
	c.last = keep

	c.refresh()
	c.log.Info("graph installed",
		logging.FieldNodes, len(g.Nodes),
		logging.FieldLinks, len(g.Links),
	)
	return nil
}

// Graph returns a copy of the installed graph.
func (c *Controller) Graph() graph.Graph { return c.model.Current() }

// Version counts successful installs.
func (c *Controller) Version() uint64 { return c.model.Version() }

// SetQuery changes the search text and re-renders.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.refresh()
}

// SetLinkType changes the link-type filter and re-renders. Empty means any.
func (c *Controller) SetLinkType(t string) {
	c.linkType = t
	c.refresh()
}

// Query returns the current search text.
func (c *Controller) Query() string { return c.query }

// LinkType returns the current link-type filter.
func (c *Controller) LinkType() string { return c.linkType }

// refresh re-filters the model and replaces the simulation. Positions of
// nodes that survive carry over from the previous layout.
func (c *Controller) refresh() {
	if c.sim != nil {
		for id, p := range c.sim.Positions() {
			c.last[id] = p
		}
		c.sim.Stop()
	}

	c.filtered = filter.Apply(c.model.Current(), c.query, c.linkType)

	ids := make([]string, len(c.filtered.Nodes))
	for i, n := range c.filtered.Nodes {
		ids[i] = n.ID
	}
	edges := make([]force.Edge, len(c.filtered.Links))
	for i, l := range c.filtered.Links {
		edges[i] = force.Edge{Source: l.Source, Target: l.Target}
	}
	c.sim = force.New(ids, edges, c.opts.Params, c.last, c.rnd)

	if c.dragging != "" {
		p, ok := c.sim.Position(c.dragging)
		if ok {
			c.sim.SetAlphaTarget(c.opts.Params.DragAlphaTarget)
			c.sim.Pin(c.dragging, p.X, p.Y)
		} else {
			c.dragging = ""
		}
	}

	c.log.Debug("view refreshed",
		logging.FieldQuery, c.query,
		logging.FieldLinkType, c.linkType,
		logging.FieldNodes, len(c.filtered.Nodes),
		logging.FieldLinks, len(c.filtered.Links),
	)
}

// Filtered returns the currently displayed subgraph.
func (c *Controller) Filtered() filter.Result {
	return filter.Result{
		Nodes: append([]graph.Node(nil), c.filtered.Nodes...),
		Links: append([]graph.Link(nil), c.filtered.Links...),
	}
}

// Snapshot captures the displayed subgraph.
func (c *Controller) Snapshot() graph.Snapshot {
	return graph.NewSnapshot(c.filtered.Graph())
}

// ModelSnapshot captures the whole installed graph, ignoring filters.
func (c *Controller) ModelSnapshot() graph.Snapshot {
	return graph.NewSnapshot(c.model.Current())
}

// NodeAt returns the visible node under the screen point (sx, sy). Nodes
// drawn later win when discs overlap.
func (c *Controller) NodeAt(sx, sy float64) (string, bool) {
	wx, wy := c.viewport.Invert(sx, sy)
	r2 := c.opts.NodeRadius * c.opts.NodeRadius
	bodies := c.sim.Bodies()
	for i := len(bodies) - 1; i >= 0; i-- {
		dx, dy := bodies[i].X-wx, bodies[i].Y-wy
		if dx*dx+dy*dy <= r2 {
			return bodies[i].ID, true
		}
	}
	return "", false
}

// Click selects the node under the pointer, or clears the selection when the
// click lands on empty space. It returns the resulting selection.
func (c *Controller) Click(sx, sy float64) (string, bool) {
	id, ok := c.NodeAt(sx, sy)
	if !ok {
		c.ClearSelection()
		return "", false
	}
	c.Select(id)
	return id, true
}

// Select marks id as selected. Unknown ids are ignored.
func (c *Controller) Select(id string) bool {
	if _, ok := c.model.Current().NodeByID(id); !ok {
		return false
	}
	c.selected = id
	c.log.Debug("node selected", logging.FieldNodeID, id)
	return true
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() {
	c.selected = ""
}

// Selected returns the full record of the selected node.
func (c *Controller) Selected() (graph.Node, bool) {
	if c.selected == "" {
		return graph.Node{}, false
	}
	return c.model.Current().NodeByID(c.selected)
}

// Detail returns the detail panel for the selection.
func (c *Controller) Detail() Detail {
	n, ok := c.Selected()
	if !ok {
		return Detail{Empty: true}
	}
	return DetailFor(n)
}

// DragStart grabs the node under the pointer and pins it there. The
// simulation is kept warm until DragEnd.
func (c *Controller) DragStart(sx, sy float64) (string, bool) {
	id, ok := c.NodeAt(sx, sy)
	if !ok {
		return "", false
	}
	return id, c.Grab(id)
}

// Grab starts a drag on id at its current position.
func (c *Controller) Grab(id string) bool {
	p, ok := c.sim.Position(id)
	if !ok {
		return false
	}
	if c.dragging != "" && c.dragging != id {
		c.sim.Unpin(c.dragging)
	}
	c.dragging = id
	c.sim.SetAlphaTarget(c.opts.Params.DragAlphaTarget)
	c.sim.Restart()
	c.sim.Pin(id, p.X, p.Y)
	c.log.Debug("drag started", logging.FieldNodeID, id)
	return true
}

// DragMove moves the dragged node to the screen point (sx, sy).
func (c *Controller) DragMove(sx, sy float64) bool {
	if c.dragging == "" {
		return false
	}
	wx, wy := c.viewport.Invert(sx, sy)
	return c.sim.Pin(c.dragging, wx, wy)
}

// DragEnd releases the dragged node and lets the layout cool. It is safe to
// call without a drag in progress.
func (c *Controller) DragEnd() {
	if c.dragging == "" {
		return
	}
	c.sim.SetAlphaTarget(0)
	c.sim.Unpin(c.dragging)
	c.log.Debug("drag ended", logging.FieldNodeID, c.dragging)
	c.dragging = ""
}

// Dragging returns the node being dragged.
func (c *Controller) Dragging() (string, bool) {
	return c.dragging, c.dragging != ""
}

// Pan shifts the viewport by a screen-space delta.
func (c *Controller) Pan(dx, dy float64) {
	c.viewport = c.viewport.Translate(dx, dy)
}

// Zoom scales the viewport by factor around the screen point (sx, sy).
func (c *Controller) Zoom(factor, sx, sy float64) {
	c.viewport = c.viewport.ScaleAt(factor, sx, sy, c.opts.MinScale, c.opts.MaxScale)
}

// ResetView restores the identity viewport.
func (c *Controller) ResetView() {
	c.viewport = Identity
}

// Viewport returns the current pan/zoom transform.
func (c *Controller) Viewport() Viewport { return c.viewport }

// Tick advances the layout by one step.
func (c *Controller) Tick() (bool, error) {
	return c.sim.Tick()
}

// Settle ticks until the layout settles or limit ticks have run.
func (c *Controller) Settle(limit int) (int, error) {
	n, err := c.sim.Run(limit)
	if err != nil {
		return n, err
	}
	c.log.Debug("layout settled",
		logging.FieldTicks, n,
		logging.FieldAlpha, c.sim.Alpha(),
	)
	return n, nil
}

// State returns the simulation state.
func (c *Controller) State() force.State { return c.sim.State() }

// Positions returns the current layout keyed by node id.
func (c *Controller) Positions() map[string]force.Point { return c.sim.Positions() }

// Frame returns the current frame.
func (c *Controller) Frame() Frame { return c.buildFrame() }
