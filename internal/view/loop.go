package view

import (
	"context"
	"time"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/ingest"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/logging"
)

// Event is an input delivered to a running view.
type Event interface {
	apply(c *Controller)
}

// Click selects the node under a screen point.
type Click struct{ X, Y float64 }

// DragStart grabs the node under a screen point.
type DragStart struct{ X, Y float64 }

// DragMove moves the grabbed node.
type DragMove struct{ X, Y float64 }

// DragEnd releases the grabbed node.
type DragEnd struct{}

// Pan shifts the viewport.
type Pan struct{ DX, DY float64 }

// Zoom scales the viewport around a screen point.
type Zoom struct{ Factor, X, Y float64 }

// ResetView restores the identity viewport.
type ResetView struct{}

// SetQuery changes the search text.
type SetQuery struct{ Query string }

// SetLinkType changes the link-type filter.
type SetLinkType struct{ Type string }

// Select selects a node by id.
type Select struct{ ID string }

// Deselect clears the selection.
type Deselect struct{}

// Grab starts a drag on a node by id.
type Grab struct{ ID string }

// ApplyGraph installs a new graph document. The outcome is sent on Result
// when it is non-nil; the send never blocks, so Result should be buffered or
// already being received from.
type ApplyGraph struct {
	Data   []byte
	Format ingest.Format
	Result chan<- error
}

// Inspect runs Fn on the loop goroutine, for reading state safely.
type Inspect struct{ Fn func(*Controller) }

func (e Click) apply(c *Controller)       { c.Click(e.X, e.Y) }
func (e DragStart) apply(c *Controller)   { c.DragStart(e.X, e.Y) }
func (e DragMove) apply(c *Controller)    { c.DragMove(e.X, e.Y) }
func (DragEnd) apply(c *Controller)       { c.DragEnd() }
func (e Pan) apply(c *Controller)         { c.Pan(e.DX, e.DY) }
func (e Zoom) apply(c *Controller)        { c.Zoom(e.Factor, e.X, e.Y) }
func (ResetView) apply(c *Controller)     { c.ResetView() }
func (e SetQuery) apply(c *Controller)    { c.SetQuery(e.Query) }
func (e SetLinkType) apply(c *Controller) { c.SetLinkType(e.Type) }
func (e Select) apply(c *Controller)      { c.Select(e.ID) }
func (Deselect) apply(c *Controller)      { c.ClearSelection() }
func (e Grab) apply(c *Controller)        { c.Grab(e.ID) }

func (e ApplyGraph) apply(c *Controller) {
	err := c.Apply(e.Data, e.Format)
	if e.Result == nil {
		return
	}
	select {
	case e.Result <- err:
	default:
	}
}

func (e Inspect) apply(c *Controller) {
	if e.Fn != nil {
		e.Fn(c)
	}
}

// Run drives the view until ctx is done or events is closed. Events are
// applied as they arrive; the simulation ticks at the configured frame rate
// and r receives a frame after every tick that moved something or followed
// an event. Render errors are logged and the loop keeps going. A drag still
// in progress when Run returns is released.
func (c *Controller) Run(ctx context.Context, events <-chan Event, r Renderer) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.opts.FPS))
	defer ticker.Stop()
	defer c.DragEnd()

	c.log.Info("view loop started", "fps", c.opts.FPS)
	dirty := true
	for {
		select {
		case <-ctx.Done():
			c.log.Info("view loop stopped", logging.FieldTicks, c.sim.Ticks())
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				c.log.Info("view loop stopped", logging.FieldTicks, c.sim.Ticks())
				return nil
			}
			ev.apply(c)
			dirty = true

		case <-ticker.C:
			moved, err := c.sim.Tick()
			if err != nil {
				return err
			}
			if !moved && !dirty {
				continue
			}
			dirty = false
			if r == nil {
				continue
			}
			if err := r.Render(c.buildFrame()); err != nil {
				c.log.Warn("render failed", logging.Err(err))
			}
		}
	}
}
