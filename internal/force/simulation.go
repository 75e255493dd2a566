// Package force lays out a graph with an iterative force-directed simulation:
// springs along links, pairwise repulsion, a centering pull and collision
// avoidance, cooled by an alpha schedule until the layout settles.
//
// A Simulation is not safe for concurrent use; the view that owns it drives
// every tick and every pin from a single goroutine.
package force

import (
	"errors"
	"math"
	"math/rand/v2"
)

// ErrStopped is returned when ticking a simulation that has been stopped.
var ErrStopped = errors.New("simulation stopped")

// State is the lifecycle state of a simulation.
type State int

const (
	// Running simulations move bodies on every tick.
	Running State = iota
	// Settled simulations have cooled below AlphaMin; ticks are no-ops until
	// something reheats them.
	Settled
	// Stopped simulations are disposed and refuse further ticks.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Edge names a link by node ids.
type Edge struct {
	Source, Target string
}

// Simulation is a running layout over a fixed set of nodes and edges.
type Simulation struct {
	params      Params
	bodies      []Body
	springs     []Spring
	index       map[string]int
	alpha       float64
	alphaTarget float64
	state       State
	ticks       int
	rnd         *rand.Rand
}

// New builds a simulation for ids connected by edges. Nodes present in seed
// start at their seeded position, so a restarted layout does not jump; other
// nodes are dropped at random inside a disc around the center. Edges naming
// an unknown id are ignored.
func New(ids []string, edges []Edge, p Params, seed map[string]Point, rnd *rand.Rand) *Simulation {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(1, 2))
	}
	s := &Simulation{
		params: p,
		bodies: make([]Body, 0, len(ids)),
		index:  make(map[string]int, len(ids)),
		alpha:  1,
		state:  Running,
		rnd:    rnd,
	}

	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		b := Body{ID: id}
		if pos, ok := seed[id]; ok {
			b.X, b.Y = pos.X, pos.Y
		} else {
			b.X, b.Y = s.scatter()
		}
		s.index[id] = len(s.bodies)
		s.bodies = append(s.bodies, b)
	}

	for _, e := range edges {
		si, okS := s.index[e.Source]
		ti, okT := s.index[e.Target]
		if !okS || !okT {
			continue
		}
		s.springs = append(s.springs, Spring{Source: si, Target: ti})
	}
	return s
}

func (s *Simulation) scatter() (float64, float64) {
	r := s.params.InitialSpread * math.Sqrt(s.rnd.Float64())
	theta := 2 * math.Pi * s.rnd.Float64()
	return s.params.CenterX + r*math.Cos(theta), s.params.CenterY + r*math.Sin(theta)
}

// Tick advances the simulation by one step. It reports whether positions
// changed; a settled simulation returns false without doing work.
func (s *Simulation) Tick() (bool, error) {
	switch s.state {
	case Stopped:
		return false, ErrStopped
	case Settled:
		return false, nil
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.params.AlphaDecay
	s.bodies = Step(s.bodies, s.springs, s.params, s.alpha, s.rnd)
	s.ticks++

	if s.alpha < s.params.AlphaMin {
		s.state = Settled
	}
	return true, nil
}

// Run ticks until the simulation settles or limit ticks have run, and returns
// the number of ticks executed. limit <= 0 uses Params.MaxTicks.
func (s *Simulation) Run(limit int) (int, error) {
	if limit <= 0 {
		limit = s.params.MaxTicks
	}
	n := 0
	for n < limit {
		moved, err := s.Tick()
		if err != nil {
			return n, err
		}
		if !moved {
			break
		}
		n++
	}
	return n, nil
}

// State returns the lifecycle state.
func (s *Simulation) State() State { return s.state }

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks returns how many steps have run.
func (s *Simulation) Ticks() int { return s.ticks }

// Len returns the number of bodies.
func (s *Simulation) Len() int { return len(s.bodies) }

// SetAlphaTarget sets the temperature alpha decays toward. A target above
// AlphaMin keeps the simulation running indefinitely, which is what a drag
// wants; reset it to zero to let the layout cool again.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
}

// Restart wakes a settled simulation without changing alpha.
func (s *Simulation) Restart() {
	if s.state == Settled {
		s.state = Running
	}
}

// Reheat sets alpha and wakes the simulation.
func (s *Simulation) Reheat(alpha float64) {
	if s.state == Stopped {
		return
	}
	s.alpha = alpha
	s.state = Running
}

// Pin fixes a node at (x, y). The body moves there immediately and stays
// there on every tick until Unpin.
func (s *Simulation) Pin(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	b := &s.bodies[i]
	b.Pinned = true
	b.FX, b.FY = x, y
	b.X, b.Y = x, y
	b.VX, b.VY = 0, 0
	return true
}

// Unpin returns a node to free simulation at its current position.
func (s *Simulation) Unpin(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.bodies[i].Pinned = false
	return true
}

// Pinned reports whether id is currently pinned.
func (s *Simulation) Pinned(id string) bool {
	i, ok := s.index[id]
	return ok && s.bodies[i].Pinned
}

// Position returns the current position of id.
func (s *Simulation) Position(id string) (Point, bool) {
	i, ok := s.index[id]
	if !ok {
		return Point{}, false
	}
	return Point{X: s.bodies[i].X, Y: s.bodies[i].Y}, true
}

// Positions returns a copy of every node position keyed by id.
func (s *Simulation) Positions() map[string]Point {
	out := make(map[string]Point, len(s.bodies))
	for _, b := range s.bodies {
		out[b.ID] = Point{X: b.X, Y: b.Y}
	}
	return out
}

// Bodies returns a copy of the body state.
func (s *Simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Stop disposes the simulation. Later ticks return ErrStopped.
func (s *Simulation) Stop() {
	s.state = Stopped
}
