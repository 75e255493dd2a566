package force

import (
	"github.com/unknownshopper/teapaparalosteapanecos/internal/config"
)

// Params are the force constants and cooling schedule of a simulation.
type Params struct {
	LinkDistance    float64
	LinkStrength    float64
	ChargeStrength  float64 // negative repels
	CollideRadius   float64 // per node; two centers stay 2*CollideRadius apart
	CollideStrength float64
	CenterStrength  float64
	CenterX         float64
	CenterY         float64

	AlphaMin        float64
	AlphaDecay      float64
	VelocityDecay   float64
	DragAlphaTarget float64
	InitialSpread   float64 // radius of the disc new nodes are dropped into
	MaxTicks        int
}

// DefaultParams returns the layout constants used by the network view,
// centered on a 960x600 surface.
func DefaultParams() Params {
	return FromConfig(config.Default())
}

// FromConfig builds Params from the simulation and viewport sections.
func FromConfig(cfg *config.Config) Params {
	s := cfg.Simulation
	return Params{
		LinkDistance:    s.LinkDistance,
		LinkStrength:    s.LinkStrength,
		ChargeStrength:  s.ChargeStrength,
		CollideRadius:   s.CollideRadius,
		CollideStrength: s.CollideStrength,
		CenterStrength:  s.CenterStrength,
		CenterX:         cfg.Viewport.Width / 2,
		CenterY:         cfg.Viewport.Height / 2,
		AlphaMin:        s.AlphaMin,
		AlphaDecay:      s.AlphaDecay,
		VelocityDecay:   s.VelocityDecay,
		DragAlphaTarget: s.DragAlphaTarget,
		InitialSpread:   s.InitialSpread,
		MaxTicks:        s.MaxTicks,
	}
}
