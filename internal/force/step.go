package force

import (
	"math"
	"math/rand/v2"
)

// distanceMin2 bounds the many-body force for coincident nodes.
const distanceMin2 = 1.0

// Point is a position in simulation coordinates.
type Point struct {
	X, Y float64
}

// Body is the simulation state of one node. A pinned body sits at (FX, FY)
// and is never moved by forces.
type Body struct {
	ID     string
	X, Y   float64
	VX, VY float64
	Pinned bool
	FX, FY float64
}

// Spring connects two bodies by index.
type Spring struct {
	Source, Target int
}

// Step advances bodies by one tick at the given alpha and returns the new
// state. The input slice is not modified. Forces run in a fixed order (link,
// charge, center, collide) and accumulate into velocities; integration then
// applies velocity decay and moves every body that is not pinned. Pinned
// bodies end the step exactly at their pin with zero velocity.
//
// rnd supplies the tiny jitter used to separate coincident nodes; nil uses a
// fixed offset.
func Step(bodies []Body, springs []Spring, p Params, alpha float64, rnd *rand.Rand) []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)

	applyLinks(out, springs, p, alpha, rnd)
	applyCharge(out, p, alpha, rnd)
	applyCenter(out, p)
	applyCollide(out, p, rnd)

	decay := 1 - p.VelocityDecay
	for i := range out {
		b := &out[i]
		if b.Pinned {
			b.X, b.Y = b.FX, b.FY
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= decay
		b.VY *= decay
		b.X += b.VX
		b.Y += b.VY
	}
	return out
}

func jiggle(rnd *rand.Rand) float64 {
	if rnd == nil {
		return 1e-6
	}
	return (rnd.Float64() - 0.5) * 1e-6
}

// applyLinks pulls each connected pair toward LinkDistance. The correction is
// split by degree: the endpoint with more links moves less.
func applyLinks(bodies []Body, springs []Spring, p Params, alpha float64, rnd *rand.Rand) {
	if len(springs) == 0 || p.LinkStrength == 0 {
		return
	}
	count := make([]int, len(bodies))
	for _, s := range springs {
		count[s.Source]++
		count[s.Target]++
	}

	for _, s := range springs {
		if s.Source == s.Target {
			continue
		}
		src, tgt := &bodies[s.Source], &bodies[s.Target]
		x := tgt.X + tgt.VX - src.X - src.VX
		if x == 0 {
			x = jiggle(rnd)
		}
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if y == 0 {
			y = jiggle(rnd)
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - p.LinkDistance) / l * alpha * p.LinkStrength
		x *= l
		y *= l

		bias := float64(count[s.Source]) / float64(count[s.Source]+count[s.Target])
		tgt.VX -= x * bias
		tgt.VY -= y * bias
		src.VX += x * (1 - bias)
		src.VY += y * (1 - bias)
	}
}

// applyCharge is the pairwise inverse-distance many-body force.
func applyCharge(bodies []Body, p Params, alpha float64, rnd *rand.Rand) {
	if p.ChargeStrength == 0 {
		return
	}
	for i := range bodies {
		bi := &bodies[i]
		for j := range bodies {
			if i == j {
				continue
			}
			bj := &bodies[j]
			x := bj.X - bi.X
			y := bj.Y - bi.Y
			l := x*x + y*y
			if x == 0 {
				x = jiggle(rnd)
				l += x * x
			}
			if y == 0 {
				y = jiggle(rnd)
				l += y * y
			}
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			w := p.ChargeStrength * alpha / l
			bi.VX += x * w
			bi.VY += y * w
		}
	}
}

// applyCenter translates every body so the centroid moves toward the center.
// It moves positions, not velocities, so it adds no energy.
func applyCenter(bodies []Body, p Params) {
	if len(bodies) == 0 || p.CenterStrength == 0 {
		return
	}
	var sx, sy float64
	for _, b := range bodies {
		sx += b.X
		sy += b.Y
	}
	n := float64(len(bodies))
	sx = (sx/n - p.CenterX) * p.CenterStrength
	sy = (sy/n - p.CenterY) * p.CenterStrength
	for i := range bodies {
		bodies[i].X -= sx
		bodies[i].Y -= sy
	}
}

// applyCollide pushes apart any two bodies whose predicted positions are
// closer than twice the collision radius.
func applyCollide(bodies []Body, p Params, rnd *rand.Rand) {
	if p.CollideRadius <= 0 || p.CollideStrength == 0 {
		return
	}
	r := 2 * p.CollideRadius
	for i := range bodies {
		bi := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			bj := &bodies[j]
			x := bi.X + bi.VX - bj.X - bj.VX
			y := bi.Y + bi.VY - bj.Y - bj.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = jiggle(rnd)
				l += x * x
			}
			if y == 0 {
				y = jiggle(rnd)
				l += y * y
			}
			d := math.Sqrt(l)
			k := (r - d) / d * p.CollideStrength
			x *= k
			y *= k
			// equal radii: each side takes half the correction
			bi.VX += x * 0.5
			bi.VY += y * 0.5
			bj.VX -= x * 0.5
			bj.VY -= y * 0.5
		}
	}
}
