package view

import "math"

// Viewport is the pan/zoom transform applied to the whole rendered layer:
// screen = world*K + (X, Y). It never touches simulation coordinates.
type Viewport struct {
	X, Y float64
	K    float64
}

// Identity is the untransformed viewport.
var Identity = Viewport{K: 1}

// Apply maps a world point to screen coordinates.
func (v Viewport) Apply(x, y float64) (float64, float64) {
	return x*v.K + v.X, y*v.K + v.Y
}

// Invert maps a screen point to world coordinates.
func (v Viewport) Invert(sx, sy float64) (float64, float64) {
	return (sx - v.X) / v.K, (sy - v.Y) / v.K
}

// Translate shifts the viewport by a screen-space delta.
func (v Viewport) Translate(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// ScaleAt multiplies the scale by factor, clamped to [min, max], keeping the
// world point under (sx, sy) fixed on screen.
func (v Viewport) ScaleAt(factor, sx, sy, min, max float64) Viewport {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return v
	}
	wx, wy := v.Invert(sx, sy)
	k := clamp(v.K*factor, min, max)
	return Viewport{X: sx - wx*k, Y: sy - wy*k, K: k}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
