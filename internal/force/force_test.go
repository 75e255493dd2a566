package force

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestStepIsPure(t *testing.T) {
	in := []Body{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 10, Y: 0}}
	before := append([]Body(nil), in...)

	out := Step(in, []Spring{{Source: 0, Target: 1}}, DefaultParams(), 1, seeded())

	assert.Equal(t, before, in, "Step must not modify its input")
	assert.NotEqual(t, in, out)
}

func TestStepPinnedBodyStaysAtPin(t *testing.T) {
	in := []Body{
		{ID: "a", X: 1, Y: 1, VX: 50, VY: -50, Pinned: true, FX: 123.5, FY: -7.25},
		{ID: "b", X: 2, Y: 1},
	}
	out := Step(in, []Spring{{Source: 0, Target: 1}}, DefaultParams(), 1, seeded())

	assert.Equal(t, 123.5, out[0].X)
	assert.Equal(t, -7.25, out[0].Y)
	assert.Zero(t, out[0].VX)
	assert.Zero(t, out[0].VY)
}

func TestLinkForcePullsTowardDistance(t *testing.T) {
	p := DefaultParams()
	p.ChargeStrength = 0
	p.CollideRadius = 0
	seed := map[string]Point{"a": {X: 100, Y: 300}, "b": {X: 700, Y: 300}}

	s := New([]string{"a", "b"}, []Edge{{Source: "a", Target: "b"}}, p, seed, seeded())
	_, err := s.Run(0)
	require.NoError(t, err)

	a, _ := s.Position("a")
	b, _ := s.Position("b")
	assert.InDelta(t, p.LinkDistance, dist(a, b), 5)
}

func TestChargeSeparatesUnlinkedNodes(t *testing.T) {
	p := DefaultParams()
	p.CollideRadius = 0
	seed := map[string]Point{"a": {X: 479, Y: 300}, "b": {X: 481, Y: 300}}

	s := New([]string{"a", "b"}, nil, p, seed, seeded())
	s.Run(0)

	a, _ := s.Position("a")
	b, _ := s.Position("b")
	assert.Greater(t, dist(a, b), 50.0)
}

func TestCollisionResolvesOverlap(t *testing.T) {
	p := DefaultParams()
	p.ChargeStrength = 0
	p.LinkStrength = 0
	seed := map[string]Point{"a": {X: 480, Y: 300}, "b": {X: 480, Y: 300}, "c": {X: 481, Y: 301}}

	s := New([]string{"a", "b", "c"}, nil, p, seed, seeded())
	s.Run(0)

	pos := s.Positions()
	ids := []string{"a", "b", "c"}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			assert.GreaterOrEqual(t, dist(pos[ids[i]], pos[ids[j]]), 2*p.CollideRadius-1,
				"%s and %s still overlap", ids[i], ids[j])
		}
	}
}

func TestCenterForceKeepsCentroidInView(t *testing.T) {
	p := DefaultParams()
	seed := map[string]Point{"a": {X: 5000, Y: 5000}, "b": {X: 5100, Y: 5000}, "c": {X: 5000, Y: 5100}}

	s := New([]string{"a", "b", "c"}, []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}, p, seed, seeded())
	s.Run(0)

	var cx, cy float64
	for _, pt := range s.Positions() {
		cx += pt.X
		cy += pt.Y
	}
	assert.InDelta(t, p.CenterX, cx/3, 5)
	assert.InDelta(t, p.CenterY, cy/3, 5)
}

func TestSimulationSettles(t *testing.T) {
	s := New([]string{"a", "b", "c"}, []Edge{{Source: "a", Target: "b"}}, DefaultParams(), nil, seeded())
	assert.Equal(t, Running, s.State())

	n, err := s.Run(1000)
	require.NoError(t, err)
	assert.Equal(t, Settled, s.State())
	assert.Less(t, n, 1000)
	assert.Less(t, s.Alpha(), DefaultParams().AlphaMin)

	moved, err := s.Tick()
	require.NoError(t, err)
	assert.False(t, moved, "settled simulation should not move")
}

func TestRunRespectsLimit(t *testing.T) {
	s := New([]string{"a", "b"}, nil, DefaultParams(), nil, seeded())
	n, err := s.Run(5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, s.Ticks())
	assert.Equal(t, Running, s.State())
}

func TestSeededPositionsArePreserved(t *testing.T) {
	seed := map[string]Point{"a": {X: 10, Y: 20}, "b": {X: -5, Y: 3.5}}
	s := New([]string{"a", "b", "new"}, nil, DefaultParams(), seed, seeded())

	a, ok := s.Position("a")
	require.True(t, ok)
	assert.Equal(t, seed["a"], a)
	b, _ := s.Position("b")
	assert.Equal(t, seed["b"], b)

	p := DefaultParams()
	fresh, _ := s.Position("new")
	assert.LessOrEqual(t, dist(fresh, Point{X: p.CenterX, Y: p.CenterY}), p.InitialSpread)
}

func TestPinStability(t *testing.T) {
	s := New([]string{"a", "b", "c"}, []Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "c"}}, DefaultParams(), nil, seeded())
	s.Run(10)

	require.True(t, s.Pin("a", 42, 24))
	assert.True(t, s.Pinned("a"))
	for i := 0; i < 25; i++ {
		_, err := s.Tick()
		require.NoError(t, err)
		pos, _ := s.Position("a")
		assert.Equal(t, Point{X: 42, Y: 24}, pos)
	}

	require.True(t, s.Unpin("a"))
	s.Reheat(1)
	s.Tick()
	pos, _ := s.Position("a")
	assert.NotEqual(t, Point{X: 42, Y: 24}, pos, "released node should move again")
}

func TestPinUnknownNode(t *testing.T) {
	s := New([]string{"a"}, nil, DefaultParams(), nil, seeded())
	assert.False(t, s.Pin("ghost", 0, 0))
	assert.False(t, s.Unpin("ghost"))
	assert.False(t, s.Pinned("ghost"))
}

func TestAlphaTargetKeepsDragRunning(t *testing.T) {
	p := DefaultParams()
	s := New([]string{"a", "b"}, []Edge{{Source: "a", Target: "b"}}, p, nil, seeded())
	s.Run(0)
	require.Equal(t, Settled, s.State())

	s.SetAlphaTarget(p.DragAlphaTarget)
	s.Restart()
	s.Run(2000)
	assert.Equal(t, Running, s.State())
	assert.InDelta(t, p.DragAlphaTarget, s.Alpha(), 0.01)

	s.SetAlphaTarget(0)
	s.Run(2000)
	assert.Equal(t, Settled, s.State())
}

func TestStopDisposes(t *testing.T) {
	s := New([]string{"a"}, nil, DefaultParams(), nil, seeded())
	s.Stop()
	assert.Equal(t, Stopped, s.State())

	_, err := s.Tick()
	assert.ErrorIs(t, err, ErrStopped)

	s.Reheat(1)
	assert.Equal(t, Stopped, s.State(), "a stopped simulation cannot be revived")
}

func TestEdgesToUnknownNodesAreIgnored(t *testing.T) {
	s := New([]string{"a"}, []Edge{{Source: "a", Target: "ghost"}}, DefaultParams(), nil, seeded())
	assert.Equal(t, 1, s.Len())
	_, err := s.Run(0)
	assert.NoError(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "settled", Settled.String())
	assert.Equal(t, "stopped", Stopped.String())
}
