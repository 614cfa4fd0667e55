package spatial

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureObstacles() []Obstacle {
	return []Obstacle{
		Box(cp.BB{L: 4, B: -1, R: 6, T: 1}, 1),
		Circle(cp.Vector{Y: 8}, 1, 2),
		Segment(cp.Vector{X: -5, Y: -5}, cp.Vector{X: -5, Y: 5}, 0.1, 1),
	}
}

func backends() map[string]func() World {
	return map[string]func() World{
		"space": func() World { return NewSpace() },
		"index": func() World { return NewIndex() },
	}
}

func TestLineClear(t *testing.T) {
	cases := []struct {
		name string
		a, b cp.Vector
		mask uint
		want bool
	}{
		{"through_box", cp.Vector{}, cp.Vector{X: 10}, LayerAll, false},
		{"short_of_box", cp.Vector{}, cp.Vector{X: 3}, LayerAll, true},
		{"above_box", cp.Vector{Y: 3}, cp.Vector{X: 10, Y: 3}, LayerAll, true},
		{"through_circle", cp.Vector{X: -2, Y: 8}, cp.Vector{X: 2, Y: 8}, LayerAll, false},
		{"circle_layer_masked", cp.Vector{X: -2, Y: 8}, cp.Vector{X: 2, Y: 8}, 1, true},
		{"through_wall", cp.Vector{}, cp.Vector{X: -10}, LayerAll, false},
		{"around_wall", cp.Vector{Y: 6}, cp.Vector{X: -10, Y: 6}, LayerAll, true},
	}
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			w := mk()
			for _, o := range fixtureObstacles() {
				w.Add(o)
			}
			for _, c := range cases {
				t.Run(c.name, func(t *testing.T) {
					assert.Equal(t, c.want, w.LineClear(c.a, c.b, c.mask))
				})
			}
		})
	}
}

func TestRegionClear(t *testing.T) {
	cases := []struct {
		name   string
		center cp.Vector
		radius float64
		mask   uint
		want   bool
	}{
		{"near_box", cp.Vector{X: 5, Y: 2.5}, 1, LayerAll, true},
		{"touching_box", cp.Vector{X: 5, Y: 1.5}, 1, LayerAll, false},
		{"inside_box", cp.Vector{X: 5}, 0, LayerAll, false},
		{"near_circle", cp.Vector{Y: 5.5}, 1, LayerAll, true},
		{"overlapping_circle", cp.Vector{Y: 6.5}, 1, LayerAll, false},
		{"circle_layer_masked", cp.Vector{Y: 6.5}, 1, 1, true},
		{"near_wall", cp.Vector{X: -4.5}, 0.3, LayerAll, true},
		{"touching_wall", cp.Vector{X: -4.7}, 0.3, LayerAll, false},
	}
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			w := mk()
			for _, o := range fixtureObstacles() {
				w.Add(o)
			}
			for _, c := range cases {
				t.Run(c.name, func(t *testing.T) {
					assert.Equal(t, c.want, w.RegionClear(c.center, c.radius, c.mask))
				})
			}
		})
	}
}

func TestEmptyWorldIsClear(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			w := mk()
			assert.True(t, w.LineClear(cp.Vector{}, cp.Vector{X: 100, Y: -3}, LayerAll))
			assert.True(t, w.RegionClear(cp.Vector{X: 2}, 50, LayerAll))
			assert.Empty(t, w.Obstacles())
		})
	}
}

func TestIndexKeepsObstacles(t *testing.T) {
	x := NewIndex()
	for _, o := range fixtureObstacles() {
		x.Add(o)
	}
	assert.Equal(t, 3, x.Len())
	assert.Equal(t, fixtureObstacles(), x.Obstacles())
}

func TestSpaceExposesChipmunkSpace(t *testing.T) {
	s := NewSpace()
	s.AddBox(cp.BB{L: 0, B: 0, R: 1, T: 1}, 1)
	s.AddCircle(cp.Vector{X: 3}, 0.5, 1)
	s.AddSegment(cp.Vector{}, cp.Vector{Y: 4}, 0.1, 1)
	require.NotNil(t, s.Space())
	assert.Len(t, s.Obstacles(), 3)
}

func TestExtent(t *testing.T) {
	_, ok := Extent(nil)
	assert.False(t, ok)

	bb, ok := Extent(fixtureObstacles())
	require.True(t, ok)
	assert.InDelta(t, -5.1, bb.L, 1e-9)
	assert.InDelta(t, -5.1, bb.B, 1e-9)
	assert.InDelta(t, 6, bb.R, 1e-9)
	assert.InDelta(t, 9, bb.T, 1e-9)
}

func TestSegmentAABBHit(t *testing.T) {
	bb := cp.BB{L: 0, B: 0, R: 2, T: 2}
	hit, tEnter := segmentAABBHit(cp.Vector{X: -2, Y: 1}, cp.Vector{X: 4}, bb)
	require.True(t, hit)
	assert.InDelta(t, 0.5, tEnter, 1e-12)

	hit, _ = segmentAABBHit(cp.Vector{X: -2, Y: 3}, cp.Vector{X: 4}, bb)
	assert.False(t, hit)

	hit, _ = segmentAABBHit(cp.Vector{X: 1, Y: -3}, cp.Vector{Y: 2}, bb)
	assert.False(t, hit, "segment ends before the box")
}
