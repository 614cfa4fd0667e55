package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b cp.Vector
		want float64
	}{
		{"same", cp.Vector{X: 1}, cp.Vector{X: 3}, 0},
		{"right_angle", cp.Vector{X: 1}, cp.Vector{Y: -2}, 90},
		{"opposite", cp.Vector{X: 1}, cp.Vector{X: -1}, 180},
		{"forty_five", cp.Vector{X: 1}, cp.Vector{X: 1, Y: 1}, 45},
		{"zero_vector", cp.Vector{}, cp.Vector{X: 1}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, AngleBetween(c.a, c.b), 1e-9)
		})
	}
}

func TestLerpAngleTakesShortestArc(t *testing.T) {
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	got := LerpAngle(from, to, 0.5)
	assert.InDelta(t, math.Pi, math.Abs(got), 1e-9)

	assert.InDelta(t, to, LerpAngle(from, to, 5), 1e-9, "t is clamped to 1")
	assert.InDelta(t, from, LerpAngle(from, to, -1), 1e-9, "t is clamped to 0")
}

func TestDirection(t *testing.T) {
	dir, dist, ok := Direction(cp.Vector{X: 1, Y: 1}, cp.Vector{X: 4, Y: 5})
	assert.True(t, ok)
	assert.InDelta(t, 5, dist, 1e-9)
	assert.InDelta(t, 1, dir.Length(), 1e-9)

	_, _, ok = Direction(cp.Vector{X: 2}, cp.Vector{X: 2})
	assert.False(t, ok)
}

func TestConfigureLogging(t *testing.T) {
	assert.NoError(t, ConfigureLogging("debug", true))
	assert.Error(t, ConfigureLogging("loud", false))
	assert.NoError(t, ConfigureLogging("info", false))
}
