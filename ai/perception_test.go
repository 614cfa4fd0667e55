package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestPerceptionSense(t *testing.T) {
	origin := cp.Vector{}
	east := cp.Vector{X: 1}
	cases := []struct {
		name    string
		facing  cp.Vector
		target  cp.Vector
		blocked bool
		want    bool
	}{
		{"ahead_clear", east, cp.Vector{X: 5}, false, true},
		{"ahead_blocked", east, cp.Vector{X: 5}, true, false},
		{"range_inclusive", east, cp.Vector{X: 10}, false, true},
		{"out_of_range", east, cp.Vector{X: 10.01}, false, false},
		{"out_of_range_ignores_angle", east, cp.Vector{X: -20}, false, false},
		{"inside_cone", east, cp.Vector{X: 5, Y: 3}, false, true},
		{"outside_cone", east, cp.Vector{X: 1, Y: 5}, false, false},
		{"behind", east, cp.Vector{X: -5}, false, false},
		{"coincident", east, origin, false, true},
		{"zero_facing", cp.Vector{}, cp.Vector{X: 5}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Perception{Range: 10, HalfAngle: 45, Mask: ^uint(0), World: &fakeWorld{lineBlocked: c.blocked}}
			assert.Equal(t, c.want, p.Sense(origin, c.facing, c.target))
		})
	}
}

func TestPerceptionSenseSkipsRaycastOutsideCone(t *testing.T) {
	w := &fakeWorld{}
	p := Perception{Range: 10, HalfAngle: 45, World: w}

	p.Sense(cp.Vector{}, cp.Vector{X: 1}, cp.Vector{X: 50})
	p.Sense(cp.Vector{}, cp.Vector{X: 1}, cp.Vector{X: -5})
	assert.Zero(t, w.lineCalls)
}

func TestPerceptionResightIgnoresAngle(t *testing.T) {
	w := &fakeWorld{}
	p := Perception{Range: 10, HalfAngle: 45, World: w}

	assert.True(t, p.Resight(cp.Vector{}, cp.Vector{X: -5}))
	assert.False(t, p.Resight(cp.Vector{}, cp.Vector{X: -11}))

	w.lineBlocked = true
	assert.False(t, p.Resight(cp.Vector{}, cp.Vector{X: -5}))
}

func TestPerceptionWithoutWorld(t *testing.T) {
	p := Perception{Range: 10, HalfAngle: 45}
	assert.False(t, p.Sense(cp.Vector{}, cp.Vector{X: 1}, cp.Vector{X: 1}))
	assert.False(t, p.Resight(cp.Vector{}, cp.Vector{X: 1}))
}
