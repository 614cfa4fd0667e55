package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yes() bool { return true }
func no() bool  { return false }

func TestPursuitStartsWandering(t *testing.T) {
	var p Pursuit
	assert.Equal(t, Wandering, p.State())
	assert.False(t, p.Memory().Valid)

	p.Observe(false, cp.Vector{X: 3}, yes)
	assert.Equal(t, Wandering, p.State(), "re-sight alone never starts a pursuit")
}

func TestPursuitHysteresis(t *testing.T) {
	var p Pursuit
	p.Observe(true, cp.Vector{X: 5}, yes)
	require.Equal(t, Pursuing, p.State())
	assert.Equal(t, Memory{Position: cp.Vector{X: 5}, Valid: true}, p.Memory())

	// out of the cone but still in range with a clear line
	p.Observe(false, cp.Vector{X: -5}, yes)
	assert.Equal(t, Pursuing, p.State())
	assert.True(t, p.Chasing())
	assert.Equal(t, cp.Vector{X: -5}, p.Memory().Position)

	p.Observe(false, cp.Vector{X: -20}, no)
	assert.Equal(t, Searching, p.State())
	assert.False(t, p.Chasing())
	assert.Equal(t, cp.Vector{X: -5}, p.Memory().Position, "memory keeps the last sighting")

	// once lost, passing the re-sight check is not enough to resume
	p.Observe(false, cp.Vector{X: -5}, yes)
	assert.Equal(t, Searching, p.State())
}

func TestPursuitLostTargetWithoutResight(t *testing.T) {
	var p Pursuit
	p.Observe(true, cp.Vector{X: 2}, yes)
	p.Observe(false, cp.Vector{}, nil)
	assert.Equal(t, Searching, p.State())
	assert.Equal(t, cp.Vector{X: 2}, p.Memory().Position)
}

func TestPursuitForgetIfReached(t *testing.T) {
	var p Pursuit
	p.Observe(true, cp.Vector{X: 10}, yes)
	assert.False(t, p.ForgetIfReached(cp.Vector{X: 9.9}, 0.5), "never forgets while detected")

	p.Observe(false, cp.Vector{X: 30}, no)
	assert.False(t, p.ForgetIfReached(cp.Vector{X: 9}, 0.5))
	assert.True(t, p.ForgetIfReached(cp.Vector{X: 9.5}, 0.5), "stop distance is inclusive")
	assert.Equal(t, Wandering, p.State())
	assert.Equal(t, Memory{}, p.Memory())
	assert.False(t, p.ForgetIfReached(cp.Vector{X: 10}, 0.5))
}
