package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/component"
	"github.com/milk9111/pursuit/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(w, h)
	t.Cleanup(ss.Fini)
	return ss
}

func runeAt(s tcell.Screen, x, y int) rune {
	ch, _, _, _ := s.GetContent(x, y)
	return ch
}

func countRune(s tcell.Screen, want rune) int {
	w, h := s.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if runeAt(s, x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestRendererDrawsScenario(t *testing.T) {
	ss := simScreen(t, 80, 32)
	sb, err := sandbox.Load("courtyard")
	require.NoError(t, err)

	r := newRenderer(ss, sb.Bounds())
	r.draw(sb, "")

	assert.Equal(t, 1, countRune(ss, '@'), "one target")
	assert.Positive(t, countRune(ss, '#'), "walls and obstacles")
	x, y := r.mustCell(t, cp.Vector{X: 36, Y: 27})
	assert.Equal(t, 'd', runeAt(ss, x, y), "idle dummy")
	assert.Equal(t, 'c', runeAt(ss, 0, 30), "HUD starts with the scenario name")
}

func (r *renderer) mustCell(t *testing.T, p cp.Vector) (int, int) {
	t.Helper()
	x, y, ok := r.toCell(p)
	require.True(t, ok)
	return x, y
}

func TestToCellRoundTrip(t *testing.T) {
	ss := simScreen(t, 40, 32)
	r := newRenderer(ss, cp.BB{L: 0, B: 0, R: 40, T: 30})

	x, y, ok := r.toCell(cp.Vector{X: 0.5, Y: 29.5})
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y}, "top-left world corner is the first cell")

	c := r.cellCenter(10, 5)
	x, y, ok = r.toCell(c)
	require.True(t, ok)
	assert.Equal(t, [2]int{10, 5}, [2]int{x, y})

	_, _, ok = r.toCell(cp.Vector{X: -1, Y: 5})
	assert.False(t, ok)
}

func TestInCone(t *testing.T) {
	d := ai.DebugInfo{Position: cp.Vector{}, Facing: cp.Vector{X: 1}, Range: 5, HalfAngle: 45}
	assert.True(t, inCone(d, cp.Vector{X: 3, Y: 1}))
	assert.True(t, inCone(d, cp.Vector{X: 5}))
	assert.False(t, inCone(d, cp.Vector{X: 5.1}))
	assert.False(t, inCone(d, cp.Vector{X: -1}))
	assert.False(t, inCone(d, cp.Vector{X: 1, Y: 2}))
	assert.False(t, inCone(d, cp.Vector{}))
}

func TestAgentGlyph(t *testing.T) {
	d := ai.DebugInfo{State: ai.Pursuing}
	assert.Equal(t, 'G', agentGlyph("grunt", d))
	d.State = ai.Searching
	assert.Equal(t, 'g', agentGlyph("grunt", d))
	d.Lifecycle = component.Dying
	assert.Equal(t, 'x', agentGlyph("grunt", d))
}

func TestPutTextHandlesWideRunes(t *testing.T) {
	ss := simScreen(t, 6, 3)
	r := newRenderer(ss, cp.BB{R: 6, T: 1})
	r.putText(0, 0, "a界b界", tcell.StyleDefault)

	assert.Equal(t, 'a', runeAt(ss, 0, 0))
	assert.Equal(t, '界', runeAt(ss, 1, 0))
	assert.Equal(t, 'b', runeAt(ss, 3, 0))
	assert.Equal(t, '界', runeAt(ss, 4, 0), "fits exactly at the right edge")
}
