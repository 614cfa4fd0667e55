package nav

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var room = cp.BB{L: 0, B: 0, R: 10, T: 10}

func newGrid(t *testing.T, opts Options, obstacles ...spatial.Obstacle) (*Grid, *spatial.Index) {
	t.Helper()
	world := spatial.NewIndex()
	for _, o := range obstacles {
		world.Add(o)
	}
	g, err := NewGrid(room, opts)
	require.NoError(t, err)
	g.Rebuild(world)
	require.True(t, g.Ready())
	return g, world
}

func TestFindPathOpenRoom(t *testing.T) {
	g, _ := newGrid(t, Options{CellSize: 1})
	start := cp.Vector{X: 0.5, Y: 0.5}
	goal := cp.Vector{X: 5.2, Y: 0.7}

	path, ok := g.FindPath(start, goal)
	require.True(t, ok)
	require.Len(t, path, 5)
	assert.Equal(t, goal, path[len(path)-1], "last waypoint is the exact goal")
	assert.Equal(t, cp.Vector{X: 1.5, Y: 0.5}, path[0], "start cell is dropped")
}

func TestFindPathSameCell(t *testing.T) {
	g, _ := newGrid(t, Options{CellSize: 1})
	path, ok := g.FindPath(cp.Vector{X: 0.2, Y: 0.2}, cp.Vector{X: 0.8, Y: 0.8})
	require.True(t, ok)
	assert.Equal(t, []cp.Vector{{X: 0.8, Y: 0.8}}, path)
}

func TestFindPathAroundWall(t *testing.T) {
	wall := spatial.Box(cp.BB{L: 4, B: 0, R: 6, T: 8}, 1)
	g, world := newGrid(t, Options{CellSize: 1}, wall)

	start := cp.Vector{X: 1.5, Y: 1.5}
	goal := cp.Vector{X: 8.5, Y: 1.5}
	path, ok := g.FindPath(start, goal)
	require.True(t, ok)

	crossedAbove := false
	for _, wp := range path {
		assert.False(t, wall.Box.ContainsVect(wp), "waypoint %v inside wall", wp)
		if wp.Y > 8 {
			crossedAbove = true
		}
	}
	assert.True(t, crossedAbove)

	prev := start
	for _, wp := range path {
		assert.True(t, world.LineClear(prev, wp, spatial.LayerAll), "leg %v -> %v", prev, wp)
		prev = wp
	}
}

func TestFindPathSmoothing(t *testing.T) {
	g, _ := newGrid(t, Options{CellSize: 1, Smooth: true})
	goal := cp.Vector{X: 7.5, Y: 6.5}
	path, ok := g.FindPath(cp.Vector{X: 0.5, Y: 0.5}, goal)
	require.True(t, ok)
	assert.Equal(t, []cp.Vector{goal}, path)
}

func TestFindPathSmoothingKeepsCorners(t *testing.T) {
	wall := spatial.Box(cp.BB{L: 4, B: 0, R: 6, T: 8}, 1)
	g, world := newGrid(t, Options{CellSize: 1, Smooth: true}, wall)
	start := cp.Vector{X: 1.5, Y: 1.5}
	path, ok := g.FindPath(start, cp.Vector{X: 8.5, Y: 1.5})
	require.True(t, ok)
	require.Greater(t, len(path), 1)

	prev := start
	for _, wp := range path {
		assert.True(t, world.LineClear(prev, wp, spatial.LayerAll))
		prev = wp
	}
}

func TestFindPathBlockedGoalEndsInFreeCell(t *testing.T) {
	pillar := spatial.Circle(cp.Vector{X: 5.5, Y: 5.5}, 0.2, 1)
	g, _ := newGrid(t, Options{CellSize: 1}, pillar)
	goal := cp.Vector{X: 5.5, Y: 5.4}
	require.True(t, g.Blocked(goal))

	path, ok := g.FindPath(cp.Vector{X: 1.5, Y: 5.5}, goal)
	require.True(t, ok)
	end := path[len(path)-1]
	assert.Equal(t, cp.Vector{X: 4.5, Y: 5.5}, end, "snapped to the free neighbour's centre")
	assert.False(t, g.Blocked(end))
}

func TestFindPathFailures(t *testing.T) {
	cases := []struct {
		name      string
		opts      Options
		obstacles []spatial.Obstacle
		goal      cp.Vector
	}{
		{"sealed", Options{CellSize: 1}, []spatial.Obstacle{spatial.Box(cp.BB{L: 4, B: -1, R: 6, T: 11}, 1)}, cp.Vector{X: 8.5, Y: 5}},
		{"outside_bounds", Options{CellSize: 1}, nil, cp.Vector{X: 20, Y: 5}},
		{"node_budget", Options{CellSize: 1, MaxNodes: 3}, nil, cp.Vector{X: 9.5, Y: 9.5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, _ := newGrid(t, c.opts, c.obstacles...)
			path, ok := g.FindPath(cp.Vector{X: 1.5, Y: 5}, c.goal)
			assert.False(t, ok)
			assert.Nil(t, path)
		})
	}
}

func TestGridReadiness(t *testing.T) {
	g, err := NewGrid(room, Options{})
	require.NoError(t, err)
	assert.False(t, g.Ready())
	_, ok := g.FindPath(cp.Vector{}, cp.Vector{X: 1})
	assert.False(t, ok)

	g.Rebuild(spatial.NewIndex())
	assert.True(t, g.Ready())
	g.Rebuild(nil)
	assert.False(t, g.Ready())

	var nilGrid *Grid
	assert.False(t, nilGrid.Ready())
}

func TestGridRasterization(t *testing.T) {
	g, _ := newGrid(t, Options{CellSize: 1}, spatial.Circle(cp.Vector{X: 5, Y: 5}, 1, 1))
	w, h := g.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
	assert.True(t, g.Blocked(cp.Vector{X: 5.2, Y: 5.2}))
	assert.False(t, g.Blocked(cp.Vector{X: 1, Y: 1}))
	assert.True(t, g.Blocked(cp.Vector{X: -1, Y: 1}), "outside the grid counts as blocked")
}

func TestNewGridRejectsEmptyBounds(t *testing.T) {
	_, err := NewGrid(cp.BB{L: 1, B: 1, R: 1, T: 5}, Options{})
	assert.Error(t, err)
}

func TestHeuristicIsManhattan(t *testing.T) {
	assert.Equal(t, 7.0, heuristic(cell{x: 1, y: 1}, cell{x: 4, y: 5}))
}
