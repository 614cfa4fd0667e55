// Package nav provides a grid A* path service over any occlusion world.
package nav

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
)

const (
	defaultCellSize = 1.0
	defaultMaxNodes = 4096
)

// World is the occlusion surface the grid is rasterized from.
type World interface {
	LineClear(a, b cp.Vector, mask uint) bool
	RegionClear(center cp.Vector, radius float64, mask uint) bool
}

// Options tunes the grid.
type Options struct {
	CellSize float64
	// Clearance is the radius tested around each cell center. Zero means
	// half a cell.
	Clearance float64
	Mask      uint
	// MaxNodes caps A* expansions per query. Zero uses the default.
	MaxNodes int
	// Smooth drops intermediate waypoints that are in direct line of sight.
	Smooth bool
}

// Grid is a path service over a rasterized occupancy grid covering Bounds.
// It is not Ready until Rebuild has run.
type Grid struct {
	bounds cp.BB
	opts   Options
	world  World

	gridW   int
	gridH   int
	blocked []bool
}

// NewGrid creates an empty grid over bounds.
func NewGrid(bounds cp.BB, opts Options) (*Grid, error) {
	if opts.CellSize <= 0 {
		opts.CellSize = defaultCellSize
	}
	if opts.Clearance <= 0 {
		opts.Clearance = opts.CellSize * 0.5
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = defaultMaxNodes
	}
	if opts.Mask == 0 {
		opts.Mask = ^uint(0)
	}
	gridW := int(math.Ceil((bounds.R - bounds.L) / opts.CellSize))
	gridH := int(math.Ceil((bounds.T - bounds.B) / opts.CellSize))
	if gridW <= 0 || gridH <= 0 {
		return nil, errors.Errorf("nav: empty bounds %v", bounds)
	}
	return &Grid{bounds: bounds, opts: opts, gridW: gridW, gridH: gridH}, nil
}

// Rebuild rasterizes world into the grid. Cells whose center is within
// Clearance of an obstacle are blocked.
func (g *Grid) Rebuild(world World) {
	if g == nil {
		return
	}
	g.world = world
	if world == nil {
		g.blocked = nil
		return
	}
	blocked := make([]bool, g.gridW*g.gridH)
	for y := 0; y < g.gridH; y++ {
		for x := 0; x < g.gridW; x++ {
			center := g.cellCenter(cell{x: x, y: y})
			blocked[y*g.gridW+x] = !world.RegionClear(center, g.opts.Clearance, g.opts.Mask)
		}
	}
	g.blocked = blocked
}

// Ready reports whether the grid has been rasterized.
func (g *Grid) Ready() bool {
	return g != nil && g.blocked != nil
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (int, int) {
	return g.gridW, g.gridH
}

// Blocked reports whether the cell containing p is blocked. Points outside
// the bounds count as blocked.
func (g *Grid) Blocked(p cp.Vector) bool {
	c, ok := g.cellAt(p)
	if !ok || !g.Ready() {
		return true
	}
	return g.blocked[c.y*g.gridW+c.x]
}

// FindPath returns world-space waypoints from start to goal. The start cell
// is omitted and the last waypoint is the exact goal, or the centre of the
// nearest free cell when the goal cell is blocked.
func (g *Grid) FindPath(start, goal cp.Vector) ([]cp.Vector, bool) {
	if !g.Ready() {
		return nil, false
	}
	from, ok := g.cellAt(start)
	if !ok {
		from = g.clampCell(start)
	}
	goalCell, ok := g.cellAt(goal)
	if !ok {
		return nil, false
	}
	to, ok := g.nearestFree(goalCell)
	if !ok {
		return nil, false
	}
	end := goal
	if to != goalCell {
		end = g.cellCenter(to)
	}

	cells := astar(from, to, g.blocked, g.gridW, g.gridH, g.opts.MaxNodes)
	if len(cells) == 0 {
		return nil, false
	}

	waypoints := make([]cp.Vector, 0, len(cells))
	for _, c := range cells[1:] {
		waypoints = append(waypoints, g.cellCenter(c))
	}
	if len(waypoints) == 0 {
		waypoints = append(waypoints, end)
	} else {
		waypoints[len(waypoints)-1] = end
	}
	if g.opts.Smooth && g.world != nil {
		waypoints = g.smooth(start, waypoints)
	}
	return waypoints, true
}

// smooth skips waypoints that can be reached directly from the last kept
// position.
func (g *Grid) smooth(start cp.Vector, waypoints []cp.Vector) []cp.Vector {
	out := make([]cp.Vector, 0, len(waypoints))
	from := start
	i := 0
	for i < len(waypoints) {
		next := i
		for j := len(waypoints) - 1; j > i; j-- {
			if g.world.LineClear(from, waypoints[j], g.opts.Mask) {
				next = j
				break
			}
		}
		out = append(out, waypoints[next])
		from = waypoints[next]
		i = next + 1
	}
	return out
}

func (g *Grid) nearestFree(c cell) (cell, bool) {
	if !g.blocked[c.y*g.gridW+c.x] {
		return c, true
	}
	for _, n := range neighbors(c, g.gridW, g.gridH) {
		if !g.blocked[n.y*g.gridW+n.x] {
			return n, true
		}
	}
	return cell{}, false
}

func (g *Grid) cellAt(p cp.Vector) (cell, bool) {
	c := cell{
		x: int(math.Floor((p.X - g.bounds.L) / g.opts.CellSize)),
		y: int(math.Floor((p.Y - g.bounds.B) / g.opts.CellSize)),
	}
	return c, inside(c, g.gridW, g.gridH)
}

func (g *Grid) clampCell(p cp.Vector) cell {
	c, _ := g.cellAt(p)
	if c.x < 0 {
		c.x = 0
	}
	if c.y < 0 {
		c.y = 0
	}
	if c.x >= g.gridW {
		c.x = g.gridW - 1
	}
	if c.y >= g.gridH {
		c.y = g.gridH - 1
	}
	return c
}

func (g *Grid) cellCenter(c cell) cp.Vector {
	half := g.opts.CellSize * 0.5
	return cp.Vector{
		X: g.bounds.L + float64(c.x)*g.opts.CellSize + half,
		Y: g.bounds.B + float64(c.y)*g.opts.CellSize + half,
	}
}
