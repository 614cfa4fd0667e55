package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/common"
)

// PathPlan is a waypoint list with a cursor at the waypoint being steered to.
type PathPlan struct {
	Waypoints []cp.Vector
	Cursor    int
}

// Replace swaps in a new waypoint list and rewinds the cursor.
func (p *PathPlan) Replace(waypoints []cp.Vector) {
	p.Waypoints = append(p.Waypoints[:0], waypoints...)
	p.Cursor = 0
}

func (p *PathPlan) Clear() {
	p.Waypoints = p.Waypoints[:0]
	p.Cursor = 0
}

// Empty reports whether there is no plan at all. A finished plan is not
// empty: the agent holds position at its end until a new plan arrives.
func (p *PathPlan) Empty() bool {
	return len(p.Waypoints) == 0
}

// Finished reports whether the cursor has passed the last waypoint.
func (p *PathPlan) Finished() bool {
	return p.Cursor >= len(p.Waypoints)
}

// Current returns the waypoint under the cursor.
func (p *PathPlan) Current() (cp.Vector, bool) {
	if p.Finished() {
		return cp.Vector{}, false
	}
	return p.Waypoints[p.Cursor], true
}

// Advance moves the cursor forward and returns the new current waypoint.
func (p *PathPlan) Advance() (cp.Vector, bool) {
	if p.Cursor < len(p.Waypoints) {
		p.Cursor++
	}
	return p.Current()
}

// Locomotion turns a chosen point into velocity, orientation and a published
// movement direction.
type Locomotion struct {
	Plan PathPlan

	Velocity cp.Vector
	// Orientation is the heading in radians; 0 faces +X.
	Orientation float64
	// Direction is the normalized movement direction of the last step.
	Direction cp.Vector
}

// Facing returns the unit vector of the current orientation.
func (l *Locomotion) Facing() cp.Vector {
	return cp.ForAngle(l.Orientation)
}

// Stop zeroes velocity and the published direction.
func (l *Locomotion) Stop() {
	l.Velocity = cp.Vector{}
	l.Direction = cp.Vector{}
}

// SteerTowards sets velocity toward point at speed and turns the orientation
// toward the heading by turn (a fraction in [0, 1]). Returns false and stops
// when the point coincides with pos.
func (l *Locomotion) SteerTowards(pos, point cp.Vector, speed, turn float64) bool {
	dir, _, ok := common.Direction(pos, point)
	if !ok {
		l.Stop()
		return false
	}
	l.Velocity = dir.Mult(speed)
	l.Direction = dir
	heading := math.Atan2(dir.Y, dir.X)
	l.Orientation = common.LerpAngle(l.Orientation, heading, turn)
	return true
}
