package ai

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/common"
)

// Perception is a vision cone: a range, a half-angle in degrees and an
// occlusion test against the world.
type Perception struct {
	Range     float64
	HalfAngle float64
	Mask      uint
	World     SpatialQuery
}

// Sense reports whether target is inside the cone and unobstructed. facing
// must be normalized; a zero facing vector never senses anything.
func (p Perception) Sense(agentPos, facing, target cp.Vector) bool {
	if p.World == nil || facing.LengthSq() < common.Epsilon {
		return false
	}
	toTarget := target.Sub(agentPos)
	dist := toTarget.Length()
	if dist > p.Range {
		return false
	}
	if dist < common.Epsilon {
		return true
	}
	if common.AngleBetween(facing, toTarget) > p.HalfAngle {
		return false
	}
	return p.World.LineClear(agentPos, target, p.Mask)
}

// Resight is the range and occlusion test used to keep an ongoing pursuit
// alive. It deliberately ignores the cone angle.
func (p Perception) Resight(agentPos, target cp.Vector) bool {
	if p.World == nil {
		return false
	}
	if agentPos.Distance(target) > p.Range {
		return false
	}
	return p.World.LineClear(agentPos, target, p.Mask)
}
