// Package spatial implements the occlusion queries agents run against the
// world: a Chipmunk-backed Space and an R-tree backed Index share one
// obstacle model.
package spatial

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Kind is the geometric primitive of an obstacle.
type Kind int

const (
	KindBox Kind = iota
	KindCircle
	KindSegment
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	case KindSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// LayerAll matches every obstacle layer.
const LayerAll = ^uint(0)

// Obstacle is a static piece of level geometry.
type Obstacle struct {
	Kind Kind
	// Box is used by KindBox.
	Box cp.BB
	// Center and Radius are used by KindCircle.
	Center cp.Vector
	// Radius is the circle radius, or the half thickness of a segment.
	Radius float64
	// A and B are the segment endpoints for KindSegment.
	A, B cp.Vector
	// Layer is the category bitmask tested against query masks.
	Layer uint
}

func Box(bb cp.BB, layer uint) Obstacle {
	return Obstacle{Kind: KindBox, Box: bb, Layer: layer}
}

func Circle(center cp.Vector, radius float64, layer uint) Obstacle {
	return Obstacle{Kind: KindCircle, Center: center, Radius: radius, Layer: layer}
}

func Segment(a, b cp.Vector, radius float64, layer uint) Obstacle {
	return Obstacle{Kind: KindSegment, A: a, B: b, Radius: radius, Layer: layer}
}

// Bounds returns the axis aligned bounding box of the obstacle.
func (o Obstacle) Bounds() cp.BB {
	switch o.Kind {
	case KindCircle:
		return cp.NewBBForCircle(o.Center, o.Radius)
	case KindSegment:
		return cp.BB{
			L: math.Min(o.A.X, o.B.X) - o.Radius,
			B: math.Min(o.A.Y, o.B.Y) - o.Radius,
			R: math.Max(o.A.X, o.B.X) + o.Radius,
			T: math.Max(o.A.Y, o.B.Y) + o.Radius,
		}
	default:
		return o.Box
	}
}

// World is a spatial backend that accepts obstacles and answers the agent
// occlusion queries.
type World interface {
	Add(o Obstacle)
	Obstacles() []Obstacle
	LineClear(a, b cp.Vector, mask uint) bool
	RegionClear(center cp.Vector, radius float64, mask uint) bool
}

// Extent returns the union of the bounds of obs. ok is false when obs is empty.
func Extent(obs []Obstacle) (bb cp.BB, ok bool) {
	for i, o := range obs {
		if i == 0 {
			bb = o.Bounds()
			continue
		}
		bb = bb.Merge(o.Bounds())
	}
	return bb, len(obs) > 0
}
