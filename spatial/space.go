package spatial

import (
	"github.com/jakecoffman/cp"
)

// Space answers occlusion queries with a Chipmunk space holding static
// shapes. Obstacle layers become shape filter categories.
type Space struct {
	space     *cp.Space
	obstacles []Obstacle
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	return &Space{space: space}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Add attaches a static shape for o to the space.
func (s *Space) Add(o Obstacle) {
	if s == nil || s.space == nil {
		return
	}
	body := s.space.StaticBody
	var shape *cp.Shape
	switch o.Kind {
	case KindCircle:
		shape = cp.NewCircle(body, o.Radius, o.Center)
	case KindSegment:
		shape = cp.NewSegment(body, o.A, o.B, o.Radius)
	default:
		shape = cp.NewBox2(body, o.Box, 0)
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, o.Layer, cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
	s.obstacles = append(s.obstacles, o)
}

func (s *Space) AddBox(bb cp.BB, layer uint) {
	s.Add(Box(bb, layer))
}

func (s *Space) AddCircle(center cp.Vector, radius float64, layer uint) {
	s.Add(Circle(center, radius, layer))
}

func (s *Space) AddSegment(a, b cp.Vector, radius float64, layer uint) {
	s.Add(Segment(a, b, radius, layer))
}

// Obstacles returns the obstacles in insertion order.
func (s *Space) Obstacles() []Obstacle {
	if s == nil {
		return nil
	}
	return s.obstacles
}

// LineClear reports whether the segment a-b misses every shape on a layer
// in mask.
func (s *Space) LineClear(a, b cp.Vector, mask uint) bool {
	if s == nil || s.space == nil {
		return true
	}
	info := s.space.SegmentQueryFirst(a, b, 0, queryFilter(mask))
	return info.Shape == nil
}

// RegionClear reports whether no shape on a layer in mask lies within
// radius of center.
func (s *Space) RegionClear(center cp.Vector, radius float64, mask uint) bool {
	if s == nil || s.space == nil {
		return true
	}
	if radius < 0 {
		radius = 0
	}
	info := s.space.PointQueryNearest(center, radius, queryFilter(mask))
	return info == nil || info.Shape == nil
}

func queryFilter(mask uint) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
}
