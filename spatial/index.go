package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/jakecoffman/cp"
)

// pad grows every rectangle handed to the tree so that degenerate and
// touching boxes still intersect; rtreego rejects zero-length sides.
const pad = 0.005

type indexed struct {
	Obstacle
	rect rtreego.Rect
}

func (i *indexed) Bounds() rtreego.Rect {
	return i.rect
}

// Index answers occlusion queries with an R-tree broadphase and exact
// segment/box/circle tests. It needs no physics space, which makes it the
// lighter backend for headless runs.
type Index struct {
	tree      *rtreego.Rtree
	obstacles []Obstacle
}

func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(2, 25, 50)}
}

func (x *Index) Add(o Obstacle) {
	rect, err := toRect(o.Bounds())
	if err != nil {
		return
	}
	x.tree.Insert(&indexed{Obstacle: o, rect: rect})
	x.obstacles = append(x.obstacles, o)
}

func (x *Index) Obstacles() []Obstacle {
	return x.obstacles
}

// Len is the number of indexed obstacles.
func (x *Index) Len() int {
	return x.tree.Size()
}

func (x *Index) LineClear(a, b cp.Vector, mask uint) bool {
	bb := cp.NewBBForExtents(a, 0, 0).Expand(b)
	return !x.any(bb, mask, func(o Obstacle) bool {
		return segmentHits(a, b, o)
	})
}

func (x *Index) RegionClear(center cp.Vector, radius float64, mask uint) bool {
	if radius < 0 {
		radius = 0
	}
	bb := cp.NewBBForCircle(center, radius)
	return !x.any(bb, mask, func(o Obstacle) bool {
		return discHits(center, radius, o)
	})
}

// any runs hit against every obstacle on a layer in mask whose bounds
// intersect bb, stopping at the first hit.
func (x *Index) any(bb cp.BB, mask uint, hit func(o Obstacle) bool) bool {
	rect, err := toRect(bb)
	if err != nil {
		return false
	}
	found := false
	x.tree.SearchIntersect(rect, func(results []rtreego.Spatial, object rtreego.Spatial) (refuse, abort bool) {
		o := object.(*indexed)
		if o.Layer&mask == 0 {
			return true, false
		}
		if hit(o.Obstacle) {
			found = true
			return false, true
		}
		return true, false
	})
	return found
}

func toRect(bb cp.BB) (rtreego.Rect, error) {
	w := math.Max(bb.R-bb.L, 0) + 2*pad
	h := math.Max(bb.T-bb.B, 0) + 2*pad
	return rtreego.NewRect(rtreego.Point{bb.L - pad, bb.B - pad}, []float64{w, h})
}
