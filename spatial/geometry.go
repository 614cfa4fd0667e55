package spatial

import (
	"math"

	"github.com/jakecoffman/cp"
)

// segmentHits reports whether the segment a-b touches o.
func segmentHits(a, b cp.Vector, o Obstacle) bool {
	switch o.Kind {
	case KindCircle:
		return segmentCircleHit(a, b, o.Center, o.Radius)
	case KindSegment:
		return segmentSegmentDistance(a, b, o.A, o.B) <= o.Radius
	default:
		d := b.Sub(a)
		hit, _ := segmentAABBHit(a, d, o.Box)
		return hit
	}
}

// discHits reports whether the disc at center touches o.
func discHits(center cp.Vector, radius float64, o Obstacle) bool {
	switch o.Kind {
	case KindCircle:
		return center.Distance(o.Center) <= radius+o.Radius
	case KindSegment:
		return pointSegmentDistance(center, o.A, o.B) <= radius+o.Radius
	default:
		closest := o.Box.ClampVect(&center)
		return center.Distance(closest) <= radius
	}
}

// segmentAABBHit is the slab test for the segment starting at p0 with delta d.
// It returns the entry parameter in [0, 1] on a hit.
func segmentAABBHit(p0, d cp.Vector, bb cp.BB) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if d.X != 0 {
		invD := 1.0 / d.X
		t1 := (bb.L - p0.X) * invD
		t2 := (bb.R - p0.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if p0.X < bb.L || p0.X > bb.R {
		return false, 0
	}

	if d.Y != 0 {
		invD := 1.0 / d.Y
		t1 := (bb.B - p0.Y) * invD
		t2 := (bb.T - p0.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if p0.Y < bb.B || p0.Y > bb.T {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}

func segmentCircleHit(a, b, center cp.Vector, r float64) bool {
	if r <= 0 {
		return false
	}
	return pointSegmentDistance(center, a, b) <= r
}

func pointSegmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mult(t)))
}

func segmentSegmentDistance(p1, p2, q1, q2 cp.Vector) float64 {
	if segmentsCross(p1, p2, q1, q2) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(p1, q1, q2), pointSegmentDistance(p2, q1, q2)),
		math.Min(pointSegmentDistance(q1, p1, p2), pointSegmentDistance(q2, p1, p2)),
	)
}

func segmentsCross(p1, p2, q1, q2 cp.Vector) bool {
	d1 := p2.Sub(p1).Cross(q1.Sub(p1))
	d2 := p2.Sub(p1).Cross(q2.Sub(p1))
	d3 := q2.Sub(q1).Cross(p1.Sub(q1))
	d4 := q2.Sub(q1).Cross(p2.Sub(q1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
