package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle wraps an angle in radians to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates from a toward b along the shortest arc.
func LerpAngle(a, b, t float64) float64 {
	diff := NormalizeAngle(b - a)
	return NormalizeAngle(a + diff*Clamp(t, 0, 1))
}

// AngleBetween returns the unsigned angle in degrees between a and b.
// Either vector being zero length yields 0.
func AngleBetween(a, b cp.Vector) float64 {
	denom := a.Length() * b.Length()
	if denom < Epsilon {
		return 0
	}
	cos := Clamp(a.Dot(b)/denom, -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

// Direction returns the unit vector from `from` to `to` and the distance
// between them. ok is false when the points coincide.
func Direction(from, to cp.Vector) (dir cp.Vector, dist float64, ok bool) {
	delta := to.Sub(from)
	dist = delta.Length()
	if dist < Epsilon {
		return cp.Vector{}, 0, false
	}
	return delta.Mult(1 / dist), dist, true
}
