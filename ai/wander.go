package ai

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
)

// Wander produces random local destinations while no target is known.
type Wander struct {
	Target    cp.Vector
	Walking   bool
	IdleTimer float64

	Radius float64
	// Clearance is the radius of the obstruction test around a candidate.
	Clearance float64
	Attempts  int
	Mask      uint
	IdleMin   float64
	IdleMax   float64

	World SpatialQuery
	Rand  *rand.Rand
}

// PickTarget samples up to Attempts points uniformly inside the wander disc
// around origin and returns the first that is free and reachable in a
// straight line. If none qualifies, origin is returned.
func (w *Wander) PickTarget(origin cp.Vector) cp.Vector {
	if w.World == nil || w.Radius <= 0 {
		return origin
	}
	for i := 0; i < w.Attempts; i++ {
		candidate := origin.Add(w.sampleDisc())
		if !w.World.RegionClear(candidate, w.Clearance, w.Mask) {
			continue
		}
		if !w.World.LineClear(origin, candidate, w.Mask) {
			continue
		}
		return candidate
	}
	return origin
}

func (w *Wander) sampleDisc() cp.Vector {
	r := w.Radius * math.Sqrt(w.float())
	theta := 2 * math.Pi * w.float()
	return cp.ForAngle(theta).Mult(r)
}

func (w *Wander) float() float64 {
	if w.Rand == nil {
		return rand.Float64()
	}
	return w.Rand.Float64()
}

// Retarget picks a new destination and starts walking.
func (w *Wander) Retarget(origin cp.Vector) {
	w.Target = w.PickTarget(origin)
	w.Walking = true
}

// Update advances the walk/idle cycle for an agent at pos.
func (w *Wander) Update(pos cp.Vector, reached, dt float64) {
	if w.Walking {
		if pos.Distance(w.Target) <= reached {
			w.Walking = false
			w.IdleTimer = w.IdleMin + (w.IdleMax-w.IdleMin)*w.float()
		}
		return
	}
	w.IdleTimer -= dt
	if w.IdleTimer <= 0 {
		w.Retarget(pos)
	}
}
