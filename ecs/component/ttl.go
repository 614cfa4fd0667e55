package component

import "math"

// TTL destroys its entity after Frames scheduler ticks.
type TTL struct {
	Frames int
}

// NewTTL converts a lifetime in seconds into whole ticks of timestep,
// rounding up. The result lives for at least one tick.
func NewTTL(seconds, timestep float64) *TTL {
	frames := 1
	if timestep > 0 {
		frames = max(int(math.Ceil(seconds/timestep-1e-9)), 1)
	}
	return &TTL{Frames: frames}
}

var TTLComponent = NewComponent[TTL]()
