package component

import "github.com/jakecoffman/cp"

// Patrol moves an entity along a closed loop of points at Speed units per
// second. Next is the index of the point being approached.
type Patrol struct {
	Points []cp.Vector
	Speed  float64
	Next   int
	Paused bool
}

var PatrolComponent = NewComponent[Patrol]()
