package ai

import "github.com/jakecoffman/cp"

// SpatialQuery answers occlusion questions about the world. Implementations
// are owned by the world/physics layer.
type SpatialQuery interface {
	// LineClear reports whether the segment a-b touches no shape whose
	// layer is in mask.
	LineClear(a, b cp.Vector, mask uint) bool
	// RegionClear reports whether the disc at center is free of shapes
	// whose layer is in mask.
	RegionClear(center cp.Vector, radius float64, mask uint) bool
}

// PathService resolves waypoint paths between world positions.
type PathService interface {
	// FindPath returns the ordered waypoints from start to goal, or false
	// when no path exists.
	FindPath(start, goal cp.Vector) ([]cp.Vector, bool)
	// Ready reports whether the service can answer queries right now.
	Ready() bool
}

// TargetProvider gives read-only access to the tracked target.
type TargetProvider interface {
	TargetPosition() (cp.Vector, bool)
}
