package component

// Transform is the world position and heading of an entity, in world units
// and radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
