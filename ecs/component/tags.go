package component

// TargetTag marks the entity agents track.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()
