package ecs

import (
	"github.com/milk9111/pursuit/ecs/component"
)

// DefaultTimestep is the fixed simulation step in seconds.
const DefaultTimestep = 1.0 / 60.0

// World owns entities, component stores and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	timestep float64
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		timestep: DefaultTimestep,
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. Returns
// false if e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	id := int(e.id())
	for _, store := range w.stores {
		store.Remove(id)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for id := 1; id <= len(w.entities.gen); id++ {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Timestep is the simulated seconds advanced per update.
func (w *World) Timestep() float64 {
	if w == nil {
		return 0
	}
	return w.timestep
}

func (w *World) SetTimestep(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.timestep = dt
}

// Tick is the number of completed updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
