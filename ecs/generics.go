package ecs

import (
	"github.com/milk9111/pursuit/ecs/component"
	"github.com/pkg/errors"
)

// Add attaches value to e, replacing any existing component of that kind.
// Errors wrap the component package sentinels; match them with errors.Cause.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return errors.Wrapf(component.ErrNilComponent, "add %s to %s", kind.Name(), e)
	}
	if !IsAlive(w, e) {
		return errors.Wrapf(component.ErrEntityNotAlive, "add %s to %s", kind.Name(), e)
	}
	w.store(kind.ID(), true).Set(int(e.id()), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := w.store(kind.ID(), false)
	if !s.Has(int(e.id())) {
		return false
	}
	s.Remove(int(e.id()))
	return true
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Has(int(e.id()))
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	value, ok := w.store(kind.ID(), false).Get(int(e.id())).(*T)
	return value, ok
}

// ForEach visits every live entity holding kind. Entities destroyed during
// the walk are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, value *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	ids := append([]int(nil), s.Entities()...)
	for _, id := range ids {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		value, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, value)
	}
}

// ForEach2 visits every live entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	for _, id := range IntersectEntities(sa, sb) {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// Count is the number of entities holding kind. Stores only hold live
// entities, since DestroyEntity clears them.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, id := range w.store(kind.ID(), false).Entities() {
		if e, ok := w.entities.handle(id); ok {
			return e, true
		}
	}
	return 0, false
}
