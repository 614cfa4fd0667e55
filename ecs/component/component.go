package component

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	componentNames  sync.Map // ComponentID -> string
)

// ComponentKind is the typed key of a component store. The zero value is
// invalid.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh kind for T. Two kinds for the same T
// address separate stores.
func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	componentNames.Store(id, reflect.TypeOf((*T)(nil)).Elem().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is the Go type name of T, used in error and log messages.
func (k ComponentKind[T]) Name() string {
	return NameOf(k.id)
}

// NameOf returns the registered type name of id.
func NameOf(id ComponentID) string {
	if name, ok := componentNames.Load(id); ok {
		return name.(string)
	}
	return "invalid"
}

// ComponentHandle is the package-level declaration of a component kind,
// e.g. var AgentComponent = NewComponent[Agent]().
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
