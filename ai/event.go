package ai

import "github.com/jakecoffman/cp"

// EventKind identifies presentation events emitted by an agent.
type EventKind string

const (
	EventMove       EventKind = "move"
	EventEngaged    EventKind = "engaged"
	EventDisengaged EventKind = "disengaged"
	EventState      EventKind = "state"
	EventHurt       EventKind = "hurt"
	EventDied       EventKind = "died"
	EventRemoved    EventKind = "removed"
)

// Event is an outbound notification for animation and rendering layers.
type Event struct {
	Agent string
	Kind  EventKind

	// Direction is the normalized movement direction (EventMove).
	Direction cp.Vector
	Detected  bool
	// State is the pursuit state after an EventState transition.
	State State

	// Amount and Health are set for EventHurt.
	Amount float64
	Health float64
}

// Sink consumes presentation events.
type Sink interface {
	Publish(evt Event)
}

type nopSink struct{}

func (nopSink) Publish(Event) {}
