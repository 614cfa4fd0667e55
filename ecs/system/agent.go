package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/component"
	"github.com/milk9111/pursuit/ecs"
	ecscomp "github.com/milk9111/pursuit/ecs/component"
)

// AgentEventType is the ecs.Event type carrying an AgentEvent.
const AgentEventType = "agent"

// AgentEvent is an agent presentation event tagged with its entity.
type AgentEvent struct {
	Entity ecs.Entity
	ai.Event
}

// AgentSink forwards an agent's events into the world event queue.
type AgentSink struct {
	World  *ecs.World
	Entity ecs.Entity
}

func (s AgentSink) Publish(evt ai.Event) {
	s.World.Events().Push(ecs.Event{Type: AgentEventType, Data: AgentEvent{Entity: s.Entity, Event: evt}})
}

// WorldTarget reads the target position from the first TargetTag entity.
type WorldTarget struct {
	World *ecs.World
}

func (t WorldTarget) TargetPosition() (cp.Vector, bool) {
	e, ok := ecs.First(t.World, ecscomp.TargetTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	tr, ok := ecs.Get(t.World, e, ecscomp.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: tr.X, Y: tr.Y}, true
}

// AgentDecisionSystem runs the decision step of every agent. It must be
// scheduled before AgentMovementSystem.
type AgentDecisionSystem struct{}

func NewAgentDecisionSystem() *AgentDecisionSystem {
	return &AgentDecisionSystem{}
}

func (s *AgentDecisionSystem) Update(w *ecs.World) {
	dt := w.Timestep()
	ecs.ForEach(w, ecscomp.AgentComponent.Kind(), func(e ecs.Entity, a *ecscomp.Agent) {
		if a.AI != nil {
			a.AI.Decide(dt)
		}
	})
}

// AgentMovementSystem integrates agent motion and mirrors it into the
// entity transform.
type AgentMovementSystem struct{}

func NewAgentMovementSystem() *AgentMovementSystem {
	return &AgentMovementSystem{}
}

func (s *AgentMovementSystem) Update(w *ecs.World) {
	dt := w.Timestep()
	ecs.ForEach(w, ecscomp.AgentComponent.Kind(), func(e ecs.Entity, a *ecscomp.Agent) {
		if a.AI == nil {
			return
		}
		a.AI.Move(dt)
		if tr, ok := ecs.Get(w, e, ecscomp.TransformComponent.Kind()); ok {
			pos := a.AI.Position()
			tr.X = pos.X
			tr.Y = pos.Y
			tr.Rotation = a.AI.Orientation()
		}
	})
}

// AgentRemovalSystem destroys entities whose agent finished dying.
type AgentRemovalSystem struct{}

func NewAgentRemovalSystem() *AgentRemovalSystem {
	return &AgentRemovalSystem{}
}

func (s *AgentRemovalSystem) Update(w *ecs.World) {
	ecs.ForEach(w, ecscomp.AgentComponent.Kind(), func(e ecs.Entity, a *ecscomp.Agent) {
		if a.AI == nil || a.AI.Lifecycle() == component.Removed {
			ecs.DestroyEntity(w, e)
		}
	})
}
