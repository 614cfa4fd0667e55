package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ecs"
	"github.com/milk9111/pursuit/ecs/component"
)

// PatrolSystem walks entities around their patrol loop.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World) {
	dt := w.Timestep()
	ecs.ForEach2(w, component.PatrolComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Patrol, t *component.Transform) {
		if p.Paused || p.Speed <= 0 || len(p.Points) == 0 {
			return
		}
		pos := cp.Vector{X: t.X, Y: t.Y}
		step := p.Speed * dt
		// bounded so a loop of coincident points cannot spin forever
		for i := 0; i <= len(p.Points) && step > 0; i++ {
			if p.Next >= len(p.Points) {
				p.Next = 0
			}
			goal := p.Points[p.Next]
			dist := pos.Distance(goal)
			if dist > step {
				pos = pos.Add(goal.Sub(pos).Mult(step / dist))
				break
			}
			pos = goal
			step -= dist
			p.Next = (p.Next + 1) % len(p.Points)
		}
		t.X = pos.X
		t.Y = pos.Y
	})
}
