// Package sandbox assembles a runnable scenario: obstacles, a path grid, a
// target and a set of agents driven through the ECS scheduler.
package sandbox

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/ecs"
	"github.com/milk9111/pursuit/ecs/component"
	"github.com/milk9111/pursuit/ecs/system"
	"github.com/milk9111/pursuit/nav"
	"github.com/milk9111/pursuit/prefabs"
	"github.com/milk9111/pursuit/spatial"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	wallLayer     uint = 1
	wallThickness      = 0.1
)

// AgentView is a read-only snapshot handle for front-ends.
type AgentView struct {
	Entity    ecs.Entity
	Archetype string
	Agent     *ai.Agent
}

// PopupView is a live script popup.
type PopupView struct {
	Position cp.Vector
	Text     string
	// Remaining is the number of ticks left before the popup expires.
	Remaining int
}

// Sandbox owns one scenario world. It is not safe for concurrent use; front
// ends call Step and the accessors from their update loop.
type Sandbox struct {
	spec   prefabs.ScenarioSpec
	bounds cp.BB
	world  *ecs.World
	space  spatial.World
	grid   *nav.Grid
	sched  *ecs.Scheduler
	hooks  *system.ScriptHookSystem
	target ecs.Entity
	log    logrus.FieldLogger
}

// Load builds the scenario <name>.yaml.
func Load(name string) (*Sandbox, error) {
	spec, err := prefabs.LoadScenarioSpec(name)
	if err != nil {
		return nil, err
	}
	return New(spec)
}

// New builds a sandbox from a scenario spec.
func New(spec prefabs.ScenarioSpec) (*Sandbox, error) {
	if spec.Bounds.W <= 0 || spec.Bounds.H <= 0 {
		return nil, errors.Errorf("sandbox %s: bounds %vx%v must be positive", spec.Name, spec.Bounds.W, spec.Bounds.H)
	}
	s := &Sandbox{
		spec:   spec,
		bounds: cp.BB{L: 0, B: 0, R: spec.Bounds.W, T: spec.Bounds.H},
		world:  ecs.NewWorld(),
		hooks:  system.NewScriptHookSystem(),
		log:    common.Log.WithField("scenario", spec.Name),
	}
	if spec.Timestep > 0 {
		s.world.SetTimestep(spec.Timestep)
	}

	space, err := newBackend(spec.Backend)
	if err != nil {
		return nil, errors.Wrapf(err, "sandbox %s", spec.Name)
	}
	s.space = space
	if spec.Walls {
		s.addWalls()
	}
	for i, o := range spec.Obstacles {
		obstacle, err := o.ToObstacle()
		if err != nil {
			return nil, errors.Wrapf(err, "sandbox %s: obstacle %d", spec.Name, i)
		}
		s.space.Add(obstacle)
	}

	grid, err := nav.NewGrid(s.bounds, nav.Options{CellSize: spec.CellSize, Smooth: true})
	if err != nil {
		return nil, errors.Wrapf(err, "sandbox %s", spec.Name)
	}
	grid.Rebuild(s.space)
	s.grid = grid

	if err := s.spawnTarget(); err != nil {
		return nil, errors.Wrapf(err, "sandbox %s: target", spec.Name)
	}

	archetypes := map[string]prefabs.AgentSpec{}
	for i, p := range spec.Agents {
		arch, ok := archetypes[p.Archetype]
		if !ok {
			arch, err = prefabs.LoadAgentSpec(p.Archetype)
			if err != nil {
				return nil, errors.Wrapf(err, "sandbox %s: agent %s", spec.Name, p.ID)
			}
			archetypes[p.Archetype] = arch
		}
		if err := s.spawnAgent(i, p, arch); err != nil {
			return nil, errors.Wrapf(err, "sandbox %s: agent %s", spec.Name, p.ID)
		}
	}

	s.sched = ecs.NewScheduler(
		system.NewPatrolSystem(),
		system.NewAgentDecisionSystem(),
		system.NewAgentMovementSystem(),
		s.hooks,
		system.NewTTLSystem(),
		system.NewAgentRemovalSystem(),
	)

	s.log.WithFields(logrus.Fields{
		"backend":   backendName(spec.Backend),
		"agents":    len(spec.Agents),
		"obstacles": len(s.space.Obstacles()),
	}).Info("sandbox ready")
	return s, nil
}

func newBackend(name string) (spatial.World, error) {
	switch backendName(name) {
	case "space":
		return spatial.NewSpace(), nil
	case "index":
		return spatial.NewIndex(), nil
	default:
		return nil, errors.Errorf("unknown spatial backend %q", name)
	}
}

func backendName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "space"
	}
	return name
}

func (s *Sandbox) addWalls() {
	b := s.bounds
	corners := []cp.Vector{{X: b.L, Y: b.B}, {X: b.R, Y: b.B}, {X: b.R, Y: b.T}, {X: b.L, Y: b.T}}
	for i, a := range corners {
		s.space.Add(spatial.Segment(a, corners[(i+1)%len(corners)], wallThickness, wallLayer))
	}
}

func (s *Sandbox) spawnTarget() error {
	t := s.spec.Target
	s.target = ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, s.target, component.TargetTagComponent.Kind(), &component.TargetTag{}); err != nil {
		return err
	}
	if err := ecs.Add(s.world, s.target, component.TransformComponent.Kind(), &component.Transform{X: t.X, Y: t.Y}); err != nil {
		return err
	}
	if len(t.Patrol) == 0 {
		return nil
	}
	points := make([]cp.Vector, 0, len(t.Patrol))
	for _, p := range t.Patrol {
		points = append(points, p.Vector())
	}
	return ecs.Add(s.world, s.target, component.PatrolComponent.Kind(), &component.Patrol{Points: points, Speed: t.Speed})
}

func (s *Sandbox) spawnAgent(i int, p prefabs.AgentPlacementSpec, arch prefabs.AgentSpec) error {
	cfg, err := arch.ToConfig()
	if err != nil {
		return err
	}
	e := ecs.CreateEntity(s.world)
	a, err := ai.New(p.ID, cfg, cp.Vector{X: p.X, Y: p.Y}, ai.Deps{
		World:  s.space,
		Paths:  s.grid,
		Target: system.WorldTarget{World: s.world},
		Sink:   system.AgentSink{World: s.world, Entity: e},
		Logger: s.log.WithFields(logrus.Fields{"agent": p.ID, "archetype": p.Archetype}),
		Rand:   rand.New(rand.NewSource(s.spec.Seed + int64(i))),
	})
	if err != nil {
		ecs.DestroyEntity(s.world, e)
		return err
	}
	a.SetOrientation(p.Facing * math.Pi / 180)

	if err := ecs.Add(s.world, e, component.AgentComponent.Kind(), &component.Agent{AI: a, Archetype: p.Archetype}); err != nil {
		return err
	}
	pos := a.Position()
	if err := ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, Rotation: a.Orientation()}); err != nil {
		return err
	}
	if arch.Script != "" {
		return ecs.Add(s.world, e, component.ScriptHookComponent.Kind(), &component.ScriptHook{Path: arch.Script})
	}
	return nil
}

// Step advances one fixed timestep and returns the events raised since the
// previous step.
func (s *Sandbox) Step() []ecs.Event {
	s.sched.Update(s.world)
	return s.world.Events().Drain()
}

// DamageAt damages every living agent within radius of point and returns
// how many hits registered.
func (s *Sandbox) DamageAt(point cp.Vector, radius, amount float64) int {
	hits := 0
	for _, v := range s.Agents() {
		if v.Agent.Position().Distance(point) <= radius && v.Agent.ApplyDamage(amount) {
			hits++
		}
	}
	if hits > 0 {
		s.log.WithFields(logrus.Fields{"at": point, "amount": amount, "hits": hits}).Debug("area damage")
	}
	return hits
}

// Reconfigure applies cfg to every agent of the archetype and returns how
// many were updated.
func (s *Sandbox) Reconfigure(archetype string, cfg ai.Config) (int, error) {
	n := 0
	for _, v := range s.Agents() {
		if v.Archetype != archetype {
			continue
		}
		if err := v.Agent.Reconfigure(cfg); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ReloadArchetype re-reads <name>.yaml and applies it to live agents,
// including a changed script path.
func (s *Sandbox) ReloadArchetype(name string) (int, error) {
	arch, err := prefabs.LoadAgentSpec(name)
	if err != nil {
		return 0, err
	}
	cfg, err := arch.ToConfig()
	if err != nil {
		return 0, err
	}
	n, err := s.Reconfigure(name, cfg)
	if err != nil {
		return n, err
	}
	for _, v := range s.Agents() {
		if v.Archetype != name {
			continue
		}
		s.setScript(v.Entity, arch.Script)
	}
	s.log.WithFields(logrus.Fields{"archetype": name, "agents": n}).Info("archetype reloaded")
	return n, nil
}

func (s *Sandbox) setScript(e ecs.Entity, script string) {
	hook, ok := ecs.Get(s.world, e, component.ScriptHookComponent.Kind())
	switch {
	case script == "" && ok:
		ecs.Remove(s.world, e, component.ScriptHookComponent.Kind())
	case script == "":
	case ok:
		hook.Path = script
	default:
		_ = ecs.Add(s.world, e, component.ScriptHookComponent.Kind(), &component.ScriptHook{Path: script})
	}
}

// ReloadScripts recompiles every script hook on its next event.
func (s *Sandbox) ReloadScripts() {
	s.hooks.Reload(s.world)
	s.log.Info("scripts reloaded")
}

// Target returns the target position.
func (s *Sandbox) Target() (cp.Vector, bool) {
	return system.WorldTarget{World: s.world}.TargetPosition()
}

// SetTarget moves the target to pos, clamped to the bounds, and pauses its
// patrol.
func (s *Sandbox) SetTarget(pos cp.Vector) {
	tr, ok := ecs.Get(s.world, s.target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pos = s.bounds.ClampVect(&pos)
	tr.X, tr.Y = pos.X, pos.Y
	if p, ok := ecs.Get(s.world, s.target, component.PatrolComponent.Kind()); ok {
		p.Paused = true
	}
}

// MoveTarget nudges the target by delta.
func (s *Sandbox) MoveTarget(delta cp.Vector) {
	pos, ok := s.Target()
	if !ok {
		return
	}
	s.SetTarget(pos.Add(delta))
}

// ResumePatrol restarts a paused target patrol.
func (s *Sandbox) ResumePatrol() {
	if p, ok := ecs.Get(s.world, s.target, component.PatrolComponent.Kind()); ok {
		p.Paused = false
	}
}

// RemoveTarget takes the target out of the world; agents fall back to
// searching their memory.
func (s *Sandbox) RemoveTarget() {
	ecs.DestroyEntity(s.world, s.target)
}

// Agents returns the agents still in the world ordered by id.
func (s *Sandbox) Agents() []AgentView {
	var out []AgentView
	ecs.ForEach(s.world, component.AgentComponent.Kind(), func(e ecs.Entity, a *component.Agent) {
		if a.AI != nil {
			out = append(out, AgentView{Entity: e, Archetype: a.Archetype, Agent: a.AI})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Agent.ID() < out[j].Agent.ID() })
	return out
}

// Agent looks up a live agent by id.
func (s *Sandbox) Agent(id string) (AgentView, bool) {
	for _, v := range s.Agents() {
		if v.Agent.ID() == id {
			return v, true
		}
	}
	return AgentView{}, false
}

// Popups returns the live script popups.
func (s *Sandbox) Popups() []PopupView {
	var out []PopupView
	ecs.ForEach(s.world, component.PopupComponent.Kind(), func(e ecs.Entity, p *component.Popup) {
		v := PopupView{Text: p.Text}
		if tr, ok := ecs.Get(s.world, e, component.TransformComponent.Kind()); ok {
			v.Position = cp.Vector{X: tr.X, Y: tr.Y}
		}
		if ttl, ok := ecs.Get(s.world, e, component.TTLComponent.Kind()); ok {
			v.Remaining = ttl.Frames
		}
		out = append(out, v)
	})
	return out
}

func (s *Sandbox) Name() string                  { return s.spec.Name }
func (s *Sandbox) Bounds() cp.BB                 { return s.bounds }
func (s *Sandbox) World() *ecs.World             { return s.world }
func (s *Sandbox) Spatial() spatial.World        { return s.space }
func (s *Sandbox) Grid() *nav.Grid               { return s.grid }
func (s *Sandbox) Obstacles() []spatial.Obstacle { return s.space.Obstacles() }
func (s *Sandbox) Timestep() float64             { return s.world.Timestep() }
func (s *Sandbox) Tick() uint64                  { return s.world.Tick() }
