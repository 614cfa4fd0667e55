package ai

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/component"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators an agent talks to. World is required; every
// other dependency may be nil, in which case the agent degrades instead of
// failing.
type Deps struct {
	World  SpatialQuery
	Paths  PathService
	Target TargetProvider
	Sink   Sink
	Logger logrus.FieldLogger
	Rand   *rand.Rand
}

// Agent is a single AI-controlled actor. Decide must run before Move in
// every simulation frame; both are no-ops once the agent is no longer alive
// apart from advancing the removal countdown.
type Agent struct {
	id  string
	cfg Config
	pos cp.Vector

	perception Perception
	pursuit    Pursuit
	loco       Locomotion
	wander     Wander
	health     *component.Health

	paths  PathService
	target TargetProvider
	sink   Sink
	log    logrus.FieldLogger

	pathTimer     float64
	lastState     State
	lastDetected  bool
	targetMissing bool
	pathsMissing  bool
}

// New creates an alive agent at full health positioned at pos.
func New(id string, cfg Config, pos cp.Vector, deps Deps) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "agent %s", id)
	}
	if deps.World == nil {
		return nil, errors.Errorf("agent %s: spatial query is required", id)
	}
	if deps.Sink == nil {
		deps.Sink = nopSink{}
	}
	if deps.Logger == nil {
		deps.Logger = common.Log.WithField("agent", id)
	}

	a := &Agent{
		id:     id,
		pos:    pos,
		paths:  deps.Paths,
		target: deps.Target,
		sink:   deps.Sink,
		log:    deps.Logger,
		health: component.NewHealth(cfg.MaxHealth),
		wander: Wander{World: deps.World, Rand: deps.Rand},
	}
	a.perception.World = deps.World
	a.applyConfig(cfg)
	a.health.OnDamage = a.onDamage
	a.health.OnDeath = a.onDeath
	a.health.OnRemoved = a.onRemoved

	// first decision tick issues a path query right away
	a.pathTimer = cfg.PathUpdateInterval

	if !cfg.Stationary {
		a.wander.Retarget(pos)
	}
	return a, nil
}

func (a *Agent) applyConfig(cfg Config) {
	a.cfg = cfg
	a.perception.Range = cfg.DetectionRange
	a.perception.HalfAngle = cfg.DetectionAngle
	a.perception.Mask = cfg.ObstructionMask

	a.wander.Radius = cfg.WanderRadius
	a.wander.Clearance = cfg.WaypointReachedDistance
	a.wander.Attempts = cfg.WanderAttempts
	a.wander.Mask = cfg.ObstructionMask
	a.wander.IdleMin = cfg.IdleTimeMin
	a.wander.IdleMax = cfg.IdleTimeMax

	a.health.SetMaxHP(cfg.MaxHealth)
	a.health.DeathDelay = cfg.DeathDelay
	a.health.Invulnerable = cfg.Invulnerable
}

// Reconfigure swaps the tuning of a live agent. Pursuit memory, path plan,
// health and lifecycle carry over.
func (a *Agent) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(err, "agent %s", a.id)
	}
	a.applyConfig(cfg)
	if cfg.Stationary || !cfg.UsePathfinding {
		a.loco.Plan.Clear()
	}
	return nil
}

// Decide runs the perception, pursuit, path and wander steps for one frame.
func (a *Agent) Decide(dt float64) {
	if !a.health.IsAlive() {
		a.health.Tick(dt)
		return
	}

	target, ok := a.targetPosition()
	sensed := ok && a.perception.Sense(a.pos, a.loco.Facing(), target)
	var resight func() bool
	if ok {
		resight = func() bool { return a.perception.Resight(a.pos, target) }
	}
	a.pursuit.Observe(sensed, target, resight)
	a.pursuit.ForgetIfReached(a.pos, a.cfg.StopDistance)
	a.publishState()

	a.updatePath(dt, target)

	if a.pursuit.State() == Wandering && !a.cfg.Stationary {
		a.wander.Update(a.pos, a.cfg.WaypointReachedDistance, dt)
	}
}

// Move applies the current decision: it sets velocity and orientation and
// integrates the position over dt.
func (a *Agent) Move(dt float64) {
	if !a.health.IsAlive() {
		return
	}

	turn := common.Clamp(a.cfg.RotationSpeed*dt, 0, 1)
	switch {
	case a.cfg.Stationary:
		a.track(turn, 0)
	case a.cfg.UsePathfinding && !a.loco.Plan.Empty():
		a.followPath(turn)
	default:
		a.fallback(turn)
	}

	a.pos = a.pos.Add(a.loco.Velocity.Mult(dt))
	a.sink.Publish(Event{
		Agent:     a.id,
		Kind:      EventMove,
		Direction: a.loco.Direction,
		Detected:  a.pursuit.Detected(),
	})
}

// Tick runs Decide then Move.
func (a *Agent) Tick(dt float64) {
	a.Decide(dt)
	a.Move(dt)
}

func (a *Agent) followPath(turn float64) {
	wp, ok := a.loco.Plan.Current()
	if !ok {
		a.loco.Stop()
		return
	}
	if a.pos.Distance(wp) <= a.cfg.WaypointReachedDistance {
		wp, ok = a.loco.Plan.Advance()
		if !ok {
			a.loco.Stop()
			return
		}
	}
	a.loco.SteerTowards(a.pos, wp, a.cfg.MoveSpeed, turn)
}

func (a *Agent) fallback(turn float64) {
	switch a.pursuit.State() {
	case Pursuing, Searching:
		a.track(turn, a.cfg.MoveSpeed)
	default:
		if a.wander.Walking {
			a.loco.SteerTowards(a.pos, a.wander.Target, a.cfg.WanderSpeed, turn)
			return
		}
		a.loco.Stop()
	}
}

// track steers toward the live target while pursuing, or the memory while
// searching.
func (a *Agent) track(turn, speed float64) {
	switch a.pursuit.State() {
	case Pursuing:
		target, ok := a.targetPosition()
		if !ok {
			target = a.pursuit.Memory().Position
		}
		a.loco.SteerTowards(a.pos, target, speed, turn)
	case Searching:
		if a.pursuit.ForgetIfReached(a.pos, a.cfg.StopDistance) {
			a.loco.Stop()
			a.publishState()
			return
		}
		a.loco.SteerTowards(a.pos, a.pursuit.Memory().Position, speed, turn)
	default:
		a.loco.Stop()
	}
}

func (a *Agent) updatePath(dt float64, target cp.Vector) {
	if !a.cfg.UsePathfinding || a.cfg.Stationary {
		return
	}
	if a.paths == nil || !a.paths.Ready() {
		if !a.pathsMissing {
			a.log.Warn("path service unavailable, using direct steering")
			a.pathsMissing = true
		}
		a.loco.Plan.Clear()
		return
	}
	if a.pathsMissing {
		a.log.Info("path service available again")
		a.pathsMissing = false
	}

	a.pathTimer += dt
	if a.pursuit.State() == Wandering {
		a.loco.Plan.Clear()
		return
	}
	if a.pathTimer < a.cfg.PathUpdateInterval {
		return
	}
	a.pathTimer = 0

	goal, ok := a.pathGoal(target)
	if !ok {
		a.loco.Plan.Clear()
		return
	}
	waypoints, found := a.paths.FindPath(a.pos, goal)
	if !found || len(waypoints) == 0 {
		a.log.WithFields(logrus.Fields{"from": a.pos, "to": goal}).Debug("no path")
		a.loco.Plan.Clear()
		return
	}
	a.loco.Plan.Replace(waypoints)
}

func (a *Agent) pathGoal(target cp.Vector) (cp.Vector, bool) {
	var goal cp.Vector
	switch a.pursuit.State() {
	case Pursuing:
		goal = target
	case Searching:
		goal = a.pursuit.Memory().Position
	default:
		return cp.Vector{}, false
	}
	if a.pos.Distance(goal) <= a.cfg.StopDistance {
		return cp.Vector{}, false
	}
	return goal, true
}

func (a *Agent) targetPosition() (cp.Vector, bool) {
	var (
		pos cp.Vector
		ok  bool
	)
	if a.target != nil {
		pos, ok = a.target.TargetPosition()
	}
	if !ok && !a.targetMissing {
		a.log.Warn("target unavailable, perception suspended")
	} else if ok && a.targetMissing {
		a.log.Info("target available again")
	}
	a.targetMissing = !ok
	return pos, ok
}

func (a *Agent) publishState() {
	state := a.pursuit.State()
	if state != a.lastState {
		a.log.WithFields(logrus.Fields{"from": a.lastState, "to": state}).Debug("pursuit state changed")
		a.lastState = state
		a.sink.Publish(Event{Agent: a.id, Kind: EventState, State: state, Detected: a.pursuit.Detected()})
	}
	detected := a.pursuit.Detected()
	if detected != a.lastDetected {
		a.lastDetected = detected
		kind := EventDisengaged
		if detected {
			kind = EventEngaged
		}
		a.sink.Publish(Event{Agent: a.id, Kind: kind, Detected: detected})
	}
}

// ApplyDamage is the entry point for external combat sources. Returns true
// if the hit registered.
func (a *Agent) ApplyDamage(amount float64) bool {
	return a.health.ApplyDamage(amount)
}

// Heal restores health up to the maximum while the agent is alive.
func (a *Agent) Heal(amount float64) {
	a.health.Heal(amount)
}

func (a *Agent) onDamage(h *component.Health, amount float64) {
	a.log.WithFields(logrus.Fields{"amount": amount, "health": h.Current}).Debug("took damage")
	a.sink.Publish(Event{Agent: a.id, Kind: EventHurt, Amount: amount, Health: h.Current})
}

func (a *Agent) onDeath(*component.Health) {
	a.loco.Stop()
	a.loco.Plan.Clear()
	a.log.WithField("delay", a.cfg.DeathDelay).Info("died")
	a.sink.Publish(Event{Agent: a.id, Kind: EventDied})
}

func (a *Agent) onRemoved(*component.Health) {
	a.log.Info("removed")
	a.sink.Publish(Event{Agent: a.id, Kind: EventRemoved})
}

func (a *Agent) ID() string               { return a.id }
func (a *Agent) Config() Config           { return a.cfg }
func (a *Agent) Position() cp.Vector      { return a.pos }
func (a *Agent) Velocity() cp.Vector      { return a.loco.Velocity }
func (a *Agent) Orientation() float64     { return a.loco.Orientation }
func (a *Agent) Facing() cp.Vector        { return a.loco.Facing() }
func (a *Agent) MoveDirection() cp.Vector { return a.loco.Direction }
func (a *Agent) State() State             { return a.pursuit.State() }
func (a *Agent) Detected() bool           { return a.pursuit.Detected() }
func (a *Agent) Memory() Memory           { return a.pursuit.Memory() }
func (a *Agent) Health() float64          { return a.health.Current }
func (a *Agent) MaxHealth() float64       { return a.health.Max }

func (a *Agent) Lifecycle() component.Lifecycle {
	return a.health.State()
}

// SetPosition teleports the agent, e.g. after a physics correction.
func (a *Agent) SetPosition(pos cp.Vector) {
	a.pos = pos
}

// SetOrientation sets the heading in radians.
func (a *Agent) SetOrientation(angle float64) {
	a.loco.Orientation = common.NormalizeAngle(angle)
}

// Path returns a copy of the current waypoints and the cursor index.
func (a *Agent) Path() ([]cp.Vector, int) {
	out := make([]cp.Vector, len(a.loco.Plan.Waypoints))
	copy(out, a.loco.Plan.Waypoints)
	return out, a.loco.Plan.Cursor
}

// WanderTarget returns the current wander destination and whether the
// agent is walking toward it.
func (a *Agent) WanderTarget() (cp.Vector, bool) {
	return a.wander.Target, a.wander.Walking
}

// DebugInfo is the read-only state a visualizer needs.
type DebugInfo struct {
	ID           string
	Position     cp.Vector
	Facing       cp.Vector
	Range        float64
	HalfAngle    float64
	State        State
	Detected     bool
	Memory       Memory
	Path         []cp.Vector
	Cursor       int
	Wander       cp.Vector
	Walking      bool
	Health       float64
	MaxHealth    float64
	Lifecycle    component.Lifecycle
	Stationary   bool
	Invulnerable bool
}

func (a *Agent) Debug() DebugInfo {
	path, cursor := a.Path()
	return DebugInfo{
		ID:           a.id,
		Position:     a.pos,
		Facing:       a.Facing(),
		Range:        a.cfg.DetectionRange,
		HalfAngle:    a.cfg.DetectionAngle,
		State:        a.State(),
		Detected:     a.Detected(),
		Memory:       a.Memory(),
		Path:         path,
		Cursor:       cursor,
		Wander:       a.wander.Target,
		Walking:      a.wander.Walking,
		Health:       a.health.Current,
		MaxHealth:    a.health.Max,
		Lifecycle:    a.health.State(),
		Stationary:   a.cfg.Stationary,
		Invulnerable: a.cfg.Invulnerable,
	}
}
