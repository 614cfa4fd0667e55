package ai

import "github.com/jakecoffman/cp"

// State is the pursuit state of an agent.
type State int

const (
	Wandering State = iota
	Pursuing
	Searching
)

func (s State) String() string {
	switch s {
	case Wandering:
		return "wandering"
	case Pursuing:
		return "pursuing"
	case Searching:
		return "searching"
	default:
		return "unknown"
	}
}

// Memory is the last known target position. Position is meaningless while
// Valid is false.
type Memory struct {
	Position cp.Vector
	Valid    bool
}

// Pursuit is the decision core: it folds the per-tick perception result into
// pursuit mode and the target memory.
type Pursuit struct {
	memory Memory
	// chasing is the hysteresis flag: it survives a failed cone test as long
	// as the re-sight check passes.
	chasing  bool
	detected bool
}

// Observe runs one decision step. sensed is this tick's cone result;
// resight is evaluated only when the cone failed while chasing. A nil
// resight means the target is unavailable and the trail is lost.
func (p *Pursuit) Observe(sensed bool, target cp.Vector, resight func() bool) {
	p.detected = false
	switch {
	case sensed:
		p.refresh(target)
	case p.chasing:
		if resight != nil && resight() {
			p.refresh(target)
		} else {
			p.chasing = false
		}
	}
}

func (p *Pursuit) refresh(target cp.Vector) {
	p.detected = true
	p.chasing = true
	p.memory = Memory{Position: target, Valid: true}
}

// ForgetIfReached invalidates the memory once pos is within stopDistance of
// it and nothing is currently sensed. Returns true if memory was cleared.
func (p *Pursuit) ForgetIfReached(pos cp.Vector, stopDistance float64) bool {
	if p.detected || !p.memory.Valid {
		return false
	}
	if pos.Distance(p.memory.Position) > stopDistance {
		return false
	}
	p.memory = Memory{}
	return true
}

func (p *Pursuit) State() State {
	switch {
	case p.detected:
		return Pursuing
	case p.memory.Valid:
		return Searching
	default:
		return Wandering
	}
}

func (p *Pursuit) Detected() bool {
	return p.detected
}

func (p *Pursuit) Chasing() bool {
	return p.chasing
}

func (p *Pursuit) Memory() Memory {
	return p.memory
}
