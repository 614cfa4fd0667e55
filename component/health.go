package component

// Lifecycle is the coarse liveness state of an agent.
type Lifecycle int

const (
	Alive Lifecycle = iota
	Dying
	Removed
)

func (l Lifecycle) String() string {
	switch l {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// DefaultDeathDelay is the time in seconds a dying entity lingers before removal.
const DefaultDeathDelay = 1.0

// deathEpsilon absorbs rounding left over from subtracting fractional steps.
const deathEpsilon = 1e-9

// Health is a health pool with an alive -> dying -> removed lifecycle.
// Dying entities stay in the world for DeathDelay seconds of simulated time
// before they are marked Removed.
type Health struct {
	Max     float64
	Current float64

	// Invulnerable entities report hits but never lose health.
	Invulnerable bool
	DeathDelay   float64

	state      Lifecycle
	deathTimer float64

	OnDamage  func(h *Health, amount float64)
	OnDeath   func(h *Health)
	OnRemoved func(h *Health)
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max, DeathDelay: DefaultDeathDelay}
}

// State returns the lifecycle state.
func (h *Health) State() Lifecycle {
	if h == nil {
		return Removed
	}
	return h.state
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && h.state == Alive
}

// DeathRemaining is the time left before a dying entity is removed.
func (h *Health) DeathRemaining() float64 {
	if h == nil || h.state != Dying {
		return 0
	}
	return h.deathTimer
}

// ApplyDamage applies damage to a living entity. Returns true if the hit
// registered, which for invulnerable entities does not mean health changed.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.state != Alive || amount <= 0 {
		return false
	}
	if !h.Invulnerable {
		h.Current -= amount
		if h.Current < 0 {
			h.Current = 0
		}
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current <= 0 {
		h.state = Dying
		h.deathTimer = h.DeathDelay
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
		if h.deathTimer <= 0 {
			h.remove()
		}
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.state != Alive || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Tick advances the death countdown by dt seconds.
func (h *Health) Tick(dt float64) {
	if h == nil || h.state != Dying {
		return
	}
	h.deathTimer -= dt
	if h.deathTimer <= deathEpsilon {
		h.remove()
	}
}

func (h *Health) remove() {
	h.deathTimer = 0
	h.state = Removed
	if h.OnRemoved != nil {
		h.OnRemoved(h)
	}
}

// SetMaxHP sets the maximum health value and clamps Current if needed.
func (h *Health) SetMaxHP(v float64) {
	if h == nil {
		return
	}
	h.Max = v
	if h.Max <= 0 {
		h.Max = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
