package ai

import "github.com/pkg/errors"

// Config holds every tunable of an agent. Variants such as turrets or
// training dummies are expressed with the capability flags rather than
// separate types.
type Config struct {
	// DetectionRange is the maximum sensing distance, inclusive.
	DetectionRange float64
	// DetectionAngle is the half-angle of the vision cone in degrees.
	DetectionAngle  float64
	ObstructionMask uint

	MoveSpeed               float64
	RotationSpeed           float64
	StopDistance            float64
	WaypointReachedDistance float64

	PathUpdateInterval float64
	UsePathfinding     bool

	WanderSpeed    float64
	WanderRadius   float64
	IdleTimeMin    float64
	IdleTimeMax    float64
	WanderAttempts int

	MaxHealth  float64
	DeathDelay float64

	// Stationary agents never translate, request paths or wander. They
	// still sense and turn toward what they track.
	Stationary bool
	// Invulnerable agents report hits but never lose health.
	Invulnerable bool
}

// DefaultConfig returns the stock melee enemy tuning.
func DefaultConfig() Config {
	return Config{
		DetectionRange:          10,
		DetectionAngle:          45,
		ObstructionMask:         ^uint(0),
		MoveSpeed:               3,
		RotationSpeed:           5,
		StopDistance:            0.5,
		WaypointReachedDistance: 0.3,
		PathUpdateInterval:      0.5,
		UsePathfinding:          true,
		WanderSpeed:             1.5,
		WanderRadius:            5,
		IdleTimeMin:             1,
		IdleTimeMax:             3,
		WanderAttempts:          10,
		MaxHealth:               100,
		DeathDelay:              1,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.DetectionRange < 0:
		return errors.Errorf("ai: detection range %v is negative", c.DetectionRange)
	case c.DetectionAngle < 0 || c.DetectionAngle > 180:
		return errors.Errorf("ai: detection angle %v outside [0, 180]", c.DetectionAngle)
	case c.MoveSpeed < 0 || c.WanderSpeed < 0:
		return errors.New("ai: speeds must not be negative")
	case c.RotationSpeed < 0:
		return errors.Errorf("ai: rotation speed %v is negative", c.RotationSpeed)
	case c.StopDistance < 0 || c.WaypointReachedDistance < 0:
		return errors.New("ai: stop and waypoint distances must not be negative")
	case c.PathUpdateInterval < 0:
		return errors.Errorf("ai: path update interval %v is negative", c.PathUpdateInterval)
	case c.WanderRadius < 0:
		return errors.Errorf("ai: wander radius %v is negative", c.WanderRadius)
	case c.IdleTimeMin < 0 || c.IdleTimeMax < c.IdleTimeMin:
		return errors.Errorf("ai: idle time range [%v, %v] is invalid", c.IdleTimeMin, c.IdleTimeMax)
	case c.WanderAttempts < 0:
		return errors.Errorf("ai: wander attempts %d is negative", c.WanderAttempts)
	case c.MaxHealth <= 0:
		return errors.Errorf("ai: max health %v must be positive", c.MaxHealth)
	case c.DeathDelay < 0:
		return errors.Errorf("ai: death delay %v is negative", c.DeathDelay)
	}
	return nil
}
