package prefabs

import (
	"path"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/spatial"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec. Fields missing from the file keep
// the values already in spec, which is how archetype defaults are applied.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return errors.Wrapf(err, "prefabs: load %s", filename)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return errors.Wrapf(err, "prefabs: unmarshal %s", filename)
	}
	return nil
}

// AgentSpec is an agent archetype. Every field maps onto ai.Config.
type AgentSpec struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`

	DetectionRange  float64 `yaml:"detection_range"`
	DetectionAngle  float64 `yaml:"detection_angle"`
	ObstructionMask uint    `yaml:"obstruction_mask"`

	MoveSpeed               float64 `yaml:"move_speed"`
	RotationSpeed           float64 `yaml:"rotation_speed"`
	StopDistance            float64 `yaml:"stop_distance"`
	WaypointReachedDistance float64 `yaml:"waypoint_reached_distance"`
	PathUpdateInterval      float64 `yaml:"path_update_interval"`
	UsePathfinding          bool    `yaml:"use_pathfinding"`

	WanderSpeed    float64 `yaml:"wander_speed"`
	WanderRadius   float64 `yaml:"wander_radius"`
	IdleTimeMin    float64 `yaml:"idle_time_min"`
	IdleTimeMax    float64 `yaml:"idle_time_max"`
	WanderAttempts int     `yaml:"wander_attempts"`

	MaxHealth  float64 `yaml:"max_health"`
	DeathDelay float64 `yaml:"death_delay"`

	Stationary   bool `yaml:"stationary"`
	Invulnerable bool `yaml:"invulnerable"`
}

// DefaultAgentSpec mirrors ai.DefaultConfig.
func DefaultAgentSpec() AgentSpec {
	cfg := ai.DefaultConfig()
	return AgentSpec{
		DetectionRange:          cfg.DetectionRange,
		DetectionAngle:          cfg.DetectionAngle,
		ObstructionMask:         cfg.ObstructionMask,
		MoveSpeed:               cfg.MoveSpeed,
		RotationSpeed:           cfg.RotationSpeed,
		StopDistance:            cfg.StopDistance,
		WaypointReachedDistance: cfg.WaypointReachedDistance,
		PathUpdateInterval:      cfg.PathUpdateInterval,
		UsePathfinding:          cfg.UsePathfinding,
		WanderSpeed:             cfg.WanderSpeed,
		WanderRadius:            cfg.WanderRadius,
		IdleTimeMin:             cfg.IdleTimeMin,
		IdleTimeMax:             cfg.IdleTimeMax,
		WanderAttempts:          cfg.WanderAttempts,
		MaxHealth:               cfg.MaxHealth,
		DeathDelay:              cfg.DeathDelay,
		Stationary:              cfg.Stationary,
		Invulnerable:            cfg.Invulnerable,
	}
}

// ToConfig converts the archetype into a validated agent config.
func (s AgentSpec) ToConfig() (ai.Config, error) {
	cfg := ai.Config{
		DetectionRange:          s.DetectionRange,
		DetectionAngle:          s.DetectionAngle,
		ObstructionMask:         s.ObstructionMask,
		MoveSpeed:               s.MoveSpeed,
		RotationSpeed:           s.RotationSpeed,
		StopDistance:            s.StopDistance,
		WaypointReachedDistance: s.WaypointReachedDistance,
		PathUpdateInterval:      s.PathUpdateInterval,
		UsePathfinding:          s.UsePathfinding,
		WanderSpeed:             s.WanderSpeed,
		WanderRadius:            s.WanderRadius,
		IdleTimeMin:             s.IdleTimeMin,
		IdleTimeMax:             s.IdleTimeMax,
		WanderAttempts:          s.WanderAttempts,
		MaxHealth:               s.MaxHealth,
		DeathDelay:              s.DeathDelay,
		Stationary:              s.Stationary,
		Invulnerable:            s.Invulnerable,
	}
	if err := cfg.Validate(); err != nil {
		return ai.Config{}, errors.Wrapf(err, "prefabs: archetype %s", s.Name)
	}
	return cfg, nil
}

// LoadAgentSpec loads the archetype <name>.yaml over the default tuning.
func LoadAgentSpec(name string) (AgentSpec, error) {
	spec := DefaultAgentSpec()
	spec.Name = name
	if err := LoadSpecInto(specFile(name), &spec); err != nil {
		return AgentSpec{}, err
	}
	return spec, nil
}

// ObstacleSpec is one piece of scenario geometry.
type ObstacleSpec struct {
	// Kind is box, circle or segment.
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`
	// R is the circle radius or the segment half thickness.
	R     float64 `yaml:"r"`
	X2    float64 `yaml:"x2"`
	Y2    float64 `yaml:"y2"`
	Layer uint    `yaml:"layer"`
}

func (o ObstacleSpec) ToObstacle() (spatial.Obstacle, error) {
	layer := o.Layer
	if layer == 0 {
		layer = 1
	}
	switch strings.ToLower(o.Kind) {
	case "", "box":
		if o.W <= 0 || o.H <= 0 {
			return spatial.Obstacle{}, errors.Errorf("prefabs: box %vx%v must have a positive size", o.W, o.H)
		}
		return spatial.Box(cp.BB{L: o.X, B: o.Y, R: o.X + o.W, T: o.Y + o.H}, layer), nil
	case "circle":
		if o.R <= 0 {
			return spatial.Obstacle{}, errors.Errorf("prefabs: circle radius %v must be positive", o.R)
		}
		return spatial.Circle(cp.Vector{X: o.X, Y: o.Y}, o.R, layer), nil
	case "segment":
		return spatial.Segment(cp.Vector{X: o.X, Y: o.Y}, cp.Vector{X: o.X2, Y: o.Y2}, o.R, layer), nil
	default:
		return spatial.Obstacle{}, errors.Errorf("prefabs: unknown obstacle kind %q", o.Kind)
	}
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

type TargetSpec struct {
	X      float64     `yaml:"x"`
	Y      float64     `yaml:"y"`
	Speed  float64     `yaml:"speed"`
	Patrol []PointSpec `yaml:"patrol"`
}

type AgentPlacementSpec struct {
	ID        string  `yaml:"id"`
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	// Facing is the initial heading in degrees; 0 faces +X.
	Facing float64 `yaml:"facing"`
}

type BoundsSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ScenarioSpec is a sandbox layout.
type ScenarioSpec struct {
	Name string `yaml:"name"`
	// Backend selects the spatial implementation: space (chipmunk) or index
	// (r-tree).
	Backend   string               `yaml:"backend"`
	Bounds    BoundsSpec           `yaml:"bounds"`
	CellSize  float64              `yaml:"cell_size"`
	Timestep  float64              `yaml:"timestep"`
	Seed      int64                `yaml:"seed"`
	Walls     bool                 `yaml:"walls"`
	Obstacles []ObstacleSpec       `yaml:"obstacles"`
	Target    TargetSpec           `yaml:"target"`
	Agents    []AgentPlacementSpec `yaml:"agents"`
}

func LoadScenarioSpec(name string) (ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](specFile(name))
	if err != nil {
		return ScenarioSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// NameOf returns the prefab name for a spec file path, e.g. "grunt" for
// "prefabs/grunt.yaml".
func NameOf(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

func specFile(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}
