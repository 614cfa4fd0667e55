package ai

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// fakeWorld is a SpatialQuery whose answers are switched by the test.
type fakeWorld struct {
	lineBlocked   bool
	regionBlocked bool
	// wallX, when set, blocks every segment crossing the vertical line x = *wallX.
	wallX *float64

	lineCalls   int
	regionCalls int
}

func (w *fakeWorld) LineClear(a, b cp.Vector, mask uint) bool {
	w.lineCalls++
	if w.lineBlocked {
		return false
	}
	if w.wallX != nil {
		x := *w.wallX
		if (a.X-x)*(b.X-x) <= 0 && a.X != b.X {
			return false
		}
	}
	return true
}

func (w *fakeWorld) RegionClear(center cp.Vector, radius float64, mask uint) bool {
	w.regionCalls++
	return !w.regionBlocked
}

type pathQuery struct {
	start, goal cp.Vector
}

// fakePaths returns a canned path, or a straight line to the goal.
type fakePaths struct {
	unavailable bool
	noPath      bool
	canned      []cp.Vector
	queries     []pathQuery
}

func (p *fakePaths) Ready() bool {
	return !p.unavailable
}

func (p *fakePaths) FindPath(start, goal cp.Vector) ([]cp.Vector, bool) {
	p.queries = append(p.queries, pathQuery{start: start, goal: goal})
	if p.noPath {
		return nil, false
	}
	if p.canned != nil {
		return p.canned, true
	}
	return []cp.Vector{goal}, true
}

// movableTarget is a TargetProvider the test can move or hide.
type movableTarget struct {
	pos    cp.Vector
	hidden bool
}

func (t *movableTarget) TargetPosition() (cp.Vector, bool) {
	return t.pos, !t.hidden
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Publish(evt Event) {
	s.events = append(s.events, evt)
}

func (s *recordingSink) count(kind EventKind) int {
	n := 0
	for _, e := range s.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func quietLogger() (logrus.FieldLogger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("agent", "test"), hook
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

type fixture struct {
	world  *fakeWorld
	paths  *fakePaths
	target *movableTarget
	sink   *recordingSink
	hook   *test.Hook
	agent  *Agent
}

// newFixture builds an agent at the origin facing +X with the stock tuning
// adjusted by tune.
func newFixture(t *testing.T, tune func(*Config), withPaths bool) *fixture {
	t.Helper()
	cfg := DefaultConfig()
	if tune != nil {
		tune(&cfg)
	}
	f := &fixture{
		world:  &fakeWorld{},
		target: &movableTarget{pos: cp.Vector{X: 100, Y: 100}},
		sink:   &recordingSink{},
	}
	logger, hook := quietLogger()
	f.hook = hook
	deps := Deps{
		World:  f.world,
		Target: f.target,
		Sink:   f.sink,
		Logger: logger,
		Rand:   seeded(),
	}
	if withPaths {
		f.paths = &fakePaths{}
		deps.Paths = f.paths
	}
	a, err := New("grunt", cfg, cp.Vector{}, deps)
	require.NoError(t, err)
	f.agent = a
	return f
}
