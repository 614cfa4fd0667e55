package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentSpecs(t *testing.T) {
	cases := []struct {
		name  string
		check func(t *testing.T, cfg ai.Config)
	}{
		{"grunt", func(t *testing.T, cfg ai.Config) {
			assert.Equal(t, ai.DefaultConfig(), cfg)
		}},
		{"scout", func(t *testing.T, cfg ai.Config) {
			assert.Equal(t, 4.5, cfg.MoveSpeed)
			assert.False(t, cfg.UsePathfinding)
			assert.Equal(t, 0.5, cfg.StopDistance, "unset fields keep the defaults")
		}},
		{"sentry", func(t *testing.T, cfg ai.Config) {
			assert.True(t, cfg.Stationary)
			assert.False(t, cfg.Invulnerable)
			assert.Equal(t, 70.0, cfg.DetectionAngle)
		}},
		{"dummy", func(t *testing.T, cfg ai.Config) {
			assert.True(t, cfg.Stationary)
			assert.True(t, cfg.Invulnerable)
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := LoadAgentSpec(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.name, spec.Name)
			assert.NotEmpty(t, spec.Script)

			cfg, err := spec.ToConfig()
			require.NoError(t, err)
			c.check(t, cfg)

			_, err = LoadScript(spec.Script)
			assert.NoError(t, err)
		})
	}
}

func TestLoadAgentSpecMissing(t *testing.T) {
	_, err := LoadAgentSpec("no-such-archetype")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load no-such-archetype.yaml")
}

func TestAgentSpecToConfigValidates(t *testing.T) {
	spec := DefaultAgentSpec()
	spec.Name = "broken"
	spec.DetectionAngle = 400
	_, err := spec.ToConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestObstacleSpec(t *testing.T) {
	cases := []struct {
		name    string
		spec    ObstacleSpec
		want    spatial.Obstacle
		wantErr bool
	}{
		{"box", ObstacleSpec{Kind: "box", X: 1, Y: 2, W: 3, H: 4}, spatial.Box(cp.BB{L: 1, B: 2, R: 4, T: 6}, 1), false},
		{"default_kind", ObstacleSpec{X: 0, Y: 0, W: 1, H: 1, Layer: 4}, spatial.Box(cp.BB{R: 1, T: 1}, 4), false},
		{"circle", ObstacleSpec{Kind: "circle", X: 5, Y: 5, R: 2}, spatial.Circle(cp.Vector{X: 5, Y: 5}, 2, 1), false},
		{"segment", ObstacleSpec{Kind: "Segment", X: 0, Y: 0, X2: 3, Y2: 0, R: 0.1}, spatial.Segment(cp.Vector{}, cp.Vector{X: 3}, 0.1, 1), false},
		{"empty_box", ObstacleSpec{Kind: "box", W: 0, H: 1}, spatial.Obstacle{}, true},
		{"empty_circle", ObstacleSpec{Kind: "circle"}, spatial.Obstacle{}, true},
		{"unknown", ObstacleSpec{Kind: "hexagon"}, spatial.Obstacle{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.spec.ToObstacle()
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestLoadScenarioSpec(t *testing.T) {
	spec, err := LoadScenarioSpec("courtyard")
	require.NoError(t, err)
	assert.Equal(t, "courtyard", spec.Name)
	assert.Equal(t, "space", spec.Backend)
	assert.Equal(t, 40.0, spec.Bounds.W)
	assert.Len(t, spec.Agents, 5)
	assert.NotEmpty(t, spec.Target.Patrol)
	for _, o := range spec.Obstacles {
		_, err := o.ToObstacle()
		assert.NoError(t, err)
	}
	for _, a := range spec.Agents {
		_, err := LoadAgentSpec(a.Archetype)
		assert.NoError(t, err, a.Archetype)
	}

	spec, err = LoadScenarioSpec("gauntlet.yaml")
	require.NoError(t, err)
	assert.Equal(t, "index", spec.Backend)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "grunt")
	assert.Contains(t, names, "courtyard")
}

func TestNameOf(t *testing.T) {
	cases := map[string]string{
		"prefabs/grunt.yaml":   "grunt",
		"grunt.yml":            "grunt",
		`prefabs\sentry.yaml`:  "sentry",
		"/abs/path/dummy.yaml": "dummy",
	}
	for in, want := range cases {
		assert.Equal(t, want, NameOf(in), in)
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"grunt.tengo":                 "scripts/grunt.tengo",
		"scripts/grunt.tengo":         "scripts/grunt.tengo",
		"prefabs/scripts/grunt.tengo": "scripts/grunt.tengo",
		"prefabs/grunt.tengo":         "scripts/grunt.tengo",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanScriptPath(in), in)
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	file := filepath.Join(dir, "grunt.yaml")
	require.NoError(t, os.WriteFile(file, []byte("move_speed: 4\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "grunt", NameOf(name))
		assert.True(t, IsSpecFile(name))
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for changed spec")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
