package system

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/ecs"
	"github.com/milk9111/pursuit/ecs/component"
	"github.com/milk9111/pursuit/prefabs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const scriptDispatch = `
on_event(__engine, __event, __state)
`

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// ScriptHookSystem feeds agent lifecycle events to per-entity tengo
// scripts. A script defines on_event(engine, ev, state); engine exposes
// popup(text, seconds), log(msg) and position(). Movement events are not
// dispatched.
type ScriptHookSystem struct {
	runtimes map[ecs.Entity]*scriptRuntime
	log      logrus.FieldLogger
	// load resolves script sources; tests swap it out.
	load func(path string) ([]byte, error)
}

func NewScriptHookSystem() *ScriptHookSystem {
	return &ScriptHookSystem{
		runtimes: make(map[ecs.Entity]*scriptRuntime),
		log:      common.Log.WithField("system", "script"),
		load:     prefabs.LoadScript,
	}
}

func (s *ScriptHookSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Items() {
		ae, ok := evt.Data.(AgentEvent)
		if !ok || ae.Kind == ai.EventMove {
			continue
		}
		hook, ok := ecs.Get(w, ae.Entity, component.ScriptHookComponent.Kind())
		if ok && !hook.Disabled {
			s.dispatch(w, ae, hook)
		}
		if ae.Kind == ai.EventRemoved {
			delete(s.runtimes, ae.Entity)
		}
	}
}

// Reload drops every compiled script and re-enables failed hooks so the
// next event recompiles from the current sources.
func (s *ScriptHookSystem) Reload(w *ecs.World) {
	s.runtimes = make(map[ecs.Entity]*scriptRuntime)
	ecs.ForEach(w, component.ScriptHookComponent.Kind(), func(e ecs.Entity, hook *component.ScriptHook) {
		hook.Disabled = false
	})
}

func (s *ScriptHookSystem) dispatch(w *ecs.World, ae AgentEvent, hook *component.ScriptHook) {
	log := s.log.WithFields(logrus.Fields{"agent": ae.Agent, "script": hook.Path})
	rt, err := s.runtime(ae.Entity, hook.Path)
	if err != nil {
		log.WithError(err).Warn("script hook disabled")
		hook.Disabled = true
		return
	}
	if err := rt.run(s.engine(w, ae, log), eventObject(ae)); err != nil {
		log.WithError(err).Warn("script hook disabled")
		hook.Disabled = true
	}
}

func (s *ScriptHookSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}
	src, err := s.load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load script %s", path)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__event", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, errors.Wrapf(err, "compile script %s", path)
	}
	rt := &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine, event *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func eventObject(ae AgentEvent) *tengo.ImmutableMap {
	detected := tengo.FalseValue
	if ae.Detected {
		detected = tengo.TrueValue
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"kind":     &tengo.String{Value: string(ae.Kind)},
		"agent":    &tengo.String{Value: ae.Agent},
		"amount":   &tengo.Float{Value: ae.Amount},
		"health":   &tengo.Float{Value: ae.Health},
		"state":    &tengo.String{Value: ae.State.String()},
		"detected": detected,
	}}
}

func (s *ScriptHookSystem) engine(w *ecs.World, ae AgentEvent, log logrus.FieldLogger) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["popup"] = &tengo.UserFunction{Name: "popup", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		text := strings.TrimSpace(objectAsString(args[0]))
		if text == "" {
			return tengo.FalseValue, nil
		}
		seconds := 1.0
		if len(args) > 1 {
			if v, ok := tengo.ToFloat64(args[1]); ok && v > 0 {
				seconds = v
			}
		}
		if !spawnPopup(w, ae, text, seconds) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := agentPosition(w, ae.Entity)
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func agentPosition(w *ecs.World, e ecs.Entity) (float64, float64) {
	if a, ok := ecs.Get(w, e, component.AgentComponent.Kind()); ok && a.AI != nil {
		pos := a.AI.Position()
		return pos.X, pos.Y
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.X, t.Y
	}
	return 0, 0
}

func spawnPopup(w *ecs.World, ae AgentEvent, text string, seconds float64) bool {
	x, y := agentPosition(w, ae.Entity)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return false
	}
	if err := ecs.Add(w, e, component.PopupComponent.Kind(), &component.Popup{Text: text, Source: ae.Agent, Duration: seconds}); err != nil {
		return false
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), component.NewTTL(seconds, w.Timestep())) == nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
