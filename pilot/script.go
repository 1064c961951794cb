package pilot

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/prefabs"
)

const dispatchScript = `
if __phase == "enter" {
	on_enter(__engine, __state)
} else if __phase == "update" {
	update(__engine, __state)
}
`

// Script runs a tengo pilot. The script defines on_enter(engine, state) and
// update(engine, state) and reports its heading with engine.move(dx, dy).
// state persists between ticks.
type Script struct {
	Name string

	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initialized bool
	move        cp.Vector
	// Fallback steers when the script errors. Nil holds still.
	Fallback Pilot
}

// LoadScript compiles prefabs/scripts/<name>.tengo.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("pilot: load %s: %w", name, err)
	}
	return CompileScript(name, src)
}

// CompileScript compiles src with the pilot dispatch appended.
func CompileScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pilot: compile %s: %w", name, err)
	}
	return &Script{
		Name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Script) Steer(obs Observation) cp.Vector {
	engine := s.engine(obs)
	if !s.initialized {
		if err := s.runPhase("enter", engine); err != nil {
			fmt.Printf("pilot: %s on_enter error: %v\n", s.Name, err)
			return s.fallback(obs)
		}
		s.initialized = true
	}

	s.move = cp.Vector{}
	if err := s.runPhase("update", engine); err != nil {
		fmt.Printf("pilot: %s update error: %v\n", s.Name, err)
		return s.fallback(obs)
	}
	return clampUnit(s.move)
}

// State returns a copy of the script's persistent state.
func (s *Script) State() map[string]any {
	out, _ := objectToAny(s.stateData).(map[string]any)
	return out
}

func (s *Script) fallback(obs Observation) cp.Vector {
	if s.Fallback == nil {
		return cp.Vector{}
	}
	return s.Fallback.Steer(obs)
}

func (s *Script) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("nil pilot script")
	}
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.stateData); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *Script) engine(obs Observation) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(obs.Player), nil
	}}

	values["get_boss_position"] = &tengo.UserFunction{Name: "get_boss_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(obs.Boss), nil
	}}

	values["get_phase"] = &tengo.UserFunction{Name: "get_phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(obs.Phase)}, nil
	}}

	values["get_mode"] = &tengo.UserFunction{Name: "get_mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: obs.Mode}, nil
	}}

	values["get_time"] = &tengo.UserFunction{Name: "get_time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: obs.Time}, nil
	}}

	values["get_hazards"] = &tengo.UserFunction{Name: "get_hazards", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := make([]tengo.Object, 0, len(obs.Dangers))
		for _, d := range obs.Dangers {
			out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"kind":   &tengo.String{Value: string(d.Kind)},
				"x":      &tengo.Float{Value: d.Position.X},
				"y":      &tengo.Float{Value: d.Position.Y},
				"radius": &tengo.Float{Value: d.Radius},
			}})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["get_arena"] = &tengo.UserFunction{Name: "get_arena", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a := obs.Arena
		outside := tengo.FalseValue
		if a.Outside {
			outside = tengo.TrueValue
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"cx":      &tengo.Float{Value: a.Center.X},
			"cy":      &tengo.Float{Value: a.Center.Y},
			"radius":  &tengo.Float{Value: a.Radius},
			"left":    &tengo.Float{Value: a.Bounds.L},
			"bottom":  &tengo.Float{Value: a.Bounds.B},
			"right":   &tengo.Float{Value: a.Bounds.R},
			"top":     &tengo.Float{Value: a.Bounds.T},
			"outside": outside,
		}}, nil
	}}

	values["get_safe_tiles"] = &tengo.UserFunction{Name: "get_safe_tiles", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(obs.SafeTiles)}, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := objectAsFloat(args[0])
		y, okY := objectAsFloat(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		s.move = cp.Vector{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		fmt.Printf("pilot: %s: %s\n", s.Name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
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

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
