package sandbox

import (
	"math"

	"github.com/dop251/goja"
)

// installEnv binds the fixed allow-list into a fresh runtime: layout math
// (interpolate, spring, Easing), node constructors (el, text), lifecycle
// helpers (sequence, loop), and the two symbol catalogs. Nothing else is
// reachable from sandboxed code.
func (e *Evaluator) installEnv(vm *goja.Runtime) {
	mustSet := func(name string, v any) {
		if err := vm.Set(name, v); err != nil {
			panic(err)
		}
	}

	mustSet("interpolate", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 3 {
			panic(vm.NewTypeError("interpolate(value, inputRange, outputRange, options?) requires 3 arguments"))
		}
		input := call.Argument(0).ToFloat()
		inputRange, ok := toFloatSlice(call.Argument(1).Export())
		if !ok {
			panic(vm.NewTypeError("interpolate: inputRange must be an array of numbers"))
		}
		outputRange, ok := toFloatSlice(call.Argument(2).Export())
		if !ok {
			panic(vm.NewTypeError("interpolate: outputRange must be an array of numbers"))
		}

		var opts *InterpolateOptions
		if len(call.Arguments) > 3 {
			if m, ok := call.Argument(3).Export().(map[string]any); ok {
				opts = &InterpolateOptions{}
				if s, ok := m["extrapolateLeft"].(string); ok {
					opts.ExtrapolateLeft = s
				}
				if s, ok := m["extrapolateRight"].(string); ok {
					opts.ExtrapolateRight = s
				}
			}
		}

		out, err := Interpolate(input, inputRange, outputRange, opts)
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return vm.ToValue(out)
	})

	mustSet("spring", func(call goja.FunctionCall) goja.Value {
		m, ok := call.Argument(0).Export().(map[string]any)
		if !ok {
			panic(vm.NewTypeError("spring({frame, fps, from, to, config}) requires an options object"))
		}
		frame := int(numberOr(m["frame"], 0))
		fps := numberOr(m["fps"], DefaultFPS)

		opts := NewSpringOptions()
		opts.From = numberOr(m["from"], opts.From)
		opts.To = numberOr(m["to"], opts.To)
		if cfg, ok := m["config"].(map[string]any); ok {
			opts.Mass = numberOr(cfg["mass"], opts.Mass)
			opts.Stiffness = numberOr(cfg["stiffness"], opts.Stiffness)
			opts.Damping = numberOr(cfg["damping"], opts.Damping)
		}
		return vm.ToValue(Spring(frame, fps, opts))
	})

	mustSet("Easing", easingFuncs)

	mustSet("el", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("el(kind, props?, ...children) requires a kind"))
		}
		node := map[string]any{"kind": call.Argument(0).String()}
		if len(call.Arguments) > 1 {
			if props, ok := call.Argument(1).Export().(map[string]any); ok {
				node["props"] = props
			}
		}
		if len(call.Arguments) > 2 {
			children := make([]any, 0, len(call.Arguments)-2)
			for _, arg := range call.Arguments[2:] {
				children = append(children, arg.Export())
			}
			node["children"] = children
		}
		return vm.ToValue(node)
	})

	mustSet("text", func(call goja.FunctionCall) goja.Value {
		props := map[string]any{"value": call.Argument(0).String()}
		if len(call.Arguments) > 1 {
			if extra, ok := call.Argument(1).Export().(map[string]any); ok {
				for k, v := range extra {
					if k != "value" {
						props[k] = v
					}
				}
			}
		}
		return vm.ToValue(map[string]any{"kind": "text", "props": props})
	})

	mustSet("sequence", func(frame, from float64) float64 {
		return frame - from
	})
	mustSet("loop", func(frame, duration float64) float64 {
		if duration <= 0 {
			return 0
		}
		return math.Mod(math.Mod(frame, duration)+duration, duration)
	})

	icons := map[string]any{}
	brands := map[string]any{}
	for _, name := range e.index.Names() {
		factory := symbolFactory(vm, name)
		mustSet(name, factory)
		if len(name) > 5 && name[:5] == "Brand" {
			brands[name] = factory
		} else {
			icons[name] = factory
		}
	}
	mustSet("Icons", icons)
	mustSet("Brands", brands)
}

// symbolFactory returns the host function bound to one catalog symbol. Called
// from a program it yields a symbol node carrying the name plus any props.
func symbolFactory(vm *goja.Runtime, name string) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		props := map[string]any{"name": name}
		if len(call.Arguments) > 0 {
			if extra, ok := call.Argument(0).Export().(map[string]any); ok {
				for k, v := range extra {
					if k != "name" {
						props[k] = v
					}
				}
			}
		}
		return vm.ToValue(map[string]any{"kind": "symbol", "props": props})
	}
}

func toFloatSlice(raw any) ([]float64, bool) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(arr))
	for _, v := range arr {
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case int64:
			out = append(out, float64(n))
		case int:
			out = append(out, float64(n))
		default:
			return nil, false
		}
	}
	return out, true
}

func numberOr(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return fallback
	}
}
