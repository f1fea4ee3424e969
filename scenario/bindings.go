package scenario

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/locomotion"
	"github.com/milk9111/locomotion/common"
)

// buildSimBindings exposes the runner to a drill script as an immutable map
// of functions. Held inputs persist across steps; jump() and crouch() are
// one-tick taps.
func buildSimBindings(r *Runner) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		r.input.MoveX = objectAsFloat(args[0])
		r.input.MoveZ = objectAsFloat(args[1])
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.tapJump = true
		return tengo.TrueValue, nil
	}}

	values["hold_jump"] = &tengo.UserFunction{Name: "hold_jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.input.JumpHeld = len(args) > 0 && objectAsBool(args[0])
		return tengo.TrueValue, nil
	}}

	values["crouch"] = &tengo.UserFunction{Name: "crouch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.tapCrouch = true
		return tengo.TrueValue, nil
	}}

	values["hold_crouch"] = &tengo.UserFunction{Name: "hold_crouch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.input.CrouchHeld = len(args) > 0 && objectAsBool(args[0])
		return tengo.TrueValue, nil
	}}

	values["ascend"] = &tengo.UserFunction{Name: "ascend", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.input.AscendHeld = len(args) > 0 && objectAsBool(args[0])
		return tengo.TrueValue, nil
	}}

	values["descend"] = &tengo.UserFunction{Name: "descend", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.input.DescendHeld = len(args) > 0 && objectAsBool(args[0])
		return tengo.TrueValue, nil
	}}

	values["step"] = &tengo.UserFunction{Name: "step", Value: func(args ...tengo.Object) (tengo.Object, error) {
		n := 1
		if len(args) > 0 {
			n = objectAsInt(args[0])
		}
		for i := 0; i < n; i++ {
			r.step()
		}
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecArray(r.body.Position()), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecArray(r.body.Velocity()), nil
	}}

	values["momentum"] = &tengo.UserFunction{Name: "momentum", Value: func(args ...tengo.Object) (tengo.Object, error) {
		m := r.ctrl.Momentum()
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: m.X},
			&tengo.Float{Value: m.Y},
		}}, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: r.ctrl.State().String()}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolValue(r.ctrl.Grounded()), nil
	}}

	values["jump_count"] = &tengo.UserFunction{Name: "jump_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(r.ctrl.JumpCount())}, nil
	}}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: r.ctrl.Now()}, nil
	}}

	values["saw_event"] = &tengo.UserFunction{Name: "saw_event", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolValue(r.seen[objectAsString(args[0])] > 0), nil
	}}

	values["event_count"] = &tengo.UserFunction{Name: "event_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(r.seen[objectAsString(args[0])])}, nil
	}}

	values["wait_event"] = &tengo.UserFunction{Name: "wait_event", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		budget := objectAsInt(args[1])
		before := r.seen[name]
		for i := 0; i < budget; i++ {
			r.step()
			if r.seen[name] > before {
				return tengo.TrueValue, nil
			}
		}
		return tengo.FalseValue, nil
	}}

	values["check"] = &tengo.UserFunction{Name: "check", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		if !args[0].IsFalsy() {
			return tengo.TrueValue, nil
		}
		msg := "check failed"
		if len(args) > 1 {
			msg = objectAsString(args[1])
		}
		r.failf("%s", msg)
		return tengo.FalseValue, nil
	}}

	values["fail"] = &tengo.UserFunction{Name: "fail", Value: func(args ...tengo.Object) (tengo.Object, error) {
		msg := "failed"
		if len(args) > 0 {
			msg = objectAsString(args[0])
		}
		r.failf("%s", msg)
		return tengo.TrueValue, nil
	}}

	values["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.respawn()
		r.seen = map[string]int{}
		r.input = locomotion.Input{}
		r.tapJump, r.tapCrouch = false, false
		return tengo.TrueValue, nil
	}}

	values["teleport"] = &tengo.UserFunction{Name: "teleport", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		r.body.SetPosition(common.Vec3{
			X: objectAsFloat(args[0]),
			Y: objectAsFloat(args[1]),
			Z: objectAsFloat(args[2]),
		})
		r.ctrl.Reset()
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecArray(v common.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
		&tengo.Float{Value: v.Z},
	}}
}

func boolValue(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
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

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return 0
	}
}

func objectAsInt(obj tengo.Object) int {
	switch v := obj.(type) {
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return int(v.Value)
	default:
		return 0
	}
}

func objectAsBool(obj tengo.Object) bool {
	if obj == nil {
		return false
	}
	return !obj.IsFalsy()
}
