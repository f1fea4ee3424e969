package locomotion

import (
	"math"
	"testing"

	"github.com/milk9111/locomotion/common"
)

const (
	tickDt      = 1.0 / 60
	testGravity = 30.0
)

// fakeBody is a minimal embedder body. The rig integrates it the same way
// the collision world does: gravity first, then position, then contact.
type fakeBody struct {
	pos common.Vec3
	vel common.Vec3
}

func (b *fakeBody) Position() common.Vec3     { return b.pos }
func (b *fakeBody) Velocity() common.Vec3     { return b.vel }
func (b *fakeBody) SetVelocity(v common.Vec3) { b.vel = v }

// flatFloor answers downward probes with an infinite floor plane.
type flatFloor struct {
	y       float64
	surface string
}

func (f flatFloor) RayCast(from, to common.Vec3) (common.RayHit, bool) {
	if from.Y == to.Y || from.Y < f.y || to.Y > f.y {
		return common.RayHit{}, false
	}
	t := (from.Y - f.y) / (from.Y - to.Y)
	p := from.Add(to.Sub(from).Mult(t))
	return common.RayHit{Point: p, Normal: common.Vec3{Y: 1}, Fraction: t, Surface: f.surface}, true
}

// toggleFloor lets a test cut the floor out from under the character.
type toggleFloor struct {
	flatFloor
	off bool
}

func (f *toggleFloor) RayCast(from, to common.Vec3) (common.RayHit, bool) {
	if f.off {
		return common.RayHit{}, false
	}
	return f.flatFloor.RayCast(from, to)
}

// rig drives a controller against a scripted caster, standing in for the
// physics world and the host game loop.
type rig struct {
	t    *testing.T
	body *fakeBody
	ctrl *Controller

	// floorAt reports the resting height under a position, if any.
	floorAt func(common.Vec3) (float64, bool)

	seen   map[EventType]int
	events []Event
}

func newRig(t *testing.T, caster Caster, pos common.Vec3) *rig {
	t.Helper()
	body := &fakeBody{pos: pos}
	r := &rig{
		t:    t,
		body: body,
		ctrl: NewController(body, caster, nil),
		seen: map[EventType]int{},
	}
	r.ctrl.AddListener(func(evt Event) {
		r.seen[evt.Type]++
		r.events = append(r.events, evt)
	})
	return r
}

// newFloorRig spawns the character just above an endless stone floor at Y 0.
func newFloorRig(t *testing.T) *rig {
	t.Helper()
	r := newRig(t, flatFloor{surface: "stone"}, common.Vec3{})
	r.floorAt = func(common.Vec3) (float64, bool) { return 0, true }
	return r
}

func newToggleRig(t *testing.T) (*rig, *toggleFloor) {
	t.Helper()
	floor := &toggleFloor{flatFloor: flatFloor{surface: "stone"}}
	r := newRig(t, floor, common.Vec3{})
	r.floorAt = func(common.Vec3) (float64, bool) { return 0, !floor.off }
	return r, floor
}

// step ticks the controller n times, integrating the body between ticks.
// Gravity is skipped for the states the embedder zeroes it for.
func (r *rig) step(in Input, n int) {
	for i := 0; i < n; i++ {
		r.ctrl.Update(in, tickDt)
		switch r.ctrl.State() {
		case StateSwim, StateLedgeGrab:
		default:
			r.body.vel.Y -= testGravity * tickDt
		}
		r.body.pos = r.body.pos.Add(r.body.vel.Mult(tickDt))
		if r.floorAt != nil {
			if fy, ok := r.floorAt(r.body.pos); ok && r.body.pos.Y < fy && r.body.vel.Y < 0 {
				r.body.pos.Y = fy
				r.body.vel.Y = 0
			}
		}
	}
}

// settle ticks with no input until the character reports grounded.
func (r *rig) settle() {
	r.t.Helper()
	for i := 0; i < 600; i++ {
		r.step(Input{}, 1)
		if r.ctrl.Grounded() {
			return
		}
	}
	r.t.Fatalf("character never settled on the ground")
}

// last returns the most recent event of the given type.
func (r *rig) last(typ EventType) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == typ {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func jumpPress(in Input) Input {
	in.JumpPressed = true
	in.JumpHeld = true
	return in
}

func jumpHold(in Input) Input {
	in.JumpHeld = true
	return in
}

func crouchPress(in Input) Input {
	in.CrouchPressed = true
	in.CrouchHeld = true
	return in
}

func closeTo(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSettleOnSpawn(t *testing.T) {
	r := newFloorRig(t)
	r.settle()

	if r.seen[EventLanded] != 1 {
		t.Fatalf("expected one landing, got %d", r.seen[EventLanded])
	}
	if g := r.ctrl.Ground(); !g.Hit || g.Surface != "stone" {
		t.Fatalf("ground probe should report the floor, got %+v", g)
	}
	if got := r.ctrl.JumpCount(); got != 0 {
		t.Fatalf("expected no jumps spent, got %d", got)
	}

	// the landing is still pollable until the next tick
	evts := r.ctrl.Events().Drain()
	found := false
	for _, evt := range evts {
		if evt.Type == EventLanded {
			found = true
		}
	}
	if !found {
		t.Fatalf("landing should be pollable from the queue, got %v", evts)
	}
	if r.ctrl.Events().Drain() != nil {
		t.Fatalf("second drain should be empty")
	}
}

func TestGroundJump(t *testing.T) {
	t.Run("anticipation_delays_takeoff", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		if got := r.ctrl.State(); got != StateGrounded {
			t.Fatalf("takeoff should wait out the anticipation, state %v", got)
		}
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("press should schedule with an anticipation event")
		}
		if r.seen[EventJumpExecuted] != 0 {
			t.Fatalf("jump fired with no delay")
		}
		if got := r.ctrl.JumpCount(); got != 1 {
			t.Fatalf("scheduled jump should already be spent, count %d", got)
		}

		r.step(jumpHold(Input{}), 3)
		if r.seen[EventJumpExecuted] != 0 {
			t.Fatalf("jump fired before the anticipation elapsed")
		}
		r.step(jumpHold(Input{}), 3)
		if r.seen[EventJumpExecuted] != 1 {
			t.Fatalf("jump never fired after the anticipation")
		}
		if got := r.ctrl.State(); got != StateAirborne {
			t.Fatalf("expected airborne after takeoff, got %v", got)
		}
		if vy := r.body.vel.Y; vy < 10 {
			t.Fatalf("takeoff speed %.2f too low", vy)
		}
		evt, _ := r.last(EventJumpExecuted)
		if !closeTo(evt.Intensity, r.ctrl.tune.JumpForce, 1e-9) {
			t.Fatalf("takeoff should use the full ground force, got %.2f", evt.Intensity)
		}
		if got := r.ctrl.JumpCount(); got != 1 {
			t.Fatalf("takeoff must not spend another jump, count %d", got)
		}
	})

	t.Run("press_while_pending_is_ignored", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("second press should not reschedule, got %d anticipations", r.seen[EventJumpAnticipation])
		}
		r.step(jumpHold(Input{}), 6)
		if r.seen[EventJumpExecuted] != 1 {
			t.Fatalf("expected exactly one takeoff, got %d", r.seen[EventJumpExecuted])
		}
	})

	t.Run("release_cuts_the_rise_once", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		r.step(jumpHold(Input{}), 5)
		r.step(jumpHold(Input{}), 2)
		before := r.body.vel.Y
		if before <= 0 {
			t.Fatalf("should still be rising, vy %.2f", before)
		}

		r.step(Input{}, 1)
		after := r.body.vel.Y
		if after <= 0 || after > before*0.5 {
			t.Fatalf("release should chop the rise, before %.2f after %.2f", before, after)
		}

		// the cut spends itself; a hold-release bounce must not cut again
		r.step(jumpHold(Input{}), 1)
		r.step(Input{}, 1)
		if vy := r.body.vel.Y; vy < after-1.2 {
			t.Fatalf("second release must not cut again, vy %.2f", vy)
		}
	})
}

func TestCoyoteWindow(t *testing.T) {
	t.Run("late_press_still_ground_jumps", func(t *testing.T) {
		r, floor := newToggleRig(t)
		r.settle()

		floor.off = true
		r.step(Input{}, 3)
		if got := r.ctrl.State(); got != StateAirborne {
			t.Fatalf("expected airborne off the ledge, got %v", got)
		}

		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("coyote press should schedule a full ground jump")
		}
		r.step(jumpHold(Input{}), 6)
		if r.seen[EventJumpExecuted] != 1 {
			t.Fatalf("coyote jump never fired")
		}
		evt, _ := r.last(EventJumpExecuted)
		if !closeTo(evt.Intensity, r.ctrl.tune.JumpForce, 1e-9) {
			t.Fatalf("coyote jump should use the full ground force, got %.2f", evt.Intensity)
		}
	})

	t.Run("expired_window_spends_the_double_jump", func(t *testing.T) {
		r, floor := newToggleRig(t)
		r.settle()

		floor.off = true
		r.step(Input{}, 8)
		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 0 {
			t.Fatalf("no ground jump after the window closes")
		}
		if r.seen[EventJumpExecuted] != 1 {
			t.Fatalf("air jump should fire instantly")
		}
		if got := r.ctrl.JumpCount(); got != 2 {
			t.Fatalf("air jump should spend both jumps, count %d", got)
		}
		evt, _ := r.last(EventJumpExecuted)
		if !closeTo(evt.Intensity, r.ctrl.tune.DoubleJumpForce, 1e-9) {
			t.Fatalf("expected the double jump force, got %.2f", evt.Intensity)
		}
	})
}

func TestDoubleJumpAndBuffer(t *testing.T) {
	t.Run("second_press_in_air_fires_instantly", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		r.step(jumpHold(Input{}), 5)
		r.step(jumpHold(Input{}), 3)
		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpExecuted] != 2 {
			t.Fatalf("expected two takeoffs, got %d", r.seen[EventJumpExecuted])
		}
		if got := r.ctrl.JumpCount(); got != 2 {
			t.Fatalf("both jumps should be spent, count %d", got)
		}

		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpExecuted] != 2 {
			t.Fatalf("a third press must not fire, got %d takeoffs", r.seen[EventJumpExecuted])
		}
	})

	t.Run("press_just_before_landing_replays", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		r.step(jumpHold(Input{}), 5)
		r.step(jumpHold(Input{}), 2)
		r.step(jumpPress(Input{}), 1)

		pressed := false
		for i := 0; i < 400 && !r.ctrl.Grounded(); i++ {
			in := jumpHold(Input{})
			if !pressed && r.body.vel.Y < 0 && r.body.pos.Y < 1.0 {
				in = jumpPress(in)
				pressed = true
			}
			r.step(in, 1)
		}
		if !r.ctrl.Grounded() {
			t.Fatalf("never landed")
		}
		if !pressed {
			t.Fatalf("test never got to press near the ground")
		}
		if r.seen[EventJumpAnticipation] != 2 {
			t.Fatalf("buffered press should schedule on touchdown, got %d anticipations", r.seen[EventJumpAnticipation])
		}
		r.step(jumpHold(Input{}), 6)
		if r.seen[EventJumpExecuted] != 3 {
			t.Fatalf("buffered jump never fired, got %d takeoffs", r.seen[EventJumpExecuted])
		}
	})

	t.Run("stale_press_is_dropped", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		r.step(jumpHold(Input{}), 5)
		r.step(jumpHold(Input{}), 2)
		r.step(jumpPress(Input{}), 1)
		r.step(jumpPress(Input{}), 1) // third press, long before touchdown

		for i := 0; i < 600 && !r.ctrl.Grounded(); i++ {
			r.step(Input{}, 1)
		}
		if !r.ctrl.Grounded() {
			t.Fatalf("never landed")
		}
		if got := r.ctrl.JumpCount(); got != 0 {
			t.Fatalf("stale buffer must not jump on touchdown, count %d", got)
		}
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("stale press replayed, got %d anticipations", r.seen[EventJumpAnticipation])
		}
	})
}

func TestHardLanding(t *testing.T) {
	r := newFloorRig(t)
	r.body.pos = common.Vec3{Y: 8}
	r.settle()

	evt, ok := r.last(EventLanded)
	if !ok {
		t.Fatalf("expected a landing event")
	}
	if evt.Intensity < r.ctrl.tune.HardLandingSpeed {
		t.Fatalf("a drop from 8 should land hard, impact %.2f", evt.Intensity)
	}
	if evt.Surface != "stone" {
		t.Fatalf("landing should carry the surface, got %q", evt.Surface)
	}

	r.step(jumpPress(Input{}), 1)
	if r.seen[EventJumpAnticipation] != 0 {
		t.Fatalf("lockout should eat the press")
	}

	r.step(Input{}, 15)
	r.step(jumpPress(Input{}), 1)
	if r.seen[EventJumpAnticipation] != 1 {
		t.Fatalf("press after the lockout should schedule")
	}
}

func TestLongJump(t *testing.T) {
	t.Run("crouched_sprint_launches_flat", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		run := Input{MoveX: 1}
		r.step(run, 40)
		if got := r.ctrl.Momentum().Length(); !closeTo(got, r.ctrl.tune.MaxSpeed, 1e-6) {
			t.Fatalf("run-up should sit at the cap, got %.2f", got)
		}

		in := crouchPress(run)
		in = jumpPress(in)
		r.step(in, 1)

		if r.seen[EventLongJump] != 1 {
			t.Fatalf("expected a long jump")
		}
		if r.seen[EventJumpAnticipation] != 0 {
			t.Fatalf("long jump should launch with no anticipation")
		}
		if got := r.ctrl.State(); got != StateAirborne {
			t.Fatalf("expected airborne, got %v", got)
		}
		if got := r.ctrl.JumpCount(); got != 2 {
			t.Fatalf("long jump should spend both jumps, count %d", got)
		}
		if got := r.ctrl.Momentum().Length(); got < r.ctrl.tune.MaxSpeed+4 {
			t.Fatalf("long jump should break the speed cap, got %.2f", got)
		}
		evt, _ := r.last(EventLongJump)
		if evt.Direction.X < 0.99 {
			t.Fatalf("long jump should launch along the run, direction %+v", evt.Direction)
		}
	})

	t.Run("slow_crouch_press_is_a_plain_jump", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		walk := Input{MoveX: 0.3}
		r.step(walk, 30)

		in := crouchPress(walk)
		in = jumpPress(in)
		r.step(in, 1)
		if r.seen[EventLongJump] != 0 {
			t.Fatalf("below the momentum gate there is no long jump")
		}
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("expected a scheduled ground jump instead")
		}
	})
}

func TestMultipliers(t *testing.T) {
	t.Run("speed_scales_the_cap", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()
		r.ctrl.SetMultipliers(Multipliers{Speed: 2})

		r.step(Input{MoveX: 1}, 60)
		if got := r.ctrl.Momentum().Length(); !closeTo(got, r.ctrl.tune.MaxSpeed*2, 1e-6) {
			t.Fatalf("doubled speed should double the cap, got %.2f", got)
		}
	})

	t.Run("jump_scales_the_force", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()
		r.ctrl.SetMultipliers(Multipliers{Jump: 0.5})

		r.step(jumpPress(Input{}), 1)
		r.step(jumpHold(Input{}), 6)
		evt, ok := r.last(EventJumpExecuted)
		if !ok {
			t.Fatalf("jump never fired")
		}
		if !closeTo(evt.Intensity, r.ctrl.tune.JumpForce*0.5, 1e-9) {
			t.Fatalf("halved jump should fire at half force, got %.2f", evt.Intensity)
		}
	})

	t.Run("ground_check_stretches_the_probe", func(t *testing.T) {
		body := &fakeBody{pos: common.Vec3{Y: 0.4}}
		ctrl := NewController(body, flatFloor{surface: "stone"}, nil)
		ctrl.Update(Input{}, tickDt)
		if ctrl.Grounded() {
			t.Fatalf("0.4 above the floor is out of the default probe")
		}

		body2 := &fakeBody{pos: common.Vec3{Y: 0.4}}
		ctrl2 := NewController(body2, flatFloor{surface: "stone"}, nil)
		ctrl2.SetMultipliers(Multipliers{GroundCheck: 10})
		ctrl2.Update(Input{}, tickDt)
		if !ctrl2.Grounded() {
			t.Fatalf("stretched probe should reach the floor")
		}
	})

	t.Run("sanitize_clamps_and_defaults", func(t *testing.T) {
		r := newFloorRig(t)
		r.ctrl.SetMultipliers(Multipliers{Speed: 100, Jump: -3})
		m := r.ctrl.Multipliers()
		if m.Speed != 10 || m.Jump != 0.1 || m.GroundCheck != 1 {
			t.Fatalf("expected clamped multipliers, got %+v", m)
		}
	})
}

func TestReset(t *testing.T) {
	r := newFloorRig(t)
	r.settle()
	r.step(Input{MoveX: 1}, 20)
	r.step(jumpPress(Input{MoveX: 1}), 1)
	r.step(jumpHold(Input{}), 6)

	before := r.ctrl.Now()
	r.ctrl.Reset()

	if r.ctrl.Now() != before {
		t.Fatalf("the clock must keep running across a reset")
	}
	if got := r.ctrl.State(); got != StateAirborne {
		t.Fatalf("reset should leave the character airborne, got %v", got)
	}
	if m := r.ctrl.Momentum(); m.X != 0 || m.Y != 0 {
		t.Fatalf("momentum should clear, got %+v", m)
	}
	if got := r.ctrl.JumpCount(); got != 0 {
		t.Fatalf("jumps should refresh, count %d", got)
	}
	if v := r.body.vel; v != (common.Vec3{}) {
		t.Fatalf("body velocity should zero, got %+v", v)
	}
	if evts := r.ctrl.Events().Peek(); len(evts) != 0 {
		t.Fatalf("queued events should flush, got %v", evts)
	}

	// a respawned character settles cleanly again
	r.body.pos = common.Vec3{}
	landings := r.seen[EventLanded]
	r.settle()
	if r.seen[EventLanded] != landings+1 {
		t.Fatalf("respawn should land again")
	}
}

func TestUpdateIgnoresNonPositiveDt(t *testing.T) {
	r := newFloorRig(t)
	r.settle()
	before := r.ctrl.Now()

	r.ctrl.Update(Input{}, 0)
	r.ctrl.Update(Input{}, -0.5)
	if r.ctrl.Now() != before {
		t.Fatalf("zero and negative dt must not advance the clock")
	}
	if got := r.ctrl.State(); got != StateGrounded {
		t.Fatalf("state should be untouched, got %v", got)
	}
}
