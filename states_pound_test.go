package locomotion

import (
	"testing"

	"github.com/milk9111/locomotion/common"
)

func TestGroundPound(t *testing.T) {
	t.Run("air_crouch_hangs_then_slams_down", func(t *testing.T) {
		r := newFloorRig(t)
		r.body.pos = common.Vec3{Y: 6}

		r.step(crouchPress(Input{}), 1)
		if got := r.ctrl.State(); got != StatePound {
			t.Fatalf("air crouch should start the pound, got %v", got)
		}
		if r.seen[EventPoundStarted] != 1 {
			t.Fatalf("expected a pound start event")
		}

		// the windup hangs in place; the dive speed must not leak in early
		for i := 0; i < 10; i++ {
			r.step(Input{}, 1)
			if got := r.ctrl.State(); got != StatePound {
				t.Fatalf("windup tick %d left the pound, state %v", i, got)
			}
			if vy := r.body.vel.Y; vy < -1 {
				t.Fatalf("windup tick %d already diving, vy %.2f", i, vy)
			}
		}
		if r.seen[EventPoundLanded] != 0 {
			t.Fatalf("landed before the dive even started")
		}

		r.step(Input{}, 1)
		if vy := r.body.vel.Y; vy > -(r.ctrl.tune.PoundDiveSpeed - 1) {
			t.Fatalf("dive should drop at full speed, vy %.2f", vy)
		}

		for i := 0; i < 60 && r.seen[EventPoundLanded] == 0; i++ {
			r.step(Input{}, 1)
		}
		if r.seen[EventPoundLanded] != 1 {
			t.Fatalf("pound never landed")
		}
		if r.seen[EventLanded] != 0 {
			t.Fatalf("a pound landing must not double as a plain landing")
		}
		if got := r.ctrl.State(); got != StateGrounded {
			t.Fatalf("expected grounded after the slam, got %v", got)
		}
		if got := r.ctrl.JumpCount(); got != 0 {
			t.Fatalf("touchdown should refresh the jumps, count %d", got)
		}
		evt, _ := r.last(EventPoundLanded)
		if evt.Intensity < r.ctrl.tune.PoundDiveSpeed-1 {
			t.Fatalf("slam should carry the dive speed, got %.2f", evt.Intensity)
		}
		if evt.Surface != "stone" {
			t.Fatalf("slam should carry the surface, got %q", evt.Surface)
		}

		// the slam locks control for a moment
		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 0 {
			t.Fatalf("lockout should eat the press")
		}
		r.step(Input{}, 25)
		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("press after the lockout should schedule")
		}
	})

	t.Run("grounded_crouch_stays_put", func(t *testing.T) {
		r := newFloorRig(t)
		r.settle()

		r.step(crouchPress(Input{}), 1)
		r.step(Input{CrouchHeld: true}, 10)
		if got := r.ctrl.State(); got != StateGrounded {
			t.Fatalf("crouching on the ground is not a pound, got %v", got)
		}
		if r.seen[EventPoundStarted] != 0 {
			t.Fatalf("pound started from the ground")
		}
	})

	t.Run("pound_cancels_a_scheduled_takeoff", func(t *testing.T) {
		r, floor := newToggleRig(t)
		r.settle()

		r.step(jumpPress(Input{}), 1)
		if r.seen[EventJumpAnticipation] != 1 {
			t.Fatalf("press should schedule a takeoff first")
		}
		floor.off = true
		r.step(Input{}, 1)
		if got := r.ctrl.State(); got != StateAirborne {
			t.Fatalf("expected airborne off the ledge, got %v", got)
		}

		r.step(crouchPress(Input{}), 1)
		if got := r.ctrl.State(); got != StatePound {
			t.Fatalf("crouch should pound mid-anticipation, got %v", got)
		}
		r.step(Input{}, 10)
		if r.seen[EventJumpExecuted] != 0 {
			t.Fatalf("the canceled takeoff still fired")
		}
		if got := r.ctrl.State(); got != StatePound {
			t.Fatalf("pound should commit through the fall, got %v", got)
		}
	})
}
