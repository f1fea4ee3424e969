package locomotion

import (
	"math"

	"github.com/milk9111/locomotion/common"
)

// jumpContext tracks everything the jump rules carry across ticks.
type jumpContext struct {
	// count is how many jumps have been spent since last touching ground.
	count int
	// lastGroundedAt feeds the coyote window.
	lastGroundedAt float64
	// buffered holds a press that arrived with no jump available.
	buffered   bool
	bufferedAt float64
	// pending is a ground jump waiting out its anticipation delay.
	pending       bool
	pendingFireAt float64
	// cut marks that the rising arc was already shortened on release.
	cut bool
}

func newJumpContext() jumpContext {
	return jumpContext{
		lastGroundedAt: math.Inf(-1),
		bufferedAt:     math.Inf(-1),
	}
}

// pressJump routes a fresh jump press. Grounded and coyote presses start a
// ground jump, air presses spend the double jump, and anything after that
// is buffered for touchdown. Presses during a landing lockout are dropped.
func (c *Controller) pressJump(in Input) {
	if c.jump.pending {
		return
	}
	if c.stateID == StateGrounded && c.now < c.lockoutUntil {
		return
	}
	if c.stateID == StateGrounded || c.coyoteActive() {
		if in.CrouchHeld && c.momentum.Length() >= c.tune.LongJumpMinSpeed {
			c.executeLongJump()
			return
		}
		c.scheduleGroundJump()
		return
	}
	if c.jump.count < 2 {
		c.executeAirJump()
		return
	}
	c.jump.buffered = true
	c.jump.bufferedAt = c.now
}

// scheduleGroundJump books the takeoff for after the anticipation delay so
// a squash pose has time to read. The jump is spent immediately.
func (c *Controller) scheduleGroundJump() {
	c.jump.count = 1
	c.jump.cut = false
	c.jump.pending = true
	c.jump.pendingFireAt = c.now + c.tune.JumpAnticipation
	c.emit(Event{Type: EventJumpAnticipation, Position: c.body.Position()})
}

// fireScheduledJump launches a booked ground jump once its delay elapses.
// It fires even if the floor disappeared in the meantime.
func (c *Controller) fireScheduledJump() {
	if !c.jump.pending || c.now < c.jump.pendingFireAt {
		return
	}
	c.jump.pending = false
	force := c.tune.JumpForce * c.mult.Jump
	c.setVerticalSpeed(force)
	c.changeState(StateAirborne)
	c.emit(Event{
		Type:      EventJumpExecuted,
		Position:  c.body.Position(),
		Direction: common.Vec3{Y: 1},
		Intensity: force,
	})
}

// executeAirJump spends the double jump. There is no anticipation in the
// air; the kick is immediate.
func (c *Controller) executeAirJump() {
	c.jump.count = 2
	c.jump.cut = false
	force := c.tune.DoubleJumpForce * c.mult.Jump
	c.setVerticalSpeed(force)
	c.changeState(StateAirborne)
	c.emit(Event{
		Type:      EventJumpExecuted,
		Position:  c.body.Position(),
		Direction: common.Vec3{Y: 1},
		Intensity: force,
	})
}

// executeLongJump converts a crouched run into a low, fast leap along the
// current momentum. Both jumps are spent.
func (c *Controller) executeLongJump() {
	speed := c.momentum.Length() + c.tune.LongJumpBoost
	dir := c.momentum.Normalize()
	c.momentum = dir.Mult(speed)
	c.jump.count = 2
	c.jump.cut = false
	c.setVerticalSpeed(c.tune.LongJumpForce * c.mult.Jump)
	c.changeState(StateAirborne)
	c.emit(Event{
		Type:      EventLongJump,
		Position:  c.body.Position(),
		Direction: lift(dir, 0),
		Intensity: speed,
	})
}

// executeWallJump kicks away from the current wall contact. One air jump
// is left afterwards.
func (c *Controller) executeWallJump() {
	n := flat(c.wall.Normal)
	if n.LengthSq() > 0 {
		n = n.Normalize()
	}
	c.momentum = n.Mult(c.tune.WallJumpPush)
	c.jump.count = 1
	c.jump.cut = false
	c.setVerticalSpeed(c.tune.JumpForce * c.mult.Jump)
	c.changeState(StateAirborne)
	c.emit(Event{
		Type:      EventWallJump,
		Position:  c.body.Position(),
		Direction: c.wall.Normal,
		Intensity: c.tune.WallJumpPush,
	})
}

func (c *Controller) coyoteActive() bool {
	return c.jump.count == 0 && c.now-c.jump.lastGroundedAt <= c.tune.CoyoteTime
}

func (c *Controller) cancelScheduledJump() {
	c.jump.pending = false
}

// applyJumpCut shortens the rising arc once when the jump button lets go
// mid-flight.
func (c *Controller) applyJumpCut(in Input) {
	if in.JumpHeld || c.jump.cut || c.jump.count == 0 {
		return
	}
	vy := c.body.Velocity().Y
	if vy <= 0 {
		return
	}
	c.jump.cut = true
	c.setVerticalSpeed(vy * c.tune.JumpCutFactor)
}

// consumeBufferedJump replays a press that arrived just before touchdown.
// Stale presses are dropped either way.
func (c *Controller) consumeBufferedJump(in Input) {
	live := c.jump.buffered && c.now-c.jump.bufferedAt <= c.tune.JumpBuffer
	c.jump.buffered = false
	if live {
		c.pressJump(in)
	}
}
