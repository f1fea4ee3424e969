package locomotion

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion/common"
)

type swimState struct{}

func (swimState) enter(c *Controller) {
	entrySpeed := math.Abs(c.body.Velocity().Y)

	c.cancelScheduledJump()
	c.jump.buffered = false
	c.jump.count = 0
	c.jump.cut = false

	c.emit(Event{Type: EventWaterEnter, Position: c.body.Position(), Intensity: entrySpeed})
	if entrySpeed >= c.tune.SplashMinSpeed {
		c.emit(Event{Type: EventSwimSplash, Position: c.body.Position(), Intensity: entrySpeed})
	}

	// Water soaks up the entry speed right away, so a pound dive does not
	// carry to the bottom.
	c.momentum = c.momentum.Clamp(c.tune.SwimMaxSpeed * c.mult.Speed)
	vy := c.body.Velocity().Y
	if vy < -c.tune.SwimMaxVertical {
		c.setVerticalSpeed(-c.tune.SwimMaxVertical)
	}
}

func (swimState) exit(c *Controller) {
	c.emit(Event{Type: EventWaterExit, Position: c.body.Position()})
}

func (swimState) handleInput(c *Controller, in Input) {
	if in.JumpPressed && c.nearSurface() {
		c.surfaceHop()
	}
}

func (swimState) update(c *Controller, in Input, dt float64) {}

// submergePoint is the body center, the point that decides whether the
// character counts as in water.
func (c *Controller) submergePoint() common.Vec3 {
	pos := c.body.Position()
	return common.Vec3{X: pos.X, Y: pos.Y + c.tune.BodyHeight*0.5, Z: pos.Z}
}

// nearSurface reports whether the swimmer sits inside the slack band just
// under the water line.
func (c *Controller) nearSurface() bool {
	if c.water == nil {
		return false
	}
	return c.water.SurfaceHeight-c.submergePoint().Y <= c.tune.SurfaceSlack
}

// surfaceHop pops the swimmer out of the water with a full jump. One air
// jump remains for the arc.
func (c *Controller) surfaceHop() {
	c.jump.count = 1
	c.jump.cut = false
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

// applySwim integrates water movement: drag on every axis, flow pull from
// the zone's current, stick-driven ascent and descent, and buoyancy when
// the stick is idle.
func (c *Controller) applySwim(in Input, dt float64) {
	wish := in.MoveVec()
	c.momentum = c.momentum.Add(wish.Mult(c.tune.SwimAccel * c.mult.Speed * dt))

	flow := cp.Vector{}
	if c.water != nil {
		flow = c.water.Current
	}
	if flow.X != 0 || flow.Y != 0 {
		c.momentum = c.momentum.LerpConst(flow, c.tune.CurrentBlend*dt)
	}
	// Drag damps the velocity relative to the flow, so a current carries
	// the swimmer rather than being dragged back to a stop.
	c.momentum = flow.Add(c.momentum.Sub(flow).Mult(frictionStep(c.tune.SwimDrag, dt)))
	c.momentum = c.momentum.Clamp(c.tune.SwimMaxSpeed * c.mult.Speed)

	vy := c.body.Velocity().Y * frictionStep(c.tune.SwimDrag, dt)
	switch {
	case in.AscendHeld:
		vy = common.Approach(vy, c.tune.SwimVerticalSpeed, c.tune.SwimAccel*dt)
	case in.DescendHeld:
		vy = common.Approach(vy, -c.tune.SwimVerticalSpeed, c.tune.SwimAccel*dt)
	case c.nearSurface():
		// Settle into a bob at the water line instead of launching out.
		vy = common.Approach(vy, 0, c.tune.Buoyancy*dt)
	default:
		// Deeper water pushes harder, a spring toward the surface rather
		// than a constant lift.
		depth := 0.0
		if c.water != nil {
			depth = c.water.SurfaceHeight - c.submergePoint().Y
		}
		push := common.Clamp(c.tune.Buoyancy*depth, 0, c.tune.BuoyancyMax)
		vy += push * dt
	}
	if vy < -c.tune.SwimMaxVertical {
		vy = -c.tune.SwimMaxVertical
	}
	c.body.SetVelocity(lift(c.momentum, vy))
}
