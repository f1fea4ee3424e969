package locomotion

// pushAwayDot is how hard the stick must point out of the wall before a
// slide or hang lets go.
const pushAwayDot = 0.5

// wallDetachGrace keeps a deliberate let-go from re-attaching on the very
// next tick while the character is still inside probe reach.
const wallDetachGrace = 0.2

type wallSlideState struct{}

func (wallSlideState) enter(c *Controller) {
	c.emit(Event{
		Type:      EventWallSlide,
		Position:  c.body.Position(),
		Direction: c.wall.Normal,
		Surface:   c.wall.Surface,
	})
}

func (wallSlideState) exit(c *Controller) {}

func (wallSlideState) handleInput(c *Controller, in Input) {
	if in.JumpPressed {
		c.executeWallJump()
		return
	}
	if in.CrouchPressed {
		c.wallDetachUntil = c.now + wallDetachGrace
		c.changeState(StateAirborne)
	}
}

func (wallSlideState) update(c *Controller, in Input, dt float64) {
	vy := c.body.Velocity().Y
	if c.ground.Hit && vy <= landSpeedEpsilon {
		c.land(in, false)
		return
	}
	if !c.wall.Hit || vy > landSpeedEpsilon {
		c.changeState(StateAirborne)
		return
	}
	if in.MoveVec().Dot(flat(c.wall.Normal)) > pushAwayDot {
		c.changeState(StateAirborne)
		return
	}
	if ledge := c.senseLedge(c.wall); ledge.Hit {
		c.ledge = ledge
		c.changeState(StateLedgeGrab)
	}
}

type ledgeGrabState struct{}

func (ledgeGrabState) enter(c *Controller) {
	c.jump.count = 0
	c.jump.cut = false
	c.emit(Event{
		Type:      EventLedgeGrab,
		Position:  c.ledge.Point,
		Direction: c.ledge.Normal,
	})
}

func (ledgeGrabState) exit(c *Controller) {}

func (ledgeGrabState) handleInput(c *Controller, in Input) {
	if in.JumpPressed {
		c.climbLedge()
		return
	}
	if in.CrouchPressed {
		c.dropLedge()
	}
}

func (ledgeGrabState) update(c *Controller, in Input, dt float64) {
	if in.MoveVec().Dot(flat(c.ledge.Normal)) > pushAwayDot {
		c.dropLedge()
	}
}

// climbLedge spends one jump to pop up over the grabbed lip.
func (c *Controller) climbLedge() {
	c.jump.count = 1
	c.jump.cut = false
	force := c.tune.JumpForce * c.mult.Jump
	c.setVerticalSpeed(force)
	c.changeState(StateAirborne)
	c.emit(Event{
		Type:      EventJumpExecuted,
		Position:  c.body.Position(),
		Direction: c.ledge.Normal.Neg(),
		Intensity: force,
	})
}

// dropLedge lets go of the lip. The double jump stays available on the way
// down.
func (c *Controller) dropLedge() {
	c.jump.count = 1
	c.jump.cut = false
	c.wallDetachUntil = c.now + wallDetachGrace
	c.changeState(StateAirborne)
}
