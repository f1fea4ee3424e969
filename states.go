package locomotion

//go:generate go run golang.org/x/tools/cmd/stringer -type=StateID -trimprefix=State

// StateID names one entry in the movement state table.
type StateID int

const (
	StateGrounded StateID = iota
	StateAirborne
	StateWallSlide
	StateLedgeGrab
	StatePound
	StateSwim
)

// moveState is one row of the state table. Hooks receive the controller and
// mutate it directly; enter and exit run exactly once per transition.
type moveState interface {
	enter(c *Controller)
	exit(c *Controller)
	handleInput(c *Controller, in Input)
	update(c *Controller, in Input, dt float64)
}

var stateTable = [...]moveState{
	StateGrounded:  groundedState{},
	StateAirborne:  airborneState{},
	StateWallSlide: wallSlideState{},
	StateLedgeGrab: ledgeGrabState{},
	StatePound:     poundState{},
	StateSwim:      swimState{},
}

// landLabelTime is how long the touchdown pose holds when the landing was
// soft enough to skip the control lockout.
const landLabelTime = 0.12

type groundedState struct{}

func (groundedState) enter(c *Controller) {
	c.lastStepAt = c.now
}

func (groundedState) exit(c *Controller) {}

func (groundedState) handleInput(c *Controller, in Input) {
	if in.JumpPressed {
		c.pressJump(in)
	}
}

func (groundedState) update(c *Controller, in Input, dt float64) {
	if !c.ground.Hit {
		c.changeState(StateAirborne)
	}
}

type airborneState struct{}

func (airborneState) enter(c *Controller) {}

func (airborneState) exit(c *Controller) {}

func (airborneState) handleInput(c *Controller, in Input) {
	if in.JumpPressed {
		c.pressJump(in)
	}
	if in.CrouchPressed {
		c.startPound()
	}
}

func (airborneState) update(c *Controller, in Input, dt float64) {
	c.applyJumpCut(in)

	vy := c.body.Velocity().Y
	if c.ground.Hit && vy <= landSpeedEpsilon {
		c.land(in, false)
		return
	}
	if vy > 0 || !c.wall.Hit {
		return
	}
	// A fresh let-go, or a stick held out of the wall, falls free instead
	// of snapping straight back on.
	if c.now < c.wallDetachUntil || in.MoveVec().Dot(flat(c.wall.Normal)) > pushAwayDot {
		return
	}
	if ledge := c.senseLedge(c.wall); ledge.Hit {
		c.ledge = ledge
		c.changeState(StateLedgeGrab)
		return
	}
	c.changeState(StateWallSlide)
}

// landSpeedEpsilon filters out the near-zero upward speeds a physics step
// can report on the contact frame.
const landSpeedEpsilon = 0.01

// land runs the touchdown bookkeeping shared by falls, wall slides, and
// ground pounds, then hands control to the grounded state. The impact
// speed comes from last tick's latch when the collision step already
// zeroed the body.
func (c *Controller) land(in Input, pound bool) {
	fall := -c.body.Velocity().Y
	if c.prevFall > fall {
		fall = c.prevFall
	}
	if fall < 0 {
		fall = 0
	}

	c.jump.count = 0
	c.jump.cut = false

	switch {
	case pound:
		c.lockoutUntil = c.now + c.tune.PoundLockout
		c.emit(Event{
			Type:      EventPoundLanded,
			Position:  c.body.Position(),
			Intensity: fall,
			Surface:   c.ground.Surface,
		})
	default:
		if fall >= c.tune.HardLandingSpeed {
			c.lockoutUntil = c.now + c.tune.LandingLockout
		}
		c.emit(Event{
			Type:      EventLanded,
			Position:  c.body.Position(),
			Intensity: fall,
			Surface:   c.ground.Surface,
		})
	}

	c.landedLabelUntil = c.now + landLabelTime
	if c.lockoutUntil > c.landedLabelUntil {
		c.landedLabelUntil = c.lockoutUntil
	}

	c.setVerticalSpeed(0)
	c.changeState(StateGrounded)
	c.consumeBufferedJump(in)
}
