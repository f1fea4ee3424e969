package locomotion

type poundPhase int

const (
	poundNone poundPhase = iota
	poundWindup
	poundDive
)

type poundState struct{}

func (poundState) enter(c *Controller) {
	c.poundPhase = poundWindup
	c.windupUntil = c.now + c.tune.PoundWindup
	c.emit(Event{Type: EventPoundStarted, Position: c.body.Position()})
}

func (poundState) exit(c *Controller) {
	c.poundPhase = poundNone
}

// handleInput is empty on purpose: the pound commits until it lands or
// something external, like water, breaks it.
func (poundState) handleInput(c *Controller, in Input) {}

func (poundState) update(c *Controller, in Input, dt float64) {
	if c.poundPhase == poundWindup {
		if c.now < c.windupUntil {
			return
		}
		c.poundPhase = poundDive
		return
	}
	if c.ground.Hit {
		c.land(in, true)
	}
}

// startPound begins the windup hang. Only a regular airborne fall can start
// one; a scheduled takeoff is thrown away.
func (c *Controller) startPound() {
	if c.stateID != StateAirborne {
		return
	}
	c.cancelScheduledJump()
	c.jump.buffered = false
	c.changeState(StatePound)
}
