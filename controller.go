// Package locomotion drives a physics-backed platformer character: ground
// and air movement, jumps with coyote time and buffering, wall slides,
// ledge grabs, ground pounds, and swimming. It owns no physics of its own.
// The embedder supplies a Body to drive and a Caster to probe the level
// with, ticks Update at a fixed or variable step, and reacts to the events
// the controller emits.
package locomotion

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/tuning"
)

// Body is the physical body the controller drives. Position is the bottom
// center of the collision shape, at the feet. The controller owns the
// horizontal velocity it hands over; vertical speed is shared with whatever
// integrates gravity.
type Body interface {
	Position() common.Vec3
	Velocity() common.Vec3
	SetVelocity(common.Vec3)
}

// Caster answers ray queries against level collision, returning the
// nearest hit between from and to.
type Caster interface {
	RayCast(from, to common.Vec3) (common.RayHit, bool)
}

// Multipliers scale movement at runtime for power-ups and status effects.
type Multipliers struct {
	Speed       float64
	Jump        float64
	GroundCheck float64
}

const (
	multMin = 0.1
	multMax = 10.0
)

func (m Multipliers) sanitized() Multipliers {
	fix := func(v float64) float64 {
		if v == 0 {
			return 1
		}
		return common.Clamp(v, multMin, multMax)
	}
	return Multipliers{
		Speed:       fix(m.Speed),
		Jump:        fix(m.Jump),
		GroundCheck: fix(m.GroundCheck),
	}
}

// Controller is the character motion state machine. It is not safe for
// concurrent use; drive it from the simulation goroutine.
type Controller struct {
	body     Body
	caster   Caster
	tune     *tuning.Tuning
	zones    *ZoneSet
	animator Animator

	now      float64
	momentum cp.Vector
	stateID  StateID

	jump   jumpContext
	ground GroundInfo
	wall   WallInfo
	ledge  LedgeInfo
	water  *WaterZone
	air    *AirCurrentZone

	mult Multipliers

	poundPhase  poundPhase
	windupUntil float64

	lockoutUntil     float64
	landedLabelUntil float64
	wallDetachUntil  float64
	lastStepAt       float64
	lastAnim         string

	// prevFall is last tick's downward speed. The collision step zeroes
	// the body's velocity on the contact frame, so the landing tick has to
	// read the impact speed from here.
	prevFall float64

	boostFiredAt map[*SpeedBoostZone]float64

	events    EventQueue
	listeners []func(Event)
}

// NewController builds a controller around the embedder's body and ray
// caster. A nil tune falls back to the built-in defaults. The character
// starts airborne and settles onto whatever is under it on the first tick.
func NewController(body Body, caster Caster, tune *tuning.Tuning) *Controller {
	if tune == nil {
		def := tuning.Default()
		tune = &def
	}
	return &Controller{
		body:             body,
		caster:           caster,
		tune:             tune,
		stateID:          StateAirborne,
		jump:             newJumpContext(),
		mult:             Multipliers{Speed: 1, Jump: 1, GroundCheck: 1},
		lockoutUntil:     math.Inf(-1),
		landedLabelUntil: math.Inf(-1),
		wallDetachUntil:  math.Inf(-1),
		lastStepAt:       math.Inf(-1),
		boostFiredAt:     map[*SpeedBoostZone]float64{},
	}
}

// SetZones attaches the level's environment volumes. Pass nil to clear.
func (c *Controller) SetZones(z *ZoneSet) {
	c.zones = z
}

// SetAnimator attaches the label sink. Pass nil to detach.
func (c *Controller) SetAnimator(a Animator) {
	c.animator = a
}

// SetTuning swaps the tuning sheet in place, for live reload. A nil
// argument is ignored.
func (c *Controller) SetTuning(t *tuning.Tuning) {
	if t == nil {
		return
	}
	c.tune = t
}

// SetMultipliers replaces the runtime multipliers. Zero fields mean 1 and
// everything is clamped into a sane range.
func (c *Controller) SetMultipliers(m Multipliers) {
	c.mult = m.sanitized()
}

// AddListener registers a callback invoked for every event at the end of
// each Update, in emit order.
func (c *Controller) AddListener(fn func(Event)) {
	if fn == nil {
		return
	}
	c.listeners = append(c.listeners, fn)
}

// Events exposes the queue of events emitted during the most recent Update.
// The queue is cleared at the start of the next one.
func (c *Controller) Events() *EventQueue {
	return &c.events
}

func (c *Controller) State() StateID { return c.stateID }

// Momentum is the horizontal momentum on the ground plane, world X/Z.
func (c *Controller) Momentum() cp.Vector { return c.momentum }

func (c *Controller) Grounded() bool { return c.stateID == StateGrounded }

func (c *Controller) Ground() GroundInfo { return c.ground }

func (c *Controller) Wall() WallInfo { return c.wall }

func (c *Controller) JumpCount() int { return c.jump.count }

func (c *Controller) Multipliers() Multipliers { return c.mult }

// Now is the controller's clock, the sum of all dt passed to Update.
func (c *Controller) Now() float64 { return c.now }

// Update advances the controller one tick: probe the surroundings, let the
// active state react to input and transitions, then hand the blended
// velocity to the body and settle animation and events.
func (c *Controller) Update(in Input, dt float64) {
	if dt <= 0 {
		return
	}
	c.now += dt
	c.events.flush()

	c.sense()
	c.air = c.zones.airCurrentAt(c.submergePoint())
	c.checkWater()

	if c.stateID == StateGrounded && c.ground.Hit {
		c.jump.lastGroundedAt = c.now
	}

	stateTable[c.stateID].handleInput(c, in)
	stateTable[c.stateID].update(c, in, dt)
	c.fireScheduledJump()
	c.applyBoost()
	c.applyMovement(in, dt)
	c.updateAnimation()

	if vy := c.body.Velocity().Y; vy < 0 {
		c.prevFall = -vy
	} else {
		c.prevFall = 0
	}
	c.dispatch()
}

// checkWater runs before the states so that submersion outranks whatever
// the character was doing, including a pound dive or a scheduled takeoff.
func (c *Controller) checkWater() {
	w := c.zones.waterAt(c.submergePoint())
	if w == nil {
		c.water = nil
		if c.stateID == StateSwim {
			c.changeState(StateAirborne)
		}
		return
	}
	if c.stateID == StateSwim {
		c.water = w
		return
	}
	// A rising hop in the surface band keeps its arc instead of being
	// pulled straight back under.
	if c.body.Velocity().Y > 0 && w.SurfaceHeight-c.submergePoint().Y <= c.tune.SurfaceSlack {
		return
	}
	c.water = w
	c.changeState(StateSwim)
}

// applyBoost shoves the character along a boost pad's direction, at most
// once per pad until its cooldown elapses. While the character stays on
// the pad a BoostActive event ticks every frame.
func (c *Controller) applyBoost() {
	b := c.zones.boostAt(c.body.Position())
	if b == nil {
		return
	}
	last, fired := c.boostFiredAt[b]
	if !fired || c.now-last >= b.Cooldown {
		c.boostFiredAt[b] = c.now
		dir := b.Direction
		if dir.LengthSq() > 0 {
			dir = dir.Normalize()
		}
		c.momentum = c.momentum.Add(dir.Mult(b.Force))
		if b.VerticalKick > 0 && c.body.Velocity().Y < b.VerticalKick {
			c.setVerticalSpeed(b.VerticalKick)
		}
		c.emit(Event{
			Type:      EventBoostTriggered,
			Position:  c.body.Position(),
			Direction: lift(dir, 0),
			Intensity: b.Force,
		})
	}
	c.emit(Event{Type: EventBoostActive, Position: c.body.Position(), Direction: lift(b.Direction, 0)})
}

func (c *Controller) changeState(id StateID) {
	if id == c.stateID {
		return
	}
	stateTable[c.stateID].exit(c)
	c.stateID = id
	stateTable[id].enter(c)
}

func (c *Controller) emit(evt Event) {
	c.events.Push(evt)
}

func (c *Controller) dispatch() {
	if len(c.listeners) == 0 {
		return
	}
	for _, evt := range c.events.Peek() {
		for _, fn := range c.listeners {
			fn(evt)
		}
	}
}

func (c *Controller) setVerticalSpeed(vy float64) {
	vel := c.body.Velocity()
	c.body.SetVelocity(common.Vec3{X: vel.X, Y: vy, Z: vel.Z})
}

// Reset clears all transient movement state, for respawns and level loads.
// The clock keeps running so stale timestamps cannot refire. Zones and
// tuning stay attached.
func (c *Controller) Reset() {
	if c.stateID != StateAirborne {
		stateTable[c.stateID].exit(c)
		c.stateID = StateAirborne
	}
	c.momentum = cp.Vector{}
	c.jump = newJumpContext()
	c.ground = GroundInfo{}
	c.wall = WallInfo{}
	c.ledge = LedgeInfo{}
	c.water = nil
	c.air = nil
	c.poundPhase = poundNone
	c.lockoutUntil = math.Inf(-1)
	c.landedLabelUntil = math.Inf(-1)
	c.wallDetachUntil = math.Inf(-1)
	c.lastStepAt = math.Inf(-1)
	c.lastAnim = ""
	c.prevFall = 0
	c.boostFiredAt = map[*SpeedBoostZone]float64{}
	c.events.flush()
	c.body.SetVelocity(common.Vec3{})
}
