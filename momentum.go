package locomotion

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion/common"
)

// flat projects a world vector onto the horizontal plane, mapping world X/Z
// onto the plane's X/Y.
func flat(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// lift rebuilds a world vector from a plane vector plus a vertical speed.
func lift(v cp.Vector, y float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: y, Z: v.Y}
}

// frictionStep converts a per-tick retain factor, referenced at 60 Hz, into
// the equivalent factor for an arbitrary dt.
func frictionStep(retain, dt float64) float64 {
	return math.Pow(retain, dt*60)
}

// applyMovement integrates the horizontal momentum for this tick and hands
// the blended velocity to the body. Vertical speed is whatever the body
// reports, except where the active state overrides it.
func (c *Controller) applyMovement(in Input, dt float64) {
	switch c.stateID {
	case StateLedgeGrab:
		c.momentum = cp.Vector{}
		c.body.SetVelocity(common.Vec3{})
		return
	case StatePound:
		c.momentum = cp.Vector{}
		if c.poundPhase == poundWindup {
			c.body.SetVelocity(common.Vec3{})
		} else {
			c.body.SetVelocity(common.Vec3{Y: -c.tune.PoundDiveSpeed})
		}
		return
	case StateSwim:
		c.applySwim(in, dt)
		return
	}

	accel := c.tune.Accel
	friction := c.tune.GroundFriction
	if c.stateID != StateGrounded {
		accel = c.tune.AirAccel
		friction = c.tune.AirFriction
	}
	if c.stateID == StateGrounded && c.now < c.lockoutUntil {
		accel *= c.tune.LockoutControlFactor
	}

	limit := c.tune.MaxSpeed * c.mult.Speed
	wish := in.MoveVec()
	idle := wish.X == 0 && wish.Y == 0
	// Partial stick deflection walks instead of sprinting.
	if !idle {
		if l := wish.Length(); l < 1 {
			limit *= l
		}
	}
	// Momentum already past the cap (boost pads, long jumps) is left to
	// friction rather than snapped back down.
	overLimit := c.momentum.Length() > limit

	c.momentum = c.momentum.Add(wish.Mult(accel * c.mult.Speed * dt))
	if !overLimit {
		c.momentum = c.momentum.Clamp(limit)
	}
	// Friction only brakes: it runs when the stick is idle or the cap is
	// exceeded, never against held input.
	if idle || overLimit {
		c.momentum = c.momentum.Mult(frictionStep(friction, dt))
	}
	if idle && c.momentum.Length() < c.tune.MinSpeed {
		c.momentum = cp.Vector{}
	}

	vy := c.body.Velocity().Y
	if c.air != nil && c.stateID != StateGrounded {
		vy += c.air.VerticalForce * dt
	}
	if c.stateID == StateWallSlide {
		n := flat(c.wall.Normal)
		if n.LengthSq() > 0 {
			n = n.Normalize()
			c.momentum = c.momentum.Sub(n.Mult(c.momentum.Dot(n)))
		}
		if vy < -c.tune.WallSlideMaxFall {
			vy = -c.tune.WallSlideMaxFall
		}
	}
	c.body.SetVelocity(lift(c.momentum, vy))
}
