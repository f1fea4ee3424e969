package locomotion

// Animation labels handed to the Animator. Playback, blending, and timing
// all live on the embedder's side.
const (
	AnimIdle        = "idle"
	AnimWalk        = "walk"
	AnimRun         = "run"
	AnimJump        = "jump"
	AnimFall        = "fall"
	AnimLand        = "land"
	AnimWallSlide   = "wall_slide"
	AnimGroundPound = "ground_pound"
	AnimSwimIdle    = "swim_idle"
	AnimSwimWalk    = "swim_walk"
)

// Animator receives the label the controller picked for the current tick.
// Play is only called when the label changes.
type Animator interface {
	Play(label string)
}

// animationLabel folds the active state, the momentum, and the vertical
// speed into one of the fixed labels.
func (c *Controller) animationLabel() string {
	switch c.stateID {
	case StateGrounded:
		if c.now < c.landedLabelUntil {
			return AnimLand
		}
		speed := c.momentum.Length()
		switch {
		case speed < c.tune.WalkThreshold:
			return AnimIdle
		case speed < c.tune.RunThreshold:
			return AnimWalk
		default:
			return AnimRun
		}
	case StateAirborne:
		if c.body.Velocity().Y > 0 {
			return AnimJump
		}
		return AnimFall
	case StateWallSlide:
		return AnimWallSlide
	case StateLedgeGrab:
		return AnimIdle
	case StatePound:
		return AnimGroundPound
	case StateSwim:
		if c.momentum.Length() < c.tune.WalkThreshold {
			return AnimSwimIdle
		}
		return AnimSwimWalk
	}
	return AnimIdle
}

func (c *Controller) updateAnimation() {
	label := c.animationLabel()
	if label != c.lastAnim {
		c.lastAnim = label
		if c.animator != nil {
			c.animator.Play(label)
		}
	}
	c.updateFootsteps()
}

// updateFootsteps emits a footstep cadence while moving on the ground. The
// interval tightens once the pace crosses into a run.
func (c *Controller) updateFootsteps() {
	if c.stateID != StateGrounded || !c.ground.Hit {
		return
	}
	speed := c.momentum.Length()
	if speed < c.tune.WalkThreshold {
		return
	}
	interval := c.tune.WalkStepInterval
	if speed >= c.tune.RunThreshold {
		interval = c.tune.RunStepInterval
	}
	if c.now-c.lastStepAt < interval {
		return
	}
	c.lastStepAt = c.now
	c.emit(Event{
		Type:      EventFootstep,
		Position:  c.body.Position(),
		Intensity: speed,
		Surface:   c.ground.Surface,
	})
}
