package locomotion

import (
	"github.com/milk9111/locomotion/common"
)

// GroundInfo is the result of the downward support probe for one tick.
type GroundInfo struct {
	Hit     bool
	Normal  common.Vec3
	Surface string
	// Distance is how far below the feet the support sits, in world units.
	Distance float64
}

// WallInfo is the result of the lateral probes for one tick. Normal points
// away from the wall, back toward the character.
type WallInfo struct {
	Hit     bool
	Normal  common.Vec3
	Surface string
}

// LedgeInfo describes a grabbable top edge found past a wall contact.
type LedgeInfo struct {
	Hit    bool
	Point  common.Vec3
	Normal common.Vec3
}

var wallProbeDirs = []common.Vec3{
	{X: 1},
	{X: -1},
	{Z: 1},
	{Z: -1},
}

// senseGround casts from the hip straight down past the feet. The probe
// length below the feet is GroundCheckDistance scaled by the ground-check
// multiplier, so slopes and moving platforms can loosen the snap range.
func (c *Controller) senseGround() GroundInfo {
	pos := c.body.Position()
	reach := c.tune.GroundCheckDistance * c.mult.GroundCheck
	from := common.Vec3{X: pos.X, Y: pos.Y + c.tune.BodyRadius, Z: pos.Z}
	to := common.Vec3{X: pos.X, Y: pos.Y - reach, Z: pos.Z}

	hit, ok := c.caster.RayCast(from, to)
	if !ok {
		return GroundInfo{}
	}
	return GroundInfo{
		Hit:      true,
		Normal:   hit.Normal,
		Surface:  hit.Surface,
		Distance: pos.Y - hit.Point.Y,
	}
}

// senseWall casts the four cardinal probes at chest height and keeps the
// nearest contact. Diagonal contacts resolve to whichever axis is closer.
func (c *Controller) senseWall() WallInfo {
	pos := c.body.Position()
	chest := common.Vec3{X: pos.X, Y: pos.Y + c.tune.BodyHeight*0.5, Z: pos.Z}
	reach := c.tune.BodyRadius + c.tune.WallCheckDistance

	var out WallInfo
	best := 2.0
	for _, dir := range wallProbeDirs {
		to := chest.Add(dir.Mult(reach))
		hit, ok := c.caster.RayCast(chest, to)
		if !ok {
			continue
		}
		if hit.Fraction < best {
			best = hit.Fraction
			out = WallInfo{Hit: true, Normal: hit.Normal, Surface: hit.Surface}
		}
	}
	return out
}

// senseLedge runs the two-probe check against the current wall contact.
// The clearance probe at head height must pass over the wall, then the
// drop probe beyond the lip must find the top surface within LedgeDropLen.
func (c *Controller) senseLedge(wall WallInfo) LedgeInfo {
	if !wall.Hit {
		return LedgeInfo{}
	}
	pos := c.body.Position()
	into := wall.Normal.Neg()
	headY := pos.Y + c.tune.BodyHeight + c.tune.LedgeHeadroom

	clearFrom := common.Vec3{X: pos.X, Y: headY, Z: pos.Z}
	clearTo := clearFrom.Add(into.Mult(c.tune.BodyRadius + c.tune.LedgeReach))
	if _, blocked := c.caster.RayCast(clearFrom, clearTo); blocked {
		return LedgeInfo{}
	}

	dropFrom := clearTo
	dropTo := common.Vec3{X: dropFrom.X, Y: dropFrom.Y - c.tune.LedgeDropLen, Z: dropFrom.Z}
	hit, ok := c.caster.RayCast(dropFrom, dropTo)
	if !ok {
		return LedgeInfo{}
	}
	return LedgeInfo{Hit: true, Point: hit.Point, Normal: wall.Normal}
}

func (c *Controller) sense() {
	c.ground = c.senseGround()
	c.wall = c.senseWall()
}
