// Package physics is a small kinematic world over axis-aligned level
// geometry: enough collision for a character box and the segment probes the
// motion controller needs. Bodies are moved axis by axis and pushed out of
// whatever they enter, so they slide along walls and rest on tops.
package physics

import (
	"github.com/milk9111/locomotion/common"
)

const (
	axisX = iota
	axisY
	axisZ
)

// terminalFall caps downward speed so long drops stay resolvable in one
// step against thin geometry.
const terminalFall = 50.0

// Shape is one static solid.
type Shape struct {
	Box     common.Box3
	Surface string
}

// Body is a kinematic mover with its origin at the feet, bottom center.
type Body struct {
	pos          common.Vec3
	vel          common.Vec3
	radius       float64
	height       float64
	gravityScale float64
}

func (b *Body) Position() common.Vec3 { return b.pos }

func (b *Body) Velocity() common.Vec3 { return b.vel }

func (b *Body) SetVelocity(v common.Vec3) { b.vel = v }

// SetPosition teleports the body, for spawns and respawns.
func (b *Body) SetPosition(p common.Vec3) { b.pos = p }

// SetGravityScale scales how much world gravity pulls on this body. Zero
// suspends it entirely, which is what swimming and ledge hangs want.
func (b *Body) SetGravityScale(s float64) { b.gravityScale = s }

func (b *Body) box() common.Box3 {
	return common.Box3{
		Min: common.Vec3{X: b.pos.X - b.radius, Y: b.pos.Y, Z: b.pos.Z - b.radius},
		Max: common.Vec3{X: b.pos.X + b.radius, Y: b.pos.Y + b.height, Z: b.pos.Z + b.radius},
	}
}

// World owns the static solids and the bodies stepped through them.
type World struct {
	gravity float64
	shapes  []Shape
	bodies  []*Body
}

func NewWorld(gravity float64) *World {
	return &World{gravity: gravity}
}

func (w *World) AddBox(box common.Box3, surface string) {
	w.shapes = append(w.shapes, Shape{Box: box, Surface: surface})
}

// Shapes exposes the static solids, for rendering and debug overlays.
func (w *World) Shapes() []Shape {
	return w.shapes
}

func (w *World) NewBody(pos common.Vec3, radius, height float64) *Body {
	b := &Body{pos: pos, radius: radius, height: height, gravityScale: 1}
	w.bodies = append(w.bodies, b)
	return b
}

// Step integrates gravity and moves every body one axis at a time,
// horizontal before vertical, resolving penetration after each axis.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.vel.Y -= w.gravity * b.gravityScale * dt
		if b.vel.Y < -terminalFall {
			b.vel.Y = -terminalFall
		}

		b.pos.X += b.vel.X * dt
		w.resolveAxis(b, axisX)
		b.pos.Z += b.vel.Z * dt
		w.resolveAxis(b, axisZ)
		b.pos.Y += b.vel.Y * dt
		w.resolveAxis(b, axisY)
	}
}

func (w *World) resolveAxis(b *Body, axis int) {
	for i := range w.shapes {
		s := w.shapes[i].Box
		if !strictOverlaps(b.box(), s) {
			continue
		}
		switch axis {
		case axisX:
			if b.vel.X > 0 {
				b.pos.X = s.Min.X - b.radius
			} else if b.vel.X < 0 {
				b.pos.X = s.Max.X + b.radius
			} else {
				continue
			}
			b.vel.X = 0
		case axisZ:
			if b.vel.Z > 0 {
				b.pos.Z = s.Min.Z - b.radius
			} else if b.vel.Z < 0 {
				b.pos.Z = s.Max.Z + b.radius
			} else {
				continue
			}
			b.vel.Z = 0
		case axisY:
			if b.vel.Y > 0 {
				b.pos.Y = s.Min.Y - b.height
			} else {
				b.pos.Y = s.Max.Y
			}
			b.vel.Y = 0
		}
	}
}

// strictOverlaps is true only on real interpenetration. Touching faces do
// not count, so a resting body is not re-resolved every step.
func strictOverlaps(a, b common.Box3) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// RayCast finds the nearest hit along the segment from-to across all
// solids. It reports false when nothing is struck.
func (w *World) RayCast(from, to common.Vec3) (common.RayHit, bool) {
	best := common.RayHit{Fraction: 2}
	found := false
	for i := range w.shapes {
		t, n, ok := rayBox(from, to, w.shapes[i].Box)
		if !ok || t >= best.Fraction {
			continue
		}
		d := to.Sub(from)
		best = common.RayHit{
			Point:    from.Add(d.Mult(t)),
			Normal:   n,
			Fraction: t,
			Surface:  w.shapes[i].Surface,
		}
		found = true
	}
	return best, found
}

func comp(v common.Vec3, axis int) float64 {
	switch axis {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}

func axisNormal(axis int, sign float64) common.Vec3 {
	switch axis {
	case axisX:
		return common.Vec3{X: sign}
	case axisY:
		return common.Vec3{Y: sign}
	default:
		return common.Vec3{Z: sign}
	}
}

// rayBox clips the segment against the box slabs and returns the entry
// fraction plus the outward normal of the face crossed.
func rayBox(from, to common.Vec3, box common.Box3) (float64, common.Vec3, bool) {
	d := to.Sub(from)
	tmin, tmax := 0.0, 1.0
	hitAxis := -1
	hitSign := 0.0

	for axis := axisX; axis <= axisZ; axis++ {
		o := comp(from, axis)
		dir := comp(d, axis)
		lo := comp(box.Min, axis)
		hi := comp(box.Max, axis)

		if dir == 0 {
			if o < lo || o > hi {
				return 0, common.Vec3{}, false
			}
			continue
		}

		t1 := (lo - o) / dir
		t2 := (hi - o) / dir
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tmin {
			tmin = t1
			hitAxis = axis
			hitSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, common.Vec3{}, false
		}
	}

	if hitAxis < 0 {
		// Segment starts inside the box.
		return 0, common.Vec3{Y: 1}, true
	}
	return tmin, axisNormal(hitAxis, hitSign), true
}
