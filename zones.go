package locomotion

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion/common"
)

// AirCurrentZone pushes airborne characters vertically, e.g. an updraft
// above a fan or a downdraft in a shaft.
type AirCurrentZone struct {
	Bounds common.Box3
	// VerticalForce is acceleration in units/s^2; positive is up.
	VerticalForce float64
}

// WaterZone is a swimmable volume. SurfaceHeight is the world Y of the
// water surface; Current is a horizontal flow the swimmer is dragged into.
type WaterZone struct {
	Bounds        common.Box3
	SurfaceHeight float64
	Current       cp.Vector
}

// SpeedBoostZone shoves the character along Direction when entered, at most
// once per Cooldown. VerticalKick optionally pops the character upward.
type SpeedBoostZone struct {
	Bounds       common.Box3
	Direction    cp.Vector
	Force        float64
	VerticalKick float64
	Cooldown     float64
}

// ZoneSet is the level-owned list of environment volumes. Containment is a
// linear first-match scan per kind; list order is the tie-break.
type ZoneSet struct {
	Water       []WaterZone
	AirCurrents []AirCurrentZone
	Boosts      []SpeedBoostZone
}

func (z *ZoneSet) waterAt(p common.Vec3) *WaterZone {
	if z == nil {
		return nil
	}
	for i := range z.Water {
		if z.Water[i].Bounds.Contains(p) {
			return &z.Water[i]
		}
	}
	return nil
}

func (z *ZoneSet) airCurrentAt(p common.Vec3) *AirCurrentZone {
	if z == nil {
		return nil
	}
	for i := range z.AirCurrents {
		if z.AirCurrents[i].Bounds.Contains(p) {
			return &z.AirCurrents[i]
		}
	}
	return nil
}

func (z *ZoneSet) boostAt(p common.Vec3) *SpeedBoostZone {
	if z == nil {
		return nil
	}
	for i := range z.Boosts {
		if z.Boosts[i].Bounds.Contains(p) {
			return &z.Boosts[i]
		}
	}
	return nil
}
