// Package stage loads playable arenas from JSON and builds the physics
// world and zone set they describe.
package stage

import (
	"encoding/json"
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/locomotion"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/physics"
)

const defaultGravity = 30.0

type vec [3]float64

func (v vec) Vec3() common.Vec3 {
	return common.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Solid is one static collision box.
type Solid struct {
	Min     vec    `json:"min"`
	Max     vec    `json:"max"`
	Surface string `json:"surface"`
}

// Water is a swimmable volume. The surface sits at the box top. Current is
// a horizontal flow on the world X/Z plane.
type Water struct {
	Min     vec        `json:"min"`
	Max     vec        `json:"max"`
	Current [2]float64 `json:"current"`
}

// AirCurrent is a vertical draft volume; positive force pushes up.
type AirCurrent struct {
	Min   vec     `json:"min"`
	Max   vec     `json:"max"`
	Force float64 `json:"force"`
}

// Boost is a pad that shoves the character along a horizontal direction.
type Boost struct {
	Min          vec        `json:"min"`
	Max          vec        `json:"max"`
	Direction    [2]float64 `json:"direction"`
	Force        float64    `json:"force"`
	VerticalKick float64    `json:"vertical_kick"`
	Cooldown     float64    `json:"cooldown"`
}

// Stage is one arena: geometry, environment volumes, and spawn data.
type Stage struct {
	Name        string       `json:"name"`
	Gravity     float64      `json:"gravity"`
	Spawn       vec          `json:"spawn"`
	KillY       float64      `json:"kill_y"`
	Solids      []Solid      `json:"solids"`
	Water       []Water      `json:"water"`
	AirCurrents []AirCurrent `json:"air_currents"`
	Boosts      []Boost      `json:"boosts"`
}

// LoadStage reads and decodes a stage by file name, e.g. "basin.json".
func LoadStage(name string) (Stage, error) {
	raw, err := Load(name)
	if err != nil {
		return Stage{}, err
	}
	var s Stage
	if err := json.Unmarshal(raw, &s); err != nil {
		return Stage{}, fmt.Errorf("stage: decode %s: %w", name, err)
	}
	if len(s.Solids) == 0 {
		return Stage{}, fmt.Errorf("stage: %s has no solids", name)
	}
	return s, nil
}

// SpawnPoint is where the character drops in.
func (s Stage) SpawnPoint() common.Vec3 {
	return s.Spawn.Vec3()
}

// GravityValue is the stage gravity with the default applied.
func (s Stage) GravityValue() float64 {
	if s.Gravity <= 0 {
		return defaultGravity
	}
	return s.Gravity
}

// BuildWorld constructs the collision world for this stage.
func (s Stage) BuildWorld() *physics.World {
	w := physics.NewWorld(s.GravityValue())
	for _, solid := range s.Solids {
		surface := solid.Surface
		if surface == "" {
			surface = "stone"
		}
		w.AddBox(common.NewBox3(solid.Min.Vec3(), solid.Max.Vec3()), surface)
	}
	return w
}

// BuildZones constructs the environment volumes for this stage.
func (s Stage) BuildZones() *locomotion.ZoneSet {
	z := &locomotion.ZoneSet{}
	for _, wa := range s.Water {
		box := common.NewBox3(wa.Min.Vec3(), wa.Max.Vec3())
		z.Water = append(z.Water, locomotion.WaterZone{
			Bounds:        box,
			SurfaceHeight: box.Max.Y,
			Current:       cp.Vector{X: wa.Current[0], Y: wa.Current[1]},
		})
	}
	for _, ac := range s.AirCurrents {
		z.AirCurrents = append(z.AirCurrents, locomotion.AirCurrentZone{
			Bounds:        common.NewBox3(ac.Min.Vec3(), ac.Max.Vec3()),
			VerticalForce: ac.Force,
		})
	}
	for _, b := range s.Boosts {
		z.Boosts = append(z.Boosts, locomotion.SpeedBoostZone{
			Bounds:       common.NewBox3(b.Min.Vec3(), b.Max.Vec3()),
			Direction:    cp.Vector{X: b.Direction[0], Y: b.Direction[1]},
			Force:        b.Force,
			VerticalKick: b.VerticalKick,
			Cooldown:     b.Cooldown,
		})
	}
	return z
}
