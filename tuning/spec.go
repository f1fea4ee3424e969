package tuning

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning holds every feel constant the controller consumes. Values are in
// world units and seconds; friction and drag are per-tick retain factors at
// the 60 Hz reference rate.
type Tuning struct {
	// Horizontal movement.
	Accel          float64 `yaml:"accel"`
	AirAccel       float64 `yaml:"air_accel"`
	MaxSpeed       float64 `yaml:"max_speed"`
	GroundFriction float64 `yaml:"ground_friction"`
	AirFriction    float64 `yaml:"air_friction"`
	MinSpeed       float64 `yaml:"min_speed"`

	// Jumping.
	JumpForce        float64 `yaml:"jump_force"`
	DoubleJumpForce  float64 `yaml:"double_jump_force"`
	JumpAnticipation float64 `yaml:"jump_anticipation"`
	CoyoteTime       float64 `yaml:"coyote_time"`
	JumpBuffer       float64 `yaml:"jump_buffer"`
	JumpCutFactor    float64 `yaml:"jump_cut_factor"`

	// Long jump.
	LongJumpMinSpeed float64 `yaml:"long_jump_min_speed"`
	LongJumpBoost    float64 `yaml:"long_jump_boost"`
	LongJumpForce    float64 `yaml:"long_jump_force"`

	// Walls and ledges.
	WallCheckDistance float64 `yaml:"wall_check_distance"`
	WallSlideMaxFall  float64 `yaml:"wall_slide_max_fall"`
	WallJumpPush      float64 `yaml:"wall_jump_push"`
	LedgeReach        float64 `yaml:"ledge_reach"`
	LedgeHeadroom     float64 `yaml:"ledge_headroom"`
	LedgeDropLen      float64 `yaml:"ledge_drop_len"`

	// Ground pound.
	PoundWindup    float64 `yaml:"pound_windup"`
	PoundDiveSpeed float64 `yaml:"pound_dive_speed"`
	PoundLockout   float64 `yaml:"pound_lockout"`

	// Landing.
	HardLandingSpeed     float64 `yaml:"hard_landing_speed"`
	LandingLockout       float64 `yaml:"landing_lockout"`
	LockoutControlFactor float64 `yaml:"lockout_control_factor"`

	// Swimming.
	SwimAccel         float64 `yaml:"swim_accel"`
	SwimDrag          float64 `yaml:"swim_drag"`
	SwimMaxSpeed      float64 `yaml:"swim_max_speed"`
	SwimMaxVertical   float64 `yaml:"swim_max_vertical"`
	SwimVerticalSpeed float64 `yaml:"swim_vertical_speed"`
	Buoyancy          float64 `yaml:"buoyancy"`
	BuoyancyMax       float64 `yaml:"buoyancy_max"`
	CurrentBlend      float64 `yaml:"current_blend"`
	SurfaceSlack      float64 `yaml:"surface_slack"`
	SplashMinSpeed    float64 `yaml:"splash_min_speed"`

	// Body and sensing.
	BodyRadius          float64 `yaml:"body_radius"`
	BodyHeight          float64 `yaml:"body_height"`
	GroundCheckDistance float64 `yaml:"ground_check_distance"`

	// Animation thresholds and footstep cadence.
	WalkThreshold    float64 `yaml:"walk_threshold"`
	RunThreshold     float64 `yaml:"run_threshold"`
	WalkStepInterval float64 `yaml:"walk_step_interval"`
	RunStepInterval  float64 `yaml:"run_step_interval"`
}

// Default returns the embedded baseline tuning.
func Default() Tuning {
	return Tuning{
		Accel:          60,
		AirAccel:       28,
		MaxSpeed:       8,
		GroundFriction: 0.82,
		AirFriction:    0.95,
		MinSpeed:       0.05,

		JumpForce:        14,
		DoubleJumpForce:  12,
		JumpAnticipation: 0.08,
		CoyoteTime:       0.1,
		JumpBuffer:       0.15,
		JumpCutFactor:    0.45,

		LongJumpMinSpeed: 5,
		LongJumpBoost:    6,
		LongJumpForce:    9,

		WallCheckDistance: 0.25,
		WallSlideMaxFall:  3.5,
		WallJumpPush:      9,
		LedgeReach:        0.45,
		LedgeHeadroom:     0.35,
		LedgeDropLen:      0.8,

		PoundWindup:    0.18,
		PoundDiveSpeed: 26,
		PoundLockout:   0.4,

		HardLandingSpeed:     18,
		LandingLockout:       0.25,
		LockoutControlFactor: 0.3,

		SwimAccel:         22,
		SwimDrag:          0.9,
		SwimMaxSpeed:      5,
		SwimMaxVertical:   4,
		SwimVerticalSpeed: 3.5,
		Buoyancy:          6,
		BuoyancyMax:       9,
		CurrentBlend:      1.5,
		SurfaceSlack:      0.6,
		SplashMinSpeed:    6,

		BodyRadius:          0.35,
		BodyHeight:          1.7,
		GroundCheckDistance: 0.12,

		WalkThreshold:    0.5,
		RunThreshold:     5.5,
		WalkStepInterval: 0.45,
		RunStepInterval:  0.28,
	}
}

// LoadSpec reads and decodes a YAML document into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("tuning: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("tuning: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTuning reads a tuning file over the embedded defaults, so partial
// documents only override the fields they name.
func LoadTuning(filename string) (Tuning, error) {
	t := Default()
	data, err := Load(filename)
	if err != nil {
		return t, fmt.Errorf("tuning: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("tuning: unmarshal %s: %w", filename, err)
	}
	return t, nil
}

// Encode renders t as YAML, the same shape LoadTuning reads.
func Encode(t Tuning) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("tuning: marshal: %w", err)
	}
	return data, nil
}
