// Package scenario runs scripted movement drills: a tengo script drives a
// controller tick by tick through a stage and asserts on the states and
// events that come out. Drills double as feel regression checks when the
// tuning sheet changes.
package scenario

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/locomotion"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/stage"
	"github.com/milk9111/locomotion/tuning"
)

const tickRate = 60.0

// Every drill defines run(sim); the dispatch tail calls it with the
// bound sim API.
const drillDispatchScript = `
run(__sim)
`

// Result is the outcome of one drill run.
type Result struct {
	Name     string
	Ticks    int
	Failures []string
}

func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner hosts one drill: a stage, its physics world, and a controller
// wired the same way the playground wires one.
type Runner struct {
	stage stage.Stage
	world *physics.World
	body  *physics.Body
	ctrl  *locomotion.Controller

	input     locomotion.Input
	tapJump   bool
	tapCrouch bool

	ticks    int
	seen     map[string]int
	failures []string
}

// NewRunner builds the simulation for one stage. A nil tune uses the
// defaults.
func NewRunner(st stage.Stage, tune *tuning.Tuning) *Runner {
	if tune == nil {
		def := tuning.Default()
		tune = &def
	}
	world := st.BuildWorld()
	body := world.NewBody(st.SpawnPoint(), tune.BodyRadius, tune.BodyHeight)
	ctrl := locomotion.NewController(body, world, tune)
	ctrl.SetZones(st.BuildZones())

	r := &Runner{
		stage: st,
		world: world,
		body:  body,
		ctrl:  ctrl,
		seen:  map[string]int{},
	}
	ctrl.AddListener(func(evt locomotion.Event) {
		r.seen[evt.Type.String()]++
	})
	return r
}

// Run compiles src, binds the sim API, and executes the drill's run
// function. Script errors abort the run; check failures accumulate in the
// result instead.
func (r *Runner) Run(name string, src []byte) (Result, error) {
	full := make([]byte, 0, len(src)+len(drillDispatchScript)+1)
	full = append(full, src...)
	full = append(full, '\n')
	full = append(full, drillDispatchScript...)

	script := tengo.NewScript(full)
	_ = script.Add("__sim", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	if err := compiled.Set("__sim", buildSimBindings(r)); err != nil {
		return Result{}, fmt.Errorf("scenario: bind %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return Result{}, fmt.Errorf("scenario: run %s: %w", name, err)
	}
	return Result{Name: name, Ticks: r.ticks, Failures: r.failures}, nil
}

// RunDrill loads an embedded drill by name and runs it on the stage it is
// registered for.
func RunDrill(name string) (Result, error) {
	src, err := LoadDrill(name)
	if err != nil {
		return Result{}, err
	}
	st, err := stage.LoadStage(StageFor(name))
	if err != nil {
		return Result{}, err
	}
	return NewRunner(st, nil).Run(name, src)
}

// step advances the whole simulation one tick. Taps fire as pressed-and-
// held for exactly this tick.
func (r *Runner) step() {
	in := r.input
	in.JumpPressed = r.tapJump
	in.CrouchPressed = r.tapCrouch
	in.JumpHeld = in.JumpHeld || r.tapJump
	in.CrouchHeld = in.CrouchHeld || r.tapCrouch
	r.tapJump, r.tapCrouch = false, false

	r.ctrl.Update(in, 1.0/tickRate)
	r.syncGravity()
	r.world.Step(1.0 / tickRate)
	r.ticks++

	if r.body.Position().Y < r.stage.KillY {
		r.respawn()
	}
}

// syncGravity suspends world gravity while the controller fully owns the
// vertical axis.
func (r *Runner) syncGravity() {
	switch r.ctrl.State() {
	case locomotion.StateSwim, locomotion.StateLedgeGrab:
		r.body.SetGravityScale(0)
	default:
		r.body.SetGravityScale(1)
	}
}

func (r *Runner) respawn() {
	r.body.SetPosition(r.stage.SpawnPoint())
	r.ctrl.Reset()
}

func (r *Runner) failf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf("[tick %d] %s", r.ticks, fmt.Sprintf(format, args...)))
}
