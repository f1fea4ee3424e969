package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/locomotion"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/stage"
	"github.com/milk9111/locomotion/tuning"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickRate = 60.0
	feedMax  = 8
)

type Game struct {
	frames int

	stageName string
	tuneName  string

	st    stage.Stage
	world *physics.World
	body  *physics.Body
	ctrl  *locomotion.Controller
	tune  tuning.Tuning
	zones *locomotion.ZoneSet

	watcher     *tuning.Watcher
	ui          *ebitenui.UI
	paused      bool
	clipboardOK bool

	feed []string
}

func NewGame(stageName, tuneName string) (*Game, error) {
	g := &Game{
		stageName: withExt(stageName, ".json"),
		tuneName:  withExt(tuneName, ".yaml"),
	}

	st, err := stage.LoadStage(g.stageName)
	if err != nil {
		return nil, err
	}
	g.st = st

	tune, err := tuning.LoadTuning(g.tuneName)
	if err != nil {
		log.Printf("tuning %s: %v, using defaults", g.tuneName, err)
		tune = tuning.Default()
	}
	g.tune = tune

	g.world = st.BuildWorld()
	g.body = g.world.NewBody(st.SpawnPoint(), tune.BodyRadius, tune.BodyHeight)
	g.ctrl = locomotion.NewController(g.body, g.world, &g.tune)
	g.zones = st.BuildZones()
	g.ctrl.SetZones(g.zones)
	g.ctrl.AddListener(g.onEvent)

	if watcher, err := tuning.NewWatcher("tuning"); err != nil {
		log.Printf("tuning watch disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard disabled: %v", err)
	} else {
		g.clipboardOK = true
	}

	g.ui = NewTunerUI(g)
	return g, nil
}

func withExt(name, ext string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ext
}

func (g *Game) onEvent(evt locomotion.Event) {
	line := evt.Type.String()
	if evt.Intensity != 0 {
		line = fmt.Sprintf("%s %.1f", line, evt.Intensity)
	}
	if evt.Surface != "" {
		line += " on " + evt.Surface
	}
	g.feed = append(g.feed, line)
	if len(g.feed) > feedMax {
		g.feed = g.feed[len(g.feed)-feedMax:]
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.pollWatcher()

	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}

	g.ctrl.Update(pollInput(), 1.0/tickRate)
	g.syncGravity()
	g.world.Step(1.0 / tickRate)

	if g.body.Position().Y < g.st.KillY {
		g.respawn()
	}
	return nil
}

// syncGravity suspends world gravity while the controller fully owns the
// vertical axis.
func (g *Game) syncGravity() {
	switch g.ctrl.State() {
	case locomotion.StateSwim, locomotion.StateLedgeGrab:
		g.body.SetGravityScale(0)
	default:
		g.body.SetGravityScale(1)
	}
}

func (g *Game) respawn() {
	g.body.SetPosition(g.st.SpawnPoint())
	g.ctrl.Reset()
}

// pollWatcher drains the tuning watcher without blocking and reloads the
// sheet when a file under tuning/ changes.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("tuning changed: %s", name)
			g.reloadTuning()
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("tuning watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadTuning() {
	tune, err := tuning.LoadTuning(g.tuneName)
	if err != nil {
		log.Printf("tuning reload: %v", err)
		return
	}
	g.tune = tune
	g.ctrl.SetTuning(&g.tune)
}

// copyTuning puts the active tuning sheet on the system clipboard as YAML.
func (g *Game) copyTuning() {
	if !g.clipboardOK {
		return
	}
	data, err := tuning.Encode(g.tune)
	if err != nil {
		log.Printf("tuning encode: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSideView(screen, g, 0, 0, baseWidth/2, baseHeight)
	drawTopView(screen, g, baseWidth/2, 0, baseWidth/2, baseHeight)

	pos := g.body.Position()
	vel := g.body.Velocity()
	m := g.ctrl.Momentum()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.0f  stage %s\nstate %s  jumps %d\npos %.1f %.1f %.1f\nvel %.1f %.1f %.1f  speed %.1f",
		ebiten.ActualFPS(), g.st.Name,
		g.ctrl.State(), g.ctrl.JumpCount(),
		pos.X, pos.Y, pos.Z,
		vel.X, vel.Y, vel.Z, m.Length(),
	))
	for i, line := range g.feed {
		ebitenutil.DebugPrintAt(screen, line, 8, 90+i*14)
	}
	ebitenutil.DebugPrintAt(screen, "WASD move  Space jump  Shift crouch/pound  E/Q swim  R respawn  Esc menu", 8, baseHeight-18)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
