package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/locomotion/common"
)

const viewScale = 14.0

var (
	solidNear  = color.RGBA{R: 72, G: 72, B: 84, A: 255}
	solidFar   = color.RGBA{R: 42, G: 42, B: 52, A: 255}
	waterFill  = color.RGBA{R: 30, G: 90, B: 200, A: 90}
	draftFill  = color.RGBA{R: 80, G: 200, B: 255, A: 60}
	boostFill  = color.RGBA{R: 255, G: 140, B: 0, A: 80}
	sideBcg    = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	topBcg     = color.RGBA{R: 14, G: 20, B: 16, A: 255}
	outlineCol = color.RGBA{R: 120, G: 120, B: 140, A: 200}
)

func fillBox(dst *ebiten.Image, x0, y0, x1, y1 float32, fill color.Color, outline bool) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	vector.FillRect(dst, x0, y0, x1-x0, y1-y0, fill, false)
	if outline {
		vector.StrokeRect(dst, x0, y0, x1-x0, y1-y0, 1.0, outlineCol, false)
	}
}

// drawSideView renders the world X/Y slice, centered on the character.
// Solids away from the character's Z lane are dimmed.
func drawSideView(screen *ebiten.Image, g *Game, px, py, pw, ph int) {
	pane := screen.SubImage(image.Rect(px, py, px+pw, py+ph)).(*ebiten.Image)
	pane.Fill(sideBcg)

	pos := g.body.Position()
	cx := float64(px) + float64(pw)/2
	cy := float64(py) + float64(ph)/2
	sx := func(wx float64) float32 { return float32(cx + (wx-pos.X)*viewScale) }
	sy := func(wy float64) float32 { return float32(cy - (wy-pos.Y-g.tune.BodyHeight/2)*viewScale) }

	inLane := func(b common.Box3) bool {
		return pos.Z >= b.Min.Z-g.tune.BodyRadius && pos.Z <= b.Max.Z+g.tune.BodyRadius
	}

	for _, sh := range g.world.Shapes() {
		b := sh.Box
		fill := solidFar
		if inLane(b) {
			fill = solidNear
		}
		fillBox(pane, sx(b.Min.X), sy(b.Min.Y), sx(b.Max.X), sy(b.Max.Y), fill, true)
	}

	for _, w := range g.zones.Water {
		b := w.Bounds
		fillBox(pane, sx(b.Min.X), sy(b.Min.Y), sx(b.Max.X), sy(b.Max.Y), waterFill, false)
	}
	for _, a := range g.zones.AirCurrents {
		b := a.Bounds
		fillBox(pane, sx(b.Min.X), sy(b.Min.Y), sx(b.Max.X), sy(b.Max.Y), draftFill, false)
	}
	for _, bo := range g.zones.Boosts {
		b := bo.Bounds
		fillBox(pane, sx(b.Min.X), sy(b.Min.Y), sx(b.Max.X), sy(b.Max.Y), boostFill, false)
	}

	r := g.tune.BodyRadius
	fillBox(pane, sx(pos.X-r), sy(pos.Y), sx(pos.X+r), sy(pos.Y+g.tune.BodyHeight), colornames.Crimson, false)

	m := g.ctrl.Momentum()
	vector.StrokeLine(pane,
		sx(pos.X), sy(pos.Y+g.tune.BodyHeight/2),
		sx(pos.X+m.X*0.3), sy(pos.Y+g.tune.BodyHeight/2),
		2.0, colornames.Yellow, false)

	ebitenutil.DebugPrintAt(screen, "side  x/y", px+8, py+ph-36)
}

// drawTopView renders the world X/Z plane from above, centered on the
// character. Solids below the character's feet are dimmed.
func drawTopView(screen *ebiten.Image, g *Game, px, py, pw, ph int) {
	pane := screen.SubImage(image.Rect(px, py, px+pw, py+ph)).(*ebiten.Image)
	pane.Fill(topBcg)

	pos := g.body.Position()
	cx := float64(px) + float64(pw)/2
	cy := float64(py) + float64(ph)/2
	sx := func(wx float64) float32 { return float32(cx + (wx-pos.X)*viewScale) }
	sz := func(wz float64) float32 { return float32(cy + (wz-pos.Z)*viewScale) }

	for _, sh := range g.world.Shapes() {
		b := sh.Box
		fill := solidFar
		if b.Max.Y > pos.Y {
			fill = solidNear
		}
		fillBox(pane, sx(b.Min.X), sz(b.Min.Z), sx(b.Max.X), sz(b.Max.Z), fill, true)
	}

	for _, w := range g.zones.Water {
		b := w.Bounds
		fillBox(pane, sx(b.Min.X), sz(b.Min.Z), sx(b.Max.X), sz(b.Max.Z), waterFill, false)
	}
	for _, a := range g.zones.AirCurrents {
		b := a.Bounds
		fillBox(pane, sx(b.Min.X), sz(b.Min.Z), sx(b.Max.X), sz(b.Max.Z), draftFill, false)
	}
	for _, bo := range g.zones.Boosts {
		b := bo.Bounds
		fillBox(pane, sx(b.Min.X), sz(b.Min.Z), sx(b.Max.X), sz(b.Max.Z), boostFill, false)
	}

	r := g.tune.BodyRadius
	fillBox(pane, sx(pos.X-r), sz(pos.Z-r), sx(pos.X+r), sz(pos.Z+r), colornames.Crimson, false)

	m := g.ctrl.Momentum()
	vector.StrokeLine(pane,
		sx(pos.X), sz(pos.Z),
		sx(pos.X+m.X*0.3), sz(pos.Z+m.Y*0.3),
		2.0, colornames.Yellow, false)

	vector.StrokeLine(screen, float32(px), float32(py), float32(px), float32(py+ph), 1.0, outlineCol, false)
	ebitenutil.DebugPrintAt(screen, "top  x/z", px+8, py+ph-36)
}
