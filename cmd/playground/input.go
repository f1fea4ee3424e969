package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/locomotion"
)

// pollInput maps the keyboard and an optional gamepad to one controller
// input frame. WASD moves on the ground plane, space jumps, left shift
// crouches, E and Q swim up and down.
func pollInput() locomotion.Input {
	var in locomotion.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveZ -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveZ += 1
	}

	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.CrouchPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft)
	in.CrouchHeld = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.AscendHeld = ebiten.IsKeyPressed(ebiten.KeyE)
	in.DescendHeld = ebiten.IsKeyPressed(ebiten.KeyQ)

	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -0.2 || lx > 0.2 {
			in.MoveX = lx
		}
		if ly < -0.2 || ly > 0.2 {
			in.MoveZ = ly
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			in.JumpPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			in.JumpHeld = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight) {
			in.CrouchPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightRight) {
			in.CrouchHeld = true
		}
	}

	return in
}
