package locomotion

import "github.com/jakecoffman/cp"

// Input holds the polled control state for one tick. The controller never
// reads devices itself; the host samples whatever it likes and hands the
// snapshot to Update.
type Input struct {
	// MoveX is the sideways movement axis in [-1, 1].
	MoveX float64
	// MoveZ is the forward movement axis in [-1, 1].
	MoveZ float64
	// JumpPressed is true only on the tick the jump control went down.
	JumpPressed bool
	// JumpHeld is true while the jump control is held.
	JumpHeld bool
	// CrouchPressed is true only on the tick the crouch control went down.
	CrouchPressed bool
	// CrouchHeld is true while the crouch control is held.
	CrouchHeld bool
	// AscendHeld drives upward swimming while in water.
	AscendHeld bool
	// DescendHeld drives downward swimming while in water.
	DescendHeld bool
}

// MoveVec returns the horizontal input as a plane vector, normalized when
// the axes combine to more than unit length so diagonals aren't faster.
func (in Input) MoveVec() cp.Vector {
	v := cp.Vector{X: in.MoveX, Y: in.MoveZ}
	if v.LengthSq() > 1 {
		return v.Normalize()
	}
	return v
}
