// Package view implements the window-manipulator and keyboard-view
// layer of spec.md §4.8/§4.9: hit testing and threshold-protected
// move/resize drags, the sine-eased visibility/position animator,
// dwell-to-activate, popup redirection and docking geometry.
package view

import "github.com/dr-ni/onboardosk/geom"

// Handle identifies one of the nine regions a point may hit within a
// resize frame.
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleN
	HandleS
	HandleW
	HandleE
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// HitTest classifies p against frame inflated by hitWidth on every
// side. Corners are tested before edges, so a point within a corner
// box wins even though it also falls inside an edge strip; a point
// outside the inflated frame returns HandleNone.
func HitTest(frame geom.Rect, hitWidth float64, p geom.Point) Handle {
	outer := frame.Inflate(geom.UniformBorder(hitWidth))
	if !outer.Contains(p) {
		return HandleNone
	}

	corner := func(cx, cy float64) geom.Rect {
		return geom.Rect{X: cx - hitWidth, Y: cy - hitWidth, W: 2 * hitWidth, H: 2 * hitWidth}
	}
	switch {
	case corner(frame.Left(), frame.Top()).Contains(p):
		return HandleNW
	case corner(frame.Right(), frame.Top()).Contains(p):
		return HandleNE
	case corner(frame.Left(), frame.Bottom()).Contains(p):
		return HandleSW
	case corner(frame.Right(), frame.Bottom()).Contains(p):
		return HandleSE
	}

	north := geom.Rect{X: frame.Left(), Y: frame.Top() - hitWidth, W: frame.W, H: 2 * hitWidth}
	south := geom.Rect{X: frame.Left(), Y: frame.Bottom() - hitWidth, W: frame.W, H: 2 * hitWidth}
	west := geom.Rect{X: frame.Left() - hitWidth, Y: frame.Top(), W: 2 * hitWidth, H: frame.H}
	east := geom.Rect{X: frame.Right() - hitWidth, Y: frame.Top(), W: 2 * hitWidth, H: frame.H}
	switch {
	case north.Contains(p):
		return HandleN
	case south.Contains(p):
		return HandleS
	case west.Contains(p):
		return HandleW
	case east.Contains(p):
		return HandleE
	}

	if frame.Contains(p) {
		return HandleMove
	}
	return HandleNone
}
