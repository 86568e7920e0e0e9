package view

import (
	"math"

	"go.uber.org/zap"

	"github.com/dr-ni/onboardosk/geom"
)

// DragState is the three-phase drag FSM of spec.md §4.8.
type DragState int

const (
	DragIdle DragState = iota
	DragRequested
	DragInitiated
	DragActive
)

const (
	DefaultDragThreshold = 8.0
	DragSnapThreshold    = 16.0
	// TemporaryUnlockMillis is how long, after a threshold crossing,
	// a fresh press skips threshold protection entirely.
	TemporaryUnlockMillis = 6000
)

// Manipulator drives one resize-frame's move/resize/aspect drags with
// threshold protection (spec.md §4.8). PressBegin and Update take an
// explicit millisecond timestamp supplied by the caller, matching the
// input package's timing convention.
type Manipulator struct {
	HitWidth      float64
	DragThreshold float64
	SnapThreshold float64
	MinSize       geom.Size
	LockXAxis     bool
	LockYAxis     bool
	ProtectionOn  bool

	state      DragState
	handle     Handle
	pressFrame geom.Rect
	frame      geom.Rect
	dragOrigin geom.Point

	temporaryUnlockUntil uint32
	haveTemporaryUnlock  bool

	logger *zap.SugaredLogger
}

// SetLogger attaches a structured logger; nil (the default) disables
// logging entirely.
func (m *Manipulator) SetLogger(l *zap.SugaredLogger) { m.logger = l }

func (m *Manipulator) logf(msg string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Debugw(msg, args...)
	}
}

// NewManipulator returns a Manipulator with the spec's default
// thresholds and threshold protection enabled.
func NewManipulator() *Manipulator {
	return &Manipulator{
		HitWidth:      6,
		DragThreshold: DefaultDragThreshold,
		SnapThreshold: DragSnapThreshold,
		ProtectionOn:  true,
	}
}

func (m *Manipulator) State() DragState { return m.state }
func (m *Manipulator) Frame() geom.Rect { return m.frame }

// PressBegin starts a drag on handle at p against frame. A press
// within TemporaryUnlockMillis of the last threshold crossing (or
// with protection disabled) activates the drag immediately.
func (m *Manipulator) PressBegin(t uint32, p geom.Point, frame geom.Rect, handle Handle) {
	if handle == HandleNone {
		return
	}
	m.handle = handle
	m.pressFrame = frame
	m.frame = frame
	m.dragOrigin = p
	m.state = DragRequested

	if !m.ProtectionOn || (m.haveTemporaryUnlock && t < m.temporaryUnlockUntil) {
		m.state = DragActive
	}
}

// Update reports the frame after incorporating motion to p at time t,
// and whether the drag is now active (false while suppressed by
// threshold protection).
func (m *Manipulator) Update(t uint32, p geom.Point) (geom.Rect, bool) {
	if m.state == DragIdle {
		return m.frame, false
	}
	if m.state == DragRequested {
		m.state = DragInitiated
	}

	delta := p.Sub(m.dragOrigin)

	if m.state == DragInitiated {
		mag := math.Hypot(delta.X, delta.Y)
		if mag < m.DragThreshold {
			return m.frame, false
		}
		m.state = DragActive
		m.temporaryUnlockUntil = t + TemporaryUnlockMillis
		m.haveTemporaryUnlock = true

		if mag >= m.SnapThreshold {
			// Jump: apply the accumulated delta now so the frame
			// catches up to the pointer immediately.
			m.frame = m.applyHandle(m.pressFrame, delta)
			m.pressFrame = m.frame
			m.logf("drag activated", "mode", "snap", "handle", m.handle)
		} else {
			m.logf("drag activated", "mode", "smooth", "handle", m.handle)
		}
		// Either way, re-anchor the origin at the current pointer so
		// subsequent motion is computed from here (no further jump).
		m.dragOrigin = p
		return m.frame, true
	}

	m.frame = m.applyHandle(m.pressFrame, delta)
	return m.frame, true
}

// Release ends the drag, returning the final frame and whether the
// drag ever became active. If it did not, the frame reverts to the
// one at press time (snap-back).
func (m *Manipulator) Release() (geom.Rect, bool) {
	wasActive := m.state == DragActive
	if !wasActive {
		m.frame = m.pressFrame
	}
	m.state = DragIdle
	m.handle = HandleNone
	return m.frame, wasActive
}

func (m *Manipulator) applyHandle(base geom.Rect, delta geom.Point) geom.Rect {
	min := m.MinSize
	switch m.handle {
	case HandleMove:
		dx, dy := delta.X, delta.Y
		if m.LockXAxis {
			dx = 0
		}
		if m.LockYAxis {
			dy = 0
		}
		return base.Translate(geom.Point{X: dx, Y: dy})
	case HandleN:
		return resizeTop(base, delta.Y, min)
	case HandleS:
		return resizeBottom(base, delta.Y, min)
	case HandleW:
		return resizeLeft(base, delta.X, min)
	case HandleE:
		return resizeRight(base, delta.X, min)
	case HandleNW:
		return resizeLeft(resizeTop(base, delta.Y, min), delta.X, min)
	case HandleNE:
		return resizeRight(resizeTop(base, delta.Y, min), delta.X, min)
	case HandleSW:
		return resizeLeft(resizeBottom(base, delta.Y, min), delta.X, min)
	case HandleSE:
		return resizeRight(resizeBottom(base, delta.Y, min), delta.X, min)
	}
	return base
}

func resizeRight(r geom.Rect, dx float64, min geom.Size) geom.Rect {
	w := r.W + dx
	if w < min.W {
		w = min.W
	}
	return geom.Rect{X: r.X, Y: r.Y, W: w, H: r.H}
}

func resizeLeft(r geom.Rect, dx float64, min geom.Size) geom.Rect {
	w := r.W - dx
	x := r.X + dx
	if w < min.W {
		x -= min.W - w
		w = min.W
	}
	return geom.Rect{X: x, Y: r.Y, W: w, H: r.H}
}

func resizeBottom(r geom.Rect, dy float64, min geom.Size) geom.Rect {
	h := r.H + dy
	if h < min.H {
		h = min.H
	}
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: h}
}

func resizeTop(r geom.Rect, dy float64, min geom.Size) geom.Rect {
	h := r.H - dy
	y := r.Y + dy
	if h < min.H {
		y -= min.H - h
		h = min.H
	}
	return geom.Rect{X: r.X, Y: y, W: r.W, H: h}
}

// AspectRatioChange computes the combined aspect-ratio change for an
// east/west drag of a docked, expanded keyboard (spec.md §4.8):
// new_frame_width / (height · base_aspect), snapped to the screen
// edge within 5% and floored at 0.75.
func AspectRatioChange(newWidth, height, baseAspect, screenWidth float64) float64 {
	if height <= 0 || baseAspect <= 0 {
		return 1
	}
	change := newWidth / (height * baseAspect)
	if screenWidth > 0 {
		fullWidth := height * baseAspect * change
		if math.Abs(fullWidth-screenWidth) <= 0.05*screenWidth {
			change = screenWidth / (height * baseAspect)
		}
	}
	if change < 0.75 {
		change = 0.75
	}
	return change
}
