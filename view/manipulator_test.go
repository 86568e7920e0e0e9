package view

import (
	"testing"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/stretchr/testify/assert"
)

func TestManipulator_DragBelowThresholdNeverActivates(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 10, Y: 10}, frame, HandleMove)

	got, active := m.Update(10, geom.Point{X: 15, Y: 10})
	assert.False(t, active)
	assert.Equal(t, frame, got)
}

func TestManipulator_CrossingThresholdActivatesDrag(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 10, Y: 10}, frame, HandleMove)

	_, active := m.Update(10, geom.Point{X: 19, Y: 10})
	assert.True(t, active, "9px motion exceeds the 8px default threshold")
	assert.Equal(t, DragActive, m.State())
}

func TestManipulator_ProtectionDisabledActivatesImmediately(t *testing.T) {
	m := NewManipulator()
	m.ProtectionOn = false
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 10, Y: 10}, frame, HandleMove)

	got, active := m.Update(0, geom.Point{X: 11, Y: 10})
	assert.True(t, active)
	assert.Equal(t, geom.Rect{X: 1, Y: 0, W: 100, H: 50}, got)
}

func TestManipulator_TemporaryUnlockSkipsThresholdOnNextPress(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}

	m.PressBegin(0, geom.Point{X: 0, Y: 0}, frame, HandleMove)
	m.Update(0, geom.Point{X: 9, Y: 0})
	m.Release()

	m.PressBegin(500, geom.Point{X: 50, Y: 50}, frame, HandleMove)
	assert.Equal(t, DragActive, m.State(), "press within the temporary-unlock window should activate immediately")

	_, active := m.Update(510, geom.Point{X: 51, Y: 50})
	assert.True(t, active)
}

func TestManipulator_SnapJumpsFrameAtCrossing(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 0, Y: 0}, frame, HandleMove)

	got, active := m.Update(10, geom.Point{X: 20, Y: 0})
	assert.True(t, active)
	assert.Equal(t, geom.Rect{X: 20, Y: 0, W: 100, H: 50}, got, "motion past the snap threshold jumps the frame to the pointer")
}

func TestManipulator_SmoothCrossingDoesNotJump(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 0, Y: 0}, frame, HandleMove)

	got, active := m.Update(10, geom.Point{X: 9, Y: 0})
	assert.True(t, active)
	assert.Equal(t, frame, got, "a threshold crossing below the snap threshold should not move the frame yet")

	got2, _ := m.Update(20, geom.Point{X: 14, Y: 0})
	assert.Equal(t, geom.Rect{X: 5, Y: 0, W: 100, H: 50}, got2)
}

func TestManipulator_ReleaseSnapsBackWhenNeverActivated(t *testing.T) {
	m := NewManipulator()
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 50}
	m.PressBegin(0, geom.Point{X: 0, Y: 0}, frame, HandleMove)
	m.Update(5, geom.Point{X: 2, Y: 0})

	got, wasActive := m.Release()
	assert.False(t, wasActive)
	assert.Equal(t, frame, got)
}

func TestManipulator_ResizeRespectsMinSize(t *testing.T) {
	m := NewManipulator()
	m.MinSize = geom.Size{W: 50, H: 50}
	m.ProtectionOn = false
	frame := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	m.PressBegin(0, geom.Point{X: 100, Y: 0}, frame, HandleE)

	got, _ := m.Update(0, geom.Point{X: -100, Y: 0})
	assert.Equal(t, 50.0, got.W, "east resize must clamp to min width")
}

func TestManipulator_AxisLockRestrictsMove(t *testing.T) {
	m := NewManipulator()
	m.ProtectionOn = false
	m.LockXAxis = true
	frame := geom.Rect{X: 10, Y: 10, W: 50, H: 50}
	m.PressBegin(0, geom.Point{X: 0, Y: 0}, frame, HandleMove)

	got, _ := m.Update(0, geom.Point{X: 20, Y: 20})
	assert.Equal(t, 10.0, got.X, "X must stay locked")
	assert.Equal(t, 30.0, got.Y)
}

func TestAspectRatioChange_FloorsAt075(t *testing.T) {
	got := AspectRatioChange(10, 100, 1, 0)
	assert.Equal(t, 0.75, got)
}
