package view

import (
	"testing"
	"time"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/dr-ni/onboardosk/input"
	"github.com/dr-ni/onboardosk/timerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	begins []*input.InputSequence
	ends   []*input.InputSequence
}

func (f *fakeTarget) OnSequenceBegin(seq *input.InputSequence)      { f.begins = append(f.begins, seq) }
func (f *fakeTarget) OnSequenceUpdate(seq *input.InputSequence)     {}
func (f *fakeTarget) OnSequenceEnd(seq *input.InputSequence)        { f.ends = append(f.ends, seq) }
func (f *fakeTarget) OnTap(seq *input.InputSequence, numTouches int) {}
func (f *fakeTarget) OnLongPress(seq *input.InputSequence)          {}
func (f *fakeTarget) OnDragBegin(seq *input.InputSequence)          {}
func (f *fakeTarget) OnDragUpdate(seq *input.InputSequence)         {}
func (f *fakeTarget) OnDragEnd(seq *input.InputSequence)            {}
func (f *fakeTarget) PermitsDelay(p geom.Point) bool                { return false }
func (f *fakeTarget) TransformToRoot(p geom.Point) geom.Point       { return p }

func TestPopupController_ReleaseOnKeyClosesImmediately(t *testing.T) {
	key := &fakeTarget{}
	popup := &fakeTarget{}
	receiver := input.NewReceiver(key, timerutil.NewScheduler())
	pc := NewPopupController(timerutil.NewScheduler(), receiver)

	seq := receiver.Begin(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 0}, 0, 1, "pointer", 1)
	require.NotNil(t, seq)

	var closed bool
	clone := pc.Open(seq, popup, func() { closed = true })
	assert.True(t, pc.IsOpen())
	require.Len(t, popup.begins, 1)

	pc.ReleaseOnKey(clone)
	assert.True(t, closed)
	assert.False(t, pc.IsOpen())
	require.Len(t, popup.ends, 1)
}

func TestPopupController_ReleaseElsewhereDelaysClose(t *testing.T) {
	key := &fakeTarget{}
	popup := &fakeTarget{}
	receiver := input.NewReceiver(key, timerutil.NewScheduler())
	pc := NewPopupController(timerutil.NewScheduler(), receiver)
	pc.UnpressDelay = 20 * time.Millisecond

	seq := receiver.Begin(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 0}, 0, 1, "pointer", 1)
	var closed bool
	clone := pc.Open(seq, popup, func() { closed = true })

	pc.ReleaseElsewhere(clone)
	assert.False(t, closed, "close must wait for the unpress delay")
	assert.True(t, pc.IsOpen(), "popup is still considered open until the delay elapses")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, closed)
	assert.False(t, pc.IsOpen())
}

func TestPopupController_CloseIsIdempotentWithoutOpen(t *testing.T) {
	key := &fakeTarget{}
	receiver := input.NewReceiver(key, timerutil.NewScheduler())
	pc := NewPopupController(timerutil.NewScheduler(), receiver)
	pc.Close()
	assert.False(t, pc.IsOpen())
}
