package view

import (
	"testing"
	"time"

	"github.com/dr-ni/onboardosk/timerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimator_SineEaseBoundaryConditions(t *testing.T) {
	assert.InDelta(t, 0.0, sineEase(0, 1, 0), 1e-9)
	assert.InDelta(t, 1.0, sineEase(0, 1, 1), 1e-9)
	assert.InDelta(t, 0.5, sineEase(0, 1, 0.5), 1e-9)
}

func TestAnimator_TransitionCommitsAtTarget(t *testing.T) {
	fakeNow := time.Unix(0, 0)
	orig := timeNow
	timeNow = func() time.Time { return fakeNow }
	defer func() { timeNow = orig }()

	a := NewAnimator(timerutil.NewScheduler(), 40*time.Millisecond)

	var lastValues map[string]float64
	done := make(chan struct{})
	a.Transition(
		map[string]float64{"visible": 0},
		map[string]float64{"visible": 1},
		func(values map[string]float64) { lastValues = values },
		func() { close(done) },
	)

	fakeNow = fakeNow.Add(50 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("animator never completed")
	}
	require.NotNil(t, lastValues)
	assert.InDelta(t, 1.0, lastValues["visible"], 1e-9)
	assert.False(t, a.Running())
}

func TestAnimator_FinishCompletesSynchronously(t *testing.T) {
	a := NewAnimator(timerutil.NewScheduler(), time.Hour)

	var lastValues map[string]float64
	var done bool
	a.Transition(
		map[string]float64{"visible": 0},
		map[string]float64{"visible": 1},
		func(values map[string]float64) { lastValues = values },
		func() { done = true },
	)

	a.Finish()
	assert.False(t, a.Running())
	assert.True(t, done)
	require.NotNil(t, lastValues)
	assert.Equal(t, 1.0, lastValues["visible"])
}

func TestAnimator_FinishWithoutTransitionIsNoop(t *testing.T) {
	a := NewAnimator(timerutil.NewScheduler(), time.Second)
	a.Finish()
	assert.False(t, a.Running())
}
