package view

import (
	"math"
	"time"

	"github.com/dr-ni/onboardosk/timerutil"
)

const animatorStepInterval = 20 * time.Millisecond

// Animator drives a set of named transition variables (spec.md §4.9)
// towards target values with a sine-eased curve, stepped by a 20 ms
// timer. value = start + (sin(progress·π − π/2) + 1) · 0.5 · range;
// the "+1" is required for the curve to actually start at start and
// end at target (see DESIGN.md).
type Animator struct {
	scheduler *timerutil.Scheduler
	duration  time.Duration

	vars      map[string]*animVar
	startedAt time.Time
	timer     timerutil.TimerId
	running   bool

	onStep func(values map[string]float64)
	onDone func()
}

type animVar struct {
	start, target float64
}

// NewAnimator returns an Animator that completes any transition in
// duration.
func NewAnimator(scheduler *timerutil.Scheduler, duration time.Duration) *Animator {
	return &Animator{scheduler: scheduler, duration: duration, vars: map[string]*animVar{}}
}

func (a *Animator) Running() bool { return a.running }

// Transition starts (replacing any in-flight transition) moving every
// named variable in targets from its value in current to its target,
// calling onStep after every tick with the interpolated values and
// onDone once every variable has reached its target.
func (a *Animator) Transition(current, targets map[string]float64, onStep func(map[string]float64), onDone func()) {
	if a.running {
		a.scheduler.StopTimer(a.timer)
	}
	a.vars = make(map[string]*animVar, len(targets))
	for name, target := range targets {
		a.vars[name] = &animVar{start: current[name], target: target}
	}
	a.onStep = onStep
	a.onDone = onDone
	a.startedAt = a.now()
	a.running = true
	a.scheduleStep()
}

// now is overridden by tests to avoid depending on real wall time.
var timeNow = time.Now

func (a *Animator) now() time.Time { return timeNow() }

func (a *Animator) scheduleStep() {
	a.timer = a.scheduler.StartTimer(animatorStepInterval, a.step)
}

func (a *Animator) step() {
	elapsed := a.now().Sub(a.startedAt)
	progress := 1.0
	if a.duration > 0 {
		progress = float64(elapsed) / float64(a.duration)
	}
	done := progress >= 1
	if done {
		progress = 1
	}

	values := make(map[string]float64, len(a.vars))
	for name, v := range a.vars {
		values[name] = sineEase(v.start, v.target, progress)
	}
	if a.onStep != nil {
		a.onStep(values)
	}
	if done {
		a.running = false
		if a.onDone != nil {
			a.onDone()
		}
		return
	}
	a.scheduleStep()
}

// Finish immediately completes any in-flight transition, running its
// onStep/onDone callbacks synchronously instead of waiting for the
// remaining steps (spec.md §5's cancellation paragraph — e.g. a
// keyboard hide requested mid fade-in must land at its final state
// right away rather than finish animating).
func (a *Animator) Finish() {
	if !a.running {
		return
	}
	a.scheduler.StopTimer(a.timer)

	values := make(map[string]float64, len(a.vars))
	for name, v := range a.vars {
		values[name] = v.target
	}
	a.running = false
	if a.onStep != nil {
		a.onStep(values)
	}
	if a.onDone != nil {
		a.onDone()
	}
}

func sineEase(start, target, progress float64) float64 {
	rng := target - start
	return start + (math.Sin(progress*math.Pi-math.Pi/2)+1)*0.5*rng
}
