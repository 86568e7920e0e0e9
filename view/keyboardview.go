package view

import (
	"time"

	"go.uber.org/zap"

	"github.com/dr-ni/onboardosk/autoshow"
	"github.com/dr-ni/onboardosk/timerutil"
)

const defaultInactivityDelay = time.Second

// KeyboardView is the composite visibility/transition state owned by
// the top-level keyboard window (spec.md §4.9): a committed visible
// state, a requested visibility pending auto-show permission, and the
// Animator driving the transition between them.
type KeyboardView struct {
	scheduler *timerutil.Scheduler
	autoshow  *autoshow.Controller
	animator  *Animator

	InactivityDelay time.Duration

	visible          bool
	requestedVisible bool
	opacity          float64
	activeOpacity    float64

	inactivityTimer timerutil.TimerId
	inactivityArmed bool

	// OnCommit is invoked once a transition completes, with the
	// newly-committed visibility.
	OnCommit func(visible bool)
	// OnFade is invoked when the inactivity timer elapses; KeyboardView
	// itself changes no opacity then.
	OnFade func()

	logger *zap.SugaredLogger
}

// SetLogger attaches a structured logger; nil (the default) disables
// logging entirely.
func (kv *KeyboardView) SetLogger(l *zap.SugaredLogger) { kv.logger = l }

func (kv *KeyboardView) logf(msg string, args ...interface{}) {
	if kv.logger != nil {
		kv.logger.Debugw(msg, args...)
	}
}

// NewKeyboardView wires a KeyboardView to the scheduler it shares with
// its Animator and to the AutoShow controller guarding visibility
// requests.
func NewKeyboardView(scheduler *timerutil.Scheduler, ac *autoshow.Controller, transitionDuration time.Duration) *KeyboardView {
	kv := &KeyboardView{
		scheduler:       scheduler,
		autoshow:        ac,
		animator:        NewAnimator(scheduler, transitionDuration),
		InactivityDelay: defaultInactivityDelay,
		activeOpacity:   1,
	}
	return kv
}

func (kv *KeyboardView) Visible() bool          { return kv.visible }
func (kv *KeyboardView) RequestedVisible() bool { return kv.requestedVisible }
func (kv *KeyboardView) Opacity() float64       { return kv.opacity }

// RequestVisible asks the AutoShow controller for a visibility change;
// if permitted it starts the transition immediately, otherwise the
// request is deferred until the blocking lock releases (spec.md §4.7).
func (kv *KeyboardView) RequestVisible(visible bool) {
	kv.requestedVisible = visible
	kv.autoshow.RequestKeyboardVisible(visible)
}

// ApplyVisible is the AutoShow controller's forwarding callback: once
// a request is actually permitted, it lands here and starts the
// transition.
func (kv *KeyboardView) ApplyVisible(visible bool) {
	kv.beginTransition(visible)
}

// SetVisibleInteractive is the user-driven visibility toggle (e.g. a
// hide button): it releases every auto-show lock, then transitions
// directly (spec.md §4.9).
func (kv *KeyboardView) SetVisibleInteractive(visible bool) {
	kv.autoshow.UnlockAll()
	kv.requestedVisible = visible
	kv.beginTransition(visible)
}

func (kv *KeyboardView) beginTransition(target bool) {
	targetOpacity := 0.0
	if target {
		targetOpacity = 1.0
	}
	kv.logf("visibility transition starting", "target", target)
	kv.animator.Transition(
		map[string]float64{"visible": kv.opacity},
		map[string]float64{"visible": targetOpacity},
		func(values map[string]float64) { kv.opacity = values["visible"] },
		func() {
			kv.visible = target
			kv.opacity = targetOpacity
			kv.logf("visibility transition committed", "visible", target)
			if kv.OnCommit != nil {
				kv.OnCommit(target)
			}
			kv.armInactivityTimer()
		},
	)
}

// armInactivityTimer (re)starts the countdown to the inactivity fade,
// cancelling any timer already running.
func (kv *KeyboardView) armInactivityTimer() {
	if kv.inactivityArmed {
		kv.scheduler.StopTimer(kv.inactivityTimer)
	}
	if !kv.visible || kv.InactivityDelay <= 0 {
		kv.inactivityArmed = false
		return
	}
	kv.inactivityTimer = kv.scheduler.StartTimer(kv.InactivityDelay, func() {
		kv.inactivityArmed = false
		if kv.OnFade != nil {
			kv.OnFade()
		}
	})
	kv.inactivityArmed = true
}

// NotifyActivity resets the inactivity countdown, called on any key
// press or pointer motion over the keyboard.
func (kv *KeyboardView) NotifyActivity() {
	kv.armInactivityTimer()
}
