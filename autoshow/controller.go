package autoshow

import (
	"time"

	"go.uber.org/zap"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/dr-ni/onboardosk/timerutil"
)

// ShowReactionTime and HideReactionTime are the show/hide reaction
// delays (spec.md §4.7). Controller does not apply them:
// RequestKeyboardVisible forwards a permitted request immediately,
// without debouncing rapid focus changes.
const (
	ShowReactionTime = 0
	HideReactionTime = 300 * time.Millisecond
)

// Controller owns the named lock set and forwards permitted
// visibility requests to requestVisible, the toolkit-level
// show/hide entry point.
type Controller struct {
	scheduler      *timerutil.Scheduler
	requestVisible func(visible bool)

	locks map[string]*Lock

	hideTimer      timerutil.TimerId
	hideTimerArmed bool

	saveTimer timerutil.TimerId
	saveArmed bool

	logger *zap.SugaredLogger
}

// SetLogger attaches a structured logger; nil (the default) disables
// logging entirely.
func (c *Controller) SetLogger(l *zap.SugaredLogger) { c.logger = l }

func (c *Controller) logf(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugw(msg, args...)
	}
}

// NewController returns a Controller with no active locks.
func NewController(scheduler *timerutil.Scheduler, requestVisible func(visible bool)) *Controller {
	return &Controller{
		scheduler:      scheduler,
		requestVisible: requestVisible,
		locks:          make(map[string]*Lock),
	}
}

// Lock replaces any prior lock with the same reason. If duration is
// non-nil a timer is armed that calls Unlock(reason) on expiry.
func (c *Controller) Lock(reason string, duration *time.Duration, lockShow, lockHide bool) {
	if existing, ok := c.locks[reason]; ok && existing.hasTimer {
		c.scheduler.StopTimer(existing.timer)
	}
	lock := &Lock{Reason: reason, LockShow: lockShow, LockHide: lockHide}
	if duration != nil {
		lock.hasTimer = true
		lock.timer = c.scheduler.StartTimer(*duration, func() { c.Unlock(reason) })
	}
	c.locks[reason] = lock
	c.logf("lock acquired", "reason", reason, "lockShow", lockShow, "lockHide", lockHide)
}

// Unlock releases the named lock, applies any visibility change that
// was requested and suppressed during its lifetime (if it is now
// permitted), and returns that change for inspection. Unlocking an
// already-released (e.g. auto-expired) reason is a no-op returning
// nil.
func (c *Controller) Unlock(reason string) *bool {
	lock, ok := c.locks[reason]
	if !ok {
		return nil
	}
	delete(c.locks, reason)
	if lock.hasTimer {
		c.scheduler.StopTimer(lock.timer)
	}
	c.logf("lock released", "reason", reason)
	if lock.VisibilityChange != nil {
		v := *lock.VisibilityChange
		if (v && c.CanShowKeyboard()) || (!v && c.CanHideKeyboard()) {
			c.logf("deferred visibility request applied", "reason", reason, "visible", v)
			c.requestVisible(v)
		}
	}
	return lock.VisibilityChange
}

// UnlockAll releases every active lock.
func (c *Controller) UnlockAll() {
	reasons := make([]string, 0, len(c.locks))
	for r := range c.locks {
		reasons = append(reasons, r)
	}
	for _, r := range reasons {
		c.Unlock(r)
	}
}

// CanHideKeyboard reports whether no active lock forbids hiding.
func (c *Controller) CanHideKeyboard() bool {
	for _, l := range c.locks {
		if l.LockHide {
			return false
		}
	}
	return true
}

// CanShowKeyboard reports whether no active lock forbids showing.
func (c *Controller) CanShowKeyboard() bool {
	for _, l := range c.locks {
		if l.LockShow {
			return false
		}
	}
	return true
}

// RequestKeyboardVisible asks to show or hide the keyboard. If a lock
// currently forbids the requested direction, the request is recorded
// on every blocking lock and replayed when the last such lock
// releases; otherwise it is forwarded immediately.
func (c *Controller) RequestKeyboardVisible(visible bool) {
	blocked := (visible && !c.CanShowKeyboard()) || (!visible && !c.CanHideKeyboard())
	if !blocked {
		c.requestVisible(visible)
		return
	}
	v := visible
	for _, l := range c.locks {
		if (visible && l.LockShow) || (!visible && l.LockHide) {
			l.VisibilityChange = &v
		}
	}
}

// SavePositionDebounced schedules saving the keyboard position after
// delay, cancelling any previously pending save (spec.md §9
// supplemented feature: debounced position persistence).
func (c *Controller) SavePositionDebounced(p geom.Point, delay time.Duration, save func(geom.Point)) {
	if c.saveArmed {
		c.scheduler.StopTimer(c.saveTimer)
	}
	c.saveTimer = c.scheduler.StartTimer(delay, func() {
		c.saveArmed = false
		save(p)
	})
	c.saveArmed = true
}
