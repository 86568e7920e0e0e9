package view

import (
	"time"

	"github.com/dr-ni/onboardosk/input"
	"github.com/dr-ni/onboardosk/timerutil"
)

const defaultUnpressDelay = 150 * time.Millisecond

// PopupController manages the long-press popup lifecycle of spec.md
// §4.9: a long press on a key opens a popup, the receiver is told to
// redirect the sequence onto it, and release either activates a
// popup key or closes the popup after UnpressDelay.
type PopupController struct {
	scheduler    *timerutil.Scheduler
	receiver     *input.Receiver
	UnpressDelay time.Duration

	popup  input.Target
	closer func()
	timer  timerutil.TimerId
	armed  bool
}

// NewPopupController returns a controller with the spec's 150 ms
// fallback unpress delay.
func NewPopupController(scheduler *timerutil.Scheduler, receiver *input.Receiver) *PopupController {
	return &PopupController{scheduler: scheduler, receiver: receiver, UnpressDelay: defaultUnpressDelay}
}

// IsOpen reports whether a popup is currently redirected to.
func (pc *PopupController) IsOpen() bool { return pc.popup != nil }

// Open redirects seq onto popup and returns the receiver's key-cleared
// clone of it. The original key's target receives no callback for the
// redirect: it is neither unpressed nor activated. closer is called to tear the popup down, either on
// ReleaseElsewhere's delay or explicitly via Close.
func (pc *PopupController) Open(seq *input.InputSequence, popup input.Target, closer func()) *input.InputSequence {
	clone := pc.receiver.RedirectSequenceBegin(seq, popup)
	pc.popup = popup
	pc.closer = closer
	return clone
}

// ReleaseOnKey ends the redirected sequence on the popup, activating
// whichever key it lands on, then tears the popup down immediately.
func (pc *PopupController) ReleaseOnKey(seq *input.InputSequence) {
	if pc.popup == nil {
		return
	}
	pc.receiver.RedirectSequenceEnd(seq, pc.popup)
	pc.Close()
}

// ReleaseElsewhere ends the redirected sequence without activating
// any popup key, then closes the popup after UnpressDelay.
func (pc *PopupController) ReleaseElsewhere(seq *input.InputSequence) {
	if pc.popup == nil {
		return
	}
	pc.receiver.RedirectSequenceEnd(seq, pc.popup)
	if pc.UnpressDelay <= 0 {
		pc.Close()
		return
	}
	pc.timer = pc.scheduler.StartTimer(pc.UnpressDelay, pc.Close)
	pc.armed = true
}

// Close tears the popup down immediately, cancelling any pending
// unpress-delay timer.
func (pc *PopupController) Close() {
	if pc.armed {
		pc.scheduler.StopTimer(pc.timer)
		pc.armed = false
	}
	closer := pc.closer
	pc.popup = nil
	pc.closer = nil
	if closer != nil {
		closer()
	}
}
