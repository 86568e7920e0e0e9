// Package input implements the multi-touch-aware event receiver of
// spec.md §4.6 (C6): it disambiguates taps, drags and multi-finger
// gestures from a raw pointer/touch event stream and dispatches
// semantic callbacks to a Target.
package input

import (
	"time"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/dr-ni/onboardosk/timerutil"
)

// KeyId names an on-screen key. The rendering and hit-testing of keys
// themselves belongs to the view layer; the receiver only threads the
// identifier through so a target can track which key a sequence is
// currently pressing.
type KeyId string

// InputSequence tracks one pointer or touch interaction from BEGIN
// through UPDATEs to END (spec.md §3). Id 0 denotes the pointer
// sequence; touch ids are opaque non-zero integers.
type InputSequence struct {
	Id        uint64
	Point     geom.Point
	RootPoint geom.Point
	Button    int
	EventType timerutil.EventType
	StateMask uint32
	Time      uint32
	BeginTime uint32
	UpdateTime uint32

	Primary   bool
	Delivered bool

	ActiveKey        KeyId
	InitialActiveKey KeyId
	CancelKeyAction  bool
}

// clone returns a copy of s suitable for installation under a new
// owner during sequence redirection (spec.md §4.6): key state is
// cleared and the point is left for the caller to transform into the
// destination's coordinate space.
func (s *InputSequence) clone() *InputSequence {
	c := *s
	c.ActiveKey = ""
	c.InitialActiveKey = ""
	c.CancelKeyAction = false
	return &c
}

func durationMs(beginMs, endMs uint32) time.Duration {
	return time.Duration(endMs-beginMs) * time.Millisecond
}
