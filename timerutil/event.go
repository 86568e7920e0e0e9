package timerutil

import "github.com/dr-ni/onboardosk/geom"

// EventType enumerates the raw event interface of spec.md §6.
type EventType int

const (
	ButtonPress EventType = iota
	ButtonRelease
	Motion
	TouchBegin
	TouchUpdate
	TouchEnd
	TouchCancel
	Enter
	Leave
	KeyPress
	KeyRelease
	DeviceAdded
	DeviceRemoved
	DeviceChanged
	SlaveAttached
	SlaveDetached
)

// Event is the raw, toolkit-agnostic event record that the dedicated
// input-reader thread enqueues (spec.md §5/§6). SequenceId is 0 for
// the pointer sequence, or an opaque non-zero touch id.
type Event struct {
	Type       EventType
	SequenceId uint64
	Point      geom.Point
	RootPoint  geom.Point
	StateMask  uint32
	Time       uint32
	Button     int
	DeviceId   int
	DeviceType string
	DeviceName string
}

// sameMotionSource reports whether two events are same-device
// motion/touch-update events eligible for coalescing (most recent
// wins, per spec.md §5 bullet 1).
func sameMotionSource(a, b Event) bool {
	if a.DeviceId != b.DeviceId {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	if a.Type == Motion {
		return true
	}
	return a.Type == TouchUpdate && a.SequenceId == b.SequenceId
}
