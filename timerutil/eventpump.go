package timerutil

import "sync"

// EventPump is the hand-off point for the dedicated X11/XInput2 reader
// thread of spec.md §5 bullet 1. It starts no goroutine of its own:
// the reader goroutine calls Push on a mutex-guarded queue of Events,
// which coalesces same-device motion/touch-update
// duplicates (most recent wins) and schedules exactly one pending
// wakeup on the Scheduler per batch, so the consumer drains a whole
// burst in one idle callback instead of one per raw event.
type EventPump struct {
	scheduler *Scheduler
	onReady   func()

	mu      sync.Mutex
	queue   []Event
	pending bool
}

// NewEventPump returns a pump that calls onReady (via scheduler's
// IdleRun, i.e. on the main loop) the first time an event lands in an
// otherwise-empty queue.
func NewEventPump(scheduler *Scheduler, onReady func()) *EventPump {
	return &EventPump{scheduler: scheduler, onReady: onReady}
}

// Push enqueues ev, coalescing it with the tail of the queue when both
// are motion/touch-update events from the same device (most recent
// wins). Called from the reader goroutine.
func (p *EventPump) Push(ev Event) {
	p.mu.Lock()
	if n := len(p.queue); n > 0 && sameMotionSource(p.queue[n-1], ev) {
		p.queue[n-1] = ev
	} else {
		p.queue = append(p.queue, ev)
	}
	needsWakeup := !p.pending
	p.pending = true
	p.mu.Unlock()

	if needsWakeup {
		p.scheduler.IdleRun(p.onReady)
	}
}

// Drain returns and clears the queued events. Called from the main
// loop inside onReady.
func (p *EventPump) Drain() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	q := p.queue
	p.queue = nil
	p.pending = false
	return q
}
