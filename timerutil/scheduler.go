// Package timerutil implements the timer/idle/event-pump glue of
// spec.md §5 (C10): the toolkit callback table (start_timer,
// stop_timer, idle_run) realized over the standard library's
// time.AfterFunc, plus an event-pump queue that a dedicated reader
// goroutine (the X11/XInput2 reader thread) feeds.
package timerutil

import (
	"sync"
	"time"
)

// TimerId identifies an armed timer so it can be looked up and
// cancelled later, mirroring the toolkit's start_timer/stop_timer
// pair (spec.md §6).
type TimerId uint64

// Scheduler wraps time.AfterFunc/time.Timer.Stop with an explicit
// id->timer map, preserving the single-threaded "main loop" illusion
// described in spec.md §5: every callback registered through
// StartTimer or IdleRun is expected to run without racing other
// Scheduler callbacks, because the embedder is expected to invoke
// them from its own single dispatch goroutine.
type Scheduler struct {
	mu     sync.Mutex
	nextId TimerId
	timers map[TimerId]*time.Timer
	idle   []func()
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[TimerId]*time.Timer)}
}

// StartTimer arms a one-shot callback after d and returns its id.
// The callback runs on its own goroutine, as time.AfterFunc does; the
// embedder is responsible for any hand-off onto its main loop.
func (s *Scheduler) StartTimer(d time.Duration, cb func()) TimerId {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	id := s.nextId
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		cb()
	})
	return id
}

// StopTimer cancels a still-pending timer. Stopping an id that has
// already fired or was never issued is a no-op.
func (s *Scheduler) StopTimer(id TimerId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return
	}
	t.Stop()
	delete(s.timers, id)
}

// Pending reports whether id still names an armed timer.
func (s *Scheduler) Pending(id TimerId) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// IdleRun queues cb to run on the next call to RunIdle, modeling the
// toolkit's idle_run deferred dispatch.
func (s *Scheduler) IdleRun(cb func()) {
	s.mu.Lock()
	s.idle = append(s.idle, cb)
	s.mu.Unlock()
}

// RunIdle drains and invokes every callback queued via IdleRun. The
// owning event loop calls this once per iteration.
func (s *Scheduler) RunIdle() {
	s.mu.Lock()
	pending := s.idle
	s.idle = nil
	s.mu.Unlock()
	for _, cb := range pending {
		cb()
	}
}
