package view

import (
	"time"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/dr-ni/onboardosk/timerutil"
)

const defaultDwellDelay = 4 * time.Second

// DwellController activates a hovered key after it has been held
// under the pointer for a configured delay (spec.md §4.9). The same
// key cannot dwell again until the pointer has left it by at least
// Threshold.
type DwellController struct {
	scheduler *timerutil.Scheduler
	Delay     time.Duration
	Threshold float64

	timer timerutil.TimerId
	armed bool

	hoveredKey string
	lastKey    string
	leftEnough bool
}

// NewDwellController returns a controller using delay, or the spec's
// 4 s fallback when delay is 0.
func NewDwellController(scheduler *timerutil.Scheduler, delay time.Duration) *DwellController {
	if delay <= 0 {
		delay = defaultDwellDelay
	}
	return &DwellController{scheduler: scheduler, Delay: delay, leftEnough: true}
}

// Hover reports the pointer resting over key at p. onActivate fires
// once Delay elapses without an intervening Leave/Hover of a
// different key.
func (d *DwellController) Hover(key string, p geom.Point, onActivate func(key string)) {
	if key == d.lastKey && !d.leftEnough {
		return
	}
	if key == d.hoveredKey {
		return
	}
	d.cancel()
	d.hoveredKey = key
	d.armed = true
	d.timer = d.scheduler.StartTimer(d.Delay, func() {
		d.armed = false
		d.hoveredKey = ""
		d.lastKey = key
		d.leftEnough = false
		onActivate(key)
	})
}

// Leave reports the pointer has moved distance away from the
// currently (or most recently) dwelled key; it cancels any pending
// dwell on that key and, once distance passes Threshold, re-arms
// lastKey for another dwell.
func (d *DwellController) Leave(key string, distance float64) {
	if key == d.hoveredKey {
		d.cancel()
		d.hoveredKey = ""
	}
	if key == d.lastKey && distance >= d.Threshold {
		d.leftEnough = true
	}
}

func (d *DwellController) cancel() {
	if d.armed {
		d.scheduler.StopTimer(d.timer)
		d.armed = false
	}
}
