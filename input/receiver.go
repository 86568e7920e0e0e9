package input

import (
	"time"

	"go.uber.org/zap"

	"github.com/dr-ni/onboardosk/geom"
	"github.com/dr-ni/onboardosk/timerutil"
)

// GestureState is the global (cross-sequence) gesture state machine of
// spec.md §4.6.
type GestureState int

const (
	Idle GestureState = iota
	DelayedBegin
	Delivered
	GestureDetected
	Dragging
)

const (
	GestureDetectionSpan  = 100 * time.Millisecond
	GestureDelayPause     = 3 * time.Second
	DragThresholdSq       = 1600.0 // 40px, squared
	TapMaxDuration        = 300 * time.Millisecond
	StaleSequenceTimeout  = 30 * time.Second
	DefaultLongPressDelay = 500 * time.Millisecond
)

// Receiver dispatches raw pointer/touch events to a Target,
// disambiguating taps, drags and multi-finger gestures (spec.md
// §4.6).
type Receiver struct {
	target         Target
	scheduler      *timerutil.Scheduler
	longPressDelay time.Duration

	multiTouchEnabled bool
	touchActive       map[int]bool

	sequences map[uint64]*InputSequence

	state           GestureState
	primarySeq      *InputSequence
	firstBeginPoint geom.Point
	firstBeginTime  uint32

	hasLastDeliveredEnd  bool
	lastDeliveredEndTime uint32

	gestureActiveSeqs map[uint64]bool
	gestureTouchCount int

	delayTimer      timerutil.TimerId
	delayTimerArmed bool
	longPressTimer  timerutil.TimerId
	longPressArmed  bool

	logger *zap.SugaredLogger
}

// SetLogger attaches a structured logger; nil (the default) disables
// logging entirely.
func (r *Receiver) SetLogger(l *zap.SugaredLogger) { r.logger = l }

func (r *Receiver) logf(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debugw(msg, args...)
	}
}

// NewReceiver returns a Receiver with the default long-press delay.
func NewReceiver(target Target, scheduler *timerutil.Scheduler) *Receiver {
	return &Receiver{
		target:            target,
		scheduler:         scheduler,
		longPressDelay:    DefaultLongPressDelay,
		touchActive:       make(map[int]bool),
		sequences:         make(map[uint64]*InputSequence),
		gestureActiveSeqs: make(map[uint64]bool),
	}
}

func (r *Receiver) SetMultiTouchEnabled(enabled bool) { r.multiTouchEnabled = enabled }
func (r *Receiver) SetLongPressDelay(d time.Duration)  { r.longPressDelay = d }

// HasInputSequences reports whether any sequence is currently tracked.
func (r *Receiver) HasInputSequences() bool { return len(r.sequences) > 0 }

// MarkTouchActive records that deviceId has emitted touch events, so
// later synthesized pointer events from it are suppressed.
func (r *Receiver) MarkTouchActive(deviceId int) { r.touchActive[deviceId] = true }
func (r *Receiver) IsTouchActive(deviceId int) bool { return r.touchActive[deviceId] }

// Begin starts tracking a new sequence. deviceType is "touch" or
// "pointer"; synthesized pointer events from an already touch-active
// device are suppressed and Begin returns nil.
func (r *Receiver) Begin(id uint64, point, rootPoint geom.Point, t uint32, deviceId int, deviceType string, button int) *InputSequence {
	if deviceType == "pointer" && r.touchActive[deviceId] {
		return nil
	}
	if deviceType == "touch" {
		r.MarkTouchActive(deviceId)
	}

	seq := &InputSequence{
		Id: id, Point: point, RootPoint: rootPoint,
		Time: t, BeginTime: t, UpdateTime: t, Button: button,
	}
	primary := len(r.sequences) == 0
	seq.Primary = primary
	r.sequences[id] = seq

	if !primary {
		if r.state == DelayedBegin {
			r.cancelDelay()
			r.state = GestureDetected
			r.gestureActiveSeqs[r.primarySeq.Id] = true
			r.gestureActiveSeqs[id] = true
			r.gestureTouchCount = 2
			return seq
		}
		if r.state == GestureDetected {
			r.gestureActiveSeqs[id] = true
			r.gestureTouchCount++
			return seq
		}
		seq.Delivered = true
		r.target.OnSequenceBegin(seq)
		return seq
	}

	delayEligible := r.multiTouchEnabled && r.state == Idle &&
		(!r.hasLastDeliveredEnd || durationMs(r.lastDeliveredEndTime, t) >= GestureDelayPause) &&
		r.target.PermitsDelay(point)

	if delayEligible {
		r.state = DelayedBegin
		r.primarySeq = seq
		r.firstBeginPoint = point
		r.firstBeginTime = t
		r.delayTimer = r.scheduler.StartTimer(GestureDetectionSpan, func() { r.finishDelay() })
		r.delayTimerArmed = true
	} else {
		r.deliverBegin(seq, t)
	}
	return seq
}

func (r *Receiver) deliverBegin(seq *InputSequence, t uint32) {
	seq.Delivered = true
	r.state = Delivered
	r.primarySeq = seq
	r.firstBeginPoint = seq.Point
	r.firstBeginTime = t
	r.logf("sequence delivered", "id", seq.Id)
	r.target.OnSequenceBegin(seq)
	r.armLongPress(seq)
}

// finishDelay runs the delay timer's callback synchronously; the
// receiver also calls it before handling an UPDATE or END of the
// delayed sequence, so delivery ordering is never violated (spec.md
// §5's ordering guarantees).
func (r *Receiver) finishDelay() {
	if !r.delayTimerArmed {
		return
	}
	r.delayTimerArmed = false
	r.scheduler.StopTimer(r.delayTimer)
	if r.state != DelayedBegin {
		return
	}
	seq := r.primarySeq
	r.deliverBegin(seq, seq.Time)
}

func (r *Receiver) cancelDelay() {
	if r.delayTimerArmed {
		r.scheduler.StopTimer(r.delayTimer)
		r.delayTimerArmed = false
	}
}

func (r *Receiver) armLongPress(seq *InputSequence) {
	r.longPressTimer = r.scheduler.StartTimer(r.longPressDelay, func() {
		if r.state == Delivered && r.primarySeq == seq {
			r.target.OnLongPress(seq)
		}
	})
	r.longPressArmed = true
}

func (r *Receiver) cancelLongPress() {
	if r.longPressArmed {
		r.scheduler.StopTimer(r.longPressTimer)
		r.longPressArmed = false
	}
}

// Update applies a motion to a tracked sequence.
func (r *Receiver) Update(id uint64, point, rootPoint geom.Point, t uint32) {
	seq, ok := r.sequences[id]
	if !ok {
		return
	}
	if r.state == DelayedBegin && seq == r.primarySeq {
		r.finishDelay()
	}
	seq.Point = point
	seq.RootPoint = rootPoint
	seq.UpdateTime = t
	seq.Time = t

	if seq != r.primarySeq {
		r.target.OnSequenceUpdate(seq)
		return
	}

	switch r.state {
	case Delivered:
		if point.DistanceSquared(r.firstBeginPoint) >= DragThresholdSq {
			r.cancelLongPress()
			r.state = Dragging
			r.logf("drag begin", "id", seq.Id)
			r.target.OnDragBegin(seq)
		} else {
			r.target.OnSequenceUpdate(seq)
		}
	case Dragging:
		r.target.OnDragUpdate(seq)
	case GestureDetected:
		// no per-update callback is defined while awaiting joint release
	default:
		r.target.OnSequenceUpdate(seq)
	}
}

// End finishes a tracked sequence normally.
func (r *Receiver) End(id uint64, t uint32) {
	seq, ok := r.sequences[id]
	if !ok {
		return
	}
	delete(r.sequences, id)
	seq.Time = t

	if seq != r.primarySeq {
		if r.state == GestureDetected && r.gestureActiveSeqs[id] {
			r.endGestureParticipant(seq, t)
			return
		}
		if seq.Delivered {
			r.target.OnSequenceEnd(seq)
		}
		return
	}

	if r.state == DelayedBegin {
		r.finishDelay()
	}
	switch r.state {
	case GestureDetected:
		r.endGestureParticipant(seq, t)
	case Dragging:
		r.cancelLongPress()
		r.target.OnDragEnd(seq)
		r.finishInteraction(t)
	case Delivered:
		r.cancelLongPress()
		if durationMs(r.firstBeginTime, t) <= TapMaxDuration {
			r.target.OnTap(seq, 1)
		} else {
			r.target.OnSequenceEnd(seq)
		}
		r.finishInteraction(t)
	default:
		if seq.Delivered {
			r.target.OnSequenceEnd(seq)
		}
	}
}

func (r *Receiver) endGestureParticipant(seq *InputSequence, t uint32) {
	delete(r.gestureActiveSeqs, seq.Id)
	if len(r.gestureActiveSeqs) > 0 {
		return
	}
	r.target.OnTap(seq, r.gestureTouchCount)
	r.finishInteraction(t)
}

func (r *Receiver) finishInteraction(t uint32) {
	r.state = Idle
	r.hasLastDeliveredEnd = true
	r.lastDeliveredEndTime = t
	r.primarySeq = nil
	r.gestureTouchCount = 0
	r.gestureActiveSeqs = make(map[uint64]bool)
}

// Cancel discards a tracked sequence without reporting a tap or drag
// end beyond closing out whatever was already delivered.
func (r *Receiver) Cancel(id uint64, t uint32) {
	seq, ok := r.sequences[id]
	if !ok {
		return
	}
	delete(r.sequences, id)
	seq.CancelKeyAction = true

	if seq != r.primarySeq {
		delete(r.gestureActiveSeqs, id)
		if seq.Delivered {
			r.target.OnSequenceEnd(seq)
		}
		return
	}

	switch r.state {
	case DelayedBegin:
		r.cancelDelay()
	case Dragging:
		r.cancelLongPress()
		r.target.OnDragEnd(seq)
	case Delivered, GestureDetected:
		r.cancelLongPress()
		if seq.Delivered {
			r.target.OnSequenceEnd(seq)
		}
	}
	r.finishInteraction(t)
}

// RedirectSequenceBegin clones seq onto dest (e.g. a finger sliding
// from a key onto its long-press popup): key state is cleared, the
// point is transformed into dest's coordinate space, and the clone
// replaces the original entry in the receiver's own map.
func (r *Receiver) RedirectSequenceBegin(seq *InputSequence, dest Target) *InputSequence {
	clone := seq.clone()
	clone.Point = dest.TransformToRoot(seq.Point)
	r.sequences[seq.Id] = clone
	dest.OnSequenceBegin(clone)
	return clone
}

// RedirectSequenceEnd removes seq from the receiver's map before
// invoking dest's callback, so HasInputSequences returns false for
// the duration of the callback.
func (r *Receiver) RedirectSequenceEnd(seq *InputSequence, dest Target) {
	delete(r.sequences, seq.Id)
	dest.OnSequenceEnd(seq)
}

// PurgeStale discards any sequence whose last update is older than
// StaleSequenceTimeout relative to now, defending against lost END
// events.
func (r *Receiver) PurgeStale(now uint32) {
	limit := uint32(StaleSequenceTimeout / time.Millisecond)
	for id, seq := range r.sequences {
		if now-seq.UpdateTime > limit {
			delete(r.sequences, id)
			delete(r.gestureActiveSeqs, id)
			if seq == r.primarySeq {
				r.finishInteraction(now)
			}
		}
	}
}
