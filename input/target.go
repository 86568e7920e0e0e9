package input

import "github.com/dr-ni/onboardosk/geom"

// Target is the semantic callback surface the receiver dispatches to
// (spec.md §6's "toolkit callbacks expected", narrowed to the methods
// this core actually calls).
type Target interface {
	OnSequenceBegin(seq *InputSequence)
	OnSequenceUpdate(seq *InputSequence)
	OnSequenceEnd(seq *InputSequence)

	OnTap(seq *InputSequence, numTouches int)
	OnLongPress(seq *InputSequence)

	OnDragBegin(seq *InputSequence)
	OnDragUpdate(seq *InputSequence)
	OnDragEnd(seq *InputSequence)

	// PermitsDelay reports whether the target allows the receiver to
	// hold a first touch for GestureDetectionSpan before delivering it
	// (spec.md §4.6).
	PermitsDelay(p geom.Point) bool

	// TransformToRoot converts p from the sender's coordinate space
	// into this target's, used when redirecting a sequence onto it.
	TransformToRoot(p geom.Point) geom.Point
}
