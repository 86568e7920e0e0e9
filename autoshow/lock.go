// Package autoshow implements the auto-show/auto-hide visibility
// controller of spec.md §4.7 (C7): a set of named, independently
// timed locks guarding keyboard visibility, plus the two
// repositioning policies that keep the keyboard from occluding a
// focused text entry.
package autoshow

import "github.com/dr-ni/onboardosk/timerutil"

// Lock is one named visibility guard (spec.md §3). A second Lock call
// with the same reason replaces the prior lock for that reason.
type Lock struct {
	Reason           string
	LockShow         bool
	LockHide         bool
	VisibilityChange *bool

	timer    timerutil.TimerId
	hasTimer bool
}
