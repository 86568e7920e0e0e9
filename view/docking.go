package view

import (
	"github.com/dr-ni/onboardosk/config"
	"github.com/dr-ni/onboardosk/geom"
)

// Docking holds the resolved state of the "window" section's docking
// keys (spec.md §4.9), re-evaluated whenever the monitor or workarea
// changes.
type Docking struct {
	Enabled        bool
	Edge           config.DockingEdge
	Monitor        config.DockingMonitor
	ShrinkWorkarea bool
}

// DockRect places a keyboard of the given height flush against edge
// of monitor, spanning its full width.
func DockRect(monitor geom.Rect, edge config.DockingEdge, height float64) geom.Rect {
	if edge == config.DockingEdgeTop {
		return geom.Rect{X: monitor.X, Y: monitor.Y, W: monitor.W, H: height}
	}
	return geom.Rect{X: monitor.X, Y: monitor.Bottom() - height, W: monitor.W, H: height}
}

// HideoutRect is dock translated one screen-height off whichever edge
// it is docked to, the position the Animator slides to/from when
// hiding a docked keyboard.
func HideoutRect(dock geom.Rect, edge config.DockingEdge, monitorHeight float64) geom.Rect {
	dy := monitorHeight
	if edge == config.DockingEdgeTop {
		dy = -monitorHeight
	}
	return dock.Translate(geom.Point{Y: dy})
}

// Workarea shrinks monitor by dock's height on whichever edge it
// occupies, when shrinkWorkarea is set; otherwise it returns monitor
// unchanged.
func Workarea(monitor, dock geom.Rect, edge config.DockingEdge, shrinkWorkarea bool) geom.Rect {
	if !shrinkWorkarea {
		return monitor
	}
	if edge == config.DockingEdgeTop {
		return geom.Rect{X: monitor.X, Y: monitor.Y + dock.H, W: monitor.W, H: monitor.H - dock.H}
	}
	return geom.Rect{X: monitor.X, Y: monitor.Y, W: monitor.W, H: monitor.H - dock.H}
}
