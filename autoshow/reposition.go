package autoshow

import "github.com/dr-ni/onboardosk/geom"

// PreventOcclusion implements the prevent-occlusion repositioning
// method of spec.md §4.7: if home, inflated by testClearance, does
// not overlap focused, home is kept; otherwise the candidate placed
// east/west/north/south of focused (each offset by moveClearance,
// then constrained to whichever monitor contains it) whose centre is
// closest to home's is returned. If no candidate clears focused, home
// is returned unchanged.
func PreventOcclusion(home, focused geom.Rect, monitors []geom.Rect, testClearance, moveClearance float64) geom.Rect {
	if !home.Inflate(geom.UniformBorder(testClearance)).Intersects(focused) {
		return home
	}
	best := home
	bestDist := -1.0
	for _, c := range occlusionCandidates(home, focused, moveClearance) {
		c = constrainToMonitors(c, monitors)
		if c.Intersects(focused) {
			continue
		}
		d := c.Center().DistanceSquared(home.Center())
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func occlusionCandidates(home, focused geom.Rect, clearance float64) []geom.Rect {
	return []geom.Rect{
		home.MoveTo(geom.Point{X: focused.Right() + clearance, Y: home.Y}),              // east
		home.MoveTo(geom.Point{X: focused.Left() - clearance - home.W, Y: home.Y}),       // west
		home.MoveTo(geom.Point{X: home.X, Y: focused.Top() - clearance - home.H}),        // north
		home.MoveTo(geom.Point{X: home.X, Y: focused.Bottom() + clearance}),              // south
	}
}

func constrainToMonitors(r geom.Rect, monitors []geom.Rect) geom.Rect {
	for _, m := range monitors {
		if m.Contains(r.Center()) {
			return r.Clamp(m)
		}
	}
	if len(monitors) > 0 {
		return r.Clamp(monitors[0])
	}
	return r
}

// ReduceTravel implements the reduce-travel method: it prefers the
// first candidate near focused itself (below, then above, then home's
// own position, then a closer below/above pass) that does not occlude
// focused, falling back to PreventOcclusion when none fit.
func ReduceTravel(home, focused geom.Rect, monitors []geom.Rect, testClearance, moveClearance float64) geom.Rect {
	candidates := []geom.Rect{
		home.MoveTo(geom.Point{X: home.X, Y: focused.Bottom() + moveClearance}),
		home.MoveTo(geom.Point{X: home.X, Y: focused.Top() - moveClearance - home.H}),
		home,
		home.MoveTo(geom.Point{X: home.X, Y: focused.Bottom() + moveClearance/2}),
		home.MoveTo(geom.Point{X: home.X, Y: focused.Top() - moveClearance/2 - home.H}),
	}
	for _, c := range candidates {
		c = constrainToMonitors(c, monitors)
		if !c.Intersects(focused) {
			return c
		}
	}
	return PreventOcclusion(home, focused, monitors, testClearance, moveClearance)
}
