// Package geom provides the small value types shared by the autoshow and
// view packages: points, sizes, half-open rectangles and border insets.
package geom

import "math"

// Point is a location in some view's coordinate space.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// DistanceSquared returns the squared Euclidean distance to o, cheaper
// than Distance when only comparisons against a threshold are needed.
func (p Point) DistanceSquared(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

func (p Point) Distance(o Point) float64 {
	return math.Sqrt(p.DistanceSquared(o))
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Border is a four-sided inset, used to inflate or shrink a Rect.
type Border struct {
	Left, Top, Right, Bottom float64
}

func UniformBorder(d float64) Border { return Border{d, d, d, d} }

// Rect is a half-open rectangle: the right and bottom edges are
// exclusive. X,Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func RectFromPoints(topLeft Point, size Size) Rect {
	return Rect{topLeft.X, topLeft.Y, size.W, size.H}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

func (r Rect) Size() Size { return Size{r.W, r.H} }

func (r Rect) TopLeft() Point { return Point{r.X, r.Y} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Inflate grows (or shrinks, for negative values) r by b on each side.
func (r Rect) Inflate(b Border) Rect {
	return Rect{
		X: r.X - b.Left,
		Y: r.Y - b.Top,
		W: r.W + b.Left + b.Right,
		H: r.H + b.Top + b.Bottom,
	}
}

// Intersects reports whether r and o share any area, honoring the
// half-open convention (touching edges do not intersect).
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Contains reports whether p lies within r under the half-open
// convention.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Clamp moves (without resizing) r so that it lies fully within
// bounds, when bounds is large enough to contain it. When r is larger
// than bounds along an axis, that axis is aligned with bounds' origin.
func (r Rect) Clamp(bounds Rect) Rect {
	x, y := r.X, r.Y
	if r.W >= bounds.W {
		x = bounds.X
	} else if x < bounds.Left() {
		x = bounds.Left()
	} else if x+r.W > bounds.Right() {
		x = bounds.Right() - r.W
	}
	if r.H >= bounds.H {
		y = bounds.Y
	} else if y < bounds.Top() {
		y = bounds.Top()
	} else if y+r.H > bounds.Bottom() {
		y = bounds.Bottom() - r.H
	}
	return Rect{x, y, r.W, r.H}
}

// MoveTo returns r translated so its top-left corner is at p.
func (r Rect) MoveTo(p Point) Rect {
	return Rect{p.X, p.Y, r.W, r.H}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}
