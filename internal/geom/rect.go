package geom

import "math"

// Rect is an axis-aligned box. The zero Rect is a single point at the
// origin; use EmptyRect for "no points yet".
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyRect returns a Rect that any Extend call will replace.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

func (r Rect) IsEmpty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Diagonal is the length of the box's diagonal, 0 for an empty box.
func (r Rect) Diagonal() float64 { return math.Hypot(r.Width(), r.Height()) }

func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

func (r Rect) Extend(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X), MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X), MaxY: math.Max(r.MaxY, p.Y),
	}
}

func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX), MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX), MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Pad grows the box by padding on every side. Empty boxes stay empty.
func (r Rect) Pad(padding float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		MinX: r.MinX - padding, MinY: r.MinY - padding,
		MaxX: r.MaxX + padding, MaxY: r.MaxY + padding,
	}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// BoundsOf returns the smallest Rect holding all points.
func BoundsOf(points ...Point) Rect {
	r := EmptyRect()
	for _, p := range points {
		r = r.Extend(p)
	}
	return r
}
