// Package shape defines the two kinds of drawable shapes, straight or
// quadratic-curved Lines and pressure-stroked Freeform paths, and the pure
// operations on them. Every operation returns a new value and never writes
// through to the shape it was given.
package shape

import (
	"fmt"
	"slices"

	"spectre/internal/geom"

	"github.com/google/uuid"
)

// ID identifies a shape. The empty ID means "no shape".
type ID string

// Kind tags the concrete type behind a Shape.
type Kind string

const (
	KindLine     Kind = "line"
	KindFreeform Kind = "freeform"
)

const (
	// MinLineLength is the endpoint distance a Line must exceed to be kept.
	MinLineLength = 1.0
	// MinFreeformSize is the bounding-box diagonal a Freeform must exceed.
	MinFreeformSize = 0.0
)

// Meta holds the fields every shape carries.
type Meta struct {
	ID       ID      `json:"id"`
	Editing  bool    `json:"editing"`
	Deleting bool    `json:"deleting,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

// Shape is either a Line or a Freeform. The set is closed: only this
// package implements it, and callers switch on the concrete type.
type Shape interface {
	Base() Meta
	Kind() Kind
	withMeta(Meta) Shape
}

// Line is a segment with an optional quadratic control point. A nil Curve
// renders straight.
type Line struct {
	Meta
	Start geom.Point  `json:"start"`
	End   geom.Point  `json:"end"`
	Curve *geom.Point `json:"curve"`
}

func (l Line) Base() Meta { return l.Meta }
func (l Line) Kind() Kind { return KindLine }

func (l Line) withMeta(m Meta) Shape {
	l.Meta = m
	return l
}

// Segment drops the control point.
func (l Line) Segment() geom.Segment { return geom.Seg(l.Start, l.End) }

// Control returns the control point, or the straight-line midpoint when
// the line has none.
func (l Line) Control() geom.Point {
	if l.Curve != nil {
		return *l.Curve
	}
	return geom.Midpoint(l.Start, l.End)
}

// WithCurve returns a copy with the control point set to c.
func (l Line) WithCurve(c geom.Point) Line {
	l.Curve = &c
	return l
}

// Length is the straight distance between the endpoints.
func (l Line) Length() float64 { return geom.Distance(l.Start, l.End) }

// Midpoint is the point halfway along the line, on the curve if there is one.
func (l Line) Midpoint() geom.Point {
	if l.Curve != nil {
		return geom.QuadraticBezierPoint(l.Start, l.End, *l.Curve, 0.5)
	}
	return geom.Midpoint(l.Start, l.End)
}

// Points samples the line: both endpoints for a straight line, eleven
// points at t = 0, 0.1, ... 1 for a curve.
func (l Line) Points() []geom.Point {
	if l.Curve == nil {
		return []geom.Point{l.Start, l.End}
	}
	pts := make([]geom.Point, 0, 11)
	for i := 0; i <= 10; i++ {
		pts = append(pts, geom.QuadraticBezierPoint(l.Start, l.End, *l.Curve, float64(i)/10))
	}
	return pts
}

// Freeform is a pressure-stroked path recorded from pointer samples.
type Freeform struct {
	Meta
	Points []geom.PressuredPoint `json:"points"`
}

func (f Freeform) Base() Meta { return f.Meta }
func (f Freeform) Kind() Kind { return KindFreeform }

func (f Freeform) withMeta(m Meta) Shape {
	f.Meta = m
	return f
}

// Append returns a copy with p added at the end. The result never shares
// a backing array with f.
func (f Freeform) Append(p geom.PressuredPoint) Freeform {
	f.Points = append(slices.Clip(f.Points), p)
	return f
}

// Plain returns the points without pressure.
func (f Freeform) Plain() []geom.Point {
	pts := make([]geom.Point, len(f.Points))
	for i, p := range f.Points {
		pts[i] = p.Point()
	}
	return pts
}

// Clone returns a copy of s that shares no memory with it.
func Clone(s Shape) Shape {
	switch v := s.(type) {
	case Line:
		if v.Curve != nil {
			v = v.WithCurve(*v.Curve)
		}
		return v
	case Freeform:
		v.Points = slices.Clone(v.Points)
		return v
	}
	return s
}

// NewID returns a fresh shape id.
func NewID() ID {
	return ID("shape-" + uuid.NewString())
}

// NewLine builds a committed line. Without a control override the curve
// sits at the midpoint.
func NewLine(id ID, start, end geom.Point, control ...geom.Point) Line {
	c := geom.Midpoint(start, end)
	if len(control) > 0 {
		c = control[0]
	}
	return Line{Meta: Meta{ID: id}, Start: start, End: end, Curve: &c}
}

// CreateLine starts authoring a line with a fresh id.
func CreateLine(p1, p2 geom.Point, control ...geom.Point) Line {
	l := NewLine(NewID(), p1, p2, control...)
	l.Editing = true
	return l
}

// CreateFreeform starts authoring a freeform stroke with a fresh id.
func CreateFreeform(first geom.PressuredPoint, color string, size float64) Freeform {
	return Freeform{
		Meta:   Meta{ID: NewID(), Editing: true, Color: color, Size: size},
		Points: []geom.PressuredPoint{first},
	}
}

// MoveBy translates any shape by dx, dy.
func MoveBy(s Shape, dx, dy float64) Shape {
	switch s := s.(type) {
	case Line:
		s.Start = s.Start.Add(dx, dy)
		s.End = s.End.Add(dx, dy)
		if s.Curve != nil {
			c := s.Curve.Add(dx, dy)
			s.Curve = &c
		}
		return s
	case Freeform:
		pts := make([]geom.PressuredPoint, len(s.Points))
		for i, p := range s.Points {
			pts[i] = p.Add(dx, dy)
		}
		s.Points = pts
		return s
	default:
		panic(fmt.Sprintf("shape: unknown shape type %T", s))
	}
}

// IsValid reports whether a shape is worth keeping once authoring ends.
// Lines must be longer than MinLineLength, freeforms must cover more than
// a single point, and nothing marked for deletion survives.
func IsValid(s Shape) bool {
	if s.Base().Deleting {
		return false
	}
	switch s := s.(type) {
	case Line:
		return s.Length() > MinLineLength
	case Freeform:
		return BoundsOf(s).Diagonal() > MinFreeformSize
	default:
		panic(fmt.Sprintf("shape: unknown shape type %T", s))
	}
}

func BeginEditing(s Shape) Shape {
	m := s.Base()
	m.Editing = true
	return s.withMeta(m)
}

func EndEditing(s Shape) Shape {
	m := s.Base()
	m.Editing = false
	return s.withMeta(m)
}

// MarkDeleting flags a shape for removal at the end of an erase gesture.
func MarkDeleting(s Shape) Shape {
	m := s.Base()
	m.Deleting = true
	return s.withMeta(m)
}

// WithID returns a copy of s under a different id.
func WithID(s Shape, id ID) Shape {
	m := s.Base()
	m.ID = id
	return s.withMeta(m)
}
