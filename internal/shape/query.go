package shape

import (
	"fmt"

	"spectre/internal/geom"
)

// SelectionPadding is the gap between a selection and its bounding box.
const SelectionPadding = 12.0

// BoundsOf returns the bounding box of one shape. Curves are sampled, so
// the box hugs the drawn curve rather than the control point.
func BoundsOf(s Shape) geom.Rect {
	switch s := s.(type) {
	case Line:
		return geom.BoundsOf(s.Points()...)
	case Freeform:
		return geom.BoundsOf(s.Plain()...)
	default:
		panic(fmt.Sprintf("shape: unknown shape type %T", s))
	}
}

// Bounds returns the padded bounding box of all shapes.
func Bounds(shapes []Shape, padding float64) geom.Rect {
	r := geom.EmptyRect()
	for _, s := range shapes {
		r = r.Union(BoundsOf(s))
	}
	return r.Pad(padding)
}

// Lines returns the Line shapes in order.
func Lines(shapes []Shape) []Line {
	var lines []Line
	for _, s := range shapes {
		if l, ok := s.(Line); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// CommittedLines returns the lines that are not being authored; they are
// the candidates new endpoints may snap onto.
func CommittedLines(shapes []Shape) []Line {
	var lines []Line
	for _, l := range Lines(shapes) {
		if !l.Editing {
			lines = append(lines, l)
		}
	}
	return lines
}

func segments(lines []Line) []geom.Segment {
	segs := make([]geom.Segment, len(lines))
	for i, l := range lines {
		segs[i] = l.Segment()
	}
	return segs
}

// SnapPoint returns the first endpoint of lines within delta of p.
func SnapPoint(p geom.Point, lines []Line, delta float64) (geom.Point, bool) {
	return geom.NearestSnapPoint(p, segments(lines), delta)
}

// IsVertex reports whether p is an endpoint of one of lines.
func IsVertex(p geom.Point, lines []Line) bool {
	return geom.EndpointAt(p, segments(lines))
}

// ConnectedLines returns the lines with an endpoint within threshold of p.
func ConnectedLines(p geom.Point, lines []Line, threshold float64) []Line {
	var out []Line
	for _, i := range geom.Connected(p, segments(lines), threshold) {
		out = append(out, lines[i])
	}
	return out
}

// AutoCurve infers a control point for target from its neighbours in
// others. Exactly one line must touch each endpoint; anything else is
// ambiguous and reported with ok=false, as are parallel rays.
func AutoCurve(target Line, others []Line) (geom.Point, bool) {
	var rest []Line
	for _, l := range others {
		if l.ID != target.ID {
			rest = append(rest, l)
		}
	}
	startLines := ConnectedLines(target.Start, rest, geom.DefaultConnectThreshold)
	endLines := ConnectedLines(target.End, rest, geom.DefaultConnectThreshold)
	if len(startLines) != 1 || len(endLines) != 1 {
		return geom.Point{}, false
	}
	return geom.AutoCurvePoint(target.Segment(), startLines[0].Control(), endLines[0].Control())
}

// Find returns the shape with the given id.
func Find(shapes []Shape, id ID) (Shape, int, bool) {
	for i, s := range shapes {
		if s.Base().ID == id {
			return s, i, true
		}
	}
	return nil, -1, false
}

// IDs returns the ids of shapes in order.
func IDs(shapes []Shape) []ID {
	ids := make([]ID, len(shapes))
	for i, s := range shapes {
		ids[i] = s.Base().ID
	}
	return ids
}
