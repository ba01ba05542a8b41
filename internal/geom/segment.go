package geom

// DefaultSnapDelta is how close, in canvas units, a point must be to an
// existing endpoint before it snaps onto it.
const DefaultSnapDelta = 7.0

// DefaultConnectThreshold is how close two endpoints must be to count as
// the same vertex.
const DefaultConnectThreshold = 1.0

// Segment is a straight segment between two points.
type Segment struct {
	Start Point
	End   Point
}

func Seg(start, end Point) Segment { return Segment{Start: start, End: end} }

func (s Segment) Length() float64 { return Distance(s.Start, s.End) }

func (s Segment) degenerate() bool {
	return s.Start.X == s.End.X && s.Start.Y == s.End.Y
}

// intersectParams returns the parameters along l1 and l2 of the crossing
// of their infinite extensions.
func intersectParams(l1, l2 Segment) (ua, ub float64, ok bool) {
	denom := (l2.End.Y-l2.Start.Y)*(l1.End.X-l1.Start.X) -
		(l2.End.X-l2.Start.X)*(l1.End.Y-l1.Start.Y)
	if denom == 0 {
		return 0, 0, false
	}
	a := l1.Start.Y - l2.Start.Y
	b := l1.Start.X - l2.Start.X
	ua = ((l2.End.X-l2.Start.X)*a - (l2.End.Y-l2.Start.Y)*b) / denom
	ub = ((l1.End.X-l1.Start.X)*a - (l1.End.Y-l1.Start.Y)*b) / denom
	return ua, ub, true
}

func (s Segment) at(t float64) Point {
	return Point{
		X: s.Start.X + t*(s.End.X-s.Start.X),
		Y: s.Start.Y + t*(s.End.Y-s.Start.Y),
	}
}

// LineLineIntersection intersects the infinite lines through l1 and l2.
// ok is false when they are parallel.
func LineLineIntersection(l1, l2 Segment) (Point, bool) {
	ua, _, ok := intersectParams(l1, l2)
	if !ok {
		return Point{}, false
	}
	return l1.at(ua), true
}

// SegmentIntersection is the bounded variant of LineLineIntersection: the
// crossing must lie on both segments, and neither may have zero length.
func SegmentIntersection(l1, l2 Segment) (Point, bool) {
	if l1.degenerate() || l2.degenerate() {
		return Point{}, false
	}
	ua, ub, ok := intersectParams(l1, l2)
	if !ok || ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}
	return l1.at(ua), true
}

// NearestSnapPoint scans segs in order and returns the first endpoint
// within delta of p. An endpoint exactly at p does not count.
func NearestSnapPoint(p Point, segs []Segment, delta float64) (Point, bool) {
	for _, s := range segs {
		if d := Distance(p, s.Start); d <= delta && d > 0 {
			return s.Start, true
		}
		if d := Distance(p, s.End); d <= delta && d > 0 {
			return s.End, true
		}
	}
	return Point{}, false
}

// EndpointAt reports whether some segment starts or ends exactly at p.
func EndpointAt(p Point, segs []Segment) bool {
	for _, s := range segs {
		if s.Start == p || s.End == p {
			return true
		}
	}
	return false
}

// Connected returns the indexes of the segments that start or end within
// threshold of p.
func Connected(p Point, segs []Segment, threshold float64) []int {
	var idx []int
	for i, s := range segs {
		if Distance(s.Start, p) < threshold || Distance(s.End, p) < threshold {
			idx = append(idx, i)
		}
	}
	return idx
}

// AutoCurvePoint finds a control point for target by crossing the ray from
// startControl through target.Start with the ray from endControl through
// target.End. The controls are the curve points of the two neighbouring
// lines. ok is false when the rays are parallel.
func AutoCurvePoint(target Segment, startControl, endControl Point) (Point, bool) {
	return LineLineIntersection(
		Seg(startControl, target.Start),
		Seg(endControl, target.End),
	)
}
