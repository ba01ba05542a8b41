// Package geom holds the pure 2D math behind drawing: distances, angles,
// quadratic curves, segment intersection and endpoint snapping.
//
// Nothing here panics or returns errors. Degenerate input (parallel lines,
// zero-length segments, no snap candidate) is reported with ok=false or a
// nil pointer and the caller decides what to do.
package geom

import (
	"math"
)

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PressuredPoint is a Point carrying input-device pressure in [0,1].
type PressuredPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// DefaultPressure is used when the input device reports none.
const DefaultPressure = 1.0

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// PP returns a pressured point. A pressure outside [0,1] is clamped.
func PP(x, y, pressure float64) PressuredPoint {
	return PressuredPoint{X: x, Y: y, Pressure: math.Min(math.Max(pressure, 0), 1)}
}

func (p PressuredPoint) Point() Point { return Point{X: p.X, Y: p.Y} }

func (p Point) WithPressure(pressure float64) PressuredPoint {
	return PP(p.X, p.Y, pressure)
}

func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

func (p PressuredPoint) Add(dx, dy float64) PressuredPoint {
	return PressuredPoint{X: p.X + dx, Y: p.Y + dy, Pressure: p.Pressure}
}

func Distance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

func Midpoint(p1, p2 Point) Point {
	return Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
}

// RoundPoint rounds both coordinates to the nearest integer.
func RoundPoint(p Point) Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// QuadraticBezierPoint evaluates the quadratic curve from p1 to p2 with
// control point c at t in [0,1].
func QuadraticBezierPoint(p1, p2, c Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p1.X + 2*mt*t*c.X + t*t*p2.X,
		Y: mt*mt*p1.Y + 2*mt*t*c.Y + t*t*p2.Y,
	}
}

// NormalizeAngle maps any angle in degrees into [0,360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// AngleBetween returns the direction from p1 to p2 in degrees in [0,360),
// counter-clockwise as seen on screen (y grows downward), 0 pointing right.
func AngleBetween(p1, p2 Point) float64 {
	return NormalizeAngle(180 - math.Atan2(p1.Y-p2.Y, p1.X-p2.X)*180/math.Pi)
}

// NearestMultiple returns a rounding function for the given step.
func NearestMultiple(step float64) func(float64) float64 {
	return func(v float64) float64 {
		if step == 0 {
			return v
		}
		return math.Round(v/step) * step
	}
}

// RotatePoint rotates point around pivot by angle degrees, using the same
// screen-space orientation as AngleBetween.
func RotatePoint(pivot, point Point, angle float64) Point {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx, dy := point.X-pivot.X, point.Y-pivot.Y
	return Point{
		X: cos*dx + sin*dy + pivot.X,
		Y: cos*dy - sin*dx + pivot.Y,
	}
}

// SnapToAngle rotates point around origin so the direction origin->point
// lands on the nearest multiple of step degrees. The distance is kept.
func SnapToAngle(origin, point Point, step float64) Point {
	angle := AngleBetween(origin, point)
	return RotatePoint(origin, point, NearestMultiple(step)(angle)-angle)
}

// DistanceToSegment is the distance from p to the closest point of the
// segment a-b. A zero-length segment behaves like the point a.
func DistanceToSegment(p, a, b Point) float64 {
	cx, cy := b.X-a.X, b.Y-a.Y
	lenSq := cx*cx + cy*cy
	param := -1.0
	if lenSq != 0 {
		param = ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
	}
	var closest Point
	switch {
	case param < 0:
		closest = a
	case param > 1:
		closest = b
	default:
		closest = Point{X: a.X + param*cx, Y: a.Y + param*cy}
	}
	return Distance(p, closest)
}
