// Package camera maps between screen pixels and canvas units and keeps the
// pan/zoom transform inside the world bounds.
package camera

import (
	"math"

	"spectre/internal/geom"
)

// Camera is the pan offset in canvas units and the zoom factor.
type Camera struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Initial is the camera a new session starts with.
var Initial = Camera{X: -1150, Y: -650, Z: 1}

// Limits is the world rectangle the viewport may show and the zoom range.
type Limits struct {
	MinX, MinY float64
	MaxX, MaxY float64
	MinZ, MaxZ float64
}

// DefaultLimits is a 3600x1800 world zoomable from 0.1x to 5x.
var DefaultLimits = Limits{MinX: 0, MinY: 0, MaxX: 3600, MaxY: 1800, MinZ: 0.1, MaxZ: 5}

// ZoomStep is the increment ZoomIn and ZoomOut snap to.
const ZoomStep = 0.25

func (l Limits) clampZ(z float64) float64 {
	return math.Min(math.Max(z, l.MinZ), l.MaxZ)
}

func ScreenToCanvas(p geom.Point, c Camera) geom.Point {
	return geom.Point{X: p.X/c.Z - c.X, Y: p.Y/c.Z - c.Y}
}

func CanvasToScreen(p geom.Point, c Camera) geom.Point {
	return geom.Point{X: (p.X + c.X) * c.Z, Y: (p.Y + c.Y) * c.Z}
}

// ScreenToCanvasPressured converts the position and keeps the pressure.
func ScreenToCanvasPressured(p geom.PressuredPoint, c Camera) geom.PressuredPoint {
	q := ScreenToCanvas(p.Point(), c)
	return geom.PressuredPoint{X: q.X, Y: q.Y, Pressure: p.Pressure}
}

func CanvasToScreenPressured(p geom.PressuredPoint, c Camera) geom.PressuredPoint {
	q := CanvasToScreen(p.Point(), c)
	return geom.PressuredPoint{X: q.X, Y: q.Y, Pressure: p.Pressure}
}

// Viewport returns the canvas rectangle visible through the screen box.
func Viewport(c Camera, screen geom.Rect) geom.Rect {
	tl := ScreenToCanvas(geom.Pt(screen.MinX, screen.MinY), c)
	br := ScreenToCanvas(geom.Pt(screen.MaxX, screen.MaxY), c)
	return geom.Rect{MinX: tl.X, MinY: tl.Y, MaxX: br.X, MaxY: br.Y}
}

// Pan moves the camera by a delta in screen pixels.
func Pan(c Camera, dx, dy float64) Camera {
	return Camera{X: c.X - dx/c.Z, Y: c.Y - dy/c.Z, Z: c.Z}
}

// ZoomTo scales the zoom by (1 - dz) and shifts the camera so the canvas
// point under anchor stays under anchor.
func ZoomTo(c Camera, anchor geom.Point, dz float64, l Limits) Camera {
	return zoomAbout(c, anchor, l.clampZ(c.Z-dz*c.Z))
}

func zoomAbout(c Camera, anchor geom.Point, z float64) Camera {
	p1 := ScreenToCanvas(anchor, c)
	p2 := ScreenToCanvas(anchor, Camera{X: c.X, Y: c.Y, Z: z})
	return Camera{X: c.X + (p2.X - p1.X), Y: c.Y + (p2.Y - p1.Y), Z: z}
}

// ResetZoom returns to z=1 about the centre of the screen box.
func ResetZoom(c Camera, screen geom.Rect) Camera {
	return zoomAbout(c, screenCenter(screen), 1)
}

func screenCenter(screen geom.Rect) geom.Point {
	return geom.Pt(screen.Width()/2, screen.Height()/2)
}

// ZoomRequest is a pinch that ZoomTo can apply.
type ZoomRequest struct {
	Center geom.Point
	DZ     float64
}

// RequestZoomIn asks for the next ZoomStep multiple above the current zoom,
// anchored at the screen centre.
func RequestZoomIn(c Camera, screen geom.Rect) ZoomRequest {
	next := (math.Floor(c.Z/ZoomStep+1e-9) + 1) * ZoomStep
	return zoomRequest(c, screen, next)
}

// RequestZoomOut asks for the previous ZoomStep multiple.
func RequestZoomOut(c Camera, screen geom.Rect) ZoomRequest {
	next := (math.Ceil(c.Z/ZoomStep-1e-9) - 1) * ZoomStep
	return zoomRequest(c, screen, next)
}

func zoomRequest(c Camera, screen geom.Rect, next float64) ZoomRequest {
	return ZoomRequest{Center: screenCenter(screen), DZ: (c.Z - next) / c.Z}
}

// Clamp fits next into the limits for the given screen box. The camera
// offset can never go positive, and the far edge of the viewport can never
// pass the far edge of the world. When a camera that was inside the near
// edge would overflow the far edge, that axis pins to the near edge and
// the zoom falls back to prev's. X and Y are judged independently.
func Clamp(prev, next Camera, screen geom.Rect, l Limits) Camera {
	vp := Viewport(next, screen)
	x := math.Min(next.X, l.MinX)
	y := math.Min(next.Y, l.MinY)
	z := math.Max(next.Z, l.MinZ)

	overflowX := x-vp.Width() < -l.MaxX
	overflowY := y-vp.Height() < -l.MaxY
	if overflowX {
		x = vp.Width() - l.MaxX
	}
	if overflowY {
		y = vp.Height() - l.MaxY
	}
	if next.X >= l.MinX && overflowX {
		x = l.MinX
		z = prev.Z
	}
	if next.Y >= l.MinY && overflowY {
		y = l.MinY
		z = prev.Z
	}
	return Camera{X: x, Y: y, Z: z}
}

// Update applies fn to c and clamps the result.
func Update(c Camera, screen geom.Rect, l Limits, fn func(Camera) Camera) Camera {
	return Clamp(c, fn(c), screen, l)
}
