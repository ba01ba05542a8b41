// Package render rasterises shapes: hit-testing for the eraser, the
// terminal cell grid, and PNG and PDF export.
package render

import (
	"errors"
	"image"

	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/fogleman/gg"
)

const (
	DefaultColor = "#10293c"
	DefaultSize  = 4.0
)

// ErrNothingToExport is returned when there are no shapes to draw.
var ErrNothingToExport = errors.New("nothing to export")

// ColorOf is the stroke colour of s, falling back to DefaultColor.
func ColorOf(s shape.Shape) string {
	if c := s.Base().Color; c != "" {
		return c
	}
	return DefaultColor
}

func sizeOf(s shape.Shape) float64 {
	if z := s.Base().Size; z > 0 {
		return z
	}
	return DefaultSize
}

// pressureWidth thins a stroke where the pen was pressed lightly.
func pressureWidth(size, pressure float64) float64 {
	return size * (0.5 + 0.5*pressure)
}

// transform maps canvas points into a drawing context.
type transform func(geom.Point) geom.Point

// drawShape strokes s onto dc. widthScale converts canvas units to device
// units for the stroke width; extra widens it, which the hit tester uses
// as eraser radius.
func drawShape(dc *gg.Context, s shape.Shape, tf transform, widthScale, extra float64) {
	size := sizeOf(s)
	dc.SetHexColor(ColorOf(s))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	switch s := s.(type) {
	case shape.Line:
		dc.SetLineWidth(size*widthScale + extra)
		a, b := tf(s.Start), tf(s.End)
		dc.MoveTo(a.X, a.Y)
		if s.Curve != nil {
			c := tf(*s.Curve)
			dc.QuadraticTo(c.X, c.Y, b.X, b.Y)
		} else {
			dc.LineTo(b.X, b.Y)
		}
		dc.Stroke()
	case shape.Freeform:
		if len(s.Points) == 1 {
			p := tf(s.Points[0].Point())
			dc.DrawCircle(p.X, p.Y, (pressureWidth(size, s.Points[0].Pressure)*widthScale+extra)/2)
			dc.Fill()
			return
		}
		for i := 1; i < len(s.Points); i++ {
			a, b := tf(s.Points[i-1].Point()), tf(s.Points[i].Point())
			dc.SetLineWidth(pressureWidth(size, s.Points[i].Pressure)*widthScale + extra)
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
			dc.Stroke()
		}
	}
}

// covered reports whether the pixel at x, y has any ink.
func covered(img image.Image, x, y int) bool {
	_, _, _, a := img.At(x, y).RGBA()
	return a > 0
}
