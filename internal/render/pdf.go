package render

import (
	"fmt"
	"io"
	"math"

	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
)

const pdfMargin = 36.0

// newPDF lays shapes out on one landscape A4 page, scaled to fit inside
// the margins.
func newPDF(shapes []shape.Shape) (*gofpdf.Fpdf, error) {
	if len(shapes) == 0 {
		return nil, ErrNothingToExport
	}
	p := gofpdf.New("L", "pt", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	pageW, pageH := p.GetPageSize()
	bounds := geom.EmptyRect()
	for _, s := range shapes {
		bounds = bounds.Union(shape.BoundsOf(s))
	}
	k := 1.0
	if w, h := bounds.Width(), bounds.Height(); w > 0 || h > 0 {
		k = math.Min((pageW-2*pdfMargin)/math.Max(w, 1), (pageH-2*pdfMargin)/math.Max(h, 1))
	}
	tf := func(q geom.Point) geom.Point {
		return geom.Pt(pdfMargin+(q.X-bounds.MinX)*k, pdfMargin+(q.Y-bounds.MinY)*k)
	}

	for _, s := range shapes {
		c, err := colorful.Hex(ColorOf(s))
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", s.Base().ID, err)
		}
		r, g, b := c.RGB255()
		p.SetDrawColor(int(r), int(g), int(b))
		size := sizeOf(s)

		switch s := s.(type) {
		case shape.Line:
			p.SetLineWidth(size * k)
			a, e := tf(s.Start), tf(s.End)
			p.MoveTo(a.X, a.Y)
			if s.Curve != nil {
				cp := tf(*s.Curve)
				p.CurveTo(cp.X, cp.Y, e.X, e.Y)
			} else {
				p.LineTo(e.X, e.Y)
			}
			p.DrawPath("D")
		case shape.Freeform:
			if len(s.Points) == 1 {
				dot := tf(s.Points[0].Point())
				p.SetFillColor(int(r), int(g), int(b))
				p.Circle(dot.X, dot.Y, pressureWidth(size, s.Points[0].Pressure)*k/2, "F")
				continue
			}
			for i := 1; i < len(s.Points); i++ {
				a, e := tf(s.Points[i-1].Point()), tf(s.Points[i].Point())
				p.SetLineWidth(pressureWidth(size, s.Points[i].Pressure) * k)
				p.Line(a.X, a.Y, e.X, e.Y)
			}
		}
	}
	return p, p.Error()
}

// WritePDF renders shapes as a one-page PDF to w.
func WritePDF(w io.Writer, shapes []shape.Shape) error {
	p, err := newPDF(shapes)
	if err != nil {
		return err
	}
	return p.Output(w)
}

// ExportPDF writes shapes to filename as a PDF.
func ExportPDF(filename string, shapes []shape.Shape) error {
	p, err := newPDF(shapes)
	if err != nil {
		return err
	}
	return p.OutputFileAndClose(filename)
}
