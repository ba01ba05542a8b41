package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// PNGOptions control raster export.
type PNGOptions struct {
	// Scale is device pixels per canvas unit. Zero means 1.
	Scale float64
	// Padding is the margin around the drawing in canvas units.
	Padding float64
	// Labels prints each line's length at its midpoint.
	Labels bool
}

// Image draws shapes on a white background cropped to their bounds.
func Image(shapes []shape.Shape, opts PNGOptions) (image.Image, error) {
	if len(shapes) == 0 {
		return nil, ErrNothingToExport
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	bounds := geom.EmptyRect()
	for _, s := range shapes {
		bounds = bounds.Union(shape.BoundsOf(s).Pad(sizeOf(s) / 2))
	}
	bounds = bounds.Pad(opts.Padding)

	width := int(math.Ceil(bounds.Width() * scale))
	height := int(math.Ceil(bounds.Height() * scale))
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetColor(color.White)
	dc.Clear()

	tf := func(p geom.Point) geom.Point {
		return geom.Pt((p.X-bounds.MinX)*scale, (p.Y-bounds.MinY)*scale)
	}
	for _, s := range shapes {
		drawShape(dc, s, tf, scale, 0)
	}

	if opts.Labels {
		ttfFont, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %v", err)
		}
		face := truetype.NewFace(ttfFont, &truetype.Options{
			Size:    12,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		dc.SetColor(color.Black)
		for _, l := range shape.Lines(shapes) {
			m := tf(l.Midpoint())
			dc.DrawStringAnchored(strconv.FormatFloat(l.Length(), 'f', 0, 64), m.X, m.Y-8, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// ExportPNG writes shapes to filename as a PNG.
func ExportPNG(filename string, shapes []shape.Shape, opts PNGOptions) error {
	img, err := Image(shapes, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}
