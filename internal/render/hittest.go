package render

import (
	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/fogleman/gg"
)

// HitTester decides stroke containment by rasterising each candidate
// around the probe point. Tolerance widens every stroke by that many
// canvas units on each side, which is how the eraser size is applied.
type HitTester struct {
	Tolerance float64
}

// HitTest returns the topmost candidate whose stroke covers p.
func (h HitTester) HitTest(p geom.Point, candidates []shape.Freeform) (shape.ID, bool) {
	for i := len(candidates) - 1; i >= 0; i-- {
		if h.covers(candidates[i], p) {
			return candidates[i].ID, true
		}
	}
	return "", false
}

func (h HitTester) covers(f shape.Freeform, p geom.Point) bool {
	reach := sizeOf(f)/2 + h.Tolerance
	if !shape.BoundsOf(f).Pad(reach + 1).Contains(p) {
		return false
	}
	// A 3x3 context centred on p; only the middle pixel is sampled.
	dc := gg.NewContext(3, 3)
	tf := func(q geom.Point) geom.Point {
		return geom.Pt(q.X-p.X+1.5, q.Y-p.Y+1.5)
	}
	drawShape(dc, f, tf, 1, 2*h.Tolerance)
	return covered(dc.Image(), 1, 1)
}
