package render

import (
	"spectre/internal/camera"
	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/fogleman/gg"
)

// Grid is a coarse raster of the screen, one cell per terminal character.
// Each cell holds the id of the topmost shape covering it, or "".
type Grid struct {
	Cols, Rows int
	Cells      [][]shape.ID
}

// At returns the shape id in a cell; out-of-range cells are empty.
func (g Grid) At(col, row int) shape.ID {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return ""
	}
	return g.Cells[row][col]
}

// Rasterize draws shapes, back to front, as seen through cam on a screen
// of cols x rows cells each cellW x cellH pixels.
func Rasterize(shapes []shape.Shape, cam camera.Camera, cols, rows int, cellW, cellH float64) Grid {
	g := Grid{Cols: cols, Rows: rows, Cells: make([][]shape.ID, rows)}
	for r := range g.Cells {
		g.Cells[r] = make([]shape.ID, cols)
	}
	if cols <= 0 || rows <= 0 {
		return g
	}
	tf := func(p geom.Point) geom.Point {
		s := camera.CanvasToScreen(p, cam)
		return geom.Pt(s.X/cellW, s.Y/cellH)
	}
	view := camera.Viewport(cam, geom.Rect{MaxX: float64(cols) * cellW, MaxY: float64(rows) * cellH})
	for _, s := range shapes {
		b := shape.BoundsOf(s).Pad(sizeOf(s))
		if b.MaxX < view.MinX || b.MinX > view.MaxX || b.MaxY < view.MinY || b.MinY > view.MaxY {
			continue
		}
		dc := gg.NewContext(cols, rows)
		// Keep strokes at least one cell wide so thin lines stay visible.
		scale := cam.Z / cellW
		if sizeOf(s)*scale < 1 {
			scale = 1 / sizeOf(s)
		}
		drawShape(dc, s, tf, scale, 0)
		img := dc.Image()
		id := s.Base().ID
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if covered(img, c, r) {
					g.Cells[r][c] = id
				}
			}
		}
	}
	return g
}
