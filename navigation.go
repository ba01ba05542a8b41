package main

import (
	"math"

	"spectre/internal/geom"
)

// handleNavigation scrolls the canvas by speed cells.
func (m *model) handleNavigation(key string, speed int) {
	dx := float64(speed) * m.config.CellWidth
	dy := float64(speed) * m.config.CellHeight
	switch key {
	case "h", "left", "H", "shift+left":
		m.check(m.editor.Pan(-dx, 0))
	case "l", "right", "L", "shift+right":
		m.check(m.editor.Pan(dx, 0))
	case "k", "up", "K", "shift+up":
		m.check(m.editor.Pan(0, -dy))
	case "j", "down", "J", "shift+down":
		m.check(m.editor.Pan(0, dy))
	}
}

func (m *model) handleZoom(key string) {
	switch key {
	case "+", "=":
		m.check(m.editor.ZoomIn())
	case "-":
		m.check(m.editor.ZoomOut())
	case "0":
		m.check(m.editor.ResetZoom())
	case "r":
		m.check(m.editor.ResetCamera())
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 8
	default:
		return 2
	}
}

// canvasRows is the height of the drawing area; the last row is the
// status line.
func (m *model) canvasRows() int {
	return max(m.height-1, 0)
}

// screenRect is the drawing area in screen pixels.
func (m *model) screenRect() geom.Rect {
	return geom.Rect{
		MaxX: float64(m.width) * m.config.CellWidth,
		MaxY: float64(m.canvasRows()) * m.config.CellHeight,
	}
}

// screenPoint maps a terminal cell to the screen pixel at its centre.
func (m *model) screenPoint(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*m.config.CellWidth, (float64(row)+0.5)*m.config.CellHeight)
}

// cellOf maps a screen pixel back to its cell.
func (m *model) cellOf(p geom.Point) (col, row int) {
	return int(math.Floor(p.X / m.config.CellWidth)), int(math.Floor(p.Y / m.config.CellHeight))
}
