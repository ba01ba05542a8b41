package main

import (
	"spectre/internal/editor"
	"spectre/internal/geom"
	"spectre/internal/shape"

	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse turns terminal mouse events into editor gestures. Each
// cell stands for the screen pixel at its centre. Shift snaps to angles
// and alt ignores endpoint snapping for the pen.
func (m *model) handleMouse(msg tea.MouseMsg) {
	p := m.screenPoint(msg.X, msg.Y)
	dx := float64(msg.X-m.mouseX) * m.config.CellWidth
	dy := float64(msg.Y-m.mouseY) * m.config.CellHeight
	m.mouseX, m.mouseY = msg.X, msg.Y

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
		tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		m.handleWheel(msg, p)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= m.canvasRows() {
			return
		}
		m.press(p, msg)
	case tea.MouseActionMotion:
		if m.dragging {
			m.drag(p, dx, dy, msg)
		} else if msg.Y < m.canvasRows() {
			m.hover(p, msg)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.release()
		}
	}
}

func (m *model) handleWheel(msg tea.MouseMsg, p geom.Point) {
	if msg.Ctrl {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.check(m.editor.Pinch(p, -wheelZoom))
		case tea.MouseButtonWheelDown:
			m.check(m.editor.Pinch(p, wheelZoom))
		}
		return
	}
	dx := wheelPan * m.config.CellWidth
	dy := wheelPan * m.config.CellHeight
	switch {
	case msg.Button == tea.MouseButtonWheelLeft,
		msg.Button == tea.MouseButtonWheelUp && msg.Shift:
		m.check(m.editor.Pan(-dx, 0))
	case msg.Button == tea.MouseButtonWheelRight,
		msg.Button == tea.MouseButtonWheelDown && msg.Shift:
		m.check(m.editor.Pan(dx, 0))
	case msg.Button == tea.MouseButtonWheelUp:
		m.check(m.editor.Pan(0, -dy))
	case msg.Button == tea.MouseButtonWheelDown:
		m.check(m.editor.Pan(0, dy))
	}
}

func (m *model) press(p geom.Point, msg tea.MouseMsg) {
	e := m.editor
	switch e.State().Status {
	case editor.StatusIdle:
		id := m.shapeAt(msg.X, msg.Y)
		if !m.check(e.Select(id, msg.Shift)) || id == "" || msg.Shift {
			return
		}
		m.dragging = m.check(e.MoveStart())
	case editor.StatusPan:
		m.dragging = true
	case editor.StatusDraw:
		m.dragging = m.check(e.DrawStart(p))
	case editor.StatusCurve:
		if id := m.shapeAt(msg.X, msg.Y); id != "" {
			if !m.check(e.Select(id, false)) {
				return
			}
		}
		if len(shape.Lines(e.SelectedShapes())) == 0 {
			m.errorMessage = "Select a line to curve"
			return
		}
		m.dragging = m.check(e.CurveStart()) && m.check(e.CurveMove(p))
	case editor.StatusPen:
		m.edit(e.PenClick(p, msg.Shift, msg.Alt))
		m.preview = nil
	case editor.StatusFreehand:
		m.dragging = m.check(e.FreehandStart(p.WithPressure(mousePressure)))
	case editor.StatusErase:
		m.dragging = m.check(e.EraseStart(p.WithPressure(mousePressure)))
	}
}

func (m *model) drag(p geom.Point, dx, dy float64, msg tea.MouseMsg) {
	e := m.editor
	switch e.Gesture() {
	case editor.GestureMove:
		m.check(e.MoveBy(dx, dy))
	case editor.GestureDraw:
		_, err := e.DrawMove(p, msg.Shift)
		m.check(err)
	case editor.GestureCurve:
		m.check(e.CurveMove(p))
	case editor.GestureFreehand:
		m.check(e.FreehandMove(p.WithPressure(mousePressure)))
	case editor.GestureErase:
		m.check(e.EraseMove(p.WithPressure(mousePressure)))
	case editor.GestureNone:
		if e.State().Status == editor.StatusPan {
			m.check(e.Pan(-dx, -dy))
		}
	}
}

func (m *model) release() {
	m.dragging = false
	e := m.editor
	switch e.Gesture() {
	case editor.GestureMove:
		m.edit(e.MoveEnd())
	case editor.GestureDraw:
		m.edit(e.DrawEnd())
	case editor.GestureCurve:
		m.edit(e.CurveEnd())
	case editor.GestureFreehand:
		m.edit(e.FreehandEnd())
	case editor.GestureErase:
		m.edit(e.EraseEnd())
	}
}

// hover previews the pen's next vertex, or highlights the shape under
// the pointer for the other tools.
func (m *model) hover(p geom.Point, msg tea.MouseMsg) {
	e := m.editor
	if e.State().Status == editor.StatusPen {
		preview, err := e.PenMove(p, msg.Shift)
		if m.check(err) {
			m.preview = &preview
		}
		return
	}
	if e.Gesture() == editor.GestureNone {
		m.check(e.SetHovered(m.shapeAt(msg.X, msg.Y)))
	}
}

// shapeAt returns the topmost shape drawn in a cell.
func (m *model) shapeAt(col, row int) shape.ID {
	return m.grid.At(col, row)
}
