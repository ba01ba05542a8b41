package main

import (
	"fmt"
	"math"
	"strings"

	"spectre/internal/camera"
	"spectre/internal/editor"
	"spectre/internal/geom"
	"spectre/internal/render"
	"spectre/internal/shape"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	hoverFg   = lipgloss.Color("#FFA500")
	baseFg    = lipgloss.Color("#E6E6E6")
	barBg     = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#F87171")
	successFg = lipgloss.Color("#34D399")
	dimFg     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"}

	barStyle     = lipgloss.NewStyle().Foreground(baseFg).Background(barBg)
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0B0F14")).Background(accentFg).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(errorFg).Background(barBg)
	successStyle = lipgloss.NewStyle().Foreground(successFg).Background(barBg)
	dimStyle     = lipgloss.NewStyle().Foreground(dimFg)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
)

// refresh re-rasterises the canvas for the current state and window.
func (m *model) refresh() {
	m.syncHitTester()
	st := m.editor.State()
	m.grid = render.Rasterize(st.Content.Shapes, st.Camera, m.width, m.canvasRows(), m.config.CellWidth, m.config.CellHeight)
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.fileListView())
	} else {
		for _, line := range m.renderCanvas() {
			result.WriteString(line)
			result.WriteString("\n")
		}
	}
	result.WriteString(m.statusLine())
	return result.String()
}

type cell struct {
	glyph rune
	style string
}

// renderCanvas draws the grid, one styled string per row. Adjacent cells
// sharing a style are rendered as one run.
func (m model) renderCanvas() []string {
	cells, styles := m.canvasCells()
	lines := make([]string, len(cells))
	for r, row := range cells {
		lines[r] = renderRuns(row, styles)
	}
	return lines
}

// canvasText is the grid as plain glyphs.
func (m model) canvasText() []string {
	cells, _ := m.canvasCells()
	lines := make([]string, len(cells))
	for r, row := range cells {
		runes := make([]rune, len(row))
		for c, cl := range row {
			runes[c] = cl.glyph
		}
		lines[r] = string(runes)
	}
	return lines
}

// canvasCells picks a glyph and a style key for every grid cell.
func (m model) canvasCells() ([][]cell, map[string]lipgloss.Style) {
	st := m.editor.State()
	cols, rows := m.grid.Cols, m.grid.Rows

	selected := make(map[shape.ID]bool, len(st.Content.SelectedIDs))
	for _, id := range st.Content.SelectedIDs {
		selected[id] = true
	}
	hovered := make(map[shape.ID]bool, len(st.Content.HoveredIDs))
	for _, id := range st.Content.HoveredIDs {
		hovered[id] = true
	}
	shapes := make(map[shape.ID]shape.Shape, len(st.Content.Shapes))
	for _, s := range st.Content.Shapes {
		shapes[s.Base().ID] = s
	}

	styles := map[string]lipgloss.Style{
		"":         lipgloss.NewStyle(),
		"pattern":  dimStyle,
		"selected": lipgloss.NewStyle().Foreground(accentFg),
		"hovered":  lipgloss.NewStyle().Foreground(hoverFg),
	}
	styleFor := func(s shape.Shape) string {
		c := render.ColorOf(s)
		if _, ok := styles[c]; !ok {
			styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
		return c
	}

	var dotCols, dotRows []bool
	if !m.editor.Options().HideBackgroundPattern {
		dotCols, dotRows = m.patternLines(st.Camera, cols, rows)
	}

	previewCol, previewRow := -1, -1
	previewGlyph := '+'
	if m.preview != nil && st.Status == editor.StatusPen {
		previewCol, previewRow = m.cellOf(camera.CanvasToScreen(m.preview.Point, st.Camera))
		if m.preview.Snapped {
			previewGlyph = '◎'
		}
	}

	cells := make([][]cell, rows)
	for r := 0; r < rows; r++ {
		row := make([]cell, cols)
		for c := 0; c < cols; c++ {
			id := m.grid.At(c, r)
			s, ok := shapes[id]
			switch {
			case c == previewCol && r == previewRow:
				row[c] = cell{previewGlyph, "selected"}
			case !ok:
				if dotCols != nil && dotCols[c] && dotRows[r] {
					row[c] = cell{'·', "pattern"}
				} else {
					row[c] = cell{' ', ""}
				}
			case selected[id]:
				row[c] = cell{'█', "selected"}
			case hovered[id]:
				row[c] = cell{'▓', "hovered"}
			case s.Base().Editing:
				row[c] = cell{'▒', styleFor(s)}
			default:
				row[c] = cell{'█', styleFor(s)}
			}
		}
		cells[r] = row
	}
	return cells, styles
}

func renderRuns(row []cell, styles map[string]lipgloss.Style) string {
	var b strings.Builder
	var run []rune
	style := ""
	flush := func() {
		if len(run) == 0 {
			return
		}
		if style == "" {
			b.WriteString(string(run))
		} else {
			b.WriteString(styles[style].Render(string(run)))
		}
		run = run[:0]
	}
	for _, c := range row {
		if c.style != style {
			flush()
			style = c.style
		}
		run = append(run, c.glyph)
	}
	flush()
	return b.String()
}

// patternLines reports which columns and rows contain a multiple of
// patternStep in canvas space.
func (m model) patternLines(cam camera.Camera, cols, rows int) ([]bool, []bool) {
	crosses := func(a, b float64) bool {
		return math.Floor(a/patternStep) != math.Floor(b/patternStep)
	}
	dotCols := make([]bool, cols)
	for c := range dotCols {
		a := camera.ScreenToCanvas(geom.Pt(float64(c)*m.config.CellWidth, 0), cam)
		b := camera.ScreenToCanvas(geom.Pt(float64(c+1)*m.config.CellWidth, 0), cam)
		dotCols[c] = crosses(a.X, b.X)
	}
	dotRows := make([]bool, rows)
	for r := range dotRows {
		a := camera.ScreenToCanvas(geom.Pt(0, float64(r)*m.config.CellHeight), cam)
		b := camera.ScreenToCanvas(geom.Pt(0, float64(r+1)*m.config.CellHeight), cam)
		dotRows[r] = crosses(a.Y, b.Y)
	}
	return dotCols, dotRows
}

func (m model) fileListView() string {
	var result strings.Builder
	height := m.canvasRows()

	result.WriteString(titleStyle.Render("Select a saved drawing:"))
	result.WriteString("\n")
	result.WriteString(strings.Repeat("─", max(m.width, 1)))
	result.WriteString("\n")
	used := 2

	if len(m.fileList) == 0 {
		result.WriteString("(No saved drawings)\n")
		used++
	} else {
		maxFiles := max(height-used, 1)
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			if i == m.selectedFileIndex {
				result.WriteString(titleStyle.Render("> " + m.fileList[i]))
			} else {
				result.WriteString("  " + m.fileList[i])
			}
			result.WriteString("\n")
			used++
		}
	}
	for ; used < height; used++ {
		result.WriteString("\n")
	}
	return result.String()
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpSavePDF:
			opStr = "Export PDF"
		case FileOpSaveVisualTXT:
			opStr = "Export text"
		}
		statusLine = fmt.Sprintf("%s name: %s | Enter=confirm, Esc=cancel", opStr, m.filename)
		if m.fileOp == FileOpOpen {
			statusLine += " | ↑/↓=navigate"
		}
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			statusLine = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmDeleteAll:
			statusLine = fmt.Sprintf("Delete all %d shapes? (y/n)", len(m.editor.State().Content.Shapes))
		case ConfirmOverwriteFile:
			statusLine = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
	default:
		st := m.editor.State()
		statusLine = fmt.Sprintf("Zoom: %.0f%% | Shapes: %d", st.Camera.Z*100, len(st.Content.Shapes))
		if n := len(st.Content.SelectedIDs); n > 0 {
			statusLine += fmt.Sprintf(" | Selected: %d", n)
		}
		statusLine += fmt.Sprintf(" | Pen: %.0f", st.Theme.PenSize)
		if m.drawing != "" {
			name := m.drawing
			if m.modified {
				name += "*"
			}
			statusLine += " | " + name
		}
	}

	mode := modeStyle.Render(m.modeString())
	var tail string
	switch {
	case m.errorMessage != "":
		tail = errorStyle.Render(" | ERROR: " + m.errorMessage)
	case m.successMessage != "":
		tail = successStyle.Render(" | " + m.successMessage)
	case m.mode == ModeNormal:
		tail = barStyle.Render(" | ? for help | q to quit")
	}
	line := mode + barStyle.Render(" "+statusLine) + tail
	return barStyle.Width(max(m.width, 1)).MaxWidth(max(m.width, 1)).Render(line)
}

func (m model) modeString() string {
	switch m.mode {
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	}
	switch m.editor.State().Status {
	case editor.StatusIdle:
		return "SELECT"
	case editor.StatusPan:
		return "PAN"
	case editor.StatusDraw:
		return "DRAW"
	case editor.StatusCurve:
		return "CURVE"
	case editor.StatusPen:
		return "PEN"
	case editor.StatusFreehand:
		return "FREEHAND"
	case editor.StatusErase:
		return "ERASE"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"Spectre Help",
		"============",
		"",
		"Tools:",
		"------",
		"  s                Select and move shapes (shift+click adds to selection)",
		"  g                Pan by dragging",
		"  d                Draw straight lines (shift snaps to 15°)",
		"  p                Pen: click vertices, click the start again to stop",
		"                   (shift snaps to 15°, alt ignores endpoint snapping)",
		"  c                Curve the selected line by dragging its control point",
		"  f                Freehand strokes",
		"  e                Erase freehand strokes",
		"",
		"Editing:",
		"--------",
		"  u / Ctrl+Z       Undo",
		"  U / Ctrl+Y       Redo",
		"  a                Select all",
		"  x / Del          Delete selection",
		"  X                Delete everything",
		"  A                Auto-curve selected lines into their neighbours",
		"  y / P            Copy / paste selection via the clipboard",
		"  [ / ]            Thinner / thicker pen",
		"  Esc              Cancel the current stroke or clear the selection",
		"",
		"View:",
		"-----",
		"  h/j/k/l, arrows  Scroll (shift scrolls faster)",
		"  wheel            Scroll (shift for horizontal, ctrl to zoom)",
		"  + / -            Zoom in / out",
		"  0                Zoom to 100%",
		"  r                Reset the view",
		"  b                Toggle the background pattern",
		"",
		"Files:",
		"------",
		"  Ctrl+S / S       Save / save as",
		"  o                Open",
		"  E / W / T        Export PNG / PDF / the view as text",
		"",
		"Press ? or Esc to close this help",
	}
	if m.height > 0 && len(helpLines) > m.height {
		helpLines = helpLines[:m.height]
	}
	helpLines[0] = titleStyle.Render(helpLines[0])
	return strings.Join(helpLines, "\n")
}
