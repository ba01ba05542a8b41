package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"spectre/internal/editor"
	"spectre/internal/render"
	"spectre/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()

	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "spectre")
		if err != nil {
			fmt.Fprintln(os.Stderr, "log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	if config.loadErr != nil {
		log.Printf("[config] ignoring ~/.spectrerc: %v", config.loadErr)
	}

	st, err := store.Open(config.Store, config.storeDir())
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	m := initialModel(config, st)
	if len(os.Args) > 1 {
		m.openDrawing(os.Args[1])
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, st store.Store) model {
	app := editor.InitialApp()
	app.Theme = config.theme()

	m := model{
		config: config,
		store:  st,
		editor: editor.New(
			editor.WithState(app),
			editor.WithLogger(log.Default()),
			editor.WithHistoryDepth(config.HistoryDepth),
			editor.WithOptions(config.editorOptions()),
		),
		selectedFileIndex: -1,
	}
	m.syncHitTester()
	return m
}

// syncHitTester sizes the eraser to the current theme. The theme moves
// with SetTheme, undo, redo and open, so this runs on every refresh.
func (m *model) syncHitTester() {
	m.editor.SetHitTester(render.HitTester{Tolerance: m.editor.State().Theme.EraserSize / 2})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetViewport(m.screenRect())

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}
		m.errorMessage = ""
		switch m.mode {
		case ModeFileInput:
			cmd = m.handleFileInput(msg)
		case ModeConfirm:
			cmd = m.handleConfirm(msg)
		default:
			cmd = m.handleKey(msg)
		}
	}
	m.refresh()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.successMessage = ""
	key := msg.String()
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.modified {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.cancel()

	case "s":
		m.setStatus(editor.StatusIdle)
	case "g":
		m.setStatus(editor.StatusPan)
	case "d":
		m.setStatus(editor.StatusDraw)
	case "c":
		m.setStatus(editor.StatusCurve)
	case "p":
		m.setStatus(editor.StatusPen)
	case "f":
		m.setStatus(editor.StatusFreehand)
	case "e":
		m.setStatus(editor.StatusErase)

	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y", "ctrl+r":
		m.redo()

	case "a":
		m.edit(m.editor.SelectAll())
	case "x", "delete", "backspace":
		m.edit(m.editor.DeleteSelected())
	case "X":
		if len(m.editor.State().Content.Shapes) > 0 {
			m.confirm(ConfirmDeleteAll)
		}
	case "A":
		m.autoCurveSelection()
	case "y":
		m.copySelection()
	case "P":
		m.pasteClipboard()
	case "[":
		m.adjustPenSize(-penSizeStep)
	case "]":
		m.adjustPenSize(penSizeStep)
	case "b":
		opts := m.editor.Options()
		opts.HideBackgroundPattern = !opts.HideBackgroundPattern
		m.editor.SetOptions(opts)

	case "+", "=", "-", "0", "r":
		m.handleZoom(key)
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))

	case "ctrl+s":
		if m.drawing != "" {
			m.saveDrawing(m.drawing)
		} else {
			m.startFileInput(FileOpSave)
		}
	case "S":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "E":
		m.startFileInput(FileOpSavePNG)
	case "W":
		m.startFileInput(FileOpSavePDF)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	}
	return nil
}

func (m *model) setStatus(s editor.Status) {
	m.dragging = false
	m.preview = nil
	m.check(m.editor.SetStatus(s))
}

// cancel abandons an open gesture, or clears the selection when there is
// none.
func (m *model) cancel() {
	m.dragging = false
	m.preview = nil
	if m.editor.Gesture() != editor.GestureNone {
		m.check(m.editor.CancelGesture())
		return
	}
	if len(m.editor.State().Content.SelectedIDs) > 0 {
		m.edit(m.editor.Select("", false))
	}
}

func (m *model) autoCurveSelection() {
	curved := 0
	for _, id := range m.editor.State().Content.SelectedIDs {
		ok, err := m.editor.AutoCurveLine(id)
		if !m.check(err) {
			return
		}
		if ok {
			curved++
		}
	}
	if curved > 0 {
		m.modified = true
		m.successMessage = fmt.Sprintf("Curved %d lines", curved)
	} else {
		m.errorMessage = "Nothing to curve"
	}
}

func (m *model) adjustPenSize(delta float64) {
	size := m.editor.State().Theme.PenSize + delta
	size = max(minPenSize, min(maxPenSize, size))
	if m.check(m.editor.SetTheme(editor.ThemeUpdate{PenSize: &size})) {
		m.successMessage = fmt.Sprintf("Pen size %.0f", size)
	}
}

func (m *model) confirm(action ConfirmAction) {
	m.mode = ModeConfirm
	m.confirmAction = action
}

func (m *model) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmDeleteAll:
			m.edit(m.editor.DeleteAll())
		case ConfirmOverwriteFile:
			m.runFileOp(m.filename, true)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = m.drawing
	m.fileList = nil
	m.selectedFileIndex = -1
	if op == FileOpOpen {
		m.scanDrawings()
	}
}

func (m *model) handleFileInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
	case msg.Type == tea.KeyEnter:
		if m.filename == "" {
			m.errorMessage = "Filename cannot be empty"
			return nil
		}
		m.runFileOp(m.filename, false)
	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			runes := []rune(m.filename)
			m.filename = string(runes[:len(runes)-1])
		}
	case msg.Type == tea.KeyUp && m.fileOp == FileOpOpen:
		if m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.filename = m.fileList[m.selectedFileIndex]
		}
	case msg.Type == tea.KeyDown && m.fileOp == FileOpOpen:
		if m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.filename = m.fileList[m.selectedFileIndex]
		}
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return nil
}

// runFileOp performs the pending file operation on name. Exports ask
// before replacing an existing file unless overwrite is set.
func (m *model) runFileOp(name string, overwrite bool) {
	var ok bool
	switch m.fileOp {
	case FileOpSave:
		ok = m.saveDrawing(name)
	case FileOpOpen:
		ok = m.openDrawing(name)
	case FileOpSavePNG, FileOpSavePDF, FileOpSaveVisualTXT:
		path := m.exportPath(name)
		if !overwrite && fileExists(path) {
			m.pendingPath = path
			m.confirm(ConfirmOverwriteFile)
			return
		}
		ok = m.export(path)
	}
	if ok {
		m.mode = ModeNormal
	}
}

// edit records the outcome of a content change.
func (m *model) edit(err error) {
	if m.check(err) {
		m.modified = true
	}
}

// check surfaces err on the status line and reports whether it was nil.
func (m *model) check(err error) bool {
	if err != nil {
		m.errorMessage = err.Error()
		return false
	}
	return true
}
