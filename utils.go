package main

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"

	"spectre/internal/shape"

	"github.com/atotto/clipboard"
)

// copySelection puts the selected shapes on the system clipboard as JSON.
func (m *model) copySelection() {
	selected := m.editor.SelectedShapes()
	if len(selected) == 0 {
		m.errorMessage = "Nothing selected"
		return
	}
	data, err := json.Marshal(shape.List(selected))
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d shapes", len(selected))
}

// pasteClipboard inserts shapes copied by copySelection, nudged so they
// do not sit exactly on the originals.
func (m *model) pasteClipboard() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	var shapes shape.List
	if err := json.Unmarshal([]byte(text), &shapes); err != nil {
		m.errorMessage = "Clipboard holds no shapes"
		return
	}
	ids, err := m.editor.Paste(shapes, pasteOffset, pasteOffset)
	if !m.check(err) {
		return
	}
	if len(ids) > 0 {
		m.modified = true
		m.successMessage = fmt.Sprintf("Pasted %d shapes", len(ids))
	}
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}
