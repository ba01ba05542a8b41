package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spectre/internal/render"
	"spectre/internal/store"
)

func (m *model) saveDrawing(name string) bool {
	doc := store.Snapshot(m.editor, m.config.HistoryDepth)
	if err := m.store.Save(context.Background(), name, doc); err != nil {
		m.errorMessage = err.Error()
		return false
	}
	m.drawing = name
	m.modified = false
	m.successMessage = fmt.Sprintf("Saved %s", name)
	return true
}

func (m *model) openDrawing(name string) bool {
	doc, err := m.store.Load(context.Background(), name)
	if err == nil {
		err = doc.Restore(m.editor)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.errorMessage = fmt.Sprintf("No drawing named %s", name)
		} else {
			m.errorMessage = err.Error()
		}
		return false
	}
	m.editor.SetViewport(m.screenRect())
	m.drawing = name
	m.modified = false
	m.successMessage = fmt.Sprintf("Opened %s", name)
	return true
}

func (m *model) scanDrawings() {
	names, err := m.store.List(context.Background())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.fileList = names
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	}
}

func (m *model) exportPath(name string) string {
	ext := ".png"
	switch m.fileOp {
	case FileOpSavePDF:
		ext = ".pdf"
	case FileOpSaveVisualTXT:
		ext = ".txt"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return m.config.GetSavePath(name)
}

func (m *model) export(path string) bool {
	shapes := m.editor.State().Content.Shapes
	var err error
	switch {
	case strings.HasSuffix(path, ".pdf"):
		err = render.ExportPDF(path, shapes)
	case strings.HasSuffix(path, ".txt"):
		err = m.exportVisualTXT(path)
	default:
		err = render.ExportPNG(path, shapes, render.PNGOptions{Scale: 2, Padding: 20, Labels: true})
	}
	m.pendingPath = ""
	if err != nil {
		m.errorMessage = err.Error()
		return false
	}
	m.successMessage = fmt.Sprintf("Exported %s", filepath.Base(path))
	return true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// exportVisualTXT writes the canvas as it appears on screen, without
// colour, the pen preview or the status line.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	plain := *m
	plain.preview = nil
	for _, line := range plain.canvasText() {
		fmt.Fprintln(file, strings.TrimRight(line, " "))
	}
	return nil
}
