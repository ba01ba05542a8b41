package main

import (
	"spectre/internal/editor"
	"spectre/internal/render"
	"spectre/internal/store"
)

type model struct {
	width  int
	height int

	editor   *editor.Editor
	store    store.Store
	config   *Config
	drawing  string // name the drawing was last saved or opened as
	modified bool

	// Last mouse cell, used for drag deltas.
	mouseX, mouseY int
	dragging       bool
	preview        *editor.PenPreview

	// Rebuilt after every update; View and hit lookups read it.
	grid render.Grid

	mode              Mode
	help              bool
	fileOp            FileOperation
	filename          string
	fileList          []string
	selectedFileIndex int
	confirmAction     ConfirmAction
	pendingPath       string

	errorMessage   string
	successMessage string
}
