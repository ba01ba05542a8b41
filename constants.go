package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSavePDF
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmDeleteAll ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	// A terminal cell stands for this many screen pixels.
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0

	// Terminals report no pen pressure.
	mousePressure = 0.5

	// Canvas units between background dots.
	patternStep = 100.0

	// Pinch step per wheel notch while ctrl is held.
	wheelZoom = 0.1
	// Wheel notch pan, in cells.
	wheelPan = 3

	// Offset applied to pasted shapes, in canvas units.
	pasteOffset = 20.0

	penSizeStep = 1.0
	minPenSize  = 1.0
	maxPenSize  = 32.0
)
