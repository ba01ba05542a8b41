package main

func (m *model) undo() {
	if !m.editor.CanUndo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.dragging = false
	m.preview = nil
	m.edit(m.editor.Undo())
}

func (m *model) redo() {
	if !m.editor.CanRedo() {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.dragging = false
	m.preview = nil
	m.edit(m.editor.Redo())
}
