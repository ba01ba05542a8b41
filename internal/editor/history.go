package editor

import (
	"spectre/internal/camera"
)

// Patch is a partial App. Only the non-nil fields are written by Apply, so
// an undo step restores exactly what its transaction touched.
type Patch struct {
	Status  *Status        `json:"status,omitempty"`
	Action  *Action        `json:"action,omitempty"`
	Camera  *camera.Camera `json:"camera,omitempty"`
	Content *Content       `json:"content,omitempty"`
	Theme   *Theme         `json:"theme,omitempty"`
}

func (p Patch) Apply(a App) App {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Action != nil {
		a.Action = *p.Action
	}
	if p.Camera != nil {
		a.Camera = *p.Camera
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Theme != nil {
		a.Theme = *p.Theme
	}
	return a
}

// Entry is one undo step.
type Entry struct {
	Before Patch `json:"before"`
	After  Patch `json:"after"`
}

// DefaultHistoryDepth bounds the undo stack when no depth is configured.
const DefaultHistoryDepth = 100

// History holds the undo and redo stacks. When the undo stack grows past
// depth the oldest entry is dropped; depth <= 0 means unbounded.
type History struct {
	undo  []Entry
	redo  []Entry
	depth int
}

func NewHistory(depth int) *History {
	return &History{depth: depth}
}

// Push records a new step and forgets anything that could be redone.
func (h *History) Push(e Entry) {
	h.undo = append(h.undo, e)
	if h.depth > 0 && len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = nil
}

func (h *History) Undo() (Entry, bool) {
	if len(h.undo) == 0 {
		return Entry{}, false
	}
	last := len(h.undo) - 1
	e := h.undo[last]
	h.undo = h.undo[:last]
	h.redo = append(h.redo, e)
	return e, true
}

func (h *History) Redo() (Entry, bool) {
	if len(h.redo) == 0 {
		return Entry{}, false
	}
	last := len(h.redo) - 1
	e := h.redo[last]
	h.redo = h.redo[:last]
	h.undo = append(h.undo, e)
	return e, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) Len() int      { return len(h.undo) }

// Entries returns a copy of the undo stack, oldest first, trimmed to the
// newest n entries when n > 0.
func (h *History) Entries(n int) []Entry {
	src := h.undo
	if n > 0 && len(src) > n {
		src = src[len(src)-n:]
	}
	return append([]Entry(nil), src...)
}

// Load replaces both stacks with entries as the undo stack.
func (h *History) Load(entries []Entry) {
	h.undo = nil
	h.redo = nil
	for _, e := range entries {
		h.Push(e)
	}
}

func ptr[T any](v T) *T { return &v }
