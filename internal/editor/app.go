package editor

import (
	"fmt"
	"slices"

	"spectre/internal/camera"
	"spectre/internal/shape"
)

// Status is the tool the user picked. It outlives gestures.
type Status int

const (
	StatusIdle Status = iota
	StatusPan
	StatusDraw
	StatusCurve
	StatusPen
	StatusFreehand
	StatusErase
)

var statusNames = []string{"idle", "pan", "draw", "curve", "pen", "freehand", "erase"}

func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	i := slices.Index(statusNames, string(b))
	if i < 0 {
		return fmt.Errorf("unknown status %q", b)
	}
	*s = Status(i)
	return nil
}

// Action is what the user is doing right now. It is idle between gestures.
type Action int

const (
	ActionIdle Action = iota
	ActionDrawing
	ActionDrawingPen
	ActionDrawingFreehand
	ActionCurving
	ActionHovering
	ActionMoving
	ActionErasing
)

var actionNames = []string{"idle", "drawing", "drawing_pen", "drawing_freehand", "curving", "hovering", "moving", "erasing"}

func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	i := slices.Index(actionNames, string(b))
	if i < 0 {
		return fmt.Errorf("unknown action %q", b)
	}
	*a = Action(i)
	return nil
}

// Content is the shape collection in z-order plus the selection and hover
// sets. Every id in SelectedIDs and HoveredIDs names a shape in Shapes.
//
// Slices in a Content are never written in place once published; every
// change builds new ones, so Content values can be shared freely.
type Content struct {
	Shapes      shape.List `json:"shapes"`
	SelectedIDs []shape.ID `json:"selectedIds"`
	HoveredIDs  []shape.ID `json:"hoveredIds"`
}

// clone deep-copies c.
func (c Content) clone() Content {
	out := Content{
		SelectedIDs: slices.Clone(c.SelectedIDs),
		HoveredIDs:  slices.Clone(c.HoveredIDs),
	}
	if c.Shapes != nil {
		out.Shapes = make(shape.List, len(c.Shapes))
		for i, s := range c.Shapes {
			out.Shapes[i] = shape.Clone(s)
		}
	}
	return out
}

// Theme holds the drawing defaults baked into new strokes.
type Theme struct {
	PenColor   string  `json:"penColor"`
	PenSize    float64 `json:"penSize"`
	EraserSize float64 `json:"eraserSize"`
}

// DefaultTheme is dark ink at 4px with an 8px eraser.
var DefaultTheme = Theme{PenColor: "#10293c", PenSize: 4, EraserSize: 8}

// ThemeUpdate names the Theme fields to change; nil fields are kept.
type ThemeUpdate struct {
	PenColor   *string
	PenSize    *float64
	EraserSize *float64
}

func (u ThemeUpdate) apply(t Theme) Theme {
	if u.PenColor != nil {
		t.PenColor = *u.PenColor
	}
	if u.PenSize != nil {
		t.PenSize = *u.PenSize
	}
	if u.EraserSize != nil {
		t.EraserSize = *u.EraserSize
	}
	return t
}

// App is the whole editing state.
type App struct {
	Status  Status        `json:"status"`
	Action  Action        `json:"action"`
	Camera  camera.Camera `json:"camera"`
	Content Content       `json:"content"`
	Theme   Theme         `json:"theme"`
}

// InitialApp is the state a fresh session starts in.
func InitialApp() App {
	return App{
		Status:  StatusFreehand,
		Action:  ActionIdle,
		Camera:  camera.Initial,
		Content: Content{Shapes: shape.List{}, SelectedIDs: []shape.ID{}, HoveredIDs: []shape.ID{}},
		Theme:   DefaultTheme,
	}
}

// withShapes replaces the shape list and drops selection and hover ids
// that no longer resolve.
func (c Content) withShapes(shapes []shape.Shape) Content {
	c.Shapes = shapes
	c.SelectedIDs = c.live(c.SelectedIDs)
	c.HoveredIDs = c.live(c.HoveredIDs)
	return c
}

func (c Content) live(ids []shape.ID) []shape.ID {
	out := make([]shape.ID, 0, len(ids))
	for _, id := range ids {
		if c.has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (c Content) has(id shape.ID) bool {
	_, _, ok := shape.Find(c.Shapes, id)
	return ok
}

func (c Content) withSelection(ids []shape.ID) Content {
	if ids == nil {
		ids = []shape.ID{}
	}
	c.SelectedIDs = ids
	return c
}

func (c Content) isSelected(id shape.ID) bool {
	return slices.Contains(c.SelectedIDs, id)
}

// mapShapes returns a new shape list with fn applied to every shape.
func (c Content) mapShapes(fn func(shape.Shape) shape.Shape) shape.List {
	out := make(shape.List, len(c.Shapes))
	for i, s := range c.Shapes {
		out[i] = fn(s)
	}
	return out
}

// editing returns the shapes currently being authored.
func (c Content) editing() []shape.Shape {
	var out []shape.Shape
	for _, s := range c.Shapes {
		if s.Base().Editing {
			out = append(out, s)
		}
	}
	return out
}

// settle drops editing shapes that are not valid and ends editing on the
// rest. Shapes marked deleting are dropped. It also returns the ids of the
// edited shapes that survived.
func (c Content) settle() (shape.List, []shape.ID) {
	out := make(shape.List, 0, len(c.Shapes))
	kept := []shape.ID{}
	for _, s := range c.Shapes {
		m := s.Base()
		if m.Deleting || (m.Editing && !shape.IsValid(s)) {
			continue
		}
		if m.Editing {
			kept = append(kept, m.ID)
			s = shape.EndEditing(s)
		}
		out = append(out, s)
	}
	return out, kept
}
