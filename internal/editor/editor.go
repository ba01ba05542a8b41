// Package editor is the drawing state machine. An Editor owns one App
// value and changes it only through its methods. Discrete user actions
// record one undo step each; continuous gestures patch the state in place
// between their Start and End and record a single step when they end.
//
// An Editor is not safe for concurrent use. Callers serialize input, as an
// event loop naturally does.
package editor

import (
	"fmt"

	"spectre/internal/camera"
	"spectre/internal/geom"
	"spectre/internal/shape"
)

// Gesture names the kind of gesture currently open.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureFreehand
	GestureDraw
	GesturePen
	GestureCurve
	GestureErase
	GestureMove
)

func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureFreehand:
		return "freehand"
	case GestureDraw:
		return "draw"
	case GesturePen:
		return "pen"
	case GestureCurve:
		return "curve"
	case GestureErase:
		return "erase"
	case GestureMove:
		return "move"
	default:
		return fmt.Sprintf("gesture(%d)", int(g))
	}
}

// AngleStep is the increment, in degrees, that angle snapping rounds to.
const AngleStep = 15.0

type Editor struct {
	app      App
	history  *History
	snapshot App
	gesture  Gesture

	hits   HitTester
	opts   EditorOptions
	limits camera.Limits
	screen geom.Rect
	newID  func() shape.ID
	log    logger
}

// New returns an editor in the initial state.
func New(options ...Option) *Editor {
	e := &Editor{
		app:     InitialApp(),
		history: NewHistory(DefaultHistoryDepth),
		limits:  camera.DefaultLimits,
		screen:  DefaultScreen,
		newID:   shape.NewID,
		log:     discardLogger(),
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// State returns a copy of the current App. Writing to it does not
// affect the editor.
func (e *Editor) State() App {
	app := e.app
	app.Content = app.Content.clone()
	return app
}

// Gesture returns the gesture currently open.
func (e *Editor) Gesture() Gesture { return e.gesture }

func (e *Editor) Options() EditorOptions { return e.opts }

func (e *Editor) SetOptions(o EditorOptions) { e.opts = o }

func (e *Editor) SetHitTester(h HitTester) { e.hits = h }

// Shape looks up a shape by id.
func (e *Editor) Shape(id shape.ID) (shape.Shape, bool) {
	s, _, ok := shape.Find(e.app.Content.Shapes, id)
	return s, ok
}

// SelectedShapes returns the selected shapes in z-order.
func (e *Editor) SelectedShapes() []shape.Shape {
	return e.filter(e.app.Content.SelectedIDs)
}

// HoveredShapes returns the hovered shapes in z-order.
func (e *Editor) HoveredShapes() []shape.Shape {
	return e.filter(e.app.Content.HoveredIDs)
}

func (e *Editor) filter(ids []shape.ID) []shape.Shape {
	var out []shape.Shape
	for _, s := range e.app.Content.Shapes {
		for _, id := range ids {
			if s.Base().ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Screen returns the screen box the camera maps onto.
func (e *Editor) Screen() geom.Rect { return e.screen }

// Viewport returns the canvas rectangle currently visible.
func (e *Editor) Viewport() geom.Rect {
	return camera.Viewport(e.app.Camera, e.screen)
}

// ScreenToCanvas converts a screen point with the current camera.
func (e *Editor) ScreenToCanvas(p geom.Point) geom.Point {
	return camera.ScreenToCanvas(p, e.app.Camera)
}

func (e *Editor) CanUndo() bool { return e.gesture == GestureNone && e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.gesture == GestureNone && e.history.CanRedo() }

// History returns up to the newest n undo steps, oldest first; n <= 0
// returns all of them.
func (e *Editor) History(n int) []Entry { return e.history.Entries(n) }

// patch updates the state without recording history.
func (e *Editor) patch(p Patch) {
	e.app = p.Apply(e.app)
}

// commit applies after and records the step.
func (e *Editor) commit(before, after Patch) {
	e.app = after.Apply(e.app)
	e.history.Push(Entry{Before: before, After: after})
}

// begin opens a gesture and remembers the state it started from.
func (e *Editor) begin(g Gesture, op string) error {
	if e.gesture != GestureNone {
		return e.reject(op, ErrGestureInProgress)
	}
	e.snapshot = e.app
	e.gesture = g
	return nil
}

// expect checks that g is the open gesture.
func (e *Editor) expect(g Gesture, op string) error {
	if e.gesture != g {
		return e.reject(op, ErrNoGesture)
	}
	return nil
}

// idle checks that no gesture is open.
func (e *Editor) idle(op string) error {
	if e.gesture != GestureNone {
		return e.reject(op, ErrGestureInProgress)
	}
	return nil
}

func (e *Editor) reject(op string, err error) error {
	ge := &GestureError{Op: op, Open: e.gesture, Err: err}
	e.log.Printf("[editor] rejected %v", ge)
	return ge
}

// end closes the open gesture, recording a step that takes the snapshot's
// values for the fields after names.
func (e *Editor) end(after Patch) {
	before := Patch{}
	if after.Status != nil {
		before.Status = ptr(e.snapshot.Status)
	}
	if after.Action != nil {
		before.Action = ptr(e.snapshot.Action)
	}
	if after.Content != nil {
		before.Content = ptr(e.snapshot.Content)
	}
	e.commit(before, after)
	e.gesture = GestureNone
	e.snapshot = App{}
}

// CancelGesture abandons the open gesture, restoring the status and
// content it started from with the action back to idle. Nothing is
// recorded.
func (e *Editor) CancelGesture() error {
	if e.gesture == GestureNone {
		return e.reject("cancel", ErrNoGesture)
	}
	e.log.Printf("[editor] cancelled %s gesture", e.gesture)
	e.app.Status = e.snapshot.Status
	e.app.Action = ActionIdle
	e.app.Content = e.snapshot.Content
	e.gesture = GestureNone
	e.snapshot = App{}
	return nil
}

// SetStatus switches tools. Any shape left mid-edit is settled: invalid
// ones are dropped and valid ones committed. An open gesture is closed as
// part of the same undo step.
func (e *Editor) SetStatus(s Status) error {
	from := e.app
	if e.gesture != GestureNone {
		from = e.snapshot
	} else if s == e.app.Status && len(e.app.Content.editing()) == 0 {
		return nil
	}
	shapes, _ := e.app.Content.settle()
	content := e.app.Content.withShapes(shapes)

	e.commit(
		Patch{Status: ptr(from.Status), Action: ptr(from.Action), Content: ptr(from.Content)},
		Patch{Status: ptr(s), Action: ptr(ActionIdle), Content: &content},
	)
	e.gesture = GestureNone
	e.snapshot = App{}
	return nil
}

// SetTheme changes the named theme fields.
func (e *Editor) SetTheme(u ThemeUpdate) error {
	if err := e.idle("set theme"); err != nil {
		return err
	}
	e.commit(Patch{Theme: ptr(e.app.Theme)}, Patch{Theme: ptr(u.apply(e.app.Theme))})
	return nil
}

// Undo reverts the newest step. It is a no-op when there is none.
func (e *Editor) Undo() error {
	if err := e.idle("undo"); err != nil {
		return err
	}
	if entry, ok := e.history.Undo(); ok {
		e.app = entry.Before.Apply(e.app)
		e.log.Printf("[editor] undo (%d left)", e.history.Len())
	}
	return nil
}

// Redo reapplies the newest undone step. It is a no-op when there is none.
func (e *Editor) Redo() error {
	if err := e.idle("redo"); err != nil {
		return err
	}
	if entry, ok := e.history.Redo(); ok {
		e.app = entry.After.Apply(e.app)
		e.log.Printf("[editor] redo")
	}
	return nil
}

// Restore replaces the state and the undo stack, typically with a saved
// document. Shapes left mid-edit in app are settled.
func (e *Editor) Restore(app App, history []Entry) error {
	if err := e.idle("restore"); err != nil {
		return err
	}
	shapes, _ := app.Content.settle()
	app.Content = app.Content.withShapes(shapes)
	app.Action = ActionIdle
	e.app = app
	e.history.Load(history)
	e.log.Printf("[editor] restored %d shapes, %d undo steps", len(app.Content.Shapes), e.history.Len())
	return nil
}
