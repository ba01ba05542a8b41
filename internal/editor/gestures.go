package editor

import (
	"spectre/internal/camera"
	"spectre/internal/geom"
	"spectre/internal/shape"
)

// All gesture points are in screen space; the editor converts them with
// the camera at the time of the call.

func (e *Editor) toCanvas(p geom.Point) geom.Point {
	return camera.ScreenToCanvas(p, e.app.Camera)
}

// updateEditing replaces every shape being authored with fn's result.
func (e *Editor) updateEditing(fn func(shape.Shape) shape.Shape) shape.List {
	return e.app.Content.mapShapes(func(s shape.Shape) shape.Shape {
		if s.Base().Editing {
			return fn(s)
		}
		return s
	})
}

// addEditing appends a shape under construction and selects it.
func (e *Editor) addEditing(s shape.Shape, action Action) {
	c := e.app.Content
	shapes := append(append(shape.List{}, c.Shapes...), s)
	c = c.withShapes(shapes).withSelection([]shape.ID{s.Base().ID})
	e.patch(Patch{Action: ptr(action), Content: &c})
}

func (e *Editor) patchShapes(shapes shape.List, action Action) {
	c := e.app.Content.withShapes(shapes)
	e.patch(Patch{Action: ptr(action), Content: &c})
}

// FreehandStart opens a freehand stroke at p with the theme's pen.
func (e *Editor) FreehandStart(p geom.PressuredPoint) error {
	if err := e.begin(GestureFreehand, "freehand start"); err != nil {
		return err
	}
	f := shape.Freeform{
		Meta: shape.Meta{
			ID:      e.newID(),
			Editing: true,
			Color:   e.app.Theme.PenColor,
			Size:    e.app.Theme.PenSize,
		},
		Points: []geom.PressuredPoint{camera.ScreenToCanvasPressured(p, e.app.Camera)},
	}
	e.addEditing(f, ActionDrawingFreehand)
	return nil
}

// FreehandMove extends the stroke.
func (e *Editor) FreehandMove(p geom.PressuredPoint) error {
	if err := e.expect(GestureFreehand, "freehand move"); err != nil {
		return err
	}
	pc := camera.ScreenToCanvasPressured(p, e.app.Camera)
	shapes := e.updateEditing(func(s shape.Shape) shape.Shape {
		if f, ok := s.(shape.Freeform); ok {
			return f.Append(pc)
		}
		return s
	})
	e.patchShapes(shapes, ActionDrawingFreehand)
	return nil
}

// FreehandEnd commits the stroke. A stroke that covers no area is dropped
// and the tool falls back to idle; otherwise freehand stays selected.
func (e *Editor) FreehandEnd() error {
	if err := e.expect(GestureFreehand, "freehand end"); err != nil {
		return err
	}
	shapes, kept := e.app.Content.settle()
	status := StatusFreehand
	if len(kept) == 0 {
		status = StatusIdle
	}
	c := e.app.Content.withShapes(shapes).withSelection(nil)
	e.end(Patch{Status: ptr(status), Action: ptr(ActionIdle), Content: &c})
	return nil
}

// aim resolves where a line end goes for a cursor at p. Angle snapping
// wins over endpoint snapping, which wins over the raw cursor. An endpoint
// that coincides with start is ignored. snapped reports an endpoint snap.
func (e *Editor) aim(start, p geom.Point, snapToAngle bool) (end geom.Point, snapped bool) {
	if snapToAngle {
		return geom.SnapToAngle(start, p, AngleStep), false
	}
	lines := shape.CommittedLines(e.app.Content.Shapes)
	if p != start && shape.IsVertex(p, lines) {
		return p, true
	}
	if sp, ok := shape.SnapPoint(p, lines, geom.DefaultSnapDelta); ok && geom.Distance(sp, start) > 0 {
		return sp, true
	}
	return p, false
}

// anchor resolves where a new line starts: on a committed endpoint within
// snap range of p, or at p itself. A vertex exactly at p is kept.
func (e *Editor) anchor(p geom.Point) geom.Point {
	lines := shape.CommittedLines(e.app.Content.Shapes)
	if shape.IsVertex(p, lines) {
		return p
	}
	if sp, ok := shape.SnapPoint(p, lines, geom.DefaultSnapDelta); ok {
		return sp
	}
	return p
}

func (e *Editor) newLine(at geom.Point) shape.Line {
	l := shape.NewLine(e.newID(), at, at)
	l.Editing = true
	return l
}

// stretch moves the end of every line being authored. The end is rounded
// to whole canvas units and the curve resets to the straight midpoint.
func (e *Editor) stretch(p geom.Point, snapToAngle bool) (end geom.Point, snapped bool) {
	end = p
	shapes := e.updateEditing(func(s shape.Shape) shape.Shape {
		l, ok := s.(shape.Line)
		if !ok {
			return s
		}
		var hit bool
		end, hit = e.aim(l.Start, p, snapToAngle)
		snapped = snapped || hit
		l = l.WithCurve(geom.Midpoint(l.Start, end))
		l.End = geom.RoundPoint(end)
		return l
	})
	e.app.Content = e.app.Content.withShapes(shapes)
	return end, snapped
}

// DrawStart opens a line at p, snapped onto a nearby committed endpoint.
func (e *Editor) DrawStart(p geom.Point) error {
	if err := e.begin(GestureDraw, "draw start"); err != nil {
		return err
	}
	e.addEditing(e.newLine(e.anchor(e.toCanvas(p))), ActionDrawing)
	return nil
}

// DrawMove drags the line end to p. It returns the endpoint the line
// snapped to, or nil when the end follows the cursor or an angle.
func (e *Editor) DrawMove(p geom.Point, snapToAngle bool) (*geom.Point, error) {
	if err := e.expect(GestureDraw, "draw move"); err != nil {
		return nil, err
	}
	end, snapped := e.stretch(e.toCanvas(p), snapToAngle)
	e.patch(Patch{Action: ptr(ActionDrawing)})
	if !snapped {
		return nil, nil
	}
	return &end, nil
}

// DrawEnd commits the line if it is long enough and selects it. The tool
// is left as it was.
func (e *Editor) DrawEnd() error {
	if err := e.expect(GestureDraw, "draw end"); err != nil {
		return err
	}
	shapes, kept := e.app.Content.settle()
	c := e.app.Content.withShapes(shapes).withSelection(kept)
	e.end(Patch{Action: ptr(ActionIdle), Content: &c})
	return nil
}

// PenPreview is where the next pen vertex would land.
type PenPreview struct {
	Point   geom.Point
	Snapped bool
}

// PenClick places a pen vertex. The first click opens a segment; each
// following click commits the segment and opens the next one from its
// end. The chain ends when a click lands back on the segment's own start,
// which drops the segment and returns to idle, or when it snaps onto an
// existing endpoint, which commits the segment and keeps the pen tool.
func (e *Editor) PenClick(p geom.Point, snapToAngle, ignoreSnap bool) error {
	switch e.gesture {
	case GestureNone:
		if err := e.begin(GesturePen, "pen click"); err != nil {
			return err
		}
		at := e.toCanvas(p)
		if !ignoreSnap {
			at = e.anchor(at)
		}
		e.addEditing(e.newLine(at), ActionDrawingPen)
		return nil
	case GesturePen:
		return e.penFinish(e.toCanvas(p), snapToAngle)
	default:
		return e.reject("pen click", ErrGestureInProgress)
	}
}

func (e *Editor) penFinish(p geom.Point, snapToAngle bool) error {
	_, snapped := e.stretch(p, snapToAngle)
	shapes, kept := e.app.Content.settle()
	c := e.app.Content.withShapes(shapes).withSelection(kept)

	if len(kept) == 0 {
		e.end(Patch{Status: ptr(StatusIdle), Action: ptr(ActionIdle), Content: &c})
		return nil
	}
	if snapped {
		e.end(Patch{Status: ptr(StatusPen), Action: ptr(ActionIdle), Content: &c})
		return nil
	}
	e.end(Patch{Status: ptr(StatusPen), Action: ptr(ActionDrawingPen), Content: &c})

	last, _ := e.Shape(kept[len(kept)-1])
	if err := e.begin(GesturePen, "pen click"); err != nil {
		return err
	}
	e.addEditing(e.newLine(last.(shape.Line).End), ActionDrawingPen)
	return nil
}

// PenMove drags the open segment's end to p and reports where it landed.
// With no segment open it only previews where a click at p would snap.
func (e *Editor) PenMove(p geom.Point, snapToAngle bool) (PenPreview, error) {
	pc := e.toCanvas(p)
	switch e.gesture {
	case GesturePen:
		end, snapped := e.stretch(pc, snapToAngle)
		e.patch(Patch{Action: ptr(ActionDrawingPen)})
		return PenPreview{Point: end, Snapped: snapped}, nil
	case GestureNone:
		at := e.anchor(pc)
		snapped := at != pc || shape.IsVertex(pc, shape.CommittedLines(e.app.Content.Shapes))
		return PenPreview{Point: at, Snapped: snapped}, nil
	default:
		return PenPreview{}, e.reject("pen move", ErrGestureInProgress)
	}
}

// CurveStart opens a curve drag on the selected shapes.
func (e *Editor) CurveStart() error {
	if err := e.begin(GestureCurve, "curve start"); err != nil {
		return err
	}
	c := e.app.Content
	shapes := c.mapShapes(func(s shape.Shape) shape.Shape {
		if c.isSelected(s.Base().ID) {
			return shape.BeginEditing(s)
		}
		return s
	})
	e.patchShapes(shapes, ActionCurving)
	return nil
}

// CurveMove puts the control point of every selected line at p, unsnapped.
func (e *Editor) CurveMove(p geom.Point) error {
	if err := e.expect(GestureCurve, "curve move"); err != nil {
		return err
	}
	pc := e.toCanvas(p)
	c := e.app.Content
	shapes := c.mapShapes(func(s shape.Shape) shape.Shape {
		if l, ok := s.(shape.Line); ok && c.isSelected(l.ID) {
			return l.WithCurve(pc)
		}
		return s
	})
	e.patchShapes(shapes, ActionCurving)
	return nil
}

func (e *Editor) CurveEnd() error {
	if err := e.expect(GestureCurve, "curve end"); err != nil {
		return err
	}
	shapes := e.app.Content.mapShapes(shape.EndEditing)
	c := e.app.Content.withShapes(shapes)
	e.end(Patch{Action: ptr(ActionIdle), Content: &c})
	return nil
}

// EraseStart opens an erase gesture and erases at p.
func (e *Editor) EraseStart(p geom.PressuredPoint) error {
	if err := e.begin(GestureErase, "erase start"); err != nil {
		return err
	}
	e.eraseAt(p)
	return nil
}

// EraseMove marks every freeform stroke under p for deletion.
func (e *Editor) EraseMove(p geom.PressuredPoint) error {
	if err := e.expect(GestureErase, "erase move"); err != nil {
		return err
	}
	e.eraseAt(p)
	return nil
}

func (e *Editor) eraseAt(p geom.PressuredPoint) {
	pc := camera.ScreenToCanvasPressured(p, e.app.Camera).Point()
	hit := map[shape.ID]bool{}
	if e.hits != nil {
		var candidates []shape.Freeform
		for _, s := range e.app.Content.Shapes {
			if f, ok := s.(shape.Freeform); ok && !f.Deleting {
				candidates = append(candidates, f)
			}
		}
		for len(candidates) > 0 {
			id, ok := e.hits.HitTest(pc, candidates)
			if !ok || hit[id] {
				break
			}
			hit[id] = true
			candidates = dropID(candidates, id)
		}
	}
	shapes := e.app.Content.mapShapes(func(s shape.Shape) shape.Shape {
		if hit[s.Base().ID] {
			return shape.MarkDeleting(s)
		}
		return s
	})
	e.patchShapes(shapes, ActionErasing)
}

func dropID(fs []shape.Freeform, id shape.ID) []shape.Freeform {
	out := make([]shape.Freeform, 0, len(fs))
	for _, f := range fs {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// EraseEnd removes the marked strokes for good.
func (e *Editor) EraseEnd() error {
	if err := e.expect(GestureErase, "erase end"); err != nil {
		return err
	}
	before := len(e.app.Content.Shapes)
	shapes, _ := e.app.Content.settle()
	c := e.app.Content.withShapes(shapes).withSelection(nil)
	e.end(Patch{Status: ptr(StatusErase), Action: ptr(ActionIdle), Content: &c})
	if n := before - len(shapes); n > 0 {
		e.log.Printf("[editor] erased %d shapes", n)
	}
	return nil
}

// MoveStart opens a drag of the selected shapes.
func (e *Editor) MoveStart() error {
	return e.begin(GestureMove, "move start")
}

// MoveBy drags the selection by dx, dy screen pixels.
func (e *Editor) MoveBy(dx, dy float64) error {
	if err := e.expect(GestureMove, "move"); err != nil {
		return err
	}
	dxz, dyz := dx/e.app.Camera.Z, dy/e.app.Camera.Z
	c := e.app.Content
	shapes := c.mapShapes(func(s shape.Shape) shape.Shape {
		if c.isSelected(s.Base().ID) {
			return shape.MoveBy(s, dxz, dyz)
		}
		return s
	})
	e.patchShapes(shapes, ActionMoving)
	return nil
}

func (e *Editor) MoveEnd() error {
	if err := e.expect(GestureMove, "move end"); err != nil {
		return err
	}
	c := e.app.Content
	e.commit(
		Patch{Action: ptr(ActionIdle), Content: ptr(e.snapshot.Content)},
		Patch{Action: ptr(ActionIdle), Content: &c},
	)
	e.gesture = GestureNone
	e.snapshot = App{}
	return nil
}
