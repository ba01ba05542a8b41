package editor

import (
	"slices"

	"spectre/internal/geom"
	"spectre/internal/shape"
)

// Select changes the selection.
//
// An empty id clears the selection and returns the tool to idle. With
// multi set, id is toggled in or out of the selection without recording
// an undo step, and the curve tool drops back to idle since curving a
// group is not supported. Otherwise id becomes the only selected shape,
// unless it is already selected, which leaves a group selection intact
// for a drag that starts on one of its members. Unknown ids are ignored.
func (e *Editor) Select(id shape.ID, multi bool) error {
	if err := e.idle("select"); err != nil {
		return err
	}
	c := e.app.Content
	switch {
	case id == "":
		next := c.withSelection(nil)
		e.commit(
			Patch{Status: ptr(e.app.Status), Content: &c},
			Patch{Status: ptr(StatusIdle), Content: &next},
		)
	case !c.has(id):
		return nil
	case multi:
		ids := slices.DeleteFunc(slices.Clone(c.SelectedIDs), func(x shape.ID) bool { return x == id })
		if len(ids) == len(c.SelectedIDs) {
			ids = append(ids, id)
		}
		status := e.app.Status
		if status == StatusCurve {
			status = StatusIdle
		}
		next := c.withSelection(ids)
		e.patch(Patch{Status: &status, Content: &next})
	case c.isSelected(id):
		return nil
	default:
		next := c.withSelection([]shape.ID{id})
		e.commit(Patch{Content: &c}, Patch{Content: &next})
	}
	return nil
}

// SelectAll selects every shape and returns to idle.
func (e *Editor) SelectAll() error {
	if err := e.idle("select all"); err != nil {
		return err
	}
	c := e.app.Content
	next := c.withSelection(shape.IDs(c.Shapes))
	e.commit(
		Patch{Status: ptr(e.app.Status), Action: ptr(e.app.Action), Content: &c},
		Patch{Status: ptr(StatusIdle), Action: ptr(ActionIdle), Content: &next},
	)
	return nil
}

// SetHovered marks id as the hovered shape, or clears hover when id is
// empty. Hover is transient and never recorded. While a gesture is open
// the action is left alone.
func (e *Editor) SetHovered(id shape.ID) error {
	c := e.app.Content
	if len(c.HoveredIDs) > 0 && c.HoveredIDs[0] == id {
		return nil
	}
	if len(c.HoveredIDs) == 0 && id == "" {
		return nil
	}
	if id != "" && !c.has(id) {
		return nil
	}
	action := ActionIdle
	c.HoveredIDs = []shape.ID{}
	if id != "" {
		action = ActionHovering
		c.HoveredIDs = []shape.ID{id}
	}
	p := Patch{Content: &c}
	if e.gesture == GestureNone {
		p.Action = &action
	}
	e.patch(p)
	return nil
}

// DeleteSelected removes the selected shapes.
func (e *Editor) DeleteSelected() error {
	if err := e.idle("delete selected"); err != nil {
		return err
	}
	c := e.app.Content
	if len(c.SelectedIDs) == 0 {
		return nil
	}
	shapes := shape.List{}
	for _, s := range c.Shapes {
		if !c.isSelected(s.Base().ID) {
			shapes = append(shapes, s)
		}
	}
	next := c.withShapes(shapes).withSelection(nil)
	e.commit(Patch{Content: &c}, Patch{Content: &next})
	e.log.Printf("[editor] deleted %d shapes", len(c.Shapes)-len(shapes))
	return nil
}

// DeleteAll empties the canvas.
func (e *Editor) DeleteAll() error {
	if err := e.idle("delete all"); err != nil {
		return err
	}
	c := e.app.Content
	next := c.withShapes(shape.List{}).withSelection(nil)
	e.commit(Patch{Content: &c}, Patch{Content: &next})
	e.log.Printf("[editor] deleted all %d shapes", len(c.Shapes))
	return nil
}

// AutoCurveLine bends the line id so it flows into the single line
// touching each of its ends. It reports false, changing nothing, when id
// is not a line, when either end has no neighbour or more than one, or
// when the neighbours point in parallel.
func (e *Editor) AutoCurveLine(id shape.ID) (bool, error) {
	if err := e.idle("auto curve"); err != nil {
		return false, err
	}
	c := e.app.Content
	s, i, ok := shape.Find(c.Shapes, id)
	if !ok {
		return false, nil
	}
	line, ok := s.(shape.Line)
	if !ok {
		return false, nil
	}
	control, ok := shape.AutoCurve(line, shape.Lines(c.Shapes))
	if !ok {
		return false, nil
	}
	shapes := slices.Clone(c.Shapes)
	shapes[i] = line.WithCurve(control)
	next := c.withShapes(shapes)
	e.commit(Patch{Content: &c}, Patch{Content: &next})
	return true, nil
}

// Paste inserts copies of shapes offset by dx, dy canvas units under fresh
// ids and selects them. Invalid shapes are skipped. It returns the new ids.
func (e *Editor) Paste(shapes []shape.Shape, dx, dy float64) ([]shape.ID, error) {
	if err := e.idle("paste"); err != nil {
		return nil, err
	}
	c := e.app.Content
	out := slices.Clone(c.Shapes)
	var ids []shape.ID
	for _, s := range shapes {
		s = shape.EndEditing(shape.WithID(shape.MoveBy(s, dx, dy), e.newID()))
		if !shape.IsValid(s) {
			continue
		}
		out = append(out, s)
		ids = append(ids, s.Base().ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	next := c.withShapes(out).withSelection(ids)
	e.commit(Patch{Content: &c}, Patch{Content: &next})
	return ids, nil
}

// SelectionBounds returns the padded box around the selection.
func (e *Editor) SelectionBounds() geom.Rect {
	return shape.Bounds(e.SelectedShapes(), shape.SelectionPadding)
}
