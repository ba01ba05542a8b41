package editor

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"testing"

	"spectre/internal/camera"
	"spectre/internal/geom"
	"spectre/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEditor returns an editor at camera {0,0,1} with sequential ids
// s1, s2, ... and the given committed shapes.
func newTestEditor(t *testing.T, shapes []shape.Shape, opts ...Option) *Editor {
	t.Helper()
	app := InitialApp()
	app.Camera = camera.Camera{X: 0, Y: 0, Z: 1}
	app.Content.Shapes = append(shape.List{}, shapes...)
	n := 0
	base := []Option{
		WithState(app),
		WithIDGenerator(func() shape.ID {
			n++
			return shape.ID(fmt.Sprintf("s%d", n))
		}),
	}
	return New(append(base, opts...)...)
}

func stroke(id shape.ID, pts ...geom.Point) shape.Freeform {
	f := shape.Freeform{Meta: shape.Meta{ID: id, Color: "#000000", Size: 4}}
	for _, p := range pts {
		f.Points = append(f.Points, p.WithPressure(1))
	}
	return f
}

// nearStroke hits any candidate with a sample within 5 units of p.
var nearStroke = HitTestFunc(func(p geom.Point, candidates []shape.Freeform) (shape.ID, bool) {
	for _, f := range candidates {
		for _, q := range f.Points {
			if geom.Distance(p, q.Point()) <= 5 {
				return f.ID, true
			}
		}
	}
	return "", false
})

func onlyLine(t *testing.T, e *Editor, id shape.ID) shape.Line {
	t.Helper()
	s, ok := e.Shape(id)
	require.True(t, ok, "shape %s missing", id)
	l, ok := s.(shape.Line)
	require.True(t, ok, "shape %s is %T", id, s)
	return l
}

func TestDrawScenario(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.SetStatus(StatusDraw))

	require.NoError(t, e.DrawStart(geom.Pt(10, 10)))
	assert.Equal(t, ActionDrawing, e.State().Action)

	snapped, err := e.DrawMove(geom.Pt(110, 10), false)
	require.NoError(t, err)
	assert.Nil(t, snapped)

	l := onlyLine(t, e, "s1")
	assert.Equal(t, geom.Pt(10, 10), l.Start)
	assert.Equal(t, geom.Pt(110, 10), l.End)
	assert.Equal(t, geom.Pt(60, 10), *l.Curve)
	assert.True(t, l.Editing)

	require.NoError(t, e.DrawEnd())
	st := e.State()
	require.Len(t, st.Content.Shapes, 1)
	assert.False(t, st.Content.Shapes[0].Base().Editing)
	assert.Equal(t, []shape.ID{"s1"}, st.Content.SelectedIDs)
	assert.Equal(t, StatusDraw, st.Status)
	assert.Equal(t, ActionIdle, st.Action)
	assert.Equal(t, GestureNone, e.Gesture())
}

func TestDrawWithoutMoveIsDiscarded(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.DrawStart(geom.Pt(40, 40)))
	require.NoError(t, e.DrawEnd())
	assert.Empty(t, e.State().Content.Shapes)
	assert.Empty(t, e.State().Content.SelectedIDs)
}

func TestDrawSnapsToEndpoints(t *testing.T) {
	existing := shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0))
	e := newTestEditor(t, []shape.Shape{existing})

	require.NoError(t, e.DrawStart(geom.Pt(2, 2)))
	assert.Equal(t, geom.Pt(0, 0), onlyLine(t, e, "s1").Start)

	snapped, err := e.DrawMove(geom.Pt(98, 3), false)
	require.NoError(t, err)
	require.NotNil(t, snapped)
	assert.Equal(t, geom.Pt(100, 0), *snapped)
	assert.Equal(t, geom.Pt(100, 0), onlyLine(t, e, "s1").End)

	// The line's own start is not a snap target.
	snapped, err = e.DrawMove(geom.Pt(1, 1), false)
	require.NoError(t, err)
	assert.Nil(t, snapped)
	assert.Equal(t, geom.Pt(1, 1), onlyLine(t, e, "s1").End)
}

func TestDrawStartsOnExactVertex(t *testing.T) {
	tests := []struct {
		name  string
		lines []shape.Shape
		at    geom.Point
	}{
		{"short line", []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(5, 0))}, geom.Pt(0, 0)},
		{"other endpoint nearby", []shape.Shape{
			shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0)),
			shape.NewLine("b", geom.Pt(4, 3), geom.Pt(100, 100)),
		}, geom.Pt(4, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.lines)
			require.NoError(t, e.DrawStart(tt.at))
			assert.Equal(t, tt.at, onlyLine(t, e, "s1").Start)
		})
	}
}

func TestPenEndsOnExactVertex(t *testing.T) {
	e := newTestEditor(t, []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(5, 0))})
	require.NoError(t, e.SetStatus(StatusPen))

	p, err := e.PenMove(geom.Pt(0, 0), false)
	require.NoError(t, err)
	assert.Equal(t, PenPreview{Point: geom.Pt(0, 0), Snapped: true}, p)

	require.NoError(t, e.PenClick(geom.Pt(0, 0), false, false))
	assert.Equal(t, geom.Pt(0, 0), onlyLine(t, e, "s1").Start)

	require.NoError(t, e.PenClick(geom.Pt(50, 50), false, false))
	require.NoError(t, e.PenClick(geom.Pt(5, 0), false, false))
	assert.Equal(t, geom.Pt(5, 0), onlyLine(t, e, "s2").End)
	assert.Equal(t, GestureNone, e.Gesture(), "a click on a vertex closes the chain")
	assert.Equal(t, StatusPen, e.State().Status)
}

func TestDrawAngleSnap(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.DrawStart(geom.Pt(0, 0)))

	rad := 5 * math.Pi / 180
	snapped, err := e.DrawMove(geom.Pt(100*math.Cos(rad), -100*math.Sin(rad)), true)
	require.NoError(t, err)
	assert.Nil(t, snapped)
	l := onlyLine(t, e, "s1")
	assert.InDelta(t, 0, l.End.Y, 1e-9)
	assert.InDelta(t, 100, l.End.X, 1e-9)

	// Rounds to the nearest 15 degree step, so 10 goes up to 15.
	rad = 10 * math.Pi / 180
	_, err = e.DrawMove(geom.Pt(100*math.Cos(rad), -100*math.Sin(rad)), true)
	require.NoError(t, err)
	l = onlyLine(t, e, "s1")
	assert.InDelta(t, 15, geom.AngleBetween(l.Start, l.End), 0.1)

	// Angle snapping beats a nearby endpoint.
	rad = 40 * math.Pi / 180
	_, err = e.DrawMove(geom.Pt(200*math.Cos(rad), -200*math.Sin(rad)), true)
	require.NoError(t, err)
	l = onlyLine(t, e, "s1")
	assert.InDelta(t, 45, geom.AngleBetween(l.Start, l.End), 1)
}

func TestFreehand(t *testing.T) {
	t.Run("single tap is dropped", func(t *testing.T) {
		e := newTestEditor(t, nil)
		require.NoError(t, e.FreehandStart(geom.PP(10, 10, 0.5)))
		assert.Equal(t, ActionDrawingFreehand, e.State().Action)
		require.NoError(t, e.FreehandEnd())

		st := e.State()
		assert.Empty(t, st.Content.Shapes)
		assert.Equal(t, StatusIdle, st.Status)
		assert.Equal(t, ActionIdle, st.Action)
	})

	t.Run("stroke is kept", func(t *testing.T) {
		e := newTestEditor(t, nil)
		require.NoError(t, e.FreehandStart(geom.PP(10, 10, 0.5)))
		require.NoError(t, e.FreehandMove(geom.PP(20, 15, 0.7)))
		require.NoError(t, e.FreehandMove(geom.PP(30, 12, 0.9)))
		require.NoError(t, e.FreehandEnd())

		st := e.State()
		require.Len(t, st.Content.Shapes, 1)
		f := st.Content.Shapes[0].(shape.Freeform)
		assert.False(t, f.Editing)
		assert.Len(t, f.Points, 3)
		assert.Equal(t, 0.7, f.Points[1].Pressure)
		assert.Equal(t, DefaultTheme.PenColor, f.Color)
		assert.Equal(t, DefaultTheme.PenSize, f.Size)
		assert.Empty(t, st.Content.SelectedIDs)
		assert.Equal(t, StatusFreehand, st.Status)
		assert.Equal(t, 1, e.history.Len())
	})

	t.Run("points follow the camera", func(t *testing.T) {
		e := newTestEditor(t, nil)
		e.app.Camera = camera.Camera{X: -100, Y: -50, Z: 2}
		require.NoError(t, e.FreehandStart(geom.PP(100, 100, 1)))
		f := e.State().Content.Shapes[0].(shape.Freeform)
		assert.Equal(t, geom.PP(150, 100, 1), f.Points[0])
	})
}

func TestPenChain(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.SetStatus(StatusPen))

	require.NoError(t, e.PenClick(geom.Pt(0, 0), false, false))
	assert.Equal(t, GesturePen, e.Gesture())
	assert.Equal(t, ActionDrawingPen, e.State().Action)

	preview, err := e.PenMove(geom.Pt(60, 0), false)
	require.NoError(t, err)
	assert.Equal(t, PenPreview{Point: geom.Pt(60, 0)}, preview)

	require.NoError(t, e.PenClick(geom.Pt(100, 0), false, false))
	first := onlyLine(t, e, "s1")
	assert.False(t, first.Editing)
	assert.Equal(t, geom.Pt(100, 0), first.End)
	second := onlyLine(t, e, "s2")
	assert.True(t, second.Editing)
	assert.Equal(t, geom.Pt(100, 0), second.Start)

	require.NoError(t, e.PenClick(geom.Pt(100, 100), false, false))
	assert.Equal(t, geom.Pt(100, 100), onlyLine(t, e, "s3").Start)

	// Clicking near the first vertex snaps onto it and closes the chain.
	require.NoError(t, e.PenClick(geom.Pt(2, 1), false, false))
	st := e.State()
	assert.Equal(t, GestureNone, e.Gesture())
	assert.Equal(t, StatusPen, st.Status)
	assert.Equal(t, ActionIdle, st.Action)
	assert.Len(t, st.Content.Shapes, 3)
	assert.Equal(t, geom.Pt(0, 0), onlyLine(t, e, "s3").End)
	for _, s := range st.Content.Shapes {
		assert.False(t, s.Base().Editing)
	}
}

func TestPenDoubleClickEnds(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.SetStatus(StatusPen))
	require.NoError(t, e.PenClick(geom.Pt(0, 0), false, false))
	require.NoError(t, e.PenClick(geom.Pt(50, 0), false, false))

	// A click on the open segment's own start makes it zero length.
	require.NoError(t, e.PenClick(geom.Pt(50, 0), false, false))
	st := e.State()
	assert.Equal(t, GestureNone, e.Gesture())
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, ActionIdle, st.Action)
	require.Len(t, st.Content.Shapes, 1)
	assert.Equal(t, shape.ID("s1"), st.Content.Shapes[0].Base().ID)
}

func TestPenPreviewWithoutSegment(t *testing.T) {
	e := newTestEditor(t, []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0))})

	p, err := e.PenMove(geom.Pt(3, 3), false)
	require.NoError(t, err)
	assert.Equal(t, PenPreview{Point: geom.Pt(0, 0), Snapped: true}, p)

	p, err = e.PenMove(geom.Pt(50, 50), false)
	require.NoError(t, err)
	assert.Equal(t, PenPreview{Point: geom.Pt(50, 50)}, p)
	assert.False(t, e.history.CanUndo())

	require.NoError(t, e.PenClick(geom.Pt(3, 3), false, true))
	assert.Equal(t, geom.Pt(3, 3), onlyLine(t, e, "s1").Start, "snap ignored")
}

func TestCurve(t *testing.T) {
	line := shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0))
	e := newTestEditor(t, []shape.Shape{line})
	require.NoError(t, e.Select("a", false))

	require.NoError(t, e.CurveStart())
	assert.True(t, onlyLine(t, e, "a").Editing)
	assert.Equal(t, ActionCurving, e.State().Action)

	require.NoError(t, e.CurveMove(geom.Pt(50, 50)))
	require.NoError(t, e.CurveMove(geom.Pt(52, 61)))
	require.NoError(t, e.CurveEnd())

	l := onlyLine(t, e, "a")
	assert.False(t, l.Editing)
	assert.Equal(t, geom.Pt(52, 61), *l.Curve)
	assert.Equal(t, ActionIdle, e.State().Action)

	require.NoError(t, e.Undo())
	assert.Equal(t, geom.Pt(50, 0), *onlyLine(t, e, "a").Curve)
}

func TestErase(t *testing.T) {
	a := stroke("a", geom.Pt(0, 0), geom.Pt(10, 0))
	b := stroke("b", geom.Pt(100, 0), geom.Pt(110, 0))
	l := shape.NewLine("l", geom.Pt(100, 0), geom.Pt(200, 0))

	t.Run("commit removes marked strokes", func(t *testing.T) {
		e := newTestEditor(t, []shape.Shape{a, b, l}, WithHitTester(nearStroke))
		require.NoError(t, e.EraseStart(geom.PP(300, 300, 1)))
		require.NoError(t, e.EraseMove(geom.PP(101, 1, 1)))

		s, _ := e.Shape("b")
		assert.True(t, s.Base().Deleting)
		s, _ = e.Shape("l")
		assert.False(t, s.Base().Deleting, "lines are not erased")
		assert.Equal(t, ActionErasing, e.State().Action)

		require.NoError(t, e.EraseEnd())
		st := e.State()
		assert.Equal(t, []shape.ID{"a", "l"}, shape.IDs(st.Content.Shapes))
		assert.Equal(t, StatusErase, st.Status)
		assert.Equal(t, ActionIdle, st.Action)

		require.NoError(t, e.Undo())
		assert.Equal(t, []shape.ID{"a", "b", "l"}, shape.IDs(e.State().Content.Shapes))
		s, _ = e.Shape("b")
		assert.False(t, s.Base().Deleting)
	})

	t.Run("overlapping strokes are all marked", func(t *testing.T) {
		c := stroke("c", geom.Pt(0, 2), geom.Pt(10, 2))
		e := newTestEditor(t, []shape.Shape{a, c}, WithHitTester(nearStroke))
		require.NoError(t, e.EraseStart(geom.PP(1, 1, 1)))
		require.NoError(t, e.EraseEnd())
		assert.Empty(t, e.State().Content.Shapes)
	})

	t.Run("nothing hit still records a step", func(t *testing.T) {
		e := newTestEditor(t, []shape.Shape{a, b}, WithHitTester(nearStroke))
		before := e.State().Content.Shapes
		require.NoError(t, e.EraseStart(geom.PP(500, 500, 1)))
		require.NoError(t, e.EraseEnd())
		assert.Equal(t, before, e.State().Content.Shapes)
		assert.True(t, e.CanUndo())
	})

	t.Run("no hit tester", func(t *testing.T) {
		e := newTestEditor(t, []shape.Shape{a})
		require.NoError(t, e.EraseStart(geom.PP(0, 0, 1)))
		require.NoError(t, e.EraseEnd())
		assert.Len(t, e.State().Content.Shapes, 1)
	})
}

func TestMove(t *testing.T) {
	line := shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0))
	other := shape.NewLine("b", geom.Pt(0, 50), geom.Pt(100, 50))
	e := newTestEditor(t, []shape.Shape{line, other})
	e.app.Camera.Z = 2
	require.NoError(t, e.Select("a", false))

	require.NoError(t, e.MoveStart())
	require.NoError(t, e.MoveBy(10, 20))
	require.NoError(t, e.MoveBy(10, 0))
	assert.Equal(t, ActionMoving, e.State().Action)
	require.NoError(t, e.MoveEnd())

	assert.Equal(t, geom.Pt(10, 10), onlyLine(t, e, "a").Start)
	assert.Equal(t, geom.Pt(0, 50), onlyLine(t, e, "b").Start)
	assert.Equal(t, ActionIdle, e.State().Action)

	require.NoError(t, e.Undo())
	assert.Equal(t, geom.Pt(0, 0), onlyLine(t, e, "a").Start)
}

func TestSelect(t *testing.T) {
	shapes := []shape.Shape{
		shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0)),
		shape.NewLine("b", geom.Pt(0, 10), geom.Pt(10, 10)),
		shape.NewLine("c", geom.Pt(0, 20), geom.Pt(10, 20)),
	}

	t.Run("single replaces", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.Select("a", false))
		require.NoError(t, e.Select("b", false))
		assert.Equal(t, []shape.ID{"b"}, e.State().Content.SelectedIDs)
		assert.Equal(t, 2, e.history.Len())
	})

	t.Run("multi toggles without history", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		e.app.Status = StatusCurve
		require.NoError(t, e.Select("a", true))
		require.NoError(t, e.Select("c", true))
		assert.Equal(t, []shape.ID{"a", "c"}, e.State().Content.SelectedIDs)
		assert.Equal(t, StatusIdle, e.State().Status)

		require.NoError(t, e.Select("a", true))
		assert.Equal(t, []shape.ID{"c"}, e.State().Content.SelectedIDs)
		assert.False(t, e.CanUndo())
	})

	t.Run("member of selection keeps group", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.Select("a", true))
		require.NoError(t, e.Select("b", true))
		require.NoError(t, e.Select("b", false))
		assert.Equal(t, []shape.ID{"a", "b"}, e.State().Content.SelectedIDs)
	})

	t.Run("empty id clears and idles", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		e.app.Status = StatusDraw
		require.NoError(t, e.Select("a", false))
		require.NoError(t, e.Select("", false))
		assert.Empty(t, e.State().Content.SelectedIDs)
		assert.Equal(t, StatusIdle, e.State().Status)

		require.NoError(t, e.Undo())
		assert.Equal(t, StatusDraw, e.State().Status)
		assert.Equal(t, []shape.ID{"a"}, e.State().Content.SelectedIDs)
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.Select("zzz", false))
		require.NoError(t, e.Select("zzz", true))
		assert.Empty(t, e.State().Content.SelectedIDs)
		assert.False(t, e.CanUndo())
	})

	t.Run("select all", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		e.app.Status = StatusPen
		require.NoError(t, e.SelectAll())
		assert.Equal(t, []shape.ID{"a", "b", "c"}, e.State().Content.SelectedIDs)
		assert.Equal(t, StatusIdle, e.State().Status)
		assert.Equal(t, ActionIdle, e.State().Action)
		assert.Len(t, e.SelectedShapes(), 3)
	})
}

func TestHover(t *testing.T) {
	e := newTestEditor(t, []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0))})

	require.NoError(t, e.SetHovered("a"))
	assert.Equal(t, []shape.ID{"a"}, e.State().Content.HoveredIDs)
	assert.Equal(t, ActionHovering, e.State().Action)
	assert.Len(t, e.HoveredShapes(), 1)

	require.NoError(t, e.SetHovered("missing"))
	assert.Equal(t, []shape.ID{"a"}, e.State().Content.HoveredIDs)

	require.NoError(t, e.SetHovered(""))
	assert.Empty(t, e.State().Content.HoveredIDs)
	assert.Equal(t, ActionIdle, e.State().Action)
	assert.False(t, e.CanUndo())
}

func TestDelete(t *testing.T) {
	shapes := []shape.Shape{
		shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0)),
		shape.NewLine("b", geom.Pt(0, 10), geom.Pt(10, 10)),
	}

	t.Run("selected", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.SetHovered("a"))
		require.NoError(t, e.Select("a", false))
		require.NoError(t, e.DeleteSelected())

		st := e.State()
		assert.Equal(t, []shape.ID{"b"}, shape.IDs(st.Content.Shapes))
		assert.Empty(t, st.Content.SelectedIDs)
		assert.Empty(t, st.Content.HoveredIDs, "hover on a deleted shape is pruned")

		require.NoError(t, e.Undo())
		assert.Equal(t, []shape.ID{"a", "b"}, shape.IDs(e.State().Content.Shapes))
		assert.Equal(t, []shape.ID{"a"}, e.State().Content.SelectedIDs)
	})

	t.Run("nothing selected", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.DeleteSelected())
		assert.Len(t, e.State().Content.Shapes, 2)
		assert.False(t, e.CanUndo())
	})

	t.Run("all", func(t *testing.T) {
		e := newTestEditor(t, shapes)
		require.NoError(t, e.Select("b", false))
		require.NoError(t, e.DeleteAll())
		assert.Empty(t, e.State().Content.Shapes)
		assert.Empty(t, e.State().Content.SelectedIDs)
		require.NoError(t, e.Undo())
		assert.Len(t, e.State().Content.Shapes, 2)
	})
}

func TestAutoCurveLine(t *testing.T) {
	target := shape.NewLine("t", geom.Pt(0, 0), geom.Pt(10, 0))
	left := shape.NewLine("l", geom.Pt(-10, -10), geom.Pt(0, 0))
	right := shape.NewLine("r", geom.Pt(10, 0), geom.Pt(20, -10))

	t.Run("fits", func(t *testing.T) {
		e := newTestEditor(t, []shape.Shape{target, left, right})
		ok, err := e.AutoCurveLine("t")
		require.NoError(t, err)
		require.True(t, ok)
		c := *onlyLine(t, e, "t").Curve
		assert.InDelta(t, 5, c.X, 1e-9)
		assert.InDelta(t, 5, c.Y, 1e-9)

		require.NoError(t, e.Undo())
		assert.Equal(t, geom.Pt(5, 0), *onlyLine(t, e, "t").Curve)
	})

	t.Run("ambiguous start", func(t *testing.T) {
		extra := shape.NewLine("x", geom.Pt(0, 0), geom.Pt(0, 30))
		e := newTestEditor(t, []shape.Shape{target, left, right, extra})
		ok, err := e.AutoCurveLine("t")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, geom.Pt(5, 0), *onlyLine(t, e, "t").Curve)
		assert.False(t, e.CanUndo())
	})

	t.Run("not a line", func(t *testing.T) {
		e := newTestEditor(t, []shape.Shape{stroke("f", geom.Pt(0, 0), geom.Pt(5, 5))})
		ok, err := e.AutoCurveLine("f")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPaste(t *testing.T) {
	src := shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0))
	e := newTestEditor(t, []shape.Shape{src})

	ids, err := e.Paste([]shape.Shape{src, shape.NewLine("z", geom.Pt(1, 1), geom.Pt(1, 1))}, 20, 20)
	require.NoError(t, err)
	assert.Equal(t, []shape.ID{"s1"}, ids)

	pasted := onlyLine(t, e, "s1")
	assert.Equal(t, geom.Pt(20, 20), pasted.Start)
	assert.Equal(t, ids, e.State().Content.SelectedIDs)
	assert.Equal(t, geom.Pt(0, 0), onlyLine(t, e, "a").Start)

	require.NoError(t, e.Undo())
	assert.Len(t, e.State().Content.Shapes, 1)
}

func TestGesturePreconditions(t *testing.T) {
	e := newTestEditor(t, nil)

	err := e.FreehandMove(geom.PP(1, 1, 1))
	assert.ErrorIs(t, err, ErrNoGesture)

	require.NoError(t, e.FreehandStart(geom.PP(1, 1, 1)))
	before := e.State()

	err = e.EraseStart(geom.PP(1, 1, 1))
	require.ErrorIs(t, err, ErrGestureInProgress)
	var ge *GestureError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "erase start", ge.Op)
	assert.Equal(t, GestureFreehand, ge.Open)

	assert.ErrorIs(t, e.DrawEnd(), ErrNoGesture)
	assert.ErrorIs(t, e.Undo(), ErrGestureInProgress)
	assert.ErrorIs(t, e.Select("", false), ErrGestureInProgress)
	assert.ErrorIs(t, e.PenClick(geom.Pt(0, 0), false, false), ErrGestureInProgress)
	_, err = e.PenMove(geom.Pt(0, 0), false)
	assert.ErrorIs(t, err, ErrGestureInProgress)
	assert.Equal(t, before, e.State(), "rejected calls change nothing")

	require.NoError(t, e.FreehandEnd())
	assert.ErrorIs(t, e.CancelGesture(), ErrNoGesture)
}

func TestCancelGesture(t *testing.T) {
	e := newTestEditor(t, []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0))})
	before := e.State()

	require.NoError(t, e.DrawStart(geom.Pt(50, 50)))
	_, err := e.DrawMove(geom.Pt(90, 90), false)
	require.NoError(t, err)
	require.NoError(t, e.CancelGesture())

	assert.Equal(t, before, e.State())
	assert.Equal(t, GestureNone, e.Gesture())
	assert.False(t, e.CanUndo())
}

func TestSetStatusSettlesEditingShapes(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.SetStatus(StatusDraw))

	// An abandoned zero-length line is dropped.
	require.NoError(t, e.DrawStart(geom.Pt(5, 5)))
	require.NoError(t, e.SetStatus(StatusPen))
	assert.Empty(t, e.State().Content.Shapes)
	assert.Equal(t, GestureNone, e.Gesture())

	// An abandoned valid line is committed.
	require.NoError(t, e.DrawStart(geom.Pt(5, 5)))
	_, err := e.DrawMove(geom.Pt(50, 5), false)
	require.NoError(t, err)
	require.NoError(t, e.SetStatus(StatusIdle))
	require.Len(t, e.State().Content.Shapes, 1)
	assert.False(t, e.State().Content.Shapes[0].Base().Editing)
	assert.Equal(t, ActionIdle, e.State().Action)

	require.NoError(t, e.Undo())
	assert.Empty(t, e.State().Content.Shapes)
	assert.Equal(t, StatusPen, e.State().Status)

	// Picking the current tool again records nothing.
	n := e.history.Len()
	require.NoError(t, e.SetStatus(StatusPen))
	assert.Equal(t, n, e.history.Len())
}

func TestUndoRedoInverse(t *testing.T) {
	e := newTestEditor(t, []shape.Shape{stroke("f", geom.Pt(200, 200), geom.Pt(210, 200))}, WithHitTester(nearStroke))
	steps := []func() error{
		func() error { return e.SetStatus(StatusDraw) },
		func() error {
			if err := e.DrawStart(geom.Pt(0, 0)); err != nil {
				return err
			}
			if _, err := e.DrawMove(geom.Pt(100, 0), false); err != nil {
				return err
			}
			return e.DrawEnd()
		},
		func() error { return e.SetTheme(ThemeUpdate{PenColor: ptr("#f03e3e")}) },
		func() error {
			if err := e.FreehandStart(geom.PP(0, 50, 1)); err != nil {
				return err
			}
			if err := e.FreehandMove(geom.PP(30, 60, 0.5)); err != nil {
				return err
			}
			return e.FreehandEnd()
		},
		func() error { return e.SelectAll() },
		func() error {
			if err := e.MoveStart(); err != nil {
				return err
			}
			if err := e.MoveBy(5, 5); err != nil {
				return err
			}
			return e.MoveEnd()
		},
		func() error {
			if err := e.EraseStart(geom.PP(206, 205, 1)); err != nil {
				return err
			}
			return e.EraseEnd()
		},
		func() error {
			if err := e.Select("s1", false); err != nil {
				return err
			}
			return e.DeleteSelected()
		},
	}

	var states []App
	for i, step := range steps {
		states = append(states, e.State())
		require.NoError(t, step(), "step %d", i)
	}
	final := e.State()

	for i := 0; e.CanUndo(); i++ {
		after := e.State()
		require.NoError(t, e.Undo())
		undone := e.State()
		require.NoError(t, e.Redo())
		assert.Equal(t, after, e.State(), "undo+redo %d from the top", i)
		require.NoError(t, e.Undo())
		assert.Equal(t, undone, e.State())
	}
	assert.Equal(t, states[0].Content, e.State().Content)
	assert.Equal(t, states[0].Theme, e.State().Theme)

	for e.CanRedo() {
		require.NoError(t, e.Redo())
	}
	assert.Equal(t, final, e.State())
}

func TestHistoryDepth(t *testing.T) {
	e := newTestEditor(t, nil, WithHistoryDepth(2))
	for _, s := range []Status{StatusDraw, StatusPen, StatusErase} {
		require.NoError(t, e.SetStatus(s))
	}
	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.False(t, e.CanUndo())
	assert.Equal(t, StatusDraw, e.State().Status)

	require.NoError(t, e.Undo())
	assert.Equal(t, StatusDraw, e.State().Status)
}

func TestCamera(t *testing.T) {
	e := newTestEditor(t, nil)
	e.app.Camera = camera.Camera{X: -100, Y: -100, Z: 1}

	require.NoError(t, e.Pan(10, 20))
	assert.Equal(t, camera.Camera{X: -110, Y: -120, Z: 1}, e.State().Camera)
	assert.False(t, e.CanUndo(), "camera moves are not recorded")

	require.NoError(t, e.Pan(-1000, 0))
	assert.Equal(t, 0.0, e.State().Camera.X, "clamped to the world edge")

	require.NoError(t, e.ZoomIn())
	assert.InDelta(t, 1.25, e.State().Camera.Z, 1e-9)
	require.NoError(t, e.ResetZoom())
	assert.Equal(t, 1.0, e.State().Camera.Z)
	require.NoError(t, e.ResetCamera())
	assert.Equal(t, camera.Initial, e.State().Camera)

	e.SetOptions(EditorOptions{DisablePanning: true})
	cam := e.State().Camera
	assert.ErrorIs(t, e.Pan(5, 5), ErrPanningDisabled)
	assert.ErrorIs(t, e.Pinch(geom.Pt(0, 0), 0.5), ErrPanningDisabled)
	assert.Equal(t, cam, e.State().Camera)
}

func TestViewport(t *testing.T) {
	e := newTestEditor(t, nil)
	e.SetViewport(geom.Rect{MaxX: 200, MaxY: 100})
	assert.Equal(t, geom.Rect{MaxX: 200, MaxY: 100}, e.Viewport())
	assert.Equal(t, geom.Pt(20, 30), e.ScreenToCanvas(geom.Pt(20, 30)))
}

func TestRestore(t *testing.T) {
	e := newTestEditor(t, nil)
	require.NoError(t, e.SetStatus(StatusDraw))
	require.NoError(t, e.DrawStart(geom.Pt(0, 0)))
	_, err := e.DrawMove(geom.Pt(40, 0), false)
	require.NoError(t, err)
	require.NoError(t, e.DrawEnd())

	app, hist := e.State(), e.History(0)
	other := newTestEditor(t, nil)
	require.NoError(t, other.Restore(app, hist))
	assert.Equal(t, app.Content.Shapes, other.State().Content.Shapes)
	assert.Len(t, other.History(0), 2)

	require.NoError(t, other.Undo())
	assert.Empty(t, other.State().Content.Shapes)
	assert.Len(t, other.History(1), 1)
}

func TestStateIsACopy(t *testing.T) {
	curved := shape.NewLine("a", geom.Pt(0, 0), geom.Pt(100, 0)).WithCurve(geom.Pt(50, 20))
	e := newTestEditor(t, []shape.Shape{curved, stroke("f", geom.Pt(0, 0), geom.Pt(10, 10))})
	require.NoError(t, e.SelectAll())

	st := e.State()
	st.Content.Shapes[0] = shape.NewLine("z", geom.Pt(1, 1), geom.Pt(2, 2))
	st.Content.SelectedIDs[0] = "z"
	st = e.State()
	*st.Content.Shapes[0].(shape.Line).Curve = geom.Pt(0, 0)
	st.Content.Shapes[1].(shape.Freeform).Points[0] = geom.Pt(9, 9).WithPressure(1)

	after := e.State()
	assert.Equal(t, shape.ID("a"), after.Content.Shapes[0].Base().ID)
	assert.Equal(t, geom.Pt(50, 20), *onlyLine(t, e, "a").Curve)
	assert.Equal(t, geom.Pt(0, 0), after.Content.Shapes[1].(shape.Freeform).Points[0].Point())
	assert.Equal(t, []shape.ID{"a", "f"}, after.Content.SelectedIDs)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEditor(t, []shape.Shape{shape.NewLine("a", geom.Pt(0, 0), geom.Pt(10, 0))},
		WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, e.DeleteAll())
	assert.Contains(t, buf.String(), "[editor] deleted all 1 shapes")
}

func TestStatusText(t *testing.T) {
	b, err := StatusFreehand.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "freehand", string(b))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("erase")))
	assert.Equal(t, StatusErase, s)
	assert.Error(t, s.UnmarshalText([]byte("lasso")))

	var a Action
	require.NoError(t, a.UnmarshalText([]byte("drawing_pen")))
	assert.Equal(t, ActionDrawingPen, a)
}
