package editor

import (
	"io"
	"log"

	"spectre/internal/camera"
	"spectre/internal/geom"
	"spectre/internal/shape"
)

// EditorOptions are display flags owned by the host. The editor only
// reads DisablePanning.
type EditorOptions struct {
	HideBackgroundPattern bool `toml:"hide_background_pattern"`
	DisablePanning        bool `toml:"disable_panning"`
}

// HitTester reports which of the candidate strokes the point p (canvas
// space) falls on. The host owns stroke geometry, so hit-testing is
// delegated to it.
type HitTester interface {
	HitTest(p geom.Point, candidates []shape.Freeform) (shape.ID, bool)
}

// HitTestFunc adapts a function to HitTester.
type HitTestFunc func(p geom.Point, candidates []shape.Freeform) (shape.ID, bool)

func (f HitTestFunc) HitTest(p geom.Point, candidates []shape.Freeform) (shape.ID, bool) {
	return f(p, candidates)
}

// DefaultScreen is the viewport assumed until SetViewport is called.
var DefaultScreen = geom.Rect{MinX: 0, MinY: 0, MaxX: 1280, MaxY: 800}

type Option func(*Editor)

type logger interface {
	Printf(format string, v ...any)
}

func WithLogger(l *log.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithIDGenerator replaces the source of new shape ids.
func WithIDGenerator(gen func() shape.ID) Option {
	return func(e *Editor) { e.newID = gen }
}

func WithHistoryDepth(depth int) Option {
	return func(e *Editor) { e.history = NewHistory(depth) }
}

func WithHitTester(h HitTester) Option {
	return func(e *Editor) { e.hits = h }
}

func WithOptions(o EditorOptions) Option {
	return func(e *Editor) { e.opts = o }
}

func WithLimits(l camera.Limits) Option {
	return func(e *Editor) { e.limits = l }
}

// WithState starts the editor from a given App instead of InitialApp.
func WithState(a App) Option {
	return func(e *Editor) { e.app = a }
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
