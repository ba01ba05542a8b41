package editor

import (
	"spectre/internal/camera"
	"spectre/internal/geom"
)

// Camera changes are patched in place and never recorded. They are
// allowed while a gesture is open.

func (e *Editor) moveCamera(op string, fn func(camera.Camera) camera.Camera) error {
	if e.opts.DisablePanning {
		return &GestureError{Op: op, Open: e.gesture, Err: ErrPanningDisabled}
	}
	next := camera.Update(e.app.Camera, e.screen, e.limits, fn)
	e.patch(Patch{Camera: &next})
	return nil
}

// Pan scrolls by dx, dy screen pixels.
func (e *Editor) Pan(dx, dy float64) error {
	return e.moveCamera("pan", func(c camera.Camera) camera.Camera {
		return camera.Pan(c, dx, dy)
	})
}

// Pinch zooms by dz about the screen point center.
func (e *Editor) Pinch(center geom.Point, dz float64) error {
	return e.moveCamera("pinch", func(c camera.Camera) camera.Camera {
		return camera.ZoomTo(c, center, dz, e.limits)
	})
}

func (e *Editor) ZoomIn() error {
	r := camera.RequestZoomIn(e.app.Camera, e.screen)
	return e.Pinch(r.Center, r.DZ)
}

func (e *Editor) ZoomOut() error {
	r := camera.RequestZoomOut(e.app.Camera, e.screen)
	return e.Pinch(r.Center, r.DZ)
}

// ResetZoom returns to 1x about the screen centre.
func (e *Editor) ResetZoom() error {
	return e.moveCamera("reset zoom", func(c camera.Camera) camera.Camera {
		return camera.ResetZoom(c, e.screen)
	})
}

// ResetCamera returns to the initial camera.
func (e *Editor) ResetCamera() error {
	return e.moveCamera("reset camera", func(camera.Camera) camera.Camera {
		return camera.Initial
	})
}

// SetViewport tells the editor the size of the screen box it maps onto.
func (e *Editor) SetViewport(screen geom.Rect) {
	e.screen = screen
}
