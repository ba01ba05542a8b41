package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrGestureInProgress rejects a gesture start, or any operation that
	// records history, while another gesture is still open.
	ErrGestureInProgress = errors.New("gesture in progress")
	// ErrNoGesture rejects a Move, End or Cancel with no matching Start.
	ErrNoGesture = errors.New("no matching gesture")
	// ErrPanningDisabled rejects camera changes when EditorOptions say so.
	ErrPanningDisabled = errors.New("panning disabled")
)

// GestureError reports which operation was refused and which gesture was
// open at the time.
type GestureError struct {
	Op   string
	Open Gesture
	Err  error
}

func (e *GestureError) Error() string {
	return fmt.Sprintf("%s: %v (open gesture: %s)", e.Op, e.Err, e.Open)
}

func (e *GestureError) Unwrap() error { return e.Err }
