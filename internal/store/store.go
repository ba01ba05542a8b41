// Package store saves and loads editing sessions.
//
// A session is written as a Document: the App state plus the newest part
// of its undo stack. Two backends are provided, plain JSON files in a
// directory and an SQLite database that keeps a rolling set of
// checkpoints per drawing.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"spectre/internal/editor"
)

// Version is the document layout written by this package.
const Version = 1

// DefaultHistoryDepth is how many undo steps a snapshot keeps.
const DefaultHistoryDepth = 50

var (
	ErrNotFound   = errors.New("drawing not found")
	ErrBadVersion = errors.New("unsupported document version")
	ErrBadName    = errors.New("invalid drawing name")
)

// Document is one saved session.
type Document struct {
	Version int            `json:"version"`
	SavedAt time.Time      `json:"savedAt"`
	App     editor.App     `json:"app"`
	History []editor.Entry `json:"history,omitempty"`
}

// Snapshot captures the editor's state and at most depth undo steps.
// depth <= 0 uses DefaultHistoryDepth.
func Snapshot(e *editor.Editor, depth int) Document {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return Document{
		Version: Version,
		SavedAt: time.Now().UTC(),
		App:     e.State(),
		History: e.History(depth),
	}
}

// Restore loads d into e, replacing its state and undo stack.
func (d Document) Restore(e *editor.Editor) error {
	if err := d.check(); err != nil {
		return err
	}
	return e.Restore(d.App, d.History)
}

func (d Document) check() error {
	if d.Version != Version {
		return fmt.Errorf("%w: %d", ErrBadVersion, d.Version)
	}
	return nil
}

// Store is a place drawings can be saved to by name.
type Store interface {
	Save(ctx context.Context, name string, doc Document) error
	Load(ctx context.Context, name string) (Document, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Open returns the backend named by kind ("file" or "sqlite") rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case "", "file":
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := OpenSQLite(filepath.Join(dir, "spectre.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
