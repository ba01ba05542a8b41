package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".spectre.json"

// FileStore keeps one JSON document per drawing in a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir store dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

// Path returns the file a drawing is stored in.
func (s *FileStore) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name+fileExt), nil
}

func (s *FileStore) Save(_ context.Context, name string, doc Document) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	// Write then rename so a crash never leaves half a file behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Load(_ context.Context, name string) (Document, error) {
	path, err := s.Path(name)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := doc.check(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// List returns the saved drawing names in order.
func (s *FileStore) List(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
			names = append(names, strings.TrimSuffix(e.Name(), fileExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}
