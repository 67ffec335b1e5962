package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileBackend persists the document as a single JSON file. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// half-written document behind.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *FileBackend) Ping(_ context.Context) error {
	dir := filepath.Dir(b.path)
	_, err := os.Stat(dir)
	return err
}

func (b *FileBackend) Close() error { return nil }
