package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend keeps each collection in <Dir>/<name>.json.
type FileBackend struct {
	Fs  afero.Fs
	Dir string
}

// NewFileBackend returns a backend rooted at dir on fs.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{Fs: fs, Dir: dir}
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.Dir, name+".json")
}

// Load reads the document for name.
func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(b.Fs, b.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path(name), err)
	}
	return data, nil
}

// Save writes through a temp file and renames it over the document.
func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	if err := b.Fs.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp := b.path(name) + ".tmp"
	if err := afero.WriteFile(b.Fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := b.Fs.Rename(tmp, b.path(name)); err != nil {
		_ = b.Fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", b.path(name), err)
	}
	return nil
}

// Ensure creates an empty array document when the file is missing.
func (b *FileBackend) Ensure(_ context.Context, name string) (bool, error) {
	exists, err := afero.Exists(b.Fs, b.path(name))
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", b.path(name), err)
	}
	if exists {
		return false, nil
	}
	if err := b.Fs.MkdirAll(b.Dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := afero.WriteFile(b.Fs, b.path(name), []byte("[]"), 0o644); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", b.path(name), err)
	}
	return true, nil
}
