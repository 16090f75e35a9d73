package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pcte/equiptrack/internal/model"
)

// FileAdapter persists the snapshot as a JSON file. Saves go through a
// temporary file and rename, so a crash mid-write leaves the previous
// snapshot intact.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates an adapter writing to the given path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Load reads and migrates the stored snapshot. A missing file yields the
// seeded default state; a corrupt file falls back to migration's permissive
// coercion rather than failing.
func (a *FileAdapter) Load(_ context.Context) (*model.AppState, error) {
	raw, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.BuildDefaultState(model.StateVersion), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return model.MigrateSnapshot(raw), nil
}

// Save writes the snapshot atomically.
func (a *FileAdapter) Save(_ context.Context, state *model.AppState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(a.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Clear removes the snapshot file.
func (a *FileAdapter) Clear(_ context.Context) error {
	if err := os.Remove(a.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing snapshot file: %w", err)
	}
	return nil
}
