package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aerologix/aerologix/internal/checksum"
	"github.com/aerologix/aerologix/internal/models"
)

// FS implements Provider backed by the local file system. Each aircraft gets
// one flat directory named after its id.
type FS struct {
	root string // absolute path to the media directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// safePath validates the aircraft id and filename (plain names only, no
// separators or traversal) and returns the absolute file path.
func (f *FS) safePath(aircraftID, name string) (string, error) {
	if _, err := uuid.Parse(aircraftID); err != nil {
		return "", fmt.Errorf("storage: invalid aircraft id: %s", aircraftID)
	}
	if name == "" {
		return "", fmt.Errorf("storage: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("storage: invalid filename: %s", name)
	}
	abs := filepath.Join(f.root, aircraftID, cleaned)
	dir := filepath.Join(f.root, aircraftID)
	if !strings.HasPrefix(abs, dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes media root: %s", name)
	}
	return abs, nil
}

// List returns metadata for every file stored for an aircraft. A missing
// aircraft directory yields an empty list, not an error.
func (f *FS) List(aircraftID string) ([]models.MediaInfo, error) {
	if _, err := uuid.Parse(aircraftID); err != nil {
		return nil, fmt.Errorf("storage: invalid aircraft id: %s", aircraftID)
	}
	dir := filepath.Join(f.root, aircraftID)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []models.MediaInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}

	out := []models.MediaInfo{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("storage: stat %s: %w", e.Name(), err)
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("storage: read %s: %w", e.Name(), err)
		}
		out = append(out, models.MediaInfo{
			AircraftID: aircraftID,
			Filename:   e.Name(),
			Size:       info.Size(),
			Checksum:   checksum.Sum(data),
			UpdatedAt:  info.ModTime(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of a stored file.
func (f *FS) Read(aircraftID, name string) ([]byte, error) {
	abs, err := f.safePath(aircraftID, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically stores content: tmp file, fsync, rename.
func (f *FS) Write(aircraftID, name string, content []byte) error {
	abs, err := f.safePath(aircraftID, name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".media-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes one stored file.
func (f *FS) Delete(aircraftID, name string) error {
	abs, err := f.safePath(aircraftID, name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// DeleteAll removes the whole media directory of an aircraft.
func (f *FS) DeleteAll(aircraftID string) error {
	if _, err := uuid.Parse(aircraftID); err != nil {
		return fmt.Errorf("storage: invalid aircraft id: %s", aircraftID)
	}
	if err := os.RemoveAll(filepath.Join(f.root, aircraftID)); err != nil {
		return fmt.Errorf("storage: delete all: %w", err)
	}
	return nil
}

// Path returns the absolute path of a stored file for http.ServeFile.
func (f *FS) Path(aircraftID, name string) (string, error) {
	abs, err := f.safePath(aircraftID, name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return abs, nil
}
