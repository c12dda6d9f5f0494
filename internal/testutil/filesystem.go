package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	tsfs "timestamper/internal/fs"
	"timestamper/internal/prefs"
	"timestamper/internal/stamp"
)

// MemFS is an in-memory filesystem with a manager on top of it.
type MemFS struct {
	Fs      afero.Fs
	Manager *tsfs.FilesystemManager
}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	afs := afero.NewMemMapFs()
	return &MemFS{Fs: afs, Manager: tsfs.NewFilesystemManager(afs)}
}

// AddDir creates a directory and its parents.
func (m *MemFS) AddDir(t *testing.T, path string) {
	t.Helper()
	if err := m.Fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

// AddFile writes content to path and sets its mtime.
func (m *MemFS) AddFile(t *testing.T, path string, content []byte, mtime time.Time) {
	t.Helper()
	m.AddDir(t, filepath.Dir(path))
	if err := afero.WriteFile(m.Fs, path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := m.Fs.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("setting mtime of %s: %v", path, err)
	}
}

// SetMediaMode writes a media preferences file selecting mode for dir.
func (m *MemFS) SetMediaMode(t *testing.T, dir, mode string) {
	t.Helper()
	data := []byte(stamp.ModeKey + " = " + mode + "\n")
	if err := afero.WriteFile(m.Fs, filepath.Join(dir, prefs.FileName), data, 0o644); err != nil {
		t.Fatalf("writing media preferences: %v", err)
	}
}

// Mtime returns the current mtime of path in epoch seconds.
func (m *MemFS) Mtime(t *testing.T, path string) int64 {
	t.Helper()
	info, err := m.Fs.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return info.ModTime().Unix()
}

// ReadFile returns the content of path.
func (m *MemFS) ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(m.Fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
