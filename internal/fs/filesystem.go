package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"timestamper/internal/stamp"
)

// FilesystemManager implements stamp.FilesystemManager on top of an afero.Fs.
// The OS-backed variant performs real filesystem operations; tests use an
// in-memory filesystem.
type FilesystemManager struct {
	afs afero.Fs
}

// NewFilesystemManager creates a filesystem manager over afs.
func NewFilesystemManager(afs afero.Fs) *FilesystemManager {
	return &FilesystemManager{afs: afs}
}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *FilesystemManager {
	return NewFilesystemManager(afero.NewOsFs())
}

// IsDir reports whether path exists and is a directory. Symlinks are followed.
func (m *FilesystemManager) IsDir(path string) (bool, error) {
	info, err := m.afs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.IsDir(), nil
}

// ListDir returns the members of a directory. Symlinks are classified by
// their target; dangling links are reported as other.
func (m *FilesystemManager) ListDir(path string) ([]stamp.DirEntry, error) {
	infos, err := afero.ReadDir(m.afs, path)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	entries := make([]stamp.DirEntry, 0, len(infos))
	for _, info := range infos {
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := m.afs.Stat(filepath.Join(path, info.Name())); err == nil {
				info = target
			}
		}

		entry := stamp.DirEntry{Name: info.Name(), Type: entryType(info)}
		if entry.Type == stamp.TypeFile {
			entry.Stat = statData(info)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryType(info fs.FileInfo) stamp.EntryType {
	switch {
	case info.Mode().IsRegular():
		return stamp.TypeFile
	case info.IsDir():
		return stamp.TypeDirectory
	default:
		return stamp.TypeOther
	}
}

// Stat returns fresh stat data for a path.
func (m *FilesystemManager) Stat(path string) (*stamp.StatData, error) {
	info, err := m.afs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}
	return statData(info), nil
}

// SetModTime sets the mtime of path and writes back the current atime at
// full precision.
func (m *FilesystemManager) SetModTime(path string, mtime int64) error {
	info, err := m.afs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat path: %w", err)
	}

	if err := m.afs.Chtimes(path, accessTime(info), time.Unix(mtime, 0)); err != nil {
		return fmt.Errorf("changing times: %w", err)
	}
	return nil
}

// ReadFile returns the contents of a file.
func (m *FilesystemManager) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(m.afs, path)
}

// WriteFile replaces the contents of a file, keeping the permissions of an
// existing file.
func (m *FilesystemManager) WriteFile(path string, data []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := m.afs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return afero.WriteFile(m.afs, path, data, perm)
}

// Compile-time check that FilesystemManager implements stamp.FilesystemManager interface
var _ stamp.FilesystemManager = (*FilesystemManager)(nil)
