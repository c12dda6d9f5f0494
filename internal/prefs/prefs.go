// Package prefs finds directory-scoped media preferences.
//
// A preference file is a flat key=value file named FileName. The first one
// found walking from a directory towards the filesystem root applies to
// that directory and everything below it.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/ini.v1"

	"timestamper/internal/stamp"
)

// FileName is the name of a media preference file.
const FileName = ".timestamper.mediaprefs"

// Reader is the part of the filesystem the finder needs.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// Finder implements stamp.MediaPrefs.
type Finder struct {
	fsmgr Reader
}

// NewFinder creates a finder reading preference files through fsmgr.
func NewFinder(fsmgr Reader) *Finder {
	return &Finder{fsmgr: fsmgr}
}

// Lookup returns key from the nearest preference file above dir. found is
// false when no file exists up to the root or the file lacks the key.
func (f *Finder) Lookup(dir, key string) (string, bool, error) {
	file, _, err := f.Find(dir)
	if err != nil {
		return "", false, err
	}
	if file == nil {
		return "", false, nil
	}

	section := file.Section("")
	if !section.HasKey(key) {
		return "", false, nil
	}
	return section.Key(key).String(), true, nil
}

// Find locates and parses the nearest preference file. It returns a nil
// file when there is none.
func (f *Finder) Find(dir string) (*ini.File, string, error) {
	dir = filepath.Clean(dir)
	for {
		path := filepath.Join(dir, FileName)
		data, err := f.fsmgr.ReadFile(path)
		switch {
		case err == nil:
			file, err := Parse(data)
			if err != nil {
				return nil, path, fmt.Errorf("parsing %s: %w", path, err)
			}
			return file, path, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, path, fmt.Errorf("reading %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// Parse reads preference file contents. Values are taken verbatim up to the
// end of the line.
func Parse(data []byte) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
}

var _ stamp.MediaPrefs = (*Finder)(nil)
