package stamp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MarkMode selects how ChangeMark updates an entry's mark.
type MarkMode int

const (
	MarkToggle MarkMode = iota
	MarkSet
	MarkClear
)

// FileEntry is one member of a visited directory. Regular files own a view
// per slot; directories and other entries expose DirectorySentinel everywhere.
type FileEntry struct {
	name     string
	typ      EntryType
	path     string
	stat     *StatData
	views    [slotCount]View
	marked   bool
	analysis *Analysis
	dataFile bool
}

// viewEnv carries what view construction needs for one directory visit.
type viewEnv struct {
	ctx       DirectoryContext
	zone      Zone
	codec     Codec
	fsmgr     FilesystemManager
	overrides *OverrideStore
}

func newFileEntry(env *viewEnv, dir string, de DirEntry) (*FileEntry, error) {
	e := &FileEntry{
		name: de.Name,
		typ:  de.Type,
		path: filepath.Join(dir, de.Name),
	}

	if de.Type != TypeFile || de.Stat == nil {
		if e.typ == TypeFile {
			e.typ = TypeOther
		}
		for i := range e.views {
			e.views[i] = DirectorySentinel
		}
		return e, nil
	}

	e.stat = de.Stat
	if de.Name == DataFileName {
		e.dataFile = true
		for i := range e.views {
			e.views[i] = MissingSentinel
		}
		return e, nil
	}

	if err := e.buildViews(env); err != nil {
		return nil, fmt.Errorf("building views for %s: %w", e.path, err)
	}
	return e, nil
}

func (e *FileEntry) buildViews(env *viewEnv) error {
	local := NewStatView(Local, e.path, e.stat, env.codec, env.fsmgr)
	gmt := NewStatView(UTC, e.path, e.stat, env.codec, env.fsmgr)
	e.views[SlotLocal] = local
	e.views[SlotGmt] = gmt

	linux, err := NewLinuxView(env.ctx, env.zone, local)
	if err != nil {
		return err
	}
	e.views[SlotLinux] = linux

	winNew, err := NewWindowsView(env.ctx, env.zone, true, local, gmt)
	if err != nil {
		return err
	}
	e.views[SlotWinNew] = winNew

	winOld, err := NewWindowsView(env.ctx, env.zone, false, local, gmt)
	if err != nil {
		return err
	}
	e.views[SlotWinOld] = winOld

	fname, err := NewFilenameView(e.name)
	switch {
	case errors.Is(err, ErrNoTimestampFound):
		e.views[SlotFilename] = MissingSentinel
	case err != nil:
		return err
	default:
		e.views[SlotFilename] = fname
	}

	stamp, _ := env.overrides.Lookup(e.name)
	override, err := NewOverrideView(stamp)
	if err != nil {
		return err
	}
	e.views[SlotOverride] = override
	return nil
}

func (e *FileEntry) Name() string    { return e.name }
func (e *FileEntry) Type() EntryType { return e.typ }
func (e *FileEntry) Path() string    { return e.path }
func (e *FileEntry) IsFile() bool    { return e.typ == TypeFile }
func (e *FileEntry) Marked() bool    { return e.marked }

// IsDataFile reports whether the entry is the directory's override file.
func (e *FileEntry) IsDataFile() bool { return e.dataFile }

// Extension returns the lower-cased extension including the dot, or "" for
// non-files.
func (e *FileEntry) Extension() string {
	if !e.IsFile() {
		return ""
	}
	return strings.ToLower(filepath.Ext(e.name))
}

// Size returns the byte size of a file.
func (e *FileEntry) Size() (int64, bool) {
	if e.stat == nil {
		return 0, false
	}
	return e.stat.Size, true
}

// Mtime returns the raw mtime of a file.
func (e *FileEntry) Mtime() (int64, bool) {
	if e.stat == nil {
		return 0, false
	}
	return e.stat.Mtime, true
}

// DST reports the DST flag of the Local view.
func (e *FileEntry) DST() (DSTFlag, bool) {
	t, ok := e.views[SlotLocal].Get()
	if !ok {
		return DSTUnknown, false
	}
	return t.DST, true
}

// View returns the view in slot s, or nil for an invalid slot.
func (e *FileEntry) View(s Slot) View {
	if !s.valid() {
		return nil
	}
	return e.views[s]
}

// Analysis returns the result of the last Analyse on this entry.
func (e *FileEntry) Analysis() (Analysis, bool) {
	if e.analysis == nil {
		return Analysis{}, false
	}
	return *e.analysis, true
}

// ChangeMark updates the mark. Non-files accept marks but actions ignore them.
func (e *FileEntry) ChangeMark(mode MarkMode) {
	switch mode {
	case MarkToggle:
		e.marked = !e.marked
	case MarkSet:
		e.marked = true
	case MarkClear:
		e.marked = false
	}
}

// ResetOutputs clears the analysis result and every colour annotation.
func (e *FileEntry) ResetOutputs() {
	if !e.IsFile() {
		return
	}
	e.analysis = nil
	for _, v := range e.views {
		v.clearAnnotation()
	}
}

// overrideStamp returns the override value for the data file writer.
func (e *FileEntry) overrideStamp() (string, bool) {
	if !e.IsFile() {
		return "", false
	}
	v, ok := e.views[SlotOverride].(*OverrideView)
	if !ok {
		return "", false
	}
	return v.Stamp()
}
