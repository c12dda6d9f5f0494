package stamp

import (
	"fmt"
	"strings"
)

// Slot addresses one of the timestamp views a file entry owns.
type Slot int

const (
	SlotLocal Slot = iota
	SlotGmt
	SlotLinux
	SlotWinNew
	SlotWinOld
	SlotFilename
	SlotOverride

	slotCount = iota
)

// NoSlot marks an absent view selector, e.g. a Colourise without target.
const NoSlot Slot = -1

// Slots lists every view slot in display order.
var Slots = []Slot{SlotLocal, SlotGmt, SlotLinux, SlotWinNew, SlotWinOld, SlotFilename, SlotOverride}

func (s Slot) valid() bool {
	return s >= 0 && s < slotCount
}

func (s Slot) String() string {
	switch s {
	case SlotLocal:
		return "local"
	case SlotGmt:
		return "gmt"
	case SlotLinux:
		return "linux"
	case SlotWinNew:
		return "winnew"
	case SlotWinOld:
		return "winold"
	case SlotFilename:
		return "fname"
	case SlotOverride:
		return "override"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// ParseSlot returns the slot with the given name.
func ParseSlot(name string) (Slot, error) {
	for _, s := range Slots {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return NoSlot, fmt.Errorf("unknown view %q", name)
}

// Kind identifies the concrete variant behind a View.
type Kind int

const (
	KindSentinel Kind = iota
	KindLocal
	KindGmt
	KindLinux
	KindWindowsOld
	KindWindowsNew
	KindFilename
	KindOverride
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindGmt:
		return "gmt"
	case KindLinux:
		return "linux"
	case KindWindowsOld:
		return "windows-old"
	case KindWindowsNew:
		return "windows-new"
	case KindFilename:
		return "filename"
	case KindOverride:
		return "override"
	default:
		return "sentinel"
	}
}

// View is one interpretation of a file's modification time.
//
// The set of implementations is closed: Sentinel, StatView, LinuxView,
// WindowsView, FilenameView and OverrideView.
type View interface {
	Kind() Kind

	// Display formats the value with Layout, or returns "" for no value.
	Display() string

	// SortKey orders views within a column. Sentinels sort before real values.
	SortKey() CanonicalTime

	// Get returns the current value. The bool is false when there is none.
	Get() (CanonicalTime, bool)

	// Set writes a value into the view. Views that cannot be written
	// return ErrUnsupportedTarget without changing anything.
	Set(t CanonicalTime) error

	// Severity returns the colour annotation left by the last Colourise.
	Severity() (Severity, bool)

	annotate(sev Severity)
	clearAnnotation()
}

// annotation holds the transient severity tag shared by all real views.
type annotation struct {
	severity Severity
	tagged   bool
}

func (a *annotation) Severity() (Severity, bool) { return a.severity, a.tagged }

func (a *annotation) annotate(sev Severity) {
	a.severity = sev
	a.tagged = true
}

func (a *annotation) clearAnnotation() {
	a.severity = ""
	a.tagged = false
}

// Sentinel is a typed "no value". It never carries an annotation.
type Sentinel struct {
	name string
	key  CanonicalTime
}

var (
	// DirectorySentinel fills every slot of a non-file entry. It sorts as epoch+0.
	DirectorySentinel = &Sentinel{name: "directory", key: NewCanonicalTime(1970, 1, 1, 0, 0, 0, DSTNo)}

	// MissingSentinel marks a file that lacks a view. It sorts as epoch+1.
	MissingSentinel = &Sentinel{name: "missing", key: NewCanonicalTime(1970, 1, 1, 0, 0, 1, DSTNo)}
)

func (s *Sentinel) Kind() Kind                 { return KindSentinel }
func (s *Sentinel) Display() string            { return "" }
func (s *Sentinel) SortKey() CanonicalTime     { return s.key }
func (s *Sentinel) Get() (CanonicalTime, bool) { return CanonicalTime{}, false }
func (s *Sentinel) Set(CanonicalTime) error    { return fmt.Errorf("%s sentinel: %w", s.name, ErrUnsupportedTarget) }
func (s *Sentinel) Severity() (Severity, bool) { return "", false }
func (s *Sentinel) annotate(Severity)          {}
func (s *Sentinel) clearAnnotation()           {}
func (s *Sentinel) String() string             { return s.name }

// IsSentinel reports whether v carries no value.
func IsSentinel(v View) bool {
	_, ok := v.(*Sentinel)
	return ok
}

// sortTier places directories before value-less views and both before any
// real value, whatever its year.
func sortTier(v View) int64 {
	if v == View(DirectorySentinel) {
		return 0
	}
	if _, ok := v.Get(); !ok {
		return 1
	}
	return 2
}

// StatData holds the raw stat attributes the engine consumes, in epoch seconds.
type StatData struct {
	Mtime int64
	Ctime int64
	Atime int64
	Size  int64
}

// StatView exposes a file's mtime in the Local or UTC interpretation.
// The Local and Gmt views of one file share the same StatData, so a write
// through either is visible through both.
type StatView struct {
	annotation
	kind   Kind
	interp Interp
	path   string
	stat   *StatData
	codec  Codec
	fsmgr  FilesystemManager
}

// NewStatView creates the Local or Gmt view over stat.
func NewStatView(interp Interp, path string, stat *StatData, codec Codec, fsmgr FilesystemManager) *StatView {
	kind := KindLocal
	if interp == UTC {
		kind = KindGmt
	}
	return &StatView{
		kind:   kind,
		interp: interp,
		path:   path,
		stat:   stat,
		codec:  codec,
		fsmgr:  fsmgr,
	}
}

func (v *StatView) Kind() Kind { return v.kind }

func (v *StatView) Display() string { return v.value().String() }

func (v *StatView) SortKey() CanonicalTime { return v.value() }

func (v *StatView) Get() (CanonicalTime, bool) { return v.value(), true }

func (v *StatView) value() CanonicalTime {
	return v.codec.FromRaw(v.stat.Mtime, v.interp)
}

// Set encodes t, writes it as the file's mtime keeping atime, and verifies
// the attribute by reading it back.
func (v *StatView) Set(t CanonicalTime) error {
	raw := v.codec.ToRaw(t, v.interp)
	if err := verify(v.kind.String()+" encode", t, v.codec.FromRaw(raw, v.interp)); err != nil {
		return err
	}

	if err := v.fsmgr.SetModTime(v.path, raw); err != nil {
		return fmt.Errorf("setting mtime of %s: %w", v.path, err)
	}

	fresh, err := v.fsmgr.Stat(v.path)
	if err != nil {
		return fmt.Errorf("re-reading %s: %w", v.path, err)
	}
	*v.stat = *fresh
	return verify(v.kind.String()+" re-read", t, v.codec.FromRaw(fresh.Mtime, v.interp))
}
