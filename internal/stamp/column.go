package stamp

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// TargetPolicy says whether a column accepts Transfer input.
type TargetPolicy int

const (
	NotTarget TargetPolicy = iota
	Target
	// TargetWithPostStep columns need the override store persisted after a batch.
	TargetWithPostStep
)

// CellValue is what a column shows for one entry: either a view or a raw
// value formatted by the column.
type CellValue struct {
	View View
	Raw  any
}

// SortKey orders cells within a column.
type SortKey struct {
	N1, N2 int64
	S      string
}

func (k SortKey) Compare(o SortKey) int {
	if c := cmp.Compare(k.N1, o.N1); c != 0 {
		return c
	}
	if c := cmp.Compare(k.N2, o.N2); c != 0 {
		return c
	}
	return strings.Compare(k.S, o.S)
}

// Column describes one column of the directory table.
type Column struct {
	Name    string
	Heading string
	// Slot is the view shown by timestamp columns, NoSlot otherwise.
	Slot   Slot
	Target TargetPolicy

	raw    func(*FileEntry) any
	format func(any) string
	key    func(any) SortKey
}

// IsStamp reports whether the column shows a timestamp view.
func (c *Column) IsStamp() bool { return c.Slot != NoSlot }

// Cell returns the column's value for e.
func (c *Column) Cell(e *FileEntry) CellValue {
	if c.IsStamp() {
		return CellValue{View: e.View(c.Slot)}
	}
	return CellValue{Raw: c.raw(e)}
}

// Display formats the cell for e.
func (c *Column) Display(e *FileEntry) string {
	cell := c.Cell(e)
	if cell.View != nil {
		return cell.View.Display()
	}
	return c.format(cell.Raw)
}

// SortKey returns the ordering key of the cell for e.
func (c *Column) SortKey(e *FileEntry) SortKey {
	cell := c.Cell(e)
	if cell.View != nil {
		return SortKey{N1: sortTier(cell.View), N2: cell.View.SortKey().civilSeconds()}
	}
	return c.key(cell.Raw)
}

func stringColumn(name, heading string, raw func(*FileEntry) any) *Column {
	return &Column{
		Name:    name,
		Heading: heading,
		Slot:    NoSlot,
		raw:     raw,
		format: func(v any) string {
			s, _ := v.(string)
			return s
		},
		key: func(v any) SortKey {
			s, _ := v.(string)
			return SortKey{S: strings.ToLower(s)}
		},
	}
}

// intColumn values are int64 or nil for entries without a value.
func intColumn(name, heading string, raw func(*FileEntry) any, format func(int64) string) *Column {
	return &Column{
		Name:    name,
		Heading: heading,
		Slot:    NoSlot,
		raw:     raw,
		format: func(v any) string {
			n, ok := v.(int64)
			if !ok {
				return ""
			}
			return format(n)
		},
		key: func(v any) SortKey {
			n, ok := v.(int64)
			if !ok {
				return SortKey{N1: -1}
			}
			return SortKey{N1: n}
		},
	}
}

func stampColumn(slot Slot, heading string, target TargetPolicy) *Column {
	return &Column{Name: slot.String(), Heading: heading, Slot: slot, Target: target}
}

// FormatBytes renders a size with '.' as thousands separator.
func FormatBytes(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", ".")
}

// FormatAnalysis renders an analysis result as "severity:delta".
func FormatAnalysis(a Analysis) string {
	return fmt.Sprintf("%s:%d", a.Severity, a.Delta)
}

// Columns is the table layout in display order.
var Columns = []*Column{
	{
		Name:    "mark",
		Heading: "",
		Slot:    NoSlot,
		raw:     func(e *FileEntry) any { return e.Marked() },
		format: func(v any) string {
			if marked, _ := v.(bool); marked {
				return "*"
			}
			return ""
		},
		key: func(v any) SortKey {
			if marked, _ := v.(bool); marked {
				return SortKey{N1: 1}
			}
			return SortKey{}
		},
	},
	stringColumn("type", "Typ", func(e *FileEntry) any { return e.Type().String() }),
	stringColumn("name", "Name", func(e *FileEntry) any { return e.Name() }),
	stringColumn("extension", "Extension", func(e *FileEntry) any { return e.Extension() }),
	intColumn("bytes", "Bytes", func(e *FileEntry) any {
		if n, ok := e.Size(); ok {
			return n
		}
		return nil
	}, FormatBytes),
	{
		Name:    "out",
		Heading: "***",
		Slot:    NoSlot,
		raw: func(e *FileEntry) any {
			if a, ok := e.Analysis(); ok {
				return a
			}
			return nil
		},
		format: func(v any) string {
			a, ok := v.(Analysis)
			if !ok {
				return ""
			}
			return FormatAnalysis(a)
		},
		key: func(v any) SortKey {
			a, ok := v.(Analysis)
			if !ok {
				return SortKey{N1: -1}
			}
			return SortKey{N1: int64(a.Severity.Rank()), N2: abs(a.Delta)}
		},
	},
	stampColumn(SlotLocal, "PY local", Target),
	stampColumn(SlotGmt, "PY gmt", Target),
	intColumn("dst", "DST", func(e *FileEntry) any {
		if !e.IsFile() || e.IsDataFile() {
			return nil
		}
		if flag, ok := e.DST(); ok {
			return boolInt(flag == DSTYes)
		}
		return nil
	}, func(n int64) string { return fmt.Sprint(n) }),
	stampColumn(SlotLinux, "Linux", Target),
	stampColumn(SlotWinNew, "Win new", Target),
	stampColumn(SlotWinOld, "Win old", Target),
	stampColumn(SlotFilename, "From Fname", NotTarget),
	stampColumn(SlotOverride, "My Datafile", TargetWithPostStep),
}

// LookupColumn finds a column by name.
func LookupColumn(name string) (*Column, bool) {
	for _, c := range Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// StampColumn returns the timestamp column showing slot s.
func StampColumn(s Slot) *Column {
	for _, c := range Columns {
		if c.Slot == s && c.IsStamp() {
			return c
		}
	}
	return nil
}
