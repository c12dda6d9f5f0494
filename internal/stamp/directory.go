package stamp

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Directory is the state of one visit: its context and entries in listing
// order. It is replaced wholesale by the next visit.
type Directory struct {
	Path    string
	Context DirectoryContext

	// Malformed lists override file lines skipped during the visit.
	Malformed []*RecordError

	entries []*FileEntry
}

// Entries returns the entries in their current order.
func (d *Directory) Entries() []*FileEntry {
	return d.entries
}

// Entry finds an entry by exact name.
func (d *Directory) Entry(name string) (*FileEntry, bool) {
	for _, e := range d.entries {
		if e.name == name {
			return e, true
		}
	}
	return nil, false
}

// HasMarked reports whether any entry is marked.
func (d *Directory) HasMarked() bool {
	for _, e := range d.entries {
		if e.marked {
			return true
		}
	}
	return false
}

// CountMarked returns the marked files, all marked entries and the total.
func (d *Directory) CountMarked() (files, marked, total int) {
	for _, e := range d.entries {
		if !e.marked {
			continue
		}
		marked++
		if e.IsFile() {
			files++
		}
	}
	return files, marked, len(d.entries)
}

// MarkByName sets the mark on each named entry. Unknown names are returned
// as an error after the known ones have been marked.
func (d *Directory) MarkByName(names ...string) error {
	var missing []string
	for _, name := range names {
		e, ok := d.Entry(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		e.ChangeMark(MarkSet)
	}
	if len(missing) > 0 {
		return fmt.Errorf("no such entries in %s: %s", d.Path, strings.Join(missing, ", "))
	}
	return nil
}

// Targets returns the marked entries, or every entry when none is marked.
func (d *Directory) Targets() []*FileEntry {
	if !d.HasMarked() {
		return d.entries
	}
	marked := make([]*FileEntry, 0, len(d.entries))
	for _, e := range d.entries {
		if e.marked {
			marked = append(marked, e)
		}
	}
	return marked
}

// ResetOutputs clears analysis results and colour annotations on all entries.
func (d *Directory) ResetOutputs() {
	for _, e := range d.entries {
		e.ResetOutputs()
	}
}

// Analyse resets all outputs and analyses a against b on every target entry.
func (d *Directory) Analyse(a, b Slot) error {
	d.ResetOutputs()
	for _, e := range d.Targets() {
		if err := e.Analyse(a, b); err != nil {
			return err
		}
	}
	return nil
}

// Colourise resets all outputs and colourises every target entry.
func (d *Directory) Colourise(from, to Slot) error {
	d.ResetOutputs()
	for _, e := range d.Targets() {
		if err := e.Colourise(from, to); err != nil {
			return err
		}
	}
	return nil
}

// Transfer resets all outputs and transfers on every target entry. The
// first error aborts the batch; entries already processed keep their new
// state. The override store is not persisted here.
func (d *Directory) Transfer(from, to Slot) error {
	d.ResetOutputs()
	for _, e := range d.Targets() {
		if err := e.Transfer(from, to); err != nil {
			return err
		}
	}
	return nil
}

// Sort orders entries by the column's sort key. The sort is stable, so
// equal keys keep their previous relative order.
func (d *Directory) Sort(col *Column, reverse bool) {
	slices.SortStableFunc(d.entries, func(a, b *FileEntry) int {
		c := col.SortKey(a).Compare(col.SortKey(b))
		if reverse {
			return -c
		}
		return c
	})
}

// Overrides collects the set override values of all files into a store.
// The override file itself never appears in it.
func (d *Directory) Overrides() *OverrideStore {
	s := NewOverrideStore()
	for _, e := range d.entries {
		if e.dataFile {
			continue
		}
		if stamp, ok := e.overrideStamp(); ok {
			s.Put(e.name, stamp)
		}
	}
	return s
}

// Action names a batch operation for Validate.
type Action int

const (
	ActionAnalyse Action = iota
	ActionColourise
	ActionTransfer
)

func (a Action) String() string {
	switch a {
	case ActionAnalyse:
		return "analyse"
	case ActionColourise:
		return "colourise"
	default:
		return "transfer"
	}
}

// Validate checks the inputs of a batch action and reports every problem
// in one error wrapping ErrPrecondition. Analyse needs both columns,
// Colourise only the source, and Transfer needs marked entries and a
// destination that accepts input.
func (d *Directory) Validate(action Action, from, to *Column) error {
	var errs []error

	if action == ActionTransfer && !d.HasMarked() {
		errs = append(errs, errors.New("no files marked"))
	}

	errs = append(errs, checkColumn(1, "from", from, true, false)...)
	errs = append(errs, checkColumn(2, "to", to, action != ActionColourise, action == ActionTransfer)...)

	if from != nil && from == to {
		errs = append(errs, errors.New("from and to are the same column"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", action, ErrPrecondition, errors.Join(errs...))
}

func checkColumn(n int, role string, col *Column, required, target bool) []error {
	if col == nil {
		if required {
			return []error{fmt.Errorf("input %d.%s is missing", n, role)}
		}
		return nil
	}

	prefix := fmt.Sprintf("input %d.%s -> %s", n, role, col.Heading)
	if !col.IsStamp() {
		return []error{fmt.Errorf("%s is not a timestamp", prefix)}
	}
	if target && col.Target == NotTarget {
		return []error{fmt.Errorf("%s is not allowed as a target", prefix)}
	}
	return nil
}
