package stamp

import (
	"fmt"
)

// Analyse classifies view a against view b and stores the result on the
// entry. A missing value on either side leaves no result.
func (e *FileEntry) Analyse(a, b Slot) error {
	if err := checkSlots(a, b); err != nil {
		return err
	}
	if !e.IsFile() {
		return nil
	}

	e.analysis = nil
	ta, okA := e.views[a].Get()
	tb, okB := e.views[b].Get()
	if !okA || !okB {
		return nil
	}
	result := Classify(ta, tb)
	e.analysis = &result
	return nil
}

// Colourise tags view "to" with the severity of its difference from view
// "from". With to == NoSlot every other view is tagged; views without a
// value are skipped.
func (e *FileEntry) Colourise(from, to Slot) error {
	if err := checkSlots(from); err != nil {
		return err
	}
	if to != NoSlot {
		if err := checkSlots(to); err != nil {
			return err
		}
	}
	if !e.IsFile() {
		return nil
	}

	base, ok := e.views[from].Get()
	if !ok {
		return nil
	}

	targets := []Slot{to}
	if to == NoSlot {
		targets = make([]Slot, 0, slotCount-1)
		for _, s := range Slots {
			if s != from {
				targets = append(targets, s)
			}
		}
	}

	for _, s := range targets {
		v := e.views[s]
		t, ok := v.Get()
		if !ok {
			continue
		}
		v.annotate(Classify(base, t).Severity)
	}
	return nil
}

// Transfer copies the value of view "from" into view "to". A missing
// source is silently ignored. The filename view is rejected as a target
// before anything is touched. Filesystem-backed targets write through to
// the file's mtime and verify the result.
func (e *FileEntry) Transfer(from, to Slot) error {
	if err := checkSlots(from, to); err != nil {
		return err
	}
	if !e.IsFile() {
		return nil
	}
	if to == SlotFilename {
		return fmt.Errorf("transfer into %s: %w", to, ErrUnsupportedTarget)
	}

	t, ok := e.views[from].Get()
	if !ok {
		return nil
	}
	if err := e.views[to].Set(t); err != nil {
		return fmt.Errorf("transfer %s -> %s for %s: %w", from, to, e.name, err)
	}
	return nil
}

func checkSlots(slots ...Slot) error {
	for _, s := range slots {
		if !s.valid() {
			return fmt.Errorf("unknown view %s", s)
		}
	}
	return nil
}
