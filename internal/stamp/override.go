package stamp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// DataFileName is the per-directory override file.
const DataFileName = "timestamp-data.txt"

const dataFileHeader = "#timestamper data file, fileversion 0.1"

// OverrideStore maps file names to user-confirmed timestamps in Layout form.
type OverrideStore struct {
	stamps map[string]string

	// Malformed lists the lines skipped while parsing.
	Malformed []*RecordError
}

// NewOverrideStore returns an empty store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{stamps: make(map[string]string)}
}

// ParseOverrides reads an override file. Blank lines and comment lines
// (first non-blank character '#') are ignored, both \n and \r\n endings are
// accepted, and the last record for a file name wins. Lines without a tab or
// with an unparsable timestamp are skipped and listed in Malformed. Line
// length is unbounded.
func ParseOverrides(r io.Reader) (*OverrideStore, error) {
	s := NewOverrideStore()

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading override file: %w", err)
		}
		if line != "" {
			lineNo++
			s.parseLine(lineNo, line)
		}
		if err != nil {
			return s, nil
		}
	}
}

func (s *OverrideStore) parseLine(lineNo int, line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		return
	}

	stamp, name, ok := strings.Cut(line, "\t")
	if !ok {
		s.Malformed = append(s.Malformed, &RecordError{Line: lineNo, Reason: "missing tab separator"})
		return
	}
	stamp = strings.TrimSpace(stamp)
	if name == "" {
		s.Malformed = append(s.Malformed, &RecordError{Line: lineNo, Reason: "missing file name"})
		return
	}
	if _, err := ParseCanonical(stamp); err != nil {
		s.Malformed = append(s.Malformed, &RecordError{Line: lineNo, Reason: err.Error()})
		return
	}

	s.stamps[name] = stamp
}

// Lookup returns the stored timestamp string for name.
func (s *OverrideStore) Lookup(name string) (string, bool) {
	stamp, ok := s.stamps[name]
	return stamp, ok
}

// Put records stamp for name, replacing any previous value.
func (s *OverrideStore) Put(name, stamp string) {
	s.stamps[name] = stamp
}

// Len returns the number of records.
func (s *OverrideStore) Len() int {
	return len(s.stamps)
}

// Names returns the file names in write order: case-insensitive ascending,
// ties broken by the exact name.
func (s *OverrideStore) Names() []string {
	fold := cases.Fold()
	names := make([]string, 0, len(s.stamps))
	for name := range s.stamps {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(fold.String(a), fold.String(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// WriteTo writes the header and one line per record, always with \n endings.
func (s *OverrideStore) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64

	n, err := fmt.Fprintln(bw, dataFileHeader)
	total += int64(n)
	if err != nil {
		return total, err
	}

	for _, name := range s.Names() {
		n, err := fmt.Fprintf(bw, "%s\t%s\n", s.stamps[name], name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// OverrideView holds the user-confirmed timestamp for a file. It starts
// unset when the store has no record and becomes set on the first write.
type OverrideView struct {
	annotation
	value CanonicalTime
	set   bool
}

// NewOverrideView creates a view from a stored string. An empty string
// yields an unset view.
func NewOverrideView(stamp string) (*OverrideView, error) {
	if stamp == "" {
		return &OverrideView{}, nil
	}
	t, err := ParseCanonical(stamp)
	if err != nil {
		return nil, err
	}
	return &OverrideView{value: t, set: true}, nil
}

func (v *OverrideView) Kind() Kind { return KindOverride }

func (v *OverrideView) Display() string {
	if !v.set {
		return MissingSentinel.Display()
	}
	return v.value.String()
}

func (v *OverrideView) SortKey() CanonicalTime {
	if !v.set {
		return MissingSentinel.SortKey()
	}
	return v.value
}

func (v *OverrideView) Get() (CanonicalTime, bool) { return v.value, v.set }

// Set only changes memory; the directory persists the store after a batch.
func (v *OverrideView) Set(t CanonicalTime) error {
	v.value = t
	v.set = true
	return nil
}

// Stamp returns the value formatted for the override file.
func (v *OverrideView) Stamp() (string, bool) {
	if !v.set {
		return "", false
	}
	return v.value.String(), true
}
