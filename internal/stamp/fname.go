package stamp

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// filenamePatterns are tried in order; the first match wins.
var filenamePatterns = []*regexp.Regexp{
	// 20251214_120000.jpg, Screenshot_20251214_120000_App.jpg, phone-251214-120000 Title.jpg
	regexp.MustCompile(`(19|20|21)?(\d{2})(\d{2})(\d{2})[_-](\d{2})(\d{2})(\d{2})`),
	// Screenshot 2026-01-12 at 15-57-36 Startpage.png, Screenshot_2026-01-10_21-57-04.png
	regexp.MustCompile(`(19|20|21)?(\d{2})-(\d{2})-(\d{2}).*(\d{2})-(\d{2})-(\d{2})`),
}

const defaultCentury = "20"

// ParseFilename extracts a timestamp embedded in a file name.
// It returns ErrNoTimestampFound when no pattern matches or the matched
// digits are not a valid date and time.
func ParseFilename(name string) (CanonicalTime, error) {
	for _, re := range filenamePatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		century := m[1]
		if century == "" {
			century = defaultCentury
		}

		var fields [6]int
		for i, s := range append([]string{century + m[2]}, m[3:8]...) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return CanonicalTime{}, fmt.Errorf("%q: %w", name, ErrNoTimestampFound)
			}
			fields[i] = n
		}

		t := NewCanonicalTime(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], DSTUnknown)
		if !validCalendar(t) {
			return CanonicalTime{}, fmt.Errorf("%q has impossible date %s: %w", name, t, ErrNoTimestampFound)
		}
		return t, nil
	}
	return CanonicalTime{}, fmt.Errorf("%q: %w", name, ErrNoTimestampFound)
}

// validCalendar reports whether t survives normalisation unchanged.
func validCalendar(t CanonicalTime) bool {
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return false
	}
	n := time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
	return t.SameWall(canonicalFrom(n, DSTUnknown))
}

// FilenameView holds a timestamp parsed from the file name. It is a
// source only; writing it would mean renaming the file.
type FilenameView struct {
	annotation
	value CanonicalTime
}

// NewFilenameView parses name. Callers substitute MissingSentinel on error.
func NewFilenameView(name string) (*FilenameView, error) {
	t, err := ParseFilename(name)
	if err != nil {
		return nil, err
	}
	return &FilenameView{value: t}, nil
}

func (v *FilenameView) Kind() Kind                 { return KindFilename }
func (v *FilenameView) Display() string            { return v.value.String() }
func (v *FilenameView) SortKey() CanonicalTime     { return v.value }
func (v *FilenameView) Get() (CanonicalTime, bool) { return v.value, true }

func (v *FilenameView) Set(CanonicalTime) error {
	return fmt.Errorf("filename view: %w", ErrUnsupportedTarget)
}
