package stamp

import (
	"fmt"
	"time"
)

// Layout is the textual timestamp format shared by display and the override file.
const Layout = "2006-01-02 15:04:05"

// DSTFlag records whether daylight saving time applied to a CanonicalTime.
type DSTFlag int8

const (
	DSTNo DSTFlag = iota
	DSTYes
	DSTUnknown
)

func (f DSTFlag) String() string {
	switch f {
	case DSTNo:
		return "no"
	case DSTYes:
		return "yes"
	default:
		return "unknown"
	}
}

func dstFlagOf(isDST bool) DSTFlag {
	if isDST {
		return DSTYes
	}
	return DSTNo
}

// Interp selects how epoch seconds are turned into calendar fields.
type Interp int

const (
	// Local interprets epoch seconds in the zone's location.
	Local Interp = iota
	// UTC interprets epoch seconds as UTC wall time.
	UTC
)

func (i Interp) String() string {
	if i == UTC {
		return "utc"
	}
	return "local"
}

// CanonicalTime is a broken-down calendar value without an embedded offset.
// It is the common currency every view converts to and from.
type CanonicalTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
	DST    DSTFlag
}

// NewCanonicalTime builds a CanonicalTime from its fields.
func NewCanonicalTime(year int, month time.Month, day, hour, minute, second int, dst DSTFlag) CanonicalTime {
	return CanonicalTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
		DST:    dst,
	}
}

func canonicalFrom(t time.Time, dst DSTFlag) CanonicalTime {
	return CanonicalTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		DST:    dst,
	}
}

// ParseCanonical parses a Layout string. The DST flag of the result is unknown.
func ParseCanonical(s string) (CanonicalTime, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return CanonicalTime{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return canonicalFrom(t, DSTUnknown), nil
}

// String formats the calendar fields with Layout.
func (t CanonicalTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, int(t.Month), t.Day, t.Hour, t.Minute, t.Second)
}

// civilSeconds counts the seconds of the wall clock fields as if they were UTC.
// Differences of civil seconds are naive calendar differences.
func (t CanonicalTime) civilSeconds() int64 {
	return time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC).Unix()
}

// SameWall reports whether both values have identical calendar fields,
// ignoring the DST flag.
func (t CanonicalTime) SameWall(o CanonicalTime) bool {
	return t.Year == o.Year && t.Month == o.Month && t.Day == o.Day &&
		t.Hour == o.Hour && t.Minute == o.Minute && t.Second == o.Second
}

// Compare orders two values by their calendar fields.
func (t CanonicalTime) Compare(o CanonicalTime) int {
	a, b := t.civilSeconds(), o.civilSeconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Codec converts between raw epoch seconds and CanonicalTime.
// ToRaw(FromRaw(x, i), i) == x holds for both interpretations.
type Codec struct {
	loc *time.Location
}

// NewCodec creates a codec for the given location. A nil location means time.Local.
func NewCodec(loc *time.Location) Codec {
	if loc == nil {
		loc = time.Local
	}
	return Codec{loc: loc}
}

// Location returns the location used for the Local interpretation.
func (c Codec) Location() *time.Location {
	return c.loc
}

// FromRaw converts epoch seconds into calendar fields.
// UTC values always carry DSTNo.
func (c Codec) FromRaw(raw int64, interp Interp) CanonicalTime {
	if interp == UTC {
		return canonicalFrom(time.Unix(raw, 0).UTC(), DSTNo)
	}
	t := time.Unix(raw, 0).In(c.loc)
	return canonicalFrom(t, dstFlagOf(t.IsDST()))
}

// ToRaw converts calendar fields back into epoch seconds.
//
// For Local values the DST flag picks between the two instants of a repeated
// wall time. Wall times that do not exist in the location fall back to the
// location's own normalisation and will not survive a FromRaw round trip.
func (c Codec) ToRaw(t CanonicalTime, interp Interp) int64 {
	civil := t.civilSeconds()
	if interp == UTC {
		return civil
	}

	guess := time.Date(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, 0, c.loc).Unix()

	var best int64
	found := false
	for _, cand := range [...]int64{guess, guess - 86400, guess + 86400} {
		_, offset := time.Unix(cand, 0).In(c.loc).Zone()
		candidate := civil - int64(offset)
		local := time.Unix(candidate, 0).In(c.loc)
		if !t.SameWall(canonicalFrom(local, DSTUnknown)) {
			continue
		}
		if t.DST == DSTUnknown || dstFlagOf(local.IsDST()) == t.DST {
			return candidate
		}
		if !found {
			best, found = candidate, true
		}
	}
	if found {
		return best
	}
	return guess
}
