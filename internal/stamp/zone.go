package stamp

import (
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
)

// Zone supplies the process-wide timezone facts the formulas depend on.
type Zone interface {
	// Location is used for the Local interpretation of raw seconds.
	Location() *time.Location

	// StandardOffset returns the standard (non-DST) offset in seconds east of UTC.
	// It is evaluated on every call.
	StandardOffset() int

	// DSTNow reports whether daylight saving time is in effect right now.
	DSTNow() bool
}

// SystemZone is a Zone backed by a location and a clock.
type SystemZone struct {
	loc   *time.Location
	clock clockwork.Clock
}

// NewSystemZone creates a Zone. A nil location means time.Local and a nil
// clock means the real clock.
func NewSystemZone(loc *time.Location, clock clockwork.Clock) *SystemZone {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SystemZone{loc: loc, clock: clock}
}

func (z *SystemZone) Location() *time.Location { return z.loc }

func (z *SystemZone) StandardOffset() int {
	return standardOffset(z.loc, z.clock.Now().In(z.loc).Year())
}

func (z *SystemZone) DSTNow() bool {
	return z.clock.Now().In(z.loc).IsDST()
}

// standardOffset samples January and July of year and returns the offset of
// whichever is outside daylight saving time.
func standardOffset(loc *time.Location, year int) int {
	jan := time.Date(year, time.January, 1, 12, 0, 0, 0, loc)
	jul := time.Date(year, time.July, 1, 12, 0, 0, 0, loc)
	_, janOffset := jan.Zone()
	_, julOffset := jul.Zone()
	if jul.IsDST() && !jan.IsDST() {
		return janOffset
	}
	if jan.IsDST() && !jul.IsDST() {
		return julOffset
	}
	return janOffset
}

// Platform is the operating system flavour whose conventions the formulas model.
type Platform int

const (
	PlatformLinux Platform = iota
	PlatformWindows
)

func (p Platform) String() string {
	if p == PlatformWindows {
		return "windows"
	}
	return "linux"
}

// HostPlatform returns the flavour of the running process.
func HostPlatform() Platform {
	if runtime.GOOS == "windows" {
		return PlatformWindows
	}
	return PlatformLinux
}

// DirectoryContext holds the flags that stay fixed for one directory visit.
type DirectoryContext struct {
	FilesystemUTC bool
	DSTNow        bool
	Host          Platform
}

func (c DirectoryContext) hostWindows() bool {
	return c.Host == PlatformWindows
}
