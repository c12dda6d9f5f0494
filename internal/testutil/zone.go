package testutil

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	"timestamper/internal/stamp"
)

// Berlin loads Europe/Berlin from the embedded tz database: CET in winter,
// CEST from the last Sunday of March to the last Sunday of October.
func Berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("loading Europe/Berlin: %v", err)
	}
	return loc
}

// NewZone creates a zone for loc driven by clock.
func NewZone(loc *time.Location, clock clockwork.Clock) *stamp.SystemZone {
	return stamp.NewSystemZone(loc, clock)
}
