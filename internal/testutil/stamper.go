package testutil

import (
	"testing"

	"github.com/jonboulle/clockwork"

	"timestamper/internal/journal"
	"timestamper/internal/prefs"
	"timestamper/internal/stamp"
)

// NewTestJournal creates an in-memory SQLite journal that is closed when
// the test completes.
func NewTestJournal(t *testing.T) *journal.SQLiteJournal {
	t.Helper()
	j, err := journal.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	t.Cleanup(func() {
		j.Close()
	})
	return j
}

// NewStamper wires a Stamper over mem with media preferences read from the
// same filesystem, a nop logger and sequential batch IDs.
func NewStamper(mem *MemFS, zone stamp.Zone, j stamp.Journal, clock clockwork.Clock, host stamp.Platform) *stamp.Stamper {
	return stamp.NewStamper(
		mem.Manager,
		prefs.NewFinder(mem.Manager),
		zone,
		j,
		stamp.NewNopLogger(),
		clock,
		NewStubIDGenerator(),
		host,
	)
}
