package journal

import (
	"testing"
	"time"

	"timestamper/internal/stamp"
)

func newTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()

	j, err := NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	t.Cleanup(func() {
		j.Close()
	})
	return j
}

func TestSQLiteJournal_RecordAndRecent(t *testing.T) {
	t.Run("empty journal returns no records", func(t *testing.T) {
		j := newTestJournal(t)

		recs, err := j.Recent(10)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("Recent() returned %d records, want 0", len(recs))
		}
	})

	t.Run("returns newest first up to limit", func(t *testing.T) {
		j := newTestJournal(t)
		created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

		for i, name := range []string{"/p/a.jpg", "/p/b.jpg", "/p/c.jpg"} {
			err := j.Record(&stamp.TransferRecord{
				BatchID:   "batch-1",
				Path:      name,
				From:      stamp.SlotFilename,
				To:        stamp.SlotLocal,
				OldMtime:  int64(1000 + i),
				NewMtime:  int64(2000 + i),
				CreatedAt: created,
			})
			if err != nil {
				t.Fatalf("Record() error = %v", err)
			}
		}

		recs, err := j.Recent(2)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("Recent() returned %d records, want 2", len(recs))
		}
		if recs[0].Path != "/p/c.jpg" || recs[1].Path != "/p/b.jpg" {
			t.Errorf("Recent() order = %s, %s, want /p/c.jpg, /p/b.jpg", recs[0].Path, recs[1].Path)
		}

		got := recs[0]
		if got.From != stamp.SlotFilename || got.To != stamp.SlotLocal {
			t.Errorf("slots = %s -> %s, want fname -> local", got.From, got.To)
		}
		if got.OldMtime != 1002 || got.NewMtime != 2002 {
			t.Errorf("mtimes = %d -> %d, want 1002 -> 2002", got.OldMtime, got.NewMtime)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
		}
		if got.BatchID != "batch-1" {
			t.Errorf("BatchID = %q, want batch-1", got.BatchID)
		}
	})
}
