package journal

import (
	"path/filepath"
	"testing"

	"timestamper/internal/config"
	"timestamper/internal/stamp"
)

func TestNewJournalFromConfig(t *testing.T) {
	t.Run("sqlite creates database in data dir", func(t *testing.T) {
		dir := t.TempDir()
		j, err := NewJournalFromConfig(config.JournalConfig{Type: "sqlite", DataDir: dir})
		if err != nil {
			t.Fatalf("NewJournalFromConfig() error = %v", err)
		}
		defer j.Close()

		sj, ok := j.(*SQLiteJournal)
		if !ok {
			t.Fatalf("journal type = %T, want *SQLiteJournal", j)
		}
		if want := filepath.Join(dir, FileName); sj.Path() != want {
			t.Errorf("Path() = %q, want %q", sj.Path(), want)
		}
	})

	t.Run("sqlite without data dir fails", func(t *testing.T) {
		if _, err := NewJournalFromConfig(config.JournalConfig{Type: "sqlite"}); err == nil {
			t.Error("NewJournalFromConfig() expected error, got nil")
		}
	})

	t.Run("memory", func(t *testing.T) {
		j, err := NewJournalFromConfig(config.JournalConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewJournalFromConfig() error = %v", err)
		}
		defer j.Close()
		if _, ok := j.(*SQLiteJournal); !ok {
			t.Errorf("journal type = %T, want *SQLiteJournal", j)
		}
	})

	t.Run("none", func(t *testing.T) {
		j, err := NewJournalFromConfig(config.JournalConfig{Type: "none"})
		if err != nil {
			t.Fatalf("NewJournalFromConfig() error = %v", err)
		}
		if _, ok := j.(stamp.NopJournal); !ok {
			t.Errorf("journal type = %T, want stamp.NopJournal", j)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewJournalFromConfig(config.JournalConfig{Type: "postgres"}); err == nil {
			t.Error("NewJournalFromConfig() expected error, got nil")
		}
	})
}
