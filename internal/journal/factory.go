package journal

import (
	"fmt"
	"os"
	"path/filepath"

	"timestamper/internal/config"
	"timestamper/internal/stamp"
)

// FileName is the journal database inside the configured data directory.
const FileName = "journal.db"

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
func NewJournalFromConfig(cfg config.JournalConfig) (stamp.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		return NewSQLiteJournal(filepath.Join(cfg.DataDir, FileName))
	case "memory":
		return NewSQLiteJournal(":memory:")
	case "none":
		return stamp.NopJournal{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}
