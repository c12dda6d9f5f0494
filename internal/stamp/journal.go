package stamp

import (
	"time"
)

// TransferRecord describes one filesystem write made by a Transfer.
type TransferRecord struct {
	BatchID   string
	Path      string
	From      Slot
	To        Slot
	OldMtime  int64
	NewMtime  int64
	CreatedAt time.Time
}

// Journal keeps an audit trail of filesystem writes.
type Journal interface {
	Record(rec *TransferRecord) error
	Recent(limit int) ([]*TransferRecord, error)
	Close() error
}

// NopJournal records nothing.
type NopJournal struct{}

func (NopJournal) Record(*TransferRecord) error          { return nil }
func (NopJournal) Recent(int) ([]*TransferRecord, error) { return nil, nil }
func (NopJournal) Close() error                          { return nil }
