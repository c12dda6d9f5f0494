// Package journal records every filesystem write made by a transfer.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timestamper/internal/journal/migrations"
	"timestamper/internal/stamp"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements stamp.Journal using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens the journal at path and migrates it to the latest
// schema. path can be a file path or ":memory:".
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

// Path returns the location the journal was opened from.
func (j *SQLiteJournal) Path() string {
	return j.path
}

func (j *SQLiteJournal) Record(rec *stamp.TransferRecord) error {
	_, err := j.db.ExecContext(context.Background(),
		`INSERT INTO transfers (batch_id, path, from_view, to_view, old_mtime, new_mtime, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.BatchID, rec.Path, rec.From.String(), rec.To.String(), rec.OldMtime, rec.NewMtime, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting transfer record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *SQLiteJournal) Recent(limit int) ([]*stamp.TransferRecord, error) {
	rows, err := j.db.QueryContext(context.Background(),
		`SELECT batch_id, path, from_view, to_view, old_mtime, new_mtime, created_at
		 FROM transfers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transfer records: %w", err)
	}
	defer rows.Close()

	var recs []*stamp.TransferRecord
	for rows.Next() {
		var (
			rec       stamp.TransferRecord
			from, to  string
			createdAt int64
		)
		if err := rows.Scan(&rec.BatchID, &rec.Path, &from, &to, &rec.OldMtime, &rec.NewMtime, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning transfer record: %w", err)
		}
		if rec.From, err = stamp.ParseSlot(from); err != nil {
			return nil, fmt.Errorf("transfer record source: %w", err)
		}
		if rec.To, err = stamp.ParseSlot(to); err != nil {
			return nil, fmt.Errorf("transfer record target: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transfer records: %w", err)
	}
	return recs, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

var _ stamp.Journal = (*SQLiteJournal)(nil)
