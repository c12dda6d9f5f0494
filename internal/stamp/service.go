package stamp

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
)

// ModeKey is the media preference that selects the filesystem time mode.
const ModeKey = "timestampmode"

// Stamper is the orchestration layer that visits directories and runs
// batch actions for the CLI.
type Stamper struct {
	fsmgr   FilesystemManager
	prefs   MediaPrefs
	zone    Zone
	journal Journal
	logger  Logger
	clock   clockwork.Clock
	idgen   IDGenerator
	host    Platform
}

// NewStamper creates a new Stamper with the provided dependencies.
func NewStamper(fsmgr FilesystemManager, prefs MediaPrefs, zone Zone, journal Journal, logger Logger, clock clockwork.Clock, idgen IDGenerator, host Platform) *Stamper {
	return &Stamper{
		fsmgr:   fsmgr,
		prefs:   prefs,
		zone:    zone,
		journal: journal,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		host:    host,
	}
}

// Visit lists a directory and builds every entry's views.
// The path must point to a directory.
func (s *Stamper) Visit(path string) (*Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	isDir, err := s.fsmgr.IsDir(abs)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", abs, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s: %w", abs, ErrInvalidPath)
	}

	ctx, err := s.directoryContext(abs)
	if err != nil {
		return nil, err
	}

	overrides, err := s.loadOverrides(abs)
	if err != nil {
		return nil, err
	}

	listing, err := s.fsmgr.ListDir(abs)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", abs, err)
	}

	env := &viewEnv{
		ctx:       ctx,
		zone:      s.zone,
		codec:     NewCodec(s.zone.Location()),
		fsmgr:     s.fsmgr,
		overrides: overrides,
	}

	dir := &Directory{
		Path:      abs,
		Context:   ctx,
		Malformed: overrides.Malformed,
		entries:   make([]*FileEntry, 0, len(listing)),
	}
	for _, de := range listing {
		e, err := newFileEntry(env, abs, de)
		if err != nil {
			return nil, err
		}
		dir.entries = append(dir.entries, e)
	}

	s.logger.Info("directory visited",
		"path", abs,
		"filesystem_utc", ctx.FilesystemUTC,
		"dst_now", ctx.DSTNow,
		"host", ctx.Host.String(),
		"entries", len(dir.entries),
	)
	return dir, nil
}

func (s *Stamper) directoryContext(dir string) (DirectoryContext, error) {
	mode, found, err := s.prefs.Lookup(dir, ModeKey)
	if err != nil {
		return DirectoryContext{}, fmt.Errorf("reading media preferences for %s: %w", dir, err)
	}
	if !found {
		s.logger.Debug("no media preferences, assuming local time", "path", dir)
	}
	return DirectoryContext{
		FilesystemUTC: found && strings.EqualFold(strings.TrimSpace(mode), "utc"),
		DSTNow:        s.zone.DSTNow(),
		Host:          s.host,
	}, nil
}

func (s *Stamper) loadOverrides(dir string) (*OverrideStore, error) {
	path := filepath.Join(dir, DataFileName)
	data, err := s.fsmgr.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewOverrideStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	store, err := ParseOverrides(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, rec := range store.Malformed {
		s.logger.Warn("skipping malformed override record", "path", path, "line", rec.Line, "reason", rec.Reason)
	}
	return store, nil
}

// Analyse runs Analyse over the directory's target entries.
func (s *Stamper) Analyse(dir *Directory, a, b Slot) error {
	if err := dir.Analyse(a, b); err != nil {
		return fmt.Errorf("analysing %s against %s: %w", a, b, err)
	}
	s.logger.Debug("analyse complete", "path", dir.Path, "a", a.String(), "b", b.String())
	return nil
}

// Colourise runs Colourise over the directory's target entries.
func (s *Stamper) Colourise(dir *Directory, from, to Slot) error {
	if err := dir.Colourise(from, to); err != nil {
		return fmt.Errorf("colourising from %s: %w", from, err)
	}
	s.logger.Debug("colourise complete", "path", dir.Path, "from", from.String(), "to", to.String())
	return nil
}

// TransferResult summarises a Transfer batch.
type TransferResult struct {
	BatchID string
	// Written counts files whose mtime changed.
	Written int
	// Directory is the state after the post-transfer reload.
	Directory *Directory
}

// Transfer runs Transfer over the directory's target entries, journals
// every mtime it changed, persists the override store when the target is
// the override view, and finally revisits the directory.
//
// A failure aborts the batch. Files already written keep their new mtime
// and are journaled; the override store is not persisted.
func (s *Stamper) Transfer(dir *Directory, from, to Slot) (*TransferResult, error) {
	result := &TransferResult{BatchID: s.idgen.New()}

	dir.ResetOutputs()
	for _, e := range dir.Targets() {
		before, _ := e.Mtime()
		err := e.Transfer(from, to)
		after, _ := e.Mtime()

		if after != before {
			result.Written++
			s.logger.Info("mtime written", "path", e.Path(), "old", before, "new", after, "batch", result.BatchID)
			rec := &TransferRecord{
				BatchID:   result.BatchID,
				Path:      e.Path(),
				From:      from,
				To:        to,
				OldMtime:  before,
				NewMtime:  after,
				CreatedAt: s.clock.Now(),
			}
			if jerr := s.journal.Record(rec); jerr != nil {
				return result, fmt.Errorf("journaling transfer of %s: %w", e.Path(), jerr)
			}
		}

		if err != nil {
			s.logger.Error("transfer aborted", "path", e.Path(), "batch", result.BatchID, "error", err)
			return result, err
		}
	}

	if to == SlotOverride {
		if err := s.WriteOverrides(dir); err != nil {
			return result, err
		}
	}

	s.logger.Info("transfer complete", "path", dir.Path, "from", from.String(), "to", to.String(), "written", result.Written, "batch", result.BatchID)

	reloaded, err := s.Visit(dir.Path)
	if err != nil {
		return result, fmt.Errorf("reloading %s: %w", dir.Path, err)
	}
	result.Directory = reloaded
	return result, nil
}

// WriteOverrides rewrites the directory's override file from the current
// override views.
func (s *Stamper) WriteOverrides(dir *Directory) error {
	store := dir.Overrides()

	var buf bytes.Buffer
	if _, err := store.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding override store: %w", err)
	}

	path := filepath.Join(dir.Path, DataFileName)
	if err := s.fsmgr.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	s.logger.Info("override store written", "path", path, "records", store.Len())
	return nil
}

// History returns the most recent journaled writes, newest first.
func (s *Stamper) History(limit int) ([]*TransferRecord, error) {
	recs, err := s.journal.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	return recs, nil
}
