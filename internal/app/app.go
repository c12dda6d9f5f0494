package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"timestamper/internal/config"
	"timestamper/internal/fs"
	"timestamper/internal/journal"
	"timestamper/internal/prefs"
	"timestamper/internal/stamp"
)

// Options tunes the console side of an application instance.
type Options struct {
	// Console receives human readable log lines. Nil disables console logging.
	Console io.Writer
	// Verbose lowers the console threshold from warn to debug.
	Verbose bool
}

// StamperApp is the application layer between the CLI and the Stamper.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw paths and column names, and releases resources on Close.
type StamperApp struct {
	cfg     *config.Config
	journal stamp.Journal
	service *stamp.Stamper
	op      *Operation
	logger  zerolog.Logger
	logFile io.Closer
}

// NewStamperApp creates a fully wired StamperApp from the given config.
// operation identifies the CLI command being run (e.g. "show", "transfer").
// The caller must call Close when done.
func NewStamperApp(cfg *config.Config, operation, parameters string, opts Options) (*StamperApp, error) {
	host, err := ParsePlatform(cfg.Platform)
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
		}
	}

	j, err := journal.NewJournalFromConfig(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	idgen := stamp.UUIDGenerator{}
	op := NewOperation(idgen, operation, parameters)

	consoleLevel := zerolog.WarnLevel
	if opts.Verbose {
		consoleLevel = zerolog.DebugLevel
	}
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, opts.Console, consoleLevel)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	clock := clockwork.NewRealClock()
	fsmgr := fs.NewOSFilesystemManager()
	svc := stamp.NewStamper(
		fsmgr,
		prefs.NewFinder(fsmgr),
		stamp.NewSystemZone(loc, clock),
		j,
		&zerologAdapter{l: logger},
		clock,
		idgen,
		host,
	)

	logger.Debug().Str("command", operation).Str("parameters", parameters).
		Str("timezone", loc.String()).Str("host", host.String()).Msg("operation started")

	return &StamperApp{
		cfg:     cfg,
		journal: j,
		service: svc,
		op:      op,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// ParsePlatform maps the config platform setting to a host flavour.
// "auto" and "" select the running operating system.
func ParsePlatform(name string) (stamp.Platform, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return stamp.HostPlatform(), nil
	case "windows":
		return stamp.PlatformWindows, nil
	case "linux":
		return stamp.PlatformLinux, nil
	default:
		return stamp.PlatformLinux, fmt.Errorf("unknown platform %q", name)
	}
}

// Operation returns the operation this instance runs.
func (a *StamperApp) Operation() *Operation {
	return a.op
}

// Show visits a directory and orders its entries by the named column.
// An empty sortBy keeps the listing order.
func (a *StamperApp) Show(rawPath, sortBy string, reverse bool) (*stamp.Directory, error) {
	dir, err := a.service.Visit(rawPath)
	if err != nil {
		return nil, a.fail(err)
	}
	if sortBy == "" {
		return dir, nil
	}
	col, ok := stamp.LookupColumn(sortBy)
	if !ok {
		return nil, a.fail(fmt.Errorf("unknown column %q", sortBy))
	}
	dir.Sort(col, reverse)
	return dir, nil
}

// Analyse visits a directory, marks the named files and classifies view
// "from" against view "to" on the targets.
func (a *StamperApp) Analyse(rawPath, from, to string, names []string) (*stamp.Directory, error) {
	dir, fromCol, toCol, err := a.prepare(rawPath, from, to, names, false)
	if err != nil {
		return nil, a.fail(err)
	}
	if err := dir.Validate(stamp.ActionAnalyse, fromCol, toCol); err != nil {
		return nil, a.fail(err)
	}
	if err := a.service.Analyse(dir, fromCol.Slot, toCol.Slot); err != nil {
		return nil, a.fail(err)
	}
	return dir, nil
}

// Colourise visits a directory, marks the named files and tags views by
// their difference from view "from". An empty "to" tags every other view.
func (a *StamperApp) Colourise(rawPath, from, to string, names []string) (*stamp.Directory, error) {
	dir, fromCol, toCol, err := a.prepare(rawPath, from, to, names, false)
	if err != nil {
		return nil, a.fail(err)
	}
	if err := dir.Validate(stamp.ActionColourise, fromCol, toCol); err != nil {
		return nil, a.fail(err)
	}
	toSlot := stamp.NoSlot
	if toCol != nil {
		toSlot = toCol.Slot
	}
	if err := a.service.Colourise(dir, fromCol.Slot, toSlot); err != nil {
		return nil, a.fail(err)
	}
	return dir, nil
}

// Transfer visits a directory, marks the named files (or every file when
// all is set) and copies view "from" into view "to" on them.
func (a *StamperApp) Transfer(rawPath, from, to string, names []string, all bool) (*stamp.TransferResult, error) {
	dir, fromCol, toCol, err := a.prepare(rawPath, from, to, names, all)
	if err != nil {
		return nil, a.fail(err)
	}
	if err := dir.Validate(stamp.ActionTransfer, fromCol, toCol); err != nil {
		return nil, a.fail(err)
	}
	result, err := a.service.Transfer(dir, fromCol.Slot, toCol.Slot)
	if err != nil {
		return result, a.fail(err)
	}
	return result, nil
}

// History returns the most recent journaled writes.
func (a *StamperApp) History(limit int) ([]*stamp.TransferRecord, error) {
	recs, err := a.service.History(limit)
	if err != nil {
		return nil, a.fail(err)
	}
	return recs, nil
}

// prepare visits rawPath, applies marks and resolves the column names.
// Empty names resolve to nil columns.
func (a *StamperApp) prepare(rawPath, from, to string, names []string, all bool) (*stamp.Directory, *stamp.Column, *stamp.Column, error) {
	fromCol, err := lookupColumn(from)
	if err != nil {
		return nil, nil, nil, err
	}
	toCol, err := lookupColumn(to)
	if err != nil {
		return nil, nil, nil, err
	}

	dir, err := a.service.Visit(rawPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if all {
		for _, e := range dir.Entries() {
			if e.IsFile() && !e.IsDataFile() {
				e.ChangeMark(stamp.MarkSet)
			}
		}
	}
	if err := dir.MarkByName(names...); err != nil {
		return nil, nil, nil, err
	}
	return dir, fromCol, toCol, nil
}

func lookupColumn(name string) (*stamp.Column, error) {
	if name == "" {
		return nil, nil
	}
	col, ok := stamp.LookupColumn(name)
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return col, nil
}

func (a *StamperApp) fail(err error) error {
	a.op.Fail()
	a.logger.Error().Err(err).Msg("operation failed")
	return err
}

// Close finalizes the operation and closes the journal and the log file.
func (a *StamperApp) Close() error {
	var firstErr error

	if err := a.journal.Close(); err != nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	a.logger.Info().Str("command", a.op.Name).Str("status", a.op.Status).Msg("operation finished")

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
