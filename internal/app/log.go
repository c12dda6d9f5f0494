package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rotated JSON log inside the configured log directory.
const LogFileName = "timestamper.log"

// levelFilter drops records below min before they reach w.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) { return f.w.Write(p) }

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// newLogger creates a logger that writes JSON lines to logDir/timestamper.log
// and, when console is non-nil, human readable lines at consoleLevel or above.
// It returns the logger and the log file for cleanup.
func newLogger(logDir, opID string, console io.Writer, consoleLevel zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    1,
		MaxBackups: 2,
	}

	writers := []io.Writer{file}
	if console != nil {
		writers = append(writers, levelFilter{
			w:   zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
			min: consoleLevel,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Str("op", opID).Logger()
	return logger, file, nil
}

// zerologAdapter wraps zerolog.Logger to satisfy the stamp.Logger interface.
type zerologAdapter struct {
	l zerolog.Logger
}

func (a *zerologAdapter) Debug(msg string, args ...any) { a.l.Debug().Fields(args).Msg(msg) }
func (a *zerologAdapter) Info(msg string, args ...any)  { a.l.Info().Fields(args).Msg(msg) }
func (a *zerologAdapter) Warn(msg string, args ...any)  { a.l.Warn().Fields(args).Msg(msg) }
func (a *zerologAdapter) Error(msg string, args ...any) { a.l.Error().Fields(args).Msg(msg) }
