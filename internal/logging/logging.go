// Package logging sets up the diagnostic log. Entries go to a dated file in
// the application's logs directory and, in verbose mode, to stderr as well.
// Operator-facing text is printed by the ui package, never through here.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/multi"
	"github.com/apex/log/handlers/text"
)

// Log file naming and retention
const (
	LogFilePrefix = "ytgrab_"
	LogFileSuffix = ".log"
	LogDateLayout = "2006-01-02"
	MaxLogAge     = 30 * 24 * time.Hour
	LogFileMode   = 0644
	LogDirMode    = 0755
)

// Options configures New
type Options struct {
	Dir     string    // logs directory, file logging is disabled when empty
	Verbose bool      // mirror entries to Stderr at debug level
	Stderr  io.Writer // defaults to os.Stderr
	Now     func() time.Time
}

// Logger wraps the apex logger together with the log file it owns
type Logger struct {
	*log.Logger
	file *os.File
	path string
}

// FileName returns the log file name for the given day
func FileName(day time.Time) string {
	return LogFilePrefix + day.Format(LogDateLayout) + LogFileSuffix
}

// New builds the logger. The returned Logger must be closed to flush the file.
func New(opts Options) (*Logger, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Logger{}
	var handlers []log.Handler

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, LogDirMode); err != nil {
			return nil, fmt.Errorf("failed to create logs directory %s: %w", opts.Dir, err)
		}

		l.path = filepath.Join(opts.Dir, FileName(opts.Now()))
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, LogFileMode)
		if err != nil {
			return nil, fmt.Errorf("error opening log file %s: %w", l.path, err)
		}
		l.file = f
		handlers = append(handlers, text.New(f))
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
		handlers = append(handlers, cli.New(opts.Stderr))
	}

	var handler log.Handler
	switch len(handlers) {
	case 0:
		handler = log.HandlerFunc(func(*log.Entry) error { return nil })
	case 1:
		handler = handlers[0]
	default:
		handler = multi.New(handlers...)
	}

	l.Logger = &log.Logger{Handler: handler, Level: level}
	return l, nil
}

// Path returns the current log file path, empty when file logging is disabled
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// CleanupOldLogs deletes empty log files and log files older than maxAge,
// except for the file currently in use
func CleanupOldLogs(dir, current string, now time.Time, maxAge time.Duration) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read logs directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, LogFilePrefix) || !strings.HasSuffix(name, LogFileSuffix) {
			continue
		}

		path := filepath.Join(dir, name)
		if path == current {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() == 0 || info.ModTime().Before(now.Add(-maxAge)) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old log %s: %w", path, err)
			}
		}
	}
	return nil
}
