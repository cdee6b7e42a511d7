// Package logging wraps the standard logger with a verbose gate.
// Interactive sessions log to a file in the cache directory so output does
// not tear the terminal UI; headless runs log to stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Logger is a *log.Logger whose Debugf output only appears in verbose mode.
type Logger struct {
	*log.Logger
	verbose bool
	closer  io.Closer
}

// New logs to w
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		Logger:  log.New(w, "", log.Ldate|log.Ltime),
		verbose: verbose,
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, false)
}

// OpenFile logs to path, truncating it on each launch
func OpenFile(path string, verbose bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := New(f, verbose)
	l.closer = f
	l.Printf("=== launcher log started at %s ===", time.Now().Format(time.RFC3339))
	return l, nil
}

// Debugf writes a message only in verbose mode
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.Printf(format, args...)
}

// Verbose reports whether debug output is enabled
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}

// Close closes the underlying log file, if any
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
