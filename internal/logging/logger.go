// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Options configures a logger built by New.
type Options struct {
	// Writer receives the records. Defaults to stderr.
	Writer io.Writer

	// Level is "debug", "info", "warn" or "error". Anything else means info.
	Level string

	// Prefix is printed before every message.
	Prefix string
}

//nolint:gochecknoglobals // Process-wide logger used before a command has its own.
var defaultLogger atomic.Pointer[log.Logger]

// New creates a logger without timestamps or caller information.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(opts.Level),
		Prefix: opts.Prefix,
	})
}

// Interactive creates a logger for commands that talk to a person, such as
// init, prefixed with the program name.
func Interactive(w io.Writer) *log.Logger {
	return New(Options{Writer: w, Level: "info", Prefix: "langmark"})
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil || level == log.FatalLevel {
		return log.InfoLevel
	}
	return level
}

// Default returns the process-wide logger, creating it at info level on
// first use.
func Default() *log.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	defaultLogger.CompareAndSwap(nil, New(Options{}))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
