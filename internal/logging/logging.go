// Package logging configures the leveled console logger shared by the CLI, the store and the backend.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "todosync"

// Options holds configuration for console logging.
type Options struct {
	Debug           bool
	ReportTimestamp bool
}

// New creates a logger writing to w. Debug lowers the level from warn to debug.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything. Used when no logger is supplied.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
