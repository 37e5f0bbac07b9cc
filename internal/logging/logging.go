package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns the mdtoc logger writing to w. verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "mdtoc",
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
