package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog logger backed by a charmbracelet terminal handler.
// Verbose mode lowers the level to debug and adds timestamps.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "sampler",
	})
	return slog.New(handler)
}
