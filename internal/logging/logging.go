// Package logging configures the zerolog logger used for diagnostics.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	// Verbose enables the debug-level decision trace.
	Verbose bool
	// NoColor disables colored output even on a terminal.
	NoColor bool
}

// New returns a console logger writing to w. Colors are only used when w is
// a terminal.
func New(w io.Writer, opt Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opt.Verbose {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      opt.NoColor || !isTerminal(w),
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return zerolog.New(consoleWriter).Level(level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
