package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/fileinfo/internal/fileinfo"
	"github.com/idelchi/fileinfo/internal/logging"
	"github.com/idelchi/fileinfo/internal/plugins"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options Options, stdout, stderr io.Writer) error {
	log := logging.New(stderr, logging.Options{Verbose: options.Verbose, NoColor: options.NoColor})

	registry := fileinfo.Discover(log, plugins.All()...)

	if options.List {
		if options.Output == "json" {
			return PrintHandlersJSON(registry, stdout)
		}

		return PrintHandlers(registry, stdout)
	}

	enableProgress := !options.Verbose && isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	files, err := fileinfo.Collect(ctx, options.Paths, fileinfo.Options{
		Excludes:   options.Excludes,
		Extensions: options.Extensions,
		MinSize:    options.MinSize,
		Depth:      options.Depth,
	}, log, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	dispatcher := fileinfo.NewDispatcher(registry, stdout, log)

	for _, f := range files {
		if err := dispatcher.Dispatch(f.Path); err != nil {
			return err
		}
	}

	if !options.Summary {
		return nil
	}

	stats := fileinfo.Summarize(files, dispatcher.Failures())

	switch strings.ToLower(options.Output) {
	case "json":
		return PrintJSON(stats, stdout)
	default:
		return PrintSummary(stats, stdout)
	}
}
