package fileinfo

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Dispatcher runs the matching handlers of a registry for one file at a time.
type Dispatcher struct {
	registry *Registry
	out      io.Writer
	log      zerolog.Logger
	failures int
}

// NewDispatcher creates a dispatcher writing report lines to out.
func NewDispatcher(registry *Registry, out io.Writer, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, out: out, log: log}
}

// Failures returns the number of handler invocations that failed so far.
func (d *Dispatcher) Failures() int {
	return d.failures
}

// Dispatch runs every entry matching path in registry order and writes their
// lines, followed by a single blank line. Handler failures are logged and
// skipped; only write errors are returned.
func (d *Dispatcher) Dispatch(path string) error {
	log := d.log.With().Str("path", path).Logger()
	log.Debug().Str("ext", Ext(path)).Msg("--> processing file")

	for _, entry := range d.registry.Match(path) {
		name := entry.Handler.Name()

		log.Debug().Str("handler", name).Str("pattern", entry.Pattern).Msg("==> calling handler")

		lines, err := run(entry.Handler, path)
		if err != nil {
			d.failures++

			log.Debug().Err(err).Str("handler", name).Msg("handler failed")

			continue
		}

		for _, line := range lines {
			if _, err := fmt.Fprintln(d.out, line); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}

	log.Debug().Msg("<-- finished file")

	if _, err := fmt.Fprintln(d.out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// run calls handler, converting a panic into an error.
func run(handler Handler, path string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler.Describe(path)
}
