package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options holds the parsed command-line flags.
type Options struct {
	// Paths are the files or directories to describe.
	Paths []string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Extensions to include (empty = all), '!' prefix to exclude.
	Extensions []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Verbose enables the debug-level decision trace.
	Verbose bool
	// NoColor disables colored log output.
	NoColor bool
	// Summary prints aggregate statistics after the reports.
	Summary bool
	// List prints the registered handlers and exits.
	List bool
	// Output is the format of the summary and handler list (table or json).
	Output string
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command(os.Stdout, os.Stderr).Execute()
}

// Command builds the root command writing reports to stdout and diagnostics to stderr.
func (c CLI) Command(stdout, stderr io.Writer) *cobra.Command {
	var (
		options    Options
		minSizeStr string
	)

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:   "fileinfo [flags] path [path...]",
		Short: "Get information on files",
		Long: heredoc.Doc(`
			fileinfo walks the given paths and prints a short report for every regular file.

			Every file gets the default report: resolved path, type and size.
			Files matched by a registered handler get additional lines, e.g.
			row and column counts for .csv files or line and word counts for .txt files.

			Each report ends with a blank line. Use --verbose to trace which
			handlers matched, ran or failed.
		`),
		Example: heredoc.Doc(`
			fileinfo data.csv notes/
			fileinfo -v --exclude '.*\.git/.*' .
			fileinfo --list
			fileinfo --summary -o json -x .csv,.txt --min-size 1KB data/
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Paths = args

			if options.Depth < 0 {
				return errors.New("depth cannot be negative")
			}

			if !options.List && len(options.Paths) == 0 {
				return errors.New("at least one path is required")
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			// Parse minSize string to bytes
			if minSizeStr != "" {
				size, err := humanize.ParseBytes(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
			}

			return logic(cmd.Context(), options, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringSliceVarP(&options.Excludes, "exclude", "e", nil, "Regex patterns to exclude")
	flags.StringSliceVarP(
		&options.Extensions,
		"ext",
		"x",
		[]string{},
		"File suffixes to include (e.g., .csv,.txt). Use '!' prefix to exclude (e.g., !.log)",
	)
	flags.StringVar(&minSizeStr, "min-size", "0KB", "Minimum file size (e.g., 1KB)")
	flags.IntVarP(&options.Depth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.BoolVar(&options.Summary, "summary", false, "Print a summary after the reports")
	flags.BoolVar(&options.List, "list", false, "List registered handlers and exit")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format of --summary and --list: json or table")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored log output")

	return cmd
}
