package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/fileinfo/internal/fileinfo"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// handlerEntry is the JSON form of a registry entry.
type handlerEntry struct {
	Index   int    `json:"index"`
	Pattern string `json:"pattern"`
	Handler string `json:"handler"`
}

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *fileinfo.Stats, writer io.Writer) error {
	return writeJSON(stats, writer)
}

// PrintHandlersJSON outputs the registry entries in dispatch order as JSON.
func PrintHandlersJSON(registry *fileinfo.Registry, writer io.Writer) error {
	entries := registry.Entries()

	out := make([]handlerEntry, 0, len(entries))
	for i, e := range entries {
		out = append(out, handlerEntry{Index: i + 1, Pattern: e.Pattern, Handler: e.Handler.Name()})
	}

	return writeJSON(out, writer)
}

func writeJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintHandlers outputs the registry entries in dispatch order.
func PrintHandlers(registry *fileinfo.Registry, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "#\tPattern\tHandler")

	for i, e := range registry.Entries() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, e.Pattern, e.Handler.Name())
	}

	return w.Flush()
}

// PrintSummary outputs statistics in human-readable table format.
func PrintSummary(stats *fileinfo.Stats, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "Extensions:\t\t")

	extList := make([]string, 0, len(stats.ExtStats))
	for ext := range stats.ExtStats {
		extList = append(extList, ext)
	}

	// Largest first, ties by name to keep the output stable.
	sort.Slice(extList, func(i, j int) bool {
		a, b := stats.ExtStats[extList[i]], stats.ExtStats[extList[j]]
		if a.Size != b.Size {
			return a.Size > b.Size
		}

		return extList[i] < extList[j]
	})

	for _, ext := range extList {
		extStat := stats.ExtStats[ext]
		if ext == "" {
			ext = "\"\""
		}

		fmt.Fprintf(w, "  %s:\t%d files,\t%s\n",
			ext, extStat.Count, humanize.IBytes(uint64(extStat.Size))) //nolint:gosec // Sizes are never negative
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\t\n", stats.FileCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\t\n",
		humanize.IBytes(uint64(stats.TotalBytes)), stats.TotalBytes) //nolint:gosec // Sizes are never negative
	fmt.Fprintf(w, "Failed handlers:\t%d\t\n", stats.Failures)

	return w.Flush()
}
