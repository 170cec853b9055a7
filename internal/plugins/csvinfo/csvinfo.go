// Package csvinfo reports the dimensions of CSV files.
package csvinfo

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/fileinfo/internal/fileinfo"
)

// Pattern is the extension pattern the handler is registered for.
const Pattern = `\.csv`

// ErrEmpty is returned for a CSV file without any rows.
var ErrEmpty = errors.New("no records")

// Provider registers the CSV handler.
type Provider struct{}

// Name implements fileinfo.Provider.
func (Provider) Name() string { return "csvinfo" }

// Register implements fileinfo.Provider.
func (Provider) Register(set *fileinfo.Set) error {
	set.Register(fileinfo.HandlerFunc("csv", Describe), Pattern)

	return nil
}

// Describe reports the number of rows, header included, and the widest row.
// Blank lines are rows without columns.
func Describe(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows, columns int
		offset        int64
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			rows += blankLines(data[offset:])

			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		// The reader skips blank lines silently; they sit between the end of
		// the previous record and the start of this one.
		next := reader.InputOffset()
		rows += blankLines(data[offset:next]) + 1
		columns = max(columns, len(record))
		offset = next
	}

	if rows == 0 {
		return nil, ErrEmpty
	}

	return []string{
		fmt.Sprintf("Rows %d", rows),
		fmt.Sprintf("Columns %d", columns),
	}, nil
}

// blankLines counts the empty lines at the start of data.
func blankLines(data []byte) int {
	n := 0

	for {
		switch {
		case bytes.HasPrefix(data, []byte("\n")):
			data = data[1:]
		case bytes.HasPrefix(data, []byte("\r\n")):
			data = data[2:]
		default:
			return n
		}

		n++
	}
}
