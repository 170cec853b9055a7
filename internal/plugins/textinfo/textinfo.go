// Package textinfo reports line and word counts of text files.
package textinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/idelchi/fileinfo/internal/fileinfo"
)

// Pattern is the extension pattern the handler is registered for.
const Pattern = `\.txt`

// ErrNotText is returned for content that is not valid UTF-8.
var ErrNotText = errors.New("not valid UTF-8 text")

// Provider registers the text handler.
type Provider struct{}

// Name implements fileinfo.Provider.
func (Provider) Name() string { return "textinfo" }

// Register implements fileinfo.Provider.
func (Provider) Register(set *fileinfo.Set) error {
	set.Register(fileinfo.HandlerFunc("text", Describe), Pattern)

	return nil
}

// Describe reports the number of lines and words in the file.
func Describe(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, ErrNotText
	}

	content := string(data)

	return []string{
		fmt.Sprintf("Lines %d", countLines(content)),
		fmt.Sprintf("Words %d", len(strings.FieldsFunc(content, isSpace))),
	}, nil
}

// isSpace extends unicode.IsSpace with the information separators
// U+001C..U+001F, which also delimit words.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// countLines counts newline-delimited segments. A trailing newline ends the
// last line rather than starting an empty one.
func countLines(content string) int {
	if content == "" {
		return 0
	}

	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}

	return n
}
