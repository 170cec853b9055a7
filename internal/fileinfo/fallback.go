package fileinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FallbackPattern matches every extension, including the empty one.
const FallbackPattern = ".*"

// Ext returns the extension of the base name of path, including the leading
// dot. Names without a dot, names whose only dot is the leading one
// (".bashrc") and names ending in a dot have no extension.
func Ext(path string) string {
	name := filepath.Base(path)

	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}

	return name[i:]
}

// Fallback returns the built-in handler reporting path, type and size.
func Fallback() Handler {
	return HandlerFunc("default", describeDefault)
}

func describeDefault(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	if target, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = target
	}

	kind := "File"
	if ext := Ext(path); ext != "" {
		kind = strings.ToUpper(ext) + " file"
	}

	return []string{
		resolved,
		kind,
		fmt.Sprintf("%d bytes", info.Size()),
	}, nil
}
