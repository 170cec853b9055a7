package fileinfo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures file collection.
type Options struct {
	// Excludes contains regex patterns of paths to skip.
	Excludes []string
	// Extensions to include (empty = all). A '!' prefix excludes instead.
	Extensions []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// Depth is the maximum traversal depth below each root (0=unlimited).
	Depth int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath := strings.TrimPrefix(path, root)

	relPath = strings.TrimPrefix(relPath, string(filepath.Separator))
	if relPath == "" {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// shouldIncludeByExtension checks if file should be included based on extension filters.
// Returns true if file should be included, false if excluded.
func shouldIncludeByExtension(path string, include, exclude map[string]struct{}) bool {
	// Check excludes first
	for ext := range exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	// If no include filter, include all
	if len(include) == 0 {
		return true
	}
	// Check includes
	for ext := range include {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// splitExtensions separates include and '!'-prefixed exclude suffixes.
func splitExtensions(extensions []string) (include, exclude map[string]struct{}) {
	include = make(map[string]struct{}, len(extensions))
	exclude = make(map[string]struct{}, len(extensions))

	for _, e := range extensions { //nolint:varnamelen // e is standard for element in range
		e = strings.Trim(e, "'\"") // Strip quotes first

		if strings.HasPrefix(e, "!") {
			exclude[strings.TrimPrefix(e, "!")] = struct{}{}
		} else {
			include[e] = struct{}{}
		}
	}

	return include, exclude
}

// CompileExcludes compiles exclusion patterns.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludeRegexes := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	return excludeRegexes, nil
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Collect finds every regular file under roots. A root may be a file or a
// directory; directories are walked recursively without following symlinked
// directories. The result is sorted and free of duplicates.
//
// Extension and size filters apply to every file, including file roots.
// Exclusion patterns and depth apply below directory roots.
//
// A root that cannot be accessed is an error. Errors below a root are skipped.
// Progress updates are sent to progressHook if provided.
//
//nolint:gocognit,funlen,cyclop // Walk callback keeps all filtering in one place.
func Collect(
	ctx context.Context,
	roots []string,
	opt Options,
	log zerolog.Logger,
	progressHook func(int64, int64),
) ([]FileStat, error) {
	excludeRegexes, err := CompileExcludes(opt.Excludes)
	if err != nil {
		return nil, err
	}

	extInclude, extExclude := splitExtensions(opt.Extensions)

	// accept applies the filters shared by file roots and walked files.
	accept := func(path string, size int64) bool {
		if size < opt.MinSize {
			log.Debug().Str("path", path).Int64("size", size).Msg("excluding file (below minimum size)")

			return false
		}

		if !shouldIncludeByExtension(path, extInclude, extExclude) {
			log.Debug().Str("path", path).Msg("excluding file (extension filter)")

			return false
		}

		return true
	}

	collector := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	for _, root := range roots {
		// Normalize to native format to handle both C:/Path and C:\Path inputs
		root = filepath.Clean(root)

		statInfo, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("accessing path %q: %w", root, err)
		}

		if statInfo.Mode().IsRegular() {
			if accept(root, statInfo.Size()) {
				collector.add(root, statInfo.Size())
			}

			continue
		}

		if !statInfo.IsDir() {
			log.Debug().Str("path", root).Msg("skipping root (not a regular file or directory)")

			continue
		}

		conf := &fastwalk.Config{
			Follow: false, // Don't follow symlinks
		}

		//nolint:varnamelen // d is standard for DirEntry
		walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("error accessing path")

				return nil // Silently skip errors
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if path == root {
				return nil
			}

			currentDepth := calculateDepth(path, root)
			if opt.Depth > 0 && currentDepth > opt.Depth {
				if d.IsDir() {
					log.Debug().Int("depth", opt.Depth).Str("path", path).Msg("skipping directory beyond depth")

					return filepath.SkipDir
				}

				return nil
			}

			if matchedPattern := shouldExcludeByPattern(path, excludeRegexes); matchedPattern != nil {
				log.Debug().
					Str("path", filepath.ToSlash(path)).
					Str("regex", matchedPattern.String()).
					Msg("excluding path")

				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if d.IsDir() {
				return nil
			}

			// Symlinks count when they point at a regular file.
			var fileInfo fs.FileInfo

			switch {
			case d.Type().IsRegular():
				fileInfo, err = d.Info()
			case d.Type()&fs.ModeSymlink != 0:
				fileInfo, err = os.Stat(path)
			default:
				return nil
			}

			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("error reading file info")

				return nil //nolint:nilerr // Intentionally skip errors during walk
			}

			if !fileInfo.Mode().IsRegular() || !accept(path, fileInfo.Size()) {
				return nil
			}

			collector.add(path, fileInfo.Size())

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking %q: %w", root, walkErr)
		}
	}

	return collector.finalize(), nil
}
