package fileinfo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fileinfo/internal/fileinfo"
)

func paths(files []fileinfo.FileStat) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}

	return out
}

func tree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.csv", "1,2\n")
	writeFile(t, dir, "sub/c.txt", "cc")
	writeFile(t, dir, "sub/deep/d", "ddd")
	writeFile(t, dir, ".git/config", "x")

	return dir
}

func TestCollectSortedAndUnique(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	files, err := fileinfo.Collect(context.Background(), []string{dir, filepath.Join(dir, "b.txt"), dir + "/sub/"},
		fileinfo.Options{}, zerolog.Nop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, ".git", "config"),
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
		filepath.Join(dir, "sub", "deep", "d"),
	}, paths(files))
	assert.Equal(t, int64(4), files[1].Size)
}

//nolint:paralleltest // Changes the working directory.
func TestCollectRelativeOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "sub/b.txt", "b")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, err := fileinfo.Collect(context.Background(), []string{".", "a.txt", "./sub/b.txt", "sub"},
		fileinfo.Options{}, zerolog.Nop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", filepath.Join("sub", "b.txt")}, paths(files))
}

func TestCollectExtensionAndSizeFilters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "keep.txt", "0123456789")
	writeFile(t, dir, "small.txt", "0")
	writeFile(t, dir, "data.csv", "0123456789")
	writeFile(t, dir, "main_test.go", "0123456789")
	writeFile(t, dir, "main.go", "0123456789")

	files, err := fileinfo.Collect(context.Background(), []string{dir},
		fileinfo.Options{Extensions: []string{".txt", ".go", "'!_test.go'"}, MinSize: 5}, zerolog.Nop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "keep.txt"),
		filepath.Join(dir, "main.go"),
	}, paths(files))

	// File roots go through the same filters.
	files, err = fileinfo.Collect(context.Background(), []string{filepath.Join(dir, "data.csv")},
		fileinfo.Options{Extensions: []string{"!.csv"}}, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectExcludesAndDepth(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	files, err := fileinfo.Collect(context.Background(), []string{dir},
		fileinfo.Options{Excludes: []string{`.*\.git/.*`, `\.csv$`}, Depth: 2}, zerolog.Nop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
	}, paths(files))
}

func TestCollectSymlinkToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := writeFile(t, dir, "target.txt", "x")

	if err := os.Symlink(target, filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "loop")))

	files, err := fileinfo.Collect(context.Background(), []string{dir}, fileinfo.Options{}, zerolog.Nop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "link.txt"),
		filepath.Join(dir, "target.txt"),
	}, paths(files))
}

func TestCollectMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := fileinfo.Collect(context.Background(), []string{filepath.Join(t.TempDir(), "nope")},
		fileinfo.Options{}, zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "accessing path")
}

func TestCollectInvalidExclude(t *testing.T) {
	t.Parallel()

	_, err := fileinfo.Collect(context.Background(), []string{t.TempDir()},
		fileinfo.Options{Excludes: []string{"("}}, zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "compiling exclusion pattern")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	stats := fileinfo.Summarize([]fileinfo.FileStat{
		{Path: "a.txt", Size: 10},
		{Path: "b.TXT", Size: 5},
		{Path: "README", Size: 1},
	}, 3)

	assert.Equal(t, int64(3), stats.FileCount)
	assert.Equal(t, int64(16), stats.TotalBytes)
	assert.Equal(t, 3, stats.Failures)
	assert.Equal(t, map[string]fileinfo.ExtStat{
		".txt": {Count: 2, Size: 15},
		"":     {Count: 1, Size: 1},
	}, stats.ExtStats)
}
