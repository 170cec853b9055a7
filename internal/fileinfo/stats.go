package fileinfo

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ExtStat represents statistics for a file extension.
type ExtStat struct {
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// FileStat represents a single file path and size.
type FileStat struct {
	// Path is the cleaned file path as found during collection.
	Path string
	// Size is the size in bytes at collection time.
	Size int64
}

// Stats holds aggregate statistics for a run.
type Stats struct {
	// FileCount is the total number of files processed.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all processed files.
	TotalBytes int64 `json:"total_bytes"`
	// ExtStats maps file extensions to their statistics.
	ExtStats map[string]ExtStat `json:"ext_stats"`
	// Failures is the number of handler invocations that failed.
	Failures int `json:"failures"`
}

// collector gathers files from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	files      map[string]int64
	totalBytes int64
}

func newCollector() *collector {
	return &collector{files: make(map[string]int64)}
}

// add records a file. Paths are cleaned first, so a file reached through
// overlapping roots ("." and "a.txt") is kept once.
func (c *collector) add(path string, size int64) {
	path = filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, seen := c.files[path]; seen {
		c.totalBytes -= old
	}

	c.files[path] = size
	c.totalBytes += size
}

// progress returns the number of files and bytes collected so far.
func (c *collector) progress() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return int64(len(c.files)), c.totalBytes
}

// finalize returns the collected files sorted by path.
func (c *collector) finalize() []FileStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	files := make([]FileStat, 0, len(c.files))
	for path, size := range c.files {
		files = append(files, FileStat{Path: path, Size: size})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files
}

// Summarize aggregates the collected files and the handler failure count.
func Summarize(files []FileStat, failures int) *Stats {
	stats := &Stats{
		ExtStats: make(map[string]ExtStat),
		Failures: failures,
	}

	for _, f := range files {
		stats.FileCount++
		stats.TotalBytes += f.Size

		ext := strings.ToLower(Ext(f.Path))
		stat := stats.ExtStats[ext]
		stat.Count++
		stat.Size += f.Size
		stats.ExtStats[ext] = stat
	}

	return stats
}
