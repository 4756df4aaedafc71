// Package walk traverses a directory tree, matching files against a
// glob pattern and reading each match sequentially, the way the
// teacher's internal/automigrate walks its migrations directory rather
// than fanning reads out across goroutines. Grounded on
// original_source/src/types.rs's ProcessingStats/MAX_FILE_SIZE, which
// this package carries forward as the skipped-for-size/failed-to-read
// counters a run reports when it's done.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MaxFileSize bounds how large a single file this package will read,
// the same cap original_source/src/types.rs calls MAX_FILE_SIZE.
const MaxFileSize = 10 * 1024 * 1024

// File is one matched, successfully read file.
type File struct {
	Path    string
	Content []byte
}

// Stats tallies what happened during a Walk, for the --stats-style
// summary a run can print on exit.
type Stats struct {
	FilesMatched   int
	FilesProcessed int
	SkippedForSize int
	FailedToRead   int
}

// Walk descends root, matching each regular file's path (relative to
// root, forward-slash separated) against glob, and reads every match
// that isn't over MaxFileSize. A file that matches but fails to read or
// exceeds the size cap is counted in Stats rather than aborting the walk.
func Walk(root, glob string) ([]File, Stats, error) {
	var files []File
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		matched, err := doublestar.Match(glob, rel)
		if err != nil {
			return fmt.Errorf("walk: bad glob %q: %w", glob, err)
		}
		if !matched {
			return nil
		}
		stats.FilesMatched++

		info, err := d.Info()
		if err != nil {
			stats.FailedToRead++
			return nil
		}
		if info.Size() > MaxFileSize {
			stats.SkippedForSize++
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			stats.FailedToRead++
			return nil
		}
		files = append(files, File{Path: path, Content: content})
		stats.FilesProcessed++
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}
	return files, stats, nil
}
