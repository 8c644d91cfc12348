package copier

import (
	"io/fs"
	"path/filepath"
)

// CountFiles returns the number of regular files under dir. A missing or
// unreadable directory counts as zero.
func CountFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			count++
		}
		return nil
	})
	return count
}
