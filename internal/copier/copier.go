package copier

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yuezheng2006/everything-claude-code/internal/defs"
)

// TreeCopier copies directory subtrees into a destination, never
// overwriting existing destination files. A nil exclude list copies
// everything.
type TreeCopier struct {
	// Excludes are doublestar patterns matched against the
	// slash-separated source-relative path; matching files are skipped
	// entirely (not enumerated, not counted).
	Excludes []string

	// DryRun disables all filesystem mutation. Counts are still computed
	// against the current destination state.
	DryRun bool

	// planned tracks destination paths a dry run would have written, so
	// later passes over the same copier count them as existing, exactly
	// like a real run would.
	planned map[string]struct{}
}

// CopyTree recursively copies every file under srcDir to the same relative
// path under destDir. Files whose relative path already exists at the
// destination are counted as skipped and left untouched. A missing srcDir
// is a warning, not an error; a failed destination write is an error.
func (t *TreeCopier) CopyTree(srcDir, destDir string) (Report, error) {
	var report Report

	info, err := os.Stat(srcDir)
	if err != nil {
		report.Warn(fmt.Sprintf("source %q not found, skipping", srcDir))
		slog.Warn("copy source missing", "path", srcDir)
		return report, nil
	}
	if !info.IsDir() {
		// Single-file source: copy unconditionally to destDir as a file path.
		report.Attempted++
		if t.DryRun {
			t.plan(destDir)
			report.Copied++
			return report, nil
		}
		if err := copyFile(srcDir, destDir); err != nil {
			return report, err
		}
		report.Copied++
		return report, nil
	}

	walkErr := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %q: %w", path, err)
		}
		if t.excluded(filepath.ToSlash(rel)) {
			return nil
		}
		report.Attempted++

		destPath := filepath.Join(destDir, rel)
		if t.destExists(destPath) {
			// Existing destination files are never overwritten.
			report.SkippedExisting++
			return nil
		}

		if t.DryRun {
			t.plan(destPath)
			report.Copied++
			return nil
		}
		if err := copyFile(path, destPath); err != nil {
			return err
		}
		report.Copied++
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("copy tree %q: %w", srcDir, walkErr)
	}

	return report, nil
}

// fillMissing walks srcDir and copies only files whose relative path does
// not yet exist under destDir, tallying them as filled-from-fallback.
func (t *TreeCopier) fillMissing(srcDir, destDir string) (Report, error) {
	var report Report

	if _, err := os.Stat(srcDir); err != nil {
		report.Warn(fmt.Sprintf("source %q not found, skipping", srcDir))
		slog.Warn("fallback source missing", "path", srcDir)
		return report, nil
	}

	walkErr := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("relative path for %q: %w", path, err)
		}
		if t.excluded(filepath.ToSlash(rel)) {
			return nil
		}
		report.Attempted++

		destPath := filepath.Join(destDir, rel)
		if t.destExists(destPath) {
			report.SkippedExisting++
			return nil
		}

		if t.DryRun {
			t.plan(destPath)
			report.FilledFromFallback++
			return nil
		}
		if err := copyFile(path, destPath); err != nil {
			return err
		}
		report.FilledFromFallback++
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("fill from %q: %w", srcDir, walkErr)
	}

	return report, nil
}

// destExists reports whether a destination path is already taken, counting
// paths an earlier dry-run pass planned to write.
func (t *TreeCopier) destExists(path string) bool {
	if t.DryRun {
		if _, ok := t.planned[path]; ok {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}

func (t *TreeCopier) plan(path string) {
	if t.planned == nil {
		t.planned = make(map[string]struct{})
	}
	t.planned[path] = struct{}{}
}

func (t *TreeCopier) excluded(relSlash string) bool {
	for _, pattern := range t.Excludes {
		if ok, err := doublestar.Match(pattern, relSlash); err == nil && ok {
			return true
		}
	}
	return false
}

// copyFile copies src to dst, creating parent directories. Shell scripts
// keep an executable bit so installed hooks can run in place.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), defs.DirPerm); err != nil {
		return fmt.Errorf("create directory %q: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	perm := defs.FilePerm
	if filepath.Ext(src) == ".sh" {
		perm = defs.ExecPerm
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %q: %w", dst, err)
	}
	return out.Close()
}
