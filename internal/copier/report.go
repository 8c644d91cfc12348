// Package copier installs asset trees into a destination configuration
// directory with merge-not-replace semantics: files already present at the
// destination are never overwritten.
package copier

// Report aggregates the outcome of one category installation.
type Report struct {
	// Attempted is the number of source files enumerated.
	Attempted int

	// Copied is the number of files written to the destination.
	Copied int

	// FilledFromFallback is the number of files copied from the
	// original-language tree because no localized file covered them.
	FilledFromFallback int

	// SkippedExisting is the number of files left alone because the
	// destination path already existed.
	SkippedExisting int

	// Warnings collects non-fatal problems (missing source trees,
	// unreadable files).
	Warnings []string
}

// Merge folds another report into r.
func (r *Report) Merge(other Report) {
	r.Attempted += other.Attempted
	r.Copied += other.Copied
	r.FilledFromFallback += other.FilledFromFallback
	r.SkippedExisting += other.SkippedExisting
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Warn appends a warning message.
func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
