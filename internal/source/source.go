// Package source resolves an asset source reference, either a local checkout
// or a remote git URL, into a readable directory root.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Resolved is a usable source tree. Cleanup removes any temporary clone and
// is safe to call exactly once; for local directories it is a no-op.
type Resolved struct {
	Root    string
	Cleanup func()
}

// Resolve turns a source reference into a local directory. An existing
// directory is used in place; a git URL is shallow-cloned into a temporary
// directory. Anything else is an error.
func Resolve(ctx context.Context, ref string) (*Resolved, error) {
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return &Resolved{Root: ref, Cleanup: func() {}}, nil
	}

	if !isGitURL(ref) {
		return nil, fmt.Errorf("source %q is neither a directory nor a git URL", ref)
	}

	tmp, err := os.MkdirTemp("", "ecc-source-*")
	if err != nil {
		return nil, fmt.Errorf("create clone directory: %w", err)
	}

	slog.Info("cloning asset source", "url", ref)
	_, err = git.PlainCloneContext(ctx, tmp, false, &git.CloneOptions{
		URL:          ref,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		_ = os.RemoveAll(tmp)
		return nil, fmt.Errorf("clone %q: %w", ref, err)
	}

	return &Resolved{
		Root:    tmp,
		Cleanup: func() { _ = os.RemoveAll(tmp) },
	}, nil
}

func isGitURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "ssh://") ||
		strings.HasPrefix(ref, "git@")
}
