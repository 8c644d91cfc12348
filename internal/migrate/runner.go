// Package migrate orchestrates a full asset installation: every selected
// category is processed sequentially, failures stay scoped to their
// category, and the run produces a per-category summary.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yuezheng2006/everything-claude-code/internal/assets"
	"github.com/yuezheng2006/everything-claude-code/internal/copier"
	"github.com/yuezheng2006/everything-claude-code/internal/defs"
	"github.com/yuezheng2006/everything-claude-code/internal/hooks"
	"github.com/yuezheng2006/everything-claude-code/internal/mcp"
)

// Options configures one installation run.
type Options struct {
	// SourceRoot is the resolved asset tree.
	SourceRoot string

	// ConfigDir is the destination configuration directory (e.g. ~/.claude).
	ConfigDir string

	// Categories to install, in installation order.
	Categories []assets.Category

	// Languages selects programming-language rule sets (rules category only).
	Languages []string

	// Locale enables shadow-tree resolution; empty disables localization.
	Locale string

	// Exclude holds doublestar patterns filtered out of tree copies.
	Exclude []string

	// DryRun disables every filesystem mutation.
	DryRun bool
}

// CategoryResult is the outcome for one category.
type CategoryResult struct {
	Category assets.Category
	Report   copier.Report

	// Added/Skipped are set for the structured-document categories.
	Added   int
	Skipped int

	// Scripts is the number of filter scripts generated (hooks only).
	Scripts int

	// Diff previews the destination document change (dry-run only).
	Diff string

	// Err is a category-scoped failure; the run continues past it.
	Err error
}

// Summary is the outcome of a whole run.
type Summary struct {
	Results []CategoryResult
}

// Failed reports whether any category ended in error.
func (s *Summary) Failed() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Runner executes installations.
type Runner struct {
	// OnCategory, when set, is called before each category is processed.
	OnCategory func(assets.Category)
}

// Run processes every selected category strictly sequentially. A category
// failure is recorded and the run moves on; only context cancellation stops
// the loop.
func (r *Runner) Run(ctx context.Context, opts Options) *Summary {
	resolver := assets.NewResolver(opts.SourceRoot)
	summary := &Summary{}

	for _, category := range opts.Categories {
		select {
		case <-ctx.Done():
			summary.Results = append(summary.Results, CategoryResult{
				Category: category,
				Err:      ctx.Err(),
			})
			return summary
		default:
		}

		if r.OnCategory != nil {
			r.OnCategory(category)
		}

		var result CategoryResult
		switch category {
		case assets.CategoryHooks:
			result = r.runHooks(resolver, opts)
		case assets.CategoryMCP:
			result = r.runMCP(resolver, opts)
		default:
			result = r.runTree(resolver, category, opts)
		}
		result.Category = category
		summary.Results = append(summary.Results, result)
	}

	return summary
}

// runTree installs a markdown-tree category with locale fallback. The rules
// category additionally installs the selected programming-language rule
// sets into dedicated subdirectories. A failed destination write fails the
// category; a missing source tree only warns.
func (r *Runner) runTree(resolver *assets.Resolver, category assets.Category, opts Options) CategoryResult {
	excludes := opts.Exclude
	if category == assets.CategoryRules {
		// Language rule sets are installed separately below; keep them out
		// of the shared-rules walk so locale fallback never touches them.
		for _, lang := range assets.KnownLanguages() {
			excludes = append(excludes, lang+"/**")
		}
	}

	merger := &copier.FallbackMerger{
		Resolver: resolver,
		Copier:   &copier.TreeCopier{Excludes: excludes, DryRun: opts.DryRun},
	}

	destDir := filepath.Join(opts.ConfigDir, category.Dir())
	report, err := merger.CopyWithFallback(category, opts.Locale, destDir)
	if err != nil {
		return CategoryResult{Report: report, Err: err}
	}

	if category == assets.CategoryRules {
		langMerger := &copier.FallbackMerger{
			Resolver: resolver,
			Copier:   &copier.TreeCopier{Excludes: opts.Exclude, DryRun: opts.DryRun},
		}
		for _, lang := range opts.Languages {
			langReport, err := langMerger.CopyLanguageRules(lang, destDir)
			report.Merge(langReport)
			if err != nil {
				return CategoryResult{Report: report, Err: err}
			}
		}
	}

	return CategoryResult{Report: report}
}

// runHooks converts the legacy hooks descriptor and merges it into
// settings.json. The merged document is built fully in memory and written
// in a single call; generated filter scripts are written alongside.
func (r *Runner) runHooks(resolver *assets.Resolver, opts Options) CategoryResult {
	var result CategoryResult

	srcPath := filepath.Join(resolver.Root(), defs.HooksDescriptor)
	doc, err := hooks.LoadLegacy(srcPath)
	if os.IsNotExist(err) {
		result.Report.Warn(fmt.Sprintf("hooks descriptor %q not found, skipping", srcPath))
		return result
	}
	if err != nil {
		result.Err = err
		return result
	}

	converted, scripts, _ := hooks.Convert(doc, 1)
	result.Scripts = len(scripts)

	settingsPath := filepath.Join(opts.ConfigDir, defs.SettingsJSON)
	existing, err := os.ReadFile(settingsPath)
	if err != nil && !os.IsNotExist(err) {
		result.Err = fmt.Errorf("read settings %q: %w", settingsPath, err)
		return result
	}

	merged, err := hooks.MergeSettings(existing, converted)
	if err != nil {
		result.Err = err
		return result
	}
	result.Added = merged.Added
	result.Skipped = merged.Skipped
	result.Report.Attempted = merged.Added + merged.Skipped
	result.Report.Copied = merged.Added
	result.Report.SkippedExisting = merged.Skipped

	if opts.DryRun {
		if merged.Added > 0 {
			result.Diff = documentDiff(existing, merged.Document)
		}
		return result
	}

	for _, script := range scripts {
		path := filepath.Join(opts.ConfigDir, filepath.FromSlash(script.RelPath))
		if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
			result.Err = fmt.Errorf("create filter directory: %w", err)
			return result
		}
		if err := os.WriteFile(path, script.Content, defs.ExecPerm); err != nil {
			result.Err = fmt.Errorf("write filter script %q: %w", path, err)
			return result
		}
	}

	// Nothing new means nothing to write: reruns leave the destination
	// byte-for-byte identical.
	if merged.Added == 0 {
		return result
	}
	if err := writeDocument(settingsPath, merged.Document); err != nil {
		result.Err = err
	}
	return result
}

// runMCP merges the MCP server descriptor into the destination .mcp.json.
func (r *Runner) runMCP(resolver *assets.Resolver, opts Options) CategoryResult {
	var result CategoryResult

	srcPath := filepath.Join(resolver.Root(), defs.MCPDescriptor)
	source, err := os.ReadFile(srcPath)
	if os.IsNotExist(err) {
		result.Report.Warn(fmt.Sprintf("mcp descriptor %q not found, skipping", srcPath))
		return result
	}
	if err != nil {
		result.Err = fmt.Errorf("read mcp descriptor %q: %w", srcPath, err)
		return result
	}

	destPath := filepath.Join(opts.ConfigDir, defs.MCPJSON)
	existing, err := os.ReadFile(destPath)
	if err != nil && !os.IsNotExist(err) {
		result.Err = fmt.Errorf("read %q: %w", destPath, err)
		return result
	}

	merged, err := mcp.Merge(existing, source)
	if err != nil {
		result.Err = err
		return result
	}
	result.Added = merged.Added
	result.Skipped = merged.Skipped
	result.Report.Attempted = merged.Added + merged.Skipped
	result.Report.Copied = merged.Added
	result.Report.SkippedExisting = merged.Skipped

	if opts.DryRun {
		if merged.Added > 0 {
			result.Diff = documentDiff(existing, merged.Document)
		}
		return result
	}

	if merged.Added == 0 {
		return result
	}
	if err := writeDocument(destPath, merged.Document); err != nil {
		result.Err = err
	}
	return result
}

// writeDocument persists a fully-built document in one call.
func writeDocument(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create directory for %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// documentDiff renders a patch-style preview of a document change.
func documentDiff(before, after []byte) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(string(before), string(after))
	return dmp.PatchToText(patches)
}
