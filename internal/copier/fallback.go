package copier

import (
	"path/filepath"

	"github.com/yuezheng2006/everything-claude-code/internal/assets"
)

// FallbackMerger installs a markdown-tree category with locale-then-fallback
// resolution: the localized shadow tree is copied first, then the
// original-language tree fills in every relative path still missing at the
// destination. The destination always ends up a superset (by relative path)
// of the original-language tree.
type FallbackMerger struct {
	Resolver *assets.Resolver
	Copier   *TreeCopier
}

// CopyWithFallback installs one category into destDir.
func (f *FallbackMerger) CopyWithFallback(c assets.Category, locale, destDir string) (Report, error) {
	if !f.Resolver.HasShadow(c, locale) {
		// No localization in play: plain merge copy of the
		// original-language tree.
		return f.Copier.CopyTree(f.Resolver.Original(c), destDir)
	}

	report, err := f.Copier.CopyTree(f.Resolver.Resolve(c, locale), destDir)
	if err != nil {
		return report, err
	}
	fillReport, err := f.Copier.fillMissing(f.Resolver.Original(c), destDir)
	report.Merge(fillReport)
	return report, err
}

// CopyLanguageRules installs one programming-language rule set under a
// dedicated subdirectory of the rules destination. Language rule sets are
// per-programming-language, not per-locale, so they bypass the fallback
// logic entirely; the dedicated subdirectory keeps them from colliding with
// shared rule files that reuse filenames across languages.
func (f *FallbackMerger) CopyLanguageRules(lang, rulesDestDir string) (Report, error) {
	src := f.Resolver.LanguageRulesDir(lang)
	return f.Copier.CopyTree(src, filepath.Join(rulesDestDir, lang))
}
