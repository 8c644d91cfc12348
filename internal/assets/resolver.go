package assets

import (
	"os"
	"path/filepath"
)

// Resolver maps a category (and optional locale) to a concrete source
// directory under the asset repository root.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver rooted at the given source tree.
func NewResolver(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the source tree root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the source directory for a category. When locale is set
// and a locale shadow directory exists (<root>/<locale>/<category>), the
// shadow path is returned; otherwise the root-relative directory. Resolve
// never fails; callers check existence afterward.
func (r *Resolver) Resolve(c Category, locale string) string {
	if locale != "" {
		shadow := filepath.Join(r.root, locale, c.Dir())
		if dirExists(shadow) {
			return shadow
		}
	}
	return filepath.Join(r.root, c.Dir())
}

// Original returns the root-relative (original-language) directory for a
// category, ignoring any locale shadow.
func (r *Resolver) Original(c Category) string {
	return filepath.Join(r.root, c.Dir())
}

// HasShadow reports whether a locale shadow tree exists for the category.
func (r *Resolver) HasShadow(c Category, locale string) bool {
	if locale == "" {
		return false
	}
	return dirExists(filepath.Join(r.root, locale, c.Dir()))
}

// LanguageRulesDir returns the source directory for a programming-language
// rule set. Language rule sets live only in the original-language tree;
// they are never localized.
func (r *Resolver) LanguageRulesDir(lang string) string {
	return filepath.Join(r.root, CategoryRules.Dir(), lang)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
