// Package assets defines the fixed asset categories shipped by the
// everything-claude-code repository and resolves their source directories,
// including locale shadow trees.
package assets

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Category identifies one kind of installable asset.
type Category string

const (
	// CategoryAgents holds subagent definitions (markdown tree).
	CategoryAgents Category = "agents"

	// CategoryCommands holds slash command definitions (markdown tree).
	CategoryCommands Category = "commands"

	// CategorySkills holds skill documents (markdown tree).
	CategorySkills Category = "skills"

	// CategoryRules holds coding rules, shared and per programming language
	// (markdown tree).
	CategoryRules Category = "rules"

	// CategoryPlugins holds plugin documents (markdown tree).
	CategoryPlugins Category = "plugins"

	// CategoryContexts holds context documents (markdown tree).
	CategoryContexts Category = "contexts"

	// CategoryHooks is the legacy hooks descriptor converted into settings.json.
	CategoryHooks Category = "hooks"

	// CategoryMCP is the MCP server descriptor merged into .mcp.json.
	CategoryMCP Category = "mcp-configs"
)

// AllCategories returns every category in installation order. Markdown trees
// come first; the two structured-document categories run last so their
// generated files never race the plain copies.
func AllCategories() []Category {
	return []Category{
		CategoryAgents,
		CategoryCommands,
		CategorySkills,
		CategoryRules,
		CategoryPlugins,
		CategoryContexts,
		CategoryHooks,
		CategoryMCP,
	}
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	return slices.Contains(AllCategories(), c)
}

// Dir returns the category's root-relative source directory. For the two
// structured-document categories this is the directory holding the
// descriptor file.
func (c Category) Dir() string {
	return string(c)
}

// IsTree reports whether the category is a markdown tree (copied file by
// file) as opposed to a structured document that is merged.
func (c Category) IsTree() bool {
	return c != CategoryHooks && c != CategoryMCP
}

// ParseCategories validates a list of category tags. Unknown tags are
// returned separately so callers can warn without failing; an empty input
// selects every category.
func ParseCategories(tags []string) (selected []Category, unknown []string) {
	if len(tags) == 0 {
		return AllCategories(), nil
	}
	for _, tag := range tags {
		c := Category(strings.TrimSpace(strings.ToLower(tag)))
		if c == "" {
			continue
		}
		if !c.IsValid() {
			unknown = append(unknown, tag)
			continue
		}
		if !slices.Contains(selected, c) {
			selected = append(selected, c)
		}
	}
	// Preserve the fixed installation order regardless of input order.
	slices.SortFunc(selected, func(a, b Category) int {
		return slices.Index(AllCategories(), a) - slices.Index(AllCategories(), b)
	})
	return selected, unknown
}

// KnownLanguages lists the programming-language rule sets the source tree
// may ship under rules/<language>/.
func KnownLanguages() []string {
	return []string{"python", "typescript", "javascript", "go", "rust", "java"}
}

// ParseLanguages validates a list of programming-language tags. Unknown tags
// are returned separately; an empty input selects no language rule sets.
func ParseLanguages(tags []string) (selected []string, unknown []string) {
	for _, tag := range tags {
		lang := strings.TrimSpace(strings.ToLower(tag))
		if lang == "" {
			continue
		}
		if !slices.Contains(KnownLanguages(), lang) {
			unknown = append(unknown, tag)
			continue
		}
		if !slices.Contains(selected, lang) {
			selected = append(selected, lang)
		}
	}
	return selected, unknown
}

// ValidateLocale checks that a locale tag is a plausible BCP-47 code
// (e.g. "zh-CN"). An empty tag means no localization and is always valid.
// Localization must never make an install fail, so callers treat a non-nil
// error as warn-and-disable rather than fatal.
func ValidateLocale(tag string) error {
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid locale tag %q: %w", tag, err)
	}
	return nil
}
