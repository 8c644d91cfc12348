package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yuezheng2006/everything-claude-code/internal/assets"
	"github.com/yuezheng2006/everything-claude-code/internal/copier"
	"github.com/yuezheng2006/everything-claude-code/internal/defs"
	"github.com/yuezheng2006/everything-claude-code/internal/source"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List asset categories available in a source tree",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("source", "", "Asset source: local directory or git URL (default: official repository)")
	listCmd.Flags().String("locale", "", "Locale tag to check for localized shadow trees")
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	sourceRef := getStringFlag(cmd, "source")
	if sourceRef == "" {
		sourceRef = defs.DefaultSourceRepo
	}
	locale := getStringFlag(cmd, "locale")
	if err := assets.ValidateLocale(locale); err != nil {
		_, _ = fmt.Fprintf(out, "%s %v\n", symWarning(), err)
		locale = ""
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	resolved, err := source.Resolve(ctx, sourceRef)
	if err != nil {
		return err
	}
	defer resolved.Cleanup()

	resolver := assets.NewResolver(resolved.Root)

	var pairs []kvPair
	for _, c := range assets.AllCategories() {
		var value string
		if c.IsTree() {
			count := copier.CountFiles(resolver.Original(c))
			value = fmt.Sprintf("%d files", count)
			if resolver.HasShadow(c, locale) {
				value += fmt.Sprintf(" (+%s)", locale)
			}
		} else {
			descriptor := defs.HooksDescriptor
			if c == assets.CategoryMCP {
				descriptor = defs.MCPDescriptor
			}
			if _, err := os.Stat(filepath.Join(resolved.Root, filepath.FromSlash(descriptor))); err == nil {
				value = symSuccess() + " present"
			} else {
				value = cliMuted.Render("absent")
			}
		}
		pairs = append(pairs, kvPair{string(c), value})
	}

	languagePairs := make([]kvPair, 0, len(assets.KnownLanguages()))
	for _, lang := range assets.KnownLanguages() {
		count := copier.CountFiles(resolver.LanguageRulesDir(lang))
		if count > 0 {
			languagePairs = append(languagePairs, kvPair{lang, fmt.Sprintf("%d rule files", count)})
		}
	}

	details := []string{renderKeyValueLines(pairs)}
	if len(languagePairs) > 0 {
		details = append(details, cliMuted.Render("Language rule sets:"), renderKeyValueLines(languagePairs))
	}

	_, _ = fmt.Fprintln(out, renderCard("Available assets", details...))
	return nil
}
