package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yuezheng2006/everything-claude-code/internal/assets"
	"github.com/yuezheng2006/everything-claude-code/internal/config"
	"github.com/yuezheng2006/everything-claude-code/internal/defs"
	"github.com/yuezheng2006/everything-claude-code/internal/migrate"
	"github.com/yuezheng2006/everything-claude-code/internal/source"
	"github.com/yuezheng2006/everything-claude-code/internal/ui"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Merge assets into a Claude Code configuration directory",
	Long: `Install copies asset categories from the everything-claude-code source
tree into the destination configuration directory.

Files already present at the destination are kept, localized assets are
preferred with original-language fallback, hooks are converted into
settings.json format, and MCP servers are merged into .mcp.json.`,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().String("source", "", "Asset source: local directory or git URL (default: official repository)")
	installCmd.Flags().String("dir", "", "Destination configuration directory (default: ~/.claude)")
	installCmd.Flags().StringSlice("components", nil, "Asset categories to install (default: all)")
	installCmd.Flags().StringSlice("languages", nil, "Programming-language rule sets to install")
	installCmd.Flags().String("locale", "", "Locale tag for localized assets (e.g. zh-CN)")
	installCmd.Flags().StringArray("exclude", nil, "Glob pattern excluded from tree copies (repeatable)")
	installCmd.Flags().Bool("dry-run", false, "Report what would be installed without writing anything")
	installCmd.Flags().Bool("non-interactive", false, "Skip prompts; use flags and saved defaults only")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

func getStringArrayFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil
	}
	return val
}

func runInstall(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	configDir := getStringFlag(cmd, "dir")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("determine home directory: %w", err)
		}
		configDir = filepath.Join(home, ".claude")
	}

	// Saved defaults fill in whatever the flags left empty.
	defaults := config.Load(configDir)

	sourceRef := getStringFlag(cmd, "source")
	if sourceRef == "" {
		sourceRef = defaults.Source
	}
	if sourceRef == "" {
		sourceRef = defs.DefaultSourceRepo
	}

	componentTags := getStringSliceFlag(cmd, "components")
	if len(componentTags) == 0 {
		componentTags = defaults.Components
	}
	languageTags := getStringSliceFlag(cmd, "languages")
	if len(languageTags) == 0 {
		languageTags = defaults.Languages
	}
	locale := getStringFlag(cmd, "locale")
	if locale == "" {
		locale = defaults.Locale
	}
	excludes := append(getStringArrayFlag(cmd, "exclude"), defaults.Exclude...)

	categories, unknown := assets.ParseCategories(componentTags)
	for _, tag := range unknown {
		_, _ = fmt.Fprintf(out, "%s unknown component %q ignored\n", symWarning(), tag)
	}
	languages, unknownLangs := assets.ParseLanguages(languageTags)
	for _, tag := range unknownLangs {
		_, _ = fmt.Fprintf(out, "%s unknown language %q ignored\n", symWarning(), tag)
	}

	if err := assets.ValidateLocale(locale); err != nil {
		_, _ = fmt.Fprintf(out, "%s %v, installing without localization\n", symWarning(), err)
		locale = ""
	}

	dryRun := getBoolFlag(cmd, "dry-run")
	nonInteractive := getBoolFlag(cmd, "non-interactive")
	interactive := !nonInteractive && isatty.IsTerminal(os.Stdin.Fd())

	prompted := false
	if interactive && len(componentTags) == 0 {
		prompted = true
		var err error
		categories, languages, err = promptSelection(categories, languages)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Installation cancelled.")
				return nil
			}
			return fmt.Errorf("selection prompt: %w", err)
		}
		if len(categories) == 0 {
			_, _ = fmt.Fprintln(out, "Nothing selected.")
			return nil
		}
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

	if dryRun {
		_, _ = fmt.Fprintln(out, cliMuted.Render("Dry run: nothing will be written."))
	}

	bar := ui.NewProgressBar("preparing", len(categories), interactive, out)
	runner := &migrate.Runner{
		OnCategory: func(c assets.Category) {
			bar.SetTitle(string(c))
			bar.Increment(1)
		},
	}

	summary := runner.Run(ctx, migrate.Options{
		SourceRoot: resolved.Root,
		ConfigDir:  configDir,
		Categories: categories,
		Languages:  languages,
		Locale:     locale,
		Exclude:    excludes,
		DryRun:     dryRun,
	})
	bar.Done()

	printSummary(out, summary, dryRun)

	if summary.Failed() {
		return fmt.Errorf("one or more categories failed")
	}

	// Remember an interactively confirmed selection for the next run.
	if prompted && !dryRun {
		if err := saveSelection(configDir, defaults, categories, languages, locale); err != nil {
			_, _ = fmt.Fprintf(out, "%s save install defaults: %v\n", symWarning(), err)
		}
	}
	return nil
}

// saveSelection persists the confirmed selection as ecc.yaml defaults,
// keeping unrelated settings (source, excludes) from the previous file.
func saveSelection(configDir string, base config.Defaults, categories []assets.Category, languages []string, locale string) error {
	tags := make([]string, 0, len(categories))
	for _, c := range categories {
		tags = append(tags, string(c))
	}
	base.Components = tags
	base.Languages = languages
	base.Locale = locale
	return config.Save(configDir, base)
}

// promptSelection lets the user pick categories and language rule sets.
func promptSelection(preselected []assets.Category, preLangs []string) ([]assets.Category, []string, error) {
	selected := make([]string, 0, len(preselected))
	for _, c := range preselected {
		selected = append(selected, string(c))
	}
	languages := preLangs

	catOpts := make([]huh.Option[string], 0, len(assets.AllCategories()))
	for _, c := range assets.AllCategories() {
		catOpts = append(catOpts, huh.NewOption(string(c), string(c)))
	}
	langOpts := make([]huh.Option[string], 0, len(assets.KnownLanguages()))
	for _, l := range assets.KnownLanguages() {
		langOpts = append(langOpts, huh.NewOption(l, l))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Components to install").
				Options(catOpts...).
				Value(&selected),
			huh.NewMultiSelect[string]().
				Title("Language rule sets").
				Options(langOpts...).
				Value(&languages),
		),
	)
	if err := form.Run(); err != nil {
		return nil, nil, err
	}

	categories, _ := assets.ParseCategories(selected)
	if len(selected) == 0 {
		categories = nil
	}
	return categories, languages, nil
}

// printSummary renders the per-category outcome card.
func printSummary(out io.Writer, summary *migrate.Summary, dryRun bool) {
	pairs := make([]kvPair, 0, len(summary.Results))
	var warnings []string
	var failures []string

	for _, res := range summary.Results {
		if res.Err != nil {
			pairs = append(pairs, kvPair{string(res.Category), symError() + " " + res.Err.Error()})
			failures = append(failures, string(res.Category))
			continue
		}

		rep := res.Report
		value := fmt.Sprintf("%s %d copied, %d filled, %d skipped",
			symSuccess(), rep.Copied, rep.FilledFromFallback, rep.SkippedExisting)
		if res.Scripts > 0 {
			value += fmt.Sprintf(", %d filters", res.Scripts)
		}
		pairs = append(pairs, kvPair{string(res.Category), value})
		warnings = append(warnings, rep.Warnings...)
	}

	title := "Assets installed"
	if dryRun {
		title = "Dry run summary"
	}
	if len(failures) > 0 {
		title = "Install finished with errors: " + strings.Join(failures, ", ")
	}

	details := []string{renderKeyValueLines(pairs)}
	for _, w := range warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderCard(title, details...))

	if dryRun {
		for _, res := range summary.Results {
			if res.Diff != "" {
				_, _ = fmt.Fprintf(out, "\n%s\n%s", cliMuted.Render(string(res.Category)+" changes:"), res.Diff)
			}
		}
	}
}
