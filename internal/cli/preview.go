package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render a markdown asset in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %q: %w", args[0], err)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(string(data))
	if err != nil {
		return fmt.Errorf("render %q: %w", args[0], err)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
