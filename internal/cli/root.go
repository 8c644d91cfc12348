// Package cli wires the ecc command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuezheng2006/everything-claude-code/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "ecc",
	Short: "Install everything-claude-code assets into a Claude Code configuration",
	Long: `ecc merges the everything-claude-code asset collection (agents, commands,
skills, rules, plugins, contexts, hooks and MCP server configs) into a
Claude Code configuration directory.

Existing files are never overwritten: tree assets merge file by file, hooks
and MCP servers merge entry by entry with deduplication, so re-running ecc
against an installed configuration is always safe.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ecc %s\n", version.GetVersion()))
}
