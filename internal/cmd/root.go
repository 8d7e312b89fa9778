package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for curator
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Scan a directory tree and organize files into category folders",
		Long: `Curator scans a directory tree, assigns each file a category, and moves
selected files into category subfolders without data loss.

Categories are resolved from your custom rules first, then a remote
categorization oracle (when configured), then a built-in fallback table.
Files of identical size are flagged as probable duplicates.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewOrganizeCommand())
	cmd.AddCommand(NewRulesCommand())

	return cmd
}
