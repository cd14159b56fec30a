package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the umbrella filekit command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filekit",
		Short: "Small tools for sorting and archiving piles of files",
		Long: `filekit bundles four file tools:

  fit       split files into groups that fit on fixed-size disks
  mvd       move every file of a directory into date directories
  mvtodate  move the given files into date directories
  shuffle   run a command on matching files in random order

Each tool is also built as its own binary.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewFitCommand())
	cmd.AddCommand(NewMvdCommand())
	cmd.AddCommand(NewMvtodateCommand())
	cmd.AddCommand(NewShuffleCommand())

	return cmd
}
