package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/filekit/internal/config"
	"github.com/harrison/filekit/internal/datemove"
)

// NewMvdCommand creates and returns the mvd command
func NewMvdCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mvd [-f fmt] [-v] [dir]",
		Short: "Move every file of a directory into date directories",
		Long: `Move each file of dir (the working directory by default) into a
subdirectory named after its modification time, formatted with the
strftime pattern fmt (%Y%m by default, e.g. 202410).

Symlinks are dated by their target. Subdirectories are left alone.
The first failure stops the run.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError(cmd, fmt.Errorf("expected at most one directory, got %d", len(args)))
			}
			return nil
		},
		RunE:          runMvd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addDateFlags(cmd)
	return cmd
}

// NewMvtodateCommand creates and returns the mvtodate command
func NewMvtodateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mvtodate [-f fmt] [-v] file [file ...]",
		Short: "Move the given files into date directories",
		Long: `Move each file into a directory of the working directory named
after its modification time, formatted with the strftime pattern fmt
(%Y%m by default).

Only regular files are moved; symlinks are refused. The first failure
stops the run.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(cmd, errors.New("at least one file is required"))
			}
			return nil
		},
		RunE:          runMvtodate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addDateFlags(cmd)
	return cmd
}

func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "strftime format for directory names (default: dates.format from config)")
	cmd.Flags().BoolP("verbose", "v", false, "Print each move as 'src -> dst'")
	addCommonFlags(cmd)
}

// dateConfig loads the config and applies -f
func dateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.MergeWithFlags(nil, nil, nil, stringFlag(cmd, "format"), nil)
	if err := cfg.Validate(); err != nil {
		return nil, usageError(cmd, err)
	}
	return cfg, nil
}

func runMvd(cmd *cobra.Command, args []string) error {
	cfg, err := dateConfig(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	mover := datemove.Mover{
		Format:         cfg.Dates.Format,
		FollowSymlinks: true,
		Dir:            dir,
	}
	moves, err := mover.MoveAll(dir)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		printMoves(cmd.OutOrStdout(), moves)
	}
	newLogger(cmd, cfg).LogDebug(fmt.Sprintf("Moved %s out of %s", plural(len(moves), "file"), dir))
	return err
}

func runMvtodate(cmd *cobra.Command, args []string) error {
	cfg, err := dateConfig(cmd)
	if err != nil {
		return err
	}

	mover := datemove.Mover{Format: cfg.Dates.Format}
	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	for _, src := range args {
		dst, err := mover.Move(src)
		if err != nil {
			return err
		}
		if verbose {
			printMoves(out, []datemove.Move{{Source: src, Destination: dst}})
		}
	}
	return nil
}

func printMoves(w io.Writer, moves []datemove.Move) {
	for _, m := range moves {
		fmt.Fprintf(w, "%s -> %s\n", m.Source, m.Destination)
	}
}
