package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/filekit/internal/config"
	"github.com/harrison/filekit/internal/fileutil"
	"github.com/harrison/filekit/internal/materialize"
	"github.com/harrison/filekit/internal/packer"
	"github.com/harrison/filekit/internal/units"
)

// ErrNoFiles is returned when the given paths hold no files at all
var ErrNoFiles = errors.New("no files found")

// NewFitCommand creates and returns the fit command
func NewFitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit -s size [-l destdir] [-n] [-r] path [path ...]",
		Short: "Split files into groups that fit on fixed-size disks",
		Long: `Collect the files under the given paths and pack them onto as few
disks of the given size as first-fit decreasing manages.

By default the packing is printed as a report, one block per disk.
With -n only the number of disks is printed. With -l every file is
hard-linked into destdir/0001, destdir/0002, ... so each directory
can be burned as is.

Sizes take an optional unit: b, k, m, g or t (powers of 1000).`,
		RunE:          runFit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("size", "s", "", "Disk size, e.g. 700m or 4.7g (default: fit.disk_size from config)")
	cmd.Flags().StringP("link", "l", "", "Hard-link each disk's files under destdir/NNNN")
	cmd.Flags().BoolP("count", "n", false, "Only print how many disks are needed")
	cmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories, following symlinked ones")
	cmd.Flags().String("format", "", "Report format: text or yaml (default: fit.format from config)")
	addCommonFlags(cmd)

	return cmd
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(nil, stringFlag(cmd, "size"), stringFlag(cmd, "format"), nil, nil)

	if err := cfg.Validate(); err != nil {
		return usageError(cmd, err)
	}
	if cfg.Fit.DiskSize == "" {
		return usageError(cmd, errors.New("a disk size is required (-s)"))
	}
	if len(args) == 0 {
		return usageError(cmd, errors.New("at least one path is required"))
	}

	linkRoot, _ := cmd.Flags().GetString("link")
	if cmd.Flags().Changed("link") && linkRoot == "" {
		return usageError(cmd, errors.New("-l needs a destination directory"))
	}

	capacity, err := units.ParseSize(cfg.Fit.DiskSize)
	if err != nil {
		return usageError(cmd, err)
	}

	log := newLogger(cmd, cfg)
	recursive, _ := cmd.Flags().GetBool("recursive")

	files, err := fileutil.Catalog(args, fileutil.CatalogOptions{
		Recursive: recursive,
		Capacity:  capacity,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoFiles
	}
	log.LogDebug(fmt.Sprintf("Catalogued %s for disks of %s", plural(len(files), "file"), units.FormatSize(capacity)))

	start := time.Now()
	disks := packer.Pack(files, capacity)
	log.LogPackSummary(packer.Summary(disks), time.Since(start))

	if err := materialize.CheckDiskCount(len(disks)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	count, _ := cmd.Flags().GetBool("count")
	switch {
	case count:
		return materialize.Count(out, disks)
	case linkRoot != "":
		return materialize.Link(out, disks, linkRoot)
	case cfg.Fit.Format == config.FormatYAML:
		return materialize.ReportYAML(out, disks)
	default:
		return materialize.Report(out, disks)
	}
}
