package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/filekit/internal/display"
	"github.com/harrison/filekit/internal/fileutil"
	"github.com/harrison/filekit/internal/shuffle"
)

// NewShuffleCommand creates and returns the shuffle command
func NewShuffleCommand() *cobra.Command {
	return newShuffleCommand(nil, nil)
}

// newShuffleCommand builds the command around exe and rng. A nil exe runs
// real processes on the command's streams; a nil rng is seeded from the clock.
func newShuffleCommand(exe shuffle.Executor, rng *rand.Rand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shuffle [-p path] (-e ext | -m media-type) [-v] command [args ...]",
		Short: "Run a command on matching files in random order",
		Long: `Search path (the working directory by default) for files whose name
ends with ext, or whose content sniffs as media-type (a prefix such as
"audio/" or "video/mp4"), then run command once per file in random
order with the file name appended. When both are given the extension
is used.

Flags must come before the command; everything from the command on is
passed through untouched:

  shuffle -p ~/music -e .mp3 mpv --no-video`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShuffle(cmd, args, exe, rng)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("path", "p", "", "Starting directory (default: working directory)")
	cmd.Flags().StringP("extension", "e", "", "Match files whose name ends with this")
	cmd.Flags().StringP("media-type", "m", "", "Match files whose media type starts with this")
	cmd.Flags().BoolP("verbose", "v", false, "Show what is being played")
	addCommonFlags(cmd)
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runShuffle(cmd *cobra.Command, args []string, exe shuffle.Executor, rng *rand.Rand) error {
	// Ctrl-C stops the run before the next file; the player gets it too
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(nil, nil, nil, nil, boolFlag(cmd, "verbose"))
	if err := cfg.Validate(); err != nil {
		return usageError(cmd, err)
	}

	ext, _ := cmd.Flags().GetString("extension")
	mediaType, _ := cmd.Flags().GetString("media-type")
	if ext == "" && mediaType == "" {
		return usageError(cmd, errors.New("an extension (-e) or a media type (-m) is required"))
	}
	if len(args) == 0 {
		return usageError(cmd, errors.New("a command to run is required"))
	}

	start := "."
	if p, _ := cmd.Flags().GetString("path"); p != "" {
		start, err = resolvePath(p)
		if err != nil {
			return fmt.Errorf("can't resolve starting path '%s': %w", p, err)
		}
	}

	log := newLogger(cmd, cfg)
	out := cmd.OutOrStdout()
	progress := display.NewProgressIndicator(out)
	if cfg.Shuffle.Verbose {
		progress.Start()
	}

	result, err := fileutil.ScanDirectory(start, fileutil.ScanOptions{
		Suffix:    ext,
		MediaType: mediaType,
		Recursive: true,
	})
	if err != nil {
		return err
	}
	if w, ok := display.WarnSkippedPaths(result.Errors); ok {
		w.Display(cmd.ErrOrStderr())
	}

	if cfg.Shuffle.Verbose {
		progress.Found(len(result.Files))
	}
	if len(result.Files) == 0 {
		return ErrNoFiles
	}

	if rng == nil {
		rng = shuffle.NewRand(uint64(time.Now().UnixNano()))
	}
	shuffle.Shuffle(result.Files, rng)

	if exe == nil {
		exe = &shuffle.ExecExecutor{
			Stdin:  cmd.InOrStdin(),
			Stdout: out,
			Stderr: cmd.ErrOrStderr(),
		}
	}
	runner := &shuffle.Runner{Command: args, Exec: exe, Logger: log}

	var step shuffle.Progress
	if cfg.Shuffle.Verbose {
		step = progress
	}
	played, err := runner.Run(ctx, result.Files, step)
	log.LogDebug(fmt.Sprintf("Played %d of %d files", played, len(result.Files)))
	return err
}

func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
