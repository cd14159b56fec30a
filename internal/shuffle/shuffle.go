// Package shuffle runs a command once for every file, in random order.
package shuffle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/exec"

	"github.com/harrison/filekit/internal/logger"
)

// Shuffle permutes items in place (Fisher-Yates). All randomness comes from
// rng, so a seeded source gives a reproducible order.
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// NewRand returns a source seeded from the given value, for callers that
// want a different order on every run (pass the current time) or a fixed one.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Executor starts a program and waits for it to exit
type Executor interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecExecutor runs programs with os/exec, wired to the given streams
type ExecExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecExecutor returns an executor attached to the process's own streams
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Executor
func (e *ExecExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// Progress is told about every file before its command starts
type Progress interface {
	Step(filename string)
}

// Runner runs Command for each file with the file name as last argument.
// Files are handled strictly one after the other.
type Runner struct {
	// Command is the program and its leading arguments (required)
	Command []string

	// Exec starts the command. Defaults to an ExecExecutor on the
	// process's own streams.
	Exec Executor

	// Logger receives warnings about failed commands (optional)
	Logger logger.Logger
}

// Run runs the command for every file, telling progress (which may be nil)
// before each one, and returns how many commands
// completed successfully. A command that exits non-zero is logged and the
// run moves on; a command that cannot be started at all stops the run, as
// does cancelling ctx.
func (r *Runner) Run(ctx context.Context, files []string, progress Progress) (int, error) {
	if len(r.Command) == 0 {
		return 0, errors.New("no command to run")
	}

	exe := r.Exec
	if exe == nil {
		exe = NewExecExecutor()
	}
	log := r.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	succeeded := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return succeeded, err
		}
		if progress != nil {
			progress.Step(file)
		}

		args := append(append([]string{}, r.Command[1:]...), file)
		err := exe.Run(ctx, r.Command[0], args...)
		if err == nil {
			succeeded++
			continue
		}
		if ctx.Err() != nil {
			return succeeded, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.LogWarn(fmt.Sprintf("%s %q exited with status %d", r.Command[0], file, exitErr.ExitCode()))
			continue
		}
		return succeeded, fmt.Errorf("can't execute %s: %w", r.Command[0], err)
	}
	return succeeded, nil
}
