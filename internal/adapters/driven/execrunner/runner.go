// Package execrunner runs external commands for the maintenance steps.
// Commands inherit the process's standard streams so rsync and
// reprepro report transferred files directly to the operator.
package execrunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// Ensure Runner implements the interface.
var _ driven.Runner = (*Runner)(nil)

// Runner executes commands as child processes. When verbose, the
// fully-assembled command line is echoed before execution.
type Runner struct {
	verbose bool

	// echo receives the command-line echo. Defaults to os.Stdout.
	echo io.Writer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a runner. verbose enables command echoing.
func New(verbose bool) *Runner {
	return &Runner{
		verbose: verbose,
		echo:    os.Stdout,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// SetEcho redirects the command echo. Useful for testing.
func (r *Runner) SetEcho(w io.Writer) { r.echo = w }

// Run executes name with args, blocking until it exits. A non-zero
// exit status is mapped to domain.ErrCommandFailed; no retries are
// attempted.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	if r.verbose {
		fmt.Fprintf(r.echo, "+ %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with status %d",
				domain.ErrCommandFailed, name, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrCommandFailed, name, err)
	}

	return nil
}
