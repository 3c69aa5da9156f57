// Package rsync turns domain transfers into rsync invocations.
//
// All transfers are checksum-based and recursive, so repeated runs are
// idempotent and unaffected by timestamp drift between hosts. Pushes
// additionally force the group and tree modes expected by the web
// server on the publication host.
package rsync

import (
	"context"
	"fmt"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

// Group owning the published tree on the remote host.
const remoteGroup = "packages"

// Ensure Transferrer implements the interface.
var _ driven.Transferrer = (*Transferrer)(nil)

// Transferrer shells out to rsync through a Runner.
type Transferrer struct {
	runner driven.Runner
}

// New creates an rsync-backed transferrer.
func New(runner driven.Runner) *Transferrer {
	return &Transferrer{runner: runner}
}

// Args builds the full rsync argument list for a transfer. Exposed so
// command construction is testable without spawning processes.
func Args(t domain.Transfer) []string {
	// -c  checksum-based comparison
	// -r  recursive
	// -v  report file names as they transfer
	// -z  compress in transit
	args := []string{"-c", "-r", "-v", "-z"}

	if t.Direction == domain.Push {
		// Preserve permissions and group, force the remote group and
		// the fixed tree modes.
		args = append(args,
			"-p",
			"-g",
			"--chown=:"+remoteGroup,
			"--chmod=D0775,F0664",
		)
	}

	if t.DryRun {
		args = append(args, "-n")
	}

	for _, pattern := range t.Excludes {
		args = append(args, "--exclude="+pattern)
	}

	return append(args, t.Source, t.Dest)
}

// Transfer runs one rsync invocation, blocking until it completes.
func (x *Transferrer) Transfer(ctx context.Context, t domain.Transfer) error {
	logger.Debug("transfer %s: %s -> %s (dry-run=%v)", t.Label, t.Source, t.Dest, t.DryRun)

	if err := x.runner.Run(ctx, "rsync", Args(t)...); err != nil {
		return fmt.Errorf("rsync %s: %w", t.Label, err)
	}

	return nil
}
