// Package reprepro wraps the reprepro repository-management tool.
// The index database under the database root is reprepro's alone; this
// code never reads or interprets it.
package reprepro

import (
	"context"
	"fmt"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// incomingRuleset is the rule set name reprepro applies to staged
// uploads, matching the conf/incoming stanza.
const incomingRuleset = "incoming"

// Ensure Indexer implements the interface.
var _ driven.Indexer = (*Indexer)(nil)

// Indexer invokes reprepro against the local database root.
type Indexer struct {
	cfg    domain.Config
	runner driven.Runner
}

// New creates a reprepro-backed indexer.
func New(cfg domain.Config, runner driven.Runner) *Indexer {
	return &Indexer{cfg: cfg, runner: runner}
}

// verbosityFlag maps the configuration's verbosity count onto
// reprepro's own levels: the default informational mode at low
// verbosity, the most detailed mode above that.
func verbosityFlag(verbosity int) string {
	if verbosity > 1 {
		return "-VV"
	}
	return "-V"
}

// ProcessIncoming validates, signs and indexes everything waiting in
// the staging directory, moving accepted packages into the pool.
func (i *Indexer) ProcessIncoming(ctx context.Context) error {
	args := []string{
		verbosityFlag(i.cfg.Verbosity),
		"-b", i.cfg.DBDir,
		"processincoming", incomingRuleset,
	}

	if err := i.runner.Run(ctx, "reprepro", args...); err != nil {
		return fmt.Errorf("reprepro processincoming: %w", err)
	}

	return nil
}

// IncludeDeb imports one .deb into a distribution component.
func (i *Indexer) IncludeDeb(ctx context.Context, codename, component, debPath string) error {
	args := []string{
		verbosityFlag(i.cfg.Verbosity),
		"-b", i.cfg.DBDir,
		"-C", component,
		"includedeb", codename, debPath,
	}

	if err := i.runner.Run(ctx, "reprepro", args...); err != nil {
		return fmt.Errorf("reprepro includedeb %s/%s: %w", codename, component, err)
	}

	return nil
}
