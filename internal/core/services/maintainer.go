package services

import (
	"context"
	"fmt"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driving"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

// Ensure Maintainer implements the interface.
var _ driving.Maintainer = (*Maintainer)(nil)

// Maintainer sequences the three repository maintenance steps. It
// holds no state beyond its configuration; all durable state lives in
// the filesystem trees owned by rsync and reprepro.
type Maintainer struct {
	cfg         domain.Config
	transferrer driven.Transferrer
	indexer     driven.Indexer
	prompter    driven.Prompter
}

// NewMaintainer creates a maintainer over the given infrastructure.
func NewMaintainer(
	cfg domain.Config,
	transferrer driven.Transferrer,
	indexer driven.Indexer,
	prompter driven.Prompter,
) *Maintainer {
	return &Maintainer{
		cfg:         cfg,
		transferrer: transferrer,
		indexer:     indexer,
		prompter:    prompter,
	}
}

// SyncDatabase mirrors the master database internals and the published
// dists/ metadata. The dists/ pull is needed because processincoming
// only rewrites the metadata files it touches, so stale metadata for
// untouched distributions must be refreshed from the authoritative copy.
func (m *Maintainer) SyncDatabase(ctx context.Context, dryRun bool) error {
	logger.Section("Syncing local database")

	pulls := []domain.Transfer{
		{
			Label:     "index database",
			Source:    m.cfg.RemoteDatabase(),
			Dest:      m.cfg.DatabaseDir(),
			Direction: domain.Pull,
			DryRun:    dryRun,
		},
		{
			Label:     "distribution metadata",
			Source:    m.cfg.RemoteDists(),
			Dest:      m.cfg.DistsDir(),
			Direction: domain.Pull,
			DryRun:    dryRun,
		},
	}

	for _, t := range pulls {
		if err := m.transferrer.Transfer(ctx, t); err != nil {
			return fmt.Errorf("sync %s: %w", t.Label, err)
		}
	}

	return nil
}

// ProcessIncoming merges staged packages into the local repository.
func (m *Maintainer) ProcessIncoming(ctx context.Context) error {
	logger.Section("Processing incoming")

	if err := m.indexer.ProcessIncoming(ctx); err != nil {
		return fmt.Errorf("process incoming: %w", err)
	}

	return nil
}

// publishTransfers builds the three upload argument sets. The pool set
// is a subset of the repository set; it goes first so that package
// files are present remotely before the metadata referencing them, and
// the database goes last so a crash mid-publish cannot leave the
// database claiming files that are not yet published.
func (m *Maintainer) publishTransfers() (pool, repo, db domain.Transfer) {
	pool = domain.Transfer{
		Label:     "pool",
		Source:    m.cfg.PoolDir(),
		Dest:      m.cfg.RemotePool(),
		Direction: domain.Push,
	}
	repo = domain.Transfer{
		Label:     "repository",
		Source:    m.cfg.DebianDir(),
		Dest:      m.cfg.RemoteDebian(),
		Direction: domain.Push,
	}
	db = domain.Transfer{
		Label:     "database",
		Source:    m.cfg.DBDir + "/",
		Dest:      m.cfg.RemoteDB(),
		Direction: domain.Push,
		Excludes:  []string{m.cfg.StagingExclude()},
	}
	return pool, repo, db
}

// Publish previews the planned uploads, asks for confirmation and, on
// an explicit yes, uploads pool, repository tree and database in that
// order.
func (m *Maintainer) Publish(ctx context.Context) error {
	logger.Section("Publishing repository")

	pool, repo, db := m.publishTransfers()

	// The pool set is not previewed separately: its changes are a
	// subset of the repository set's.
	for _, t := range []domain.Transfer{repo, db} {
		preview := t
		preview.DryRun = true
		if err := m.transferrer.Transfer(ctx, preview); err != nil {
			return fmt.Errorf("preview %s upload: %w", t.Label, err)
		}
	}

	ok, err := m.prompter.Confirm("Do you want to continue? [y/N] ")
	if err != nil {
		return fmt.Errorf("confirm publish: %w", err)
	}
	if !ok {
		return domain.ErrAborted
	}

	for _, t := range []domain.Transfer{pool, repo, db} {
		if err := m.transferrer.Transfer(ctx, t); err != nil {
			return fmt.Errorf("upload %s: %w", t.Label, err)
		}
	}

	return nil
}

// RunAll performs the full maintenance cycle, aborting at the first
// failing step.
func (m *Maintainer) RunAll(ctx context.Context) error {
	if err := m.SyncDatabase(ctx, false); err != nil {
		return err
	}
	if err := m.ProcessIncoming(ctx); err != nil {
		return err
	}
	return m.Publish(ctx)
}

// Mirror pulls the entire remote tree into dest.
func (m *Maintainer) Mirror(ctx context.Context, dest string) error {
	logger.Section("Mirroring remote tree")

	t := domain.Transfer{
		Label:     "mirror",
		Source:    m.cfg.RemoteRoot(),
		Dest:      dest,
		Direction: domain.Pull,
	}
	if err := m.transferrer.Transfer(ctx, t); err != nil {
		return fmt.Errorf("mirror remote tree: %w", err)
	}

	return nil
}
