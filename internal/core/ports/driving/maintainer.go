package driving

import "context"

// Maintainer exposes the repository maintenance steps. Each step is
// independently invocable; RunAll performs all three in the fixed
// order sync, process incoming, publish.
type Maintainer interface {
	// SyncDatabase mirrors the master reprepro database internals and
	// the published dists/ metadata into the local working copies.
	// With dryRun set, planned changes are reported but nothing is
	// written.
	SyncDatabase(ctx context.Context, dryRun bool) error

	// ProcessIncoming merges newly staged packages into the local
	// repository and index database.
	ProcessIncoming(ctx context.Context) error

	// Publish previews the repository and database uploads, asks for
	// confirmation, then uploads pool, repository tree and database in
	// that order. Declining the prompt aborts with domain.ErrAborted.
	Publish(ctx context.Context) error

	// RunAll runs sync, process incoming and publish in order,
	// stopping at the first failure.
	RunAll(ctx context.Context) error

	// Mirror pulls the entire remote tree into dest.
	Mirror(ctx context.Context, dest string) error
}
