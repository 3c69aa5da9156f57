package driven

import "context"

// Indexer wraps the repository-index tool (reprepro). The index
// database on disk is opaque to this code; it is only ever mutated
// through these operations.
type Indexer interface {
	// ProcessIncoming validates and imports everything waiting in the
	// staging directory. Processed or rejected files are removed from
	// staging per the index tool's own policy.
	ProcessIncoming(ctx context.Context) error

	// IncludeDeb imports a single .deb into one distribution/component.
	IncludeDeb(ctx context.Context, codename, component, debPath string) error
}
