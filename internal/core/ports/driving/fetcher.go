package driving

import "context"

// ReleaseFetcher stages upstream release artifacts for import.
type ReleaseFetcher interface {
	// FetchLatest downloads the newest release tarball of owner/repo,
	// extracts its package files into the staging directory and
	// returns the number of files staged.
	FetchLatest(ctx context.Context, owner, repo string) (int, error)
}
