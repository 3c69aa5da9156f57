package driven

import (
	"context"
	"io"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

// ReleaseSource lists and downloads upstream releases. The production
// adapter talks to the GitHub Releases API.
type ReleaseSource interface {
	// LatestRelease returns the newest non-draft, non-prerelease
	// release of owner/repo, or domain.ErrNoRelease.
	LatestRelease(ctx context.Context, owner, repo string) (*domain.Release, error)

	// DownloadAsset streams the asset's content into w.
	DownloadAsset(ctx context.Context, asset domain.ReleaseAsset, w io.Writer) error
}
