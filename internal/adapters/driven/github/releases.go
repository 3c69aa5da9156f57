package github

import (
	"context"
	"fmt"
	"io"
	"net/http"

	gh "github.com/google/go-github/v80/github"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ReleaseSource = (*Client)(nil)

// releasePageSize bounds the listing; anything newer than the first
// page is newer than any release we would pick anyway.
const releasePageSize = 30

// LatestRelease returns the newest non-draft, non-prerelease release.
// GetLatestRelease would do the same, but listing lets callers see a
// useful error when the repository only carries prereleases.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*domain.Release, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	releases, resp, err := c.gh.Repositories.ListReleases(ctx, owner, repo,
		&gh.ListOptions{PerPage: releasePageSize})
	if resp != nil {
		c.rateLimiter.UpdateFromResponse(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("list releases for %s/%s: %w", owner, repo, err)
	}

	// Releases are returned newest first.
	for _, rel := range releases {
		if rel.GetDraft() || rel.GetPrerelease() {
			continue
		}
		return toDomain(rel), nil
	}

	return nil, fmt.Errorf("%w: %s/%s", domain.ErrNoRelease, owner, repo)
}

// DownloadAsset streams an asset's content into w via its public
// download URL.
func (c *Client) DownloadAsset(ctx context.Context, asset domain.ReleaseAsset, w io.Writer) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", asset.Name, resp.Status)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", asset.Name, err)
	}

	return nil
}

func toDomain(rel *gh.RepositoryRelease) *domain.Release {
	out := &domain.Release{
		TagName:    rel.GetTagName(),
		Draft:      rel.GetDraft(),
		Prerelease: rel.GetPrerelease(),
	}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, domain.ReleaseAsset{
			Name: a.GetName(),
			URL:  a.GetBrowserDownloadURL(),
			Size: int64(a.GetSize()),
		})
	}
	return out
}
