package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [owner/repo]",
	Short: "Stage the latest release tarball for import",
	Long: `Queries the GitHub Releases API for the newest release of the given
repository, downloads its tarball asset and extracts the package files
into the staging directory, ready for the next incoming run.

The repository can also be set once in the config file:

  [fetch]
  repo = "matrix-org/synapse"

Set GITHUB_TOKEN to raise the API rate limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if releaseFetcher == nil {
		return domain.ErrNotConfigured
	}

	slug := ""
	if len(args) > 0 {
		slug = args[0]
	} else if configStore != nil {
		slug = configStore.GetString("fetch.repo")
	}
	if slug == "" {
		return fmt.Errorf("%w: no repository given and fetch.repo not configured", domain.ErrInvalidInput)
	}

	owner, repo, err := splitSlug(slug)
	if err != nil {
		return err
	}

	cmd.Printf("Fetching latest release of %s/%s...\n", owner, repo)

	count, err := releaseFetcher.FetchLatest(cmd.Context(), owner, repo)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Staged %d file(s) for import.\n", count)
	return nil
}

// splitSlug parses "owner/repo".
func splitSlug(slug string) (owner, repo string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected owner/repo, got %q", domain.ErrInvalidInput, slug)
	}
	return parts[0], parts[1], nil
}
