package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

var publishCmd = &cobra.Command{
	Use:     "publish",
	Aliases: []string{"publish-repo"},
	Short:   "Upload the local repository back to the remote host",
	Long: `Previews the repository and database uploads, asks for confirmation,
then uploads in the fixed order pool, repository tree, database.

Pool files go first so the metadata never references packages that are
not yet present remotely; the database goes last so a crash mid-publish
cannot leave it claiming files that were never uploaded. The staging
directory is excluded from the database upload.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	err := maintainer.Publish(cmd.Context())
	if errors.Is(err, domain.ErrAborted) {
		cmd.Println("Publish aborted, nothing uploaded.")
		return err
	}
	if err != nil {
		return err
	}

	cmd.Println("Repository published.")
	return nil
}
