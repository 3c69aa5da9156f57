package cli

import (
	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"sync-local-database"},
	Short:   "Mirror the master database into the local working copy",
	Long: `Pulls the master reprepro database internals and the published
distribution metadata into the local working copies using
checksum-based transfers.

The metadata pull matters: processincoming only rewrites the metadata
files it touches, so untouched distributions would otherwise go stale
locally.

With --dry-run the planned changes are listed and nothing is written.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "report planned changes without writing")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	if syncDryRun {
		cmd.Println("Previewing local database sync...")
	} else {
		cmd.Println("Syncing local database...")
	}

	if err := maintainer.SyncDatabase(cmd.Context(), syncDryRun); err != nil {
		return err
	}

	cmd.Println("Local database is in sync.")
	return nil
}
