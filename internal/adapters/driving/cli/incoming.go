package cli

import (
	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

var incomingCmd = &cobra.Command{
	Use:     "incoming",
	Aliases: []string{"process-incoming"},
	Short:   "Import packages waiting in the staging directory",
	Long: `Runs reprepro's processincoming against the staging directory.
New packages are validated, indexed and moved into the local pool;
what happens to rejected files is up to reprepro's own policy.`,
	RunE: runIncoming,
}

func init() {
	rootCmd.AddCommand(incomingCmd)
}

func runIncoming(cmd *cobra.Command, _ []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	cmd.Println("Processing incoming uploads...")
	if err := maintainer.ProcessIncoming(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Incoming uploads processed.")
	return nil
}
