package cli

import (
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Sync, process incoming and publish in order",
	Long: `Runs the full maintenance cycle: sync the local database copy,
process incoming uploads, then publish the repository. This is also
what running pkgrepo without a subcommand does.

The cycle stops at the first failing step.`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}
