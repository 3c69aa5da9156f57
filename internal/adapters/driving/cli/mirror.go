package cli

import (
	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror [dest]",
	Short: "Pull the entire remote tree into a local directory",
	Long: `One-shot helper that mirrors the whole remote tree, database and
published repository alike, into a local directory. Useful for taking
a complete snapshot before risky maintenance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	dest := "./mirror"
	if len(args) > 0 {
		dest = args[0]
	}

	cmd.Printf("Mirroring remote tree into %s...\n", dest)
	if err := maintainer.Mirror(cmd.Context(), dest); err != nil {
		return err
	}
	cmd.Println("Mirror complete.")
	return nil
}
