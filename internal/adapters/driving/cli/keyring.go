package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/adapters/driven/config/file"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/debpkg"
	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/services"
)

var (
	keyringKeyPath string
	keyringVersion string
)

var keyringCmd = &cobra.Command{
	Use:   "keyring",
	Short: "Build and import the archive-keyring package",
	Long: `Builds the matrix-org-archive-keyring package from the archive's
public signing key and imports it into every distribution listed in
the manifest, in both the main and prerelease components.

Run publish afterwards to make the new keyring visible.`,
	RunE: runKeyring,
}

func init() {
	keyringCmd.Flags().StringVar(&keyringKeyPath, "key", "", "armored archive key (default <db-dir>/conf/archive-key.asc)")
	keyringCmd.Flags().StringVar(&keyringVersion, "package-version", "", "keyring package version (default from config, else 1)")
	rootCmd.AddCommand(keyringCmd)
}

func runKeyring(cmd *cobra.Command, _ []string) error {
	svc := keyringPublisher
	if svc == nil {
		if indexer == nil {
			return domain.ErrNotConfigured
		}

		keyPath := keyringKeyPath
		if keyPath == "" && configStore != nil {
			keyPath = configStore.GetString("keyring.key")
		}
		if keyPath == "" {
			keyPath = filepath.Join(cfg.DBDir, "conf", "archive-key.asc")
		}

		pkgVersion := keyringVersion
		if pkgVersion == "" && configStore != nil {
			pkgVersion = configStore.GetString("keyring.version")
		}
		if pkgVersion == "" {
			pkgVersion = "1"
		}

		svc = services.NewKeyring(
			cfg,
			debpkg.NewBuilder(),
			indexer,
			file.NewManifestStore(cfg.ManifestPath()),
			keyPath,
			pkgVersion,
		)
	}

	cmd.Println("Building and importing archive keyring...")
	if err := svc.PublishKeyring(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Archive keyring imported into all distributions.")
	return nil
}
