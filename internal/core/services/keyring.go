package services

import (
	"context"
	"fmt"
	"os"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driving"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

// Ensure Keyring implements the interface.
var _ driving.KeyringPublisher = (*Keyring)(nil)

// Keyring builds the archive-keyring package and imports it into every
// known distribution so that apt clients can verify the repository
// signature out of the box.
type Keyring struct {
	cfg     domain.Config
	builder driven.DebBuilder
	indexer driven.Indexer
	dists   driven.DistributionStore

	// keyPath is the armored archive signing key; version is the
	// keyring package version to build.
	keyPath string
	version string
}

// NewKeyring creates a keyring publisher.
func NewKeyring(
	cfg domain.Config,
	builder driven.DebBuilder,
	indexer driven.Indexer,
	dists driven.DistributionStore,
	keyPath, version string,
) *Keyring {
	return &Keyring{
		cfg:     cfg,
		builder: builder,
		indexer: indexer,
		dists:   dists,
		keyPath: keyPath,
		version: version,
	}
}

// PublishKeyring builds the keyring .deb once and imports it into
// every distribution, in both the main and prerelease components.
// Distributions that declare an explicit component list only receive
// the components they carry.
func (k *Keyring) PublishKeyring(ctx context.Context) error {
	logger.Section("Publishing archive keyring")

	armored, err := os.ReadFile(k.keyPath)
	if err != nil {
		return fmt.Errorf("read archive key: %w", err)
	}

	outDir, err := os.MkdirTemp("", "pkgrepo-keyring-")
	if err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	debPath, err := k.builder.BuildKeyringPackage(ctx, string(armored), k.version, outDir)
	if err != nil {
		return fmt.Errorf("build keyring package: %w", err)
	}

	dists, err := k.dists.Distributions()
	if err != nil {
		return fmt.Errorf("load distribution manifest: %w", err)
	}

	for _, d := range dists {
		for _, component := range []string{domain.ComponentMain, domain.ComponentPrerelease} {
			if len(d.Components) > 0 && !d.HasComponent(component) {
				logger.Warn("%s does not carry %s, skipping", d.Codename, component)
				continue
			}
			logger.Info("importing keyring into %s/%s", d.Codename, component)
			if err := k.indexer.IncludeDeb(ctx, d.Codename, component, debPath); err != nil {
				return fmt.Errorf("import keyring into %s/%s: %w", d.Codename, component, err)
			}
		}
	}

	return nil
}
