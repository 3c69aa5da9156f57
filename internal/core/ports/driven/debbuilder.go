package driven

import "context"

// DebBuilder assembles Debian binary packages without external tools.
// Its only production use is the archive-keyring package.
type DebBuilder interface {
	// BuildKeyringPackage exports the public part of the armored key
	// and wraps it in a keyring .deb written under outDir. It returns
	// the path of the built package.
	BuildKeyringPackage(ctx context.Context, armoredKey, version, outDir string) (string, error)
}
