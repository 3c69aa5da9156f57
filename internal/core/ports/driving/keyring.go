package driving

import "context"

// KeyringPublisher builds the archive-keyring package and imports it
// into every known distribution, in both the main and prerelease
// components.
type KeyringPublisher interface {
	PublishKeyring(ctx context.Context) error
}
