// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Runner: spawns external commands (rsync, reprepro)
//   - Transferrer: checksum-based directory transfers
//   - Indexer: repository-index operations (reprepro)
//   - Prompter: blocking user confirmation
//   - ReleaseSource: upstream release discovery and download
//   - DebBuilder: native Debian package assembly (archive keyring)
//   - DistributionStore: the distribution manifest
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
