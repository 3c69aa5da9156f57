// Package domain defines the core business entities for pkgrepo.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Config: one invocation's immutable configuration
//   - Transfer: a single rsync-style directory transfer
//   - Distribution: a published release codename and its components
//   - Release: an upstream release with downloadable assets
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
