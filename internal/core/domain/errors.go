package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrCommandFailed indicates an external command exited non-zero.
	// Every step wraps its subprocess failures in this error.
	ErrCommandFailed = errors.New("external command failed")

	// ErrAborted indicates the user declined a confirmation prompt.
	// Treated like a failure for exit-status purposes, even though
	// nothing actually went wrong.
	ErrAborted = errors.New("aborted by user")

	// ErrInvalidInput indicates malformed or invalid configuration.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required service was not wired up.
	ErrNotConfigured = errors.New("service not configured")

	// ErrNoRelease indicates no suitable upstream release was found.
	ErrNoRelease = errors.New("no suitable release found")

	// ErrNoAsset indicates a release carries no downloadable tarball.
	ErrNoAsset = errors.New("release has no tarball asset")
)
