package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Built-in defaults, overridable via the config file and flags.
const (
	// DefaultRemote is the rsync location of the master repository.
	DefaultRemote = "packages@packages.matrix.org:/home/packages"

	// DefaultDBDir is the local copy of the reprepro database tree.
	DefaultDBDir = "./debian-security"

	// DefaultRepoDir is the local mirror of the published repository.
	DefaultRepoDir = "./packages.matrix.org"
)

// Config is one invocation's configuration. It is resolved once at
// startup (flags over config file over defaults) and never mutated.
type Config struct {
	// Remote is the rsync location (host:path) of the master copy.
	Remote string

	// DBDir is the local reprepro database root. It contains the
	// db/ internals and the incoming/ staging directory.
	DBDir string

	// RepoDir is the local repository mirror root. It contains the
	// debian/ subtree with pool/ and dists/.
	RepoDir string

	// Verbosity counts repeated -v flags. Zero suppresses command
	// echoing; one or more prints every command line before it runs.
	Verbosity int
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("%w: remote location must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(c.DBDir) == "" {
		return fmt.Errorf("%w: database directory must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(c.RepoDir) == "" {
		return fmt.Errorf("%w: repository directory must not be empty", ErrInvalidInput)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("%w: verbosity must not be negative", ErrInvalidInput)
	}
	return nil
}

// Verbose reports whether command echoing is enabled.
func (c Config) Verbose() bool { return c.Verbosity >= 1 }

// DatabaseDir is the reprepro db/ internals under the database root.
func (c Config) DatabaseDir() string { return filepath.Join(c.DBDir, "db") }

// IncomingDir is the staging directory for uploaded packages.
func (c Config) IncomingDir() string { return filepath.Join(c.DBDir, "incoming") }

// DistsDir is the published distribution metadata tree.
func (c Config) DistsDir() string { return filepath.Join(c.RepoDir, "debian", "dists") }

// PoolDir is the published package pool.
func (c Config) PoolDir() string { return filepath.Join(c.RepoDir, "debian", "pool") }

// DebianDir is the full published debian/ subtree.
func (c Config) DebianDir() string { return filepath.Join(c.RepoDir, "debian") }

// ManifestPath is the distribution manifest consumed by the keyring import.
func (c Config) ManifestPath() string { return filepath.Join(c.DBDir, "conf", "distributions.yaml") }

// Remote locations. rsync semantics: a trailing slash on the source
// transfers the directory's contents rather than the directory itself.

// RemoteDatabase is the master reprepro db/ internals.
func (c Config) RemoteDatabase() string { return c.Remote + "/debian/db/" }

// RemoteDists is the master copy of the published dists/ metadata.
func (c Config) RemoteDists() string { return c.Remote + "/repo/debian/dists/" }

// RemoteDebian is the upload destination for the published debian/ subtree.
func (c Config) RemoteDebian() string { return c.Remote + "/repo/" }

// RemotePool is the upload destination for the package pool.
func (c Config) RemotePool() string { return c.Remote + "/repo/debian/" }

// RemoteDB is the upload destination for the database tree.
func (c Config) RemoteDB() string { return c.Remote + "/debian/" }

// RemoteRoot is the whole remote tree, used by the mirror helper.
func (c Config) RemoteRoot() string { return c.Remote + "/" }

// StagingExclude is the rsync exclude pattern that keeps the staging
// directory's contents out of the database upload.
func (c Config) StagingExclude() string { return path.Join("incoming", "*") }
