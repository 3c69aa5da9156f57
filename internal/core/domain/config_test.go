package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		Remote:  "host:/remote",
		DBDir:   "/tmp/db",
		RepoDir: "/tmp/repo",
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	assert.NoError(t, testConfig().Validate())
}

func TestConfig_Validate_EmptyRemote(t *testing.T) {
	cfg := testConfig()
	cfg.Remote = "  "

	err := cfg.Validate()

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfig_Validate_EmptyDBDir(t *testing.T) {
	cfg := testConfig()
	cfg.DBDir = ""

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestConfig_Validate_EmptyRepoDir(t *testing.T) {
	cfg := testConfig()
	cfg.RepoDir = ""

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestConfig_Validate_NegativeVerbosity(t *testing.T) {
	cfg := testConfig()
	cfg.Verbosity = -1

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestConfig_LocalPaths(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, filepath.Join("/tmp/db", "db"), cfg.DatabaseDir())
	assert.Equal(t, filepath.Join("/tmp/db", "incoming"), cfg.IncomingDir())
	assert.Equal(t, filepath.Join("/tmp/repo", "debian", "dists"), cfg.DistsDir())
	assert.Equal(t, filepath.Join("/tmp/repo", "debian", "pool"), cfg.PoolDir())
	assert.Equal(t, filepath.Join("/tmp/repo", "debian"), cfg.DebianDir())
}

func TestConfig_RemotePaths(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, "host:/remote/debian/db/", cfg.RemoteDatabase())
	assert.Equal(t, "host:/remote/repo/debian/dists/", cfg.RemoteDists())
	assert.Equal(t, "host:/remote/repo/", cfg.RemoteDebian())
	assert.Equal(t, "host:/remote/repo/debian/", cfg.RemotePool())
	assert.Equal(t, "host:/remote/debian/", cfg.RemoteDB())
}

func TestConfig_Verbose(t *testing.T) {
	cfg := testConfig()
	assert.False(t, cfg.Verbose())

	cfg.Verbosity = 1
	assert.True(t, cfg.Verbose())

	cfg.Verbosity = 3
	assert.True(t, cfg.Verbose())
}
