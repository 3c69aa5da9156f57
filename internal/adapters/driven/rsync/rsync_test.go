package rsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

// recordingRunner captures the argv of every command it is given.
type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return r.err
}

func TestArgs_Pull(t *testing.T) {
	args := Args(domain.Transfer{
		Source:    "host:/remote/debian/db/",
		Dest:      "/tmp/db/db",
		Direction: domain.Pull,
	})

	assert.Equal(t, []string{
		"-c", "-r", "-v", "-z",
		"host:/remote/debian/db/", "/tmp/db/db",
	}, args)
}

func TestArgs_PullDryRun_SameArgvPlusNoWriteFlag(t *testing.T) {
	transfer := domain.Transfer{
		Source:    "host:/remote/repo/debian/dists/",
		Dest:      "/tmp/repo/debian/dists",
		Direction: domain.Pull,
	}

	real := Args(transfer)
	transfer.DryRun = true
	dry := Args(transfer)

	// Dry run differs from the real run only by the no-write flag.
	require.Len(t, dry, len(real)+1)
	assert.Contains(t, dry, "-n")

	var withoutN []string
	for _, a := range dry {
		if a != "-n" {
			withoutN = append(withoutN, a)
		}
	}
	assert.Equal(t, real, withoutN)
}

func TestArgs_PushCarriesPermissionOptions(t *testing.T) {
	args := Args(domain.Transfer{
		Source:    "/tmp/repo/debian",
		Dest:      "host:/remote/repo/",
		Direction: domain.Push,
	})

	assert.Contains(t, args, "-p")
	assert.Contains(t, args, "-g")
	assert.Contains(t, args, "--chown=:packages")
	assert.Contains(t, args, "--chmod=D0775,F0664")
}

func TestArgs_PullOmitsPermissionOptions(t *testing.T) {
	args := Args(domain.Transfer{
		Source:    "host:/remote/debian/db/",
		Dest:      "/tmp/db/db",
		Direction: domain.Pull,
	})

	assert.NotContains(t, args, "--chown=:packages")
	assert.NotContains(t, args, "--chmod=D0775,F0664")
}

func TestArgs_Excludes(t *testing.T) {
	args := Args(domain.Transfer{
		Source:    "/tmp/db/",
		Dest:      "host:/remote/debian/",
		Direction: domain.Push,
		Excludes:  []string{"incoming/*"},
	})

	assert.Contains(t, args, "--exclude=incoming/*")
}

func TestArgs_SourceAndDestLast(t *testing.T) {
	args := Args(domain.Transfer{
		Source:    "src/",
		Dest:      "dst",
		Direction: domain.Push,
		DryRun:    true,
		Excludes:  []string{"x"},
	})

	require.True(t, len(args) >= 2)
	assert.Equal(t, "src/", args[len(args)-2])
	assert.Equal(t, "dst", args[len(args)-1])
}

func TestTransfer_InvokesRsync(t *testing.T) {
	runner := &recordingRunner{}
	x := New(runner)

	err := x.Transfer(context.Background(), domain.Transfer{
		Label:     "index database",
		Source:    "host:/remote/debian/db/",
		Dest:      "/tmp/db/db",
		Direction: domain.Pull,
		DryRun:    true,
	})

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Equal(t, "rsync", call[0])
	assert.Contains(t, call, "-n")
	assert.Equal(t, "host:/remote/debian/db/", call[len(call)-2])
	assert.Equal(t, "/tmp/db/db", call[len(call)-1])
}

func TestTransfer_RunnerFailurePropagates(t *testing.T) {
	runner := &recordingRunner{err: errors.New("exit status 23")}
	x := New(runner)

	err := x.Transfer(context.Background(), domain.Transfer{Label: "pool"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsync pool")
}
