package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

func TestMirrorCmd_Use(t *testing.T) {
	assert.Equal(t, "mirror [dest]", mirrorCmd.Use)
}

func TestMirrorCmd_MirrorsToGivenDest(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockMaintainer{}
	maintainer = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"mirror", "/tmp/snapshot"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/snapshot"}, mock.mirrorDests)
	assert.Contains(t, buf.String(), "Mirroring remote tree into /tmp/snapshot...")
	assert.Contains(t, buf.String(), "Mirror complete.")
}

func TestMirrorCmd_DefaultsDest(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockMaintainer{}
	maintainer = mock

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"mirror"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"./mirror"}, mock.mirrorDests)
}

func TestMirrorCmd_PropagatesFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	maintainer = &mockMaintainer{err: domain.ErrCommandFailed}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"mirror"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.NotContains(t, buf.String(), "Mirror complete.")
}
