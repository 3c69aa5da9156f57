package cli

import (
	"context"
	"os"
	"path/filepath"
)

// mockMaintainer records which maintenance steps were invoked.
type mockMaintainer struct {
	syncCalls     []bool
	incomingCalls int
	publishCalls  int
	allCalls      int
	mirrorDests   []string
	err           error
}

func (m *mockMaintainer) SyncDatabase(_ context.Context, dryRun bool) error {
	m.syncCalls = append(m.syncCalls, dryRun)
	return m.err
}

func (m *mockMaintainer) ProcessIncoming(_ context.Context) error {
	m.incomingCalls++
	return m.err
}

func (m *mockMaintainer) Publish(_ context.Context) error {
	m.publishCalls++
	return m.err
}

func (m *mockMaintainer) RunAll(_ context.Context) error {
	m.allCalls++
	return m.err
}

func (m *mockMaintainer) Mirror(_ context.Context, dest string) error {
	m.mirrorDests = append(m.mirrorDests, dest)
	return m.err
}

// mockReleaseFetcher returns a fixed staged-file count.
type mockReleaseFetcher struct {
	owner, repo string
	count       int
	err         error
}

func (m *mockReleaseFetcher) FetchLatest(_ context.Context, owner, repo string) (int, error) {
	m.owner, m.repo = owner, repo
	return m.count, m.err
}

// mockKeyringPublisher records invocations.
type mockKeyringPublisher struct {
	calls int
	err   error
}

func (m *mockKeyringPublisher) PublishKeyring(_ context.Context) error {
	m.calls++
	return m.err
}

// setupTestServices installs working mocks for all service slots and
// points the config flag at a scratch file so tests never touch the
// real ~/.pkgrepo. The returned cleanup restores everything; tests
// that need a particular mock assign their own after calling this.
func setupTestServices() func() {
	origMaintainer := maintainer
	origFetcher := releaseFetcher
	origKeyring := keyringPublisher
	origIndexer := indexer
	origStore := configStore
	origConfig := flagConfig

	dir, _ := os.MkdirTemp("", "pkgrepo-cli-test")
	flagConfig = filepath.Join(dir, "config.toml")

	maintainer = &mockMaintainer{}
	releaseFetcher = &mockReleaseFetcher{}
	keyringPublisher = &mockKeyringPublisher{}

	return func() {
		maintainer = origMaintainer
		releaseFetcher = origFetcher
		keyringPublisher = origKeyring
		indexer = origIndexer
		configStore = origStore
		flagConfig = origConfig
		rootCmd.SetArgs(nil)
		os.RemoveAll(dir)
	}
}
