// Package cli is the driving adapter exposing the maintenance steps as
// subcommands of the pkgrepo binary.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/adapters/driven/config/file"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/console"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/execrunner"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/github"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/reprepro"
	"github.com/matrix-org/pkgrepo/internal/adapters/driven/rsync"
	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driving"
	"github.com/matrix-org/pkgrepo/internal/core/services"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

// version is stamped by main at startup.
var version = "dev"

// Services driving the commands. Wired from the resolved configuration
// in setup; tests inject mocks before calling Execute.
var (
	maintainer       driving.Maintainer
	releaseFetcher   driving.ReleaseFetcher
	keyringPublisher driving.KeyringPublisher
)

// indexer is kept for the lazily-built keyring publisher.
var indexer driven.Indexer

// Persistent flag values.
var (
	flagConfig  string
	flagRemote  string
	flagDBDir   string
	flagRepoDir string
	flagVerbose int
	flagYes     bool
)

// cfg is the configuration resolved for this invocation.
var cfg domain.Config

// configStore backs optional settings (fetch repository, keyring paths).
var configStore driven.ConfigStore

var rootCmd = &cobra.Command{
	Use:   "pkgrepo",
	Short: "Maintain the packages.matrix.org Debian repository",
	Long: `pkgrepo keeps a local working copy of the packages.matrix.org Debian
repository in step with the remote master and publishes changes back.

Run without a subcommand it performs the full maintenance cycle:
sync the local database, process incoming uploads, then publish.

The heavy lifting is delegated to rsync and reprepro; pkgrepo only
sequences them and refuses to publish without confirmation.

Examples:
  # Full cycle: sync, process incoming, publish
  pkgrepo

  # Refresh the local database copy without writing anything
  pkgrepo sync --dry-run

  # Import whatever is waiting in incoming/
  pkgrepo incoming

  # Publish, answering the confirmation prompt from a script
  pkgrepo publish --yes`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runAll,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.pkgrepo/config.toml)")
	pf.StringVarP(&flagRemote, "remote", "r", "", "rsync location of the master repository")
	pf.StringVar(&flagDBDir, "db-dir", "", "local reprepro database directory")
	pf.StringVar(&flagRepoDir, "repo-dir", "", "local repository mirror directory")
	pf.CountVarP(&flagVerbose, "verbose", "v", "increase verbosity (repeatable)")
	pf.BoolVarP(&flagYes, "yes", "y", false, "assume yes on confirmation prompts")
}

// SetVersion stamps the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup resolves the configuration and wires the production services,
// keeping any service a test injected beforehand.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg = c
	logger.SetVerbose(cfg.Verbose())
	wireServices()
	return nil
}

// resolveConfig layers flag values over the config file over built-in
// defaults. A missing or unreadable config file is not fatal: the
// defaults are enough for the standard deployment.
func resolveConfig(cmd *cobra.Command) (domain.Config, error) {
	c := domain.Config{
		Remote:  domain.DefaultRemote,
		DBDir:   domain.DefaultDBDir,
		RepoDir: domain.DefaultRepoDir,
	}

	store, err := file.NewConfigStore(flagConfig)
	if err != nil {
		logger.Warn("could not load config file: %v, using defaults", err)
	} else {
		configStore = store
		if s := store.GetString("remote"); s != "" {
			c.Remote = s
		}
		if s := store.GetString("db_dir"); s != "" {
			c.DBDir = s
		}
		if s := store.GetString("repo_dir"); s != "" {
			c.RepoDir = s
		}
		if n := store.GetInt("verbosity"); n > 0 {
			c.Verbosity = n
		}
	}

	flags := cmd.Flags()
	if flags.Changed("remote") {
		c.Remote = flagRemote
	}
	if flags.Changed("db-dir") {
		c.DBDir = flagDBDir
	}
	if flags.Changed("repo-dir") {
		c.RepoDir = flagRepoDir
	}
	if flags.Changed("verbose") {
		c.Verbosity = flagVerbose
	}

	if err := c.Validate(); err != nil {
		return domain.Config{}, err
	}
	return c, nil
}

// wireServices builds the production stack for any service slot a test
// has not already filled.
func wireServices() {
	runner := execrunner.New(cfg.Verbose())

	if indexer == nil {
		indexer = reprepro.New(cfg, runner)
	}
	if maintainer == nil {
		maintainer = services.NewMaintainer(cfg, rsync.New(runner), indexer, console.New(flagYes))
	}
	if releaseFetcher == nil {
		releaseFetcher = services.NewFetcher(cfg, github.NewClient(os.Getenv("GITHUB_TOKEN")))
	}
}

func runAll(cmd *cobra.Command, _ []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	cmd.Println("Running full maintenance cycle...")
	if err := maintainer.RunAll(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Repository is up to date.")
	return nil
}
