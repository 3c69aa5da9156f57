package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process incoming uploads as they arrive",
	Long: `Watches the staging directory and runs the incoming step once new
files have settled. Uploads arrive as multiple files (.deb plus
.changes), so processing waits for a quiet period rather than firing
on every event.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 2*time.Second, "quiet period before processing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if maintainer == nil {
		return domain.ErrNotConfigured
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.IncomingDir()); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.IncomingDir(), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (settle %s)...\n", cfg.IncomingDir(), watchSettle)

	return watchLoop(ctx, watcher.Events, watcher.Errors, watchSettle, func() error {
		return maintainer.ProcessIncoming(ctx)
	})
}

// watchLoop triggers process once per burst of events, after the
// settle period of quiet. A failing trigger stops the loop: the same
// broken upload would otherwise be retried forever.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	settle time.Duration,
	process func() error,
) error {
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			// Only arrivals and modifications matter; processincoming
			// itself removes files, which must not retrigger.
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("staging event: %s", ev)
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(settle)
			pending = true

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			pending = false
			if err := process(); err != nil {
				return err
			}
		}
	}
}
