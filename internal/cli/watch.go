package cli

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever a definition file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
}

// runWatch generates once, then watches the schema directory and
// regenerates on every .sql change until the context is canceled.
// Generation failures are logged, not fatal; the watch keeps running
// so the next save can fix the file.
func runWatch(cmd *cobra.Command) error {
	if err := runGenerate(cmd, cfg); err != nil {
		logger.Error("generate failed", "err", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(cfg.Schema)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	logger.Info("watching", "dir", dir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".sql") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if err := runGenerate(cmd, cfg); err != nil {
				logger.Error("generate failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "err", err)
		}
	}
}
