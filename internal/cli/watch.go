package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchInput re-runs filterOnce whenever the input file changes. The parent
// directory is watched rather than the file itself, so editors and tools
// that replace the file atomically still trigger a re-run. A failed pass is
// logged and the watch continues; the file is often mid-write when the
// first event arrives.
func watchInput(ctx context.Context, path string, filterOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	slog.Info("watching for changes", slog.String("path", absPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Name != absPath || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			slog.Debug("input changed", slog.String("op", event.Op.String()))

			if err := filterOnce(); err != nil {
				slog.Warn("re-filter failed", slog.Any("err", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("watch error", slog.Any("err", err))
		}
	}
}
