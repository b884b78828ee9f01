package main

import (
	"context"
	"fmt"
	"path/filepath"

	"cdr.dev/slog"
	"github.com/fsnotify/fsnotify"
)

// watchAndRerun re-invokes rerun every time path is written to, the
// way the teacher's own CLI watches a .d2 file for live preview. Most
// editors replace-on-save rather than writing in place, so the watch
// is placed on the containing directory and filtered by basename
// instead of watching the file descriptor directly, which a rename
// would silently stop notifying on.
func watchAndRerun(ctx context.Context, log slog.Logger, path string, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Info(ctx, "watching scenario for changes", slog.F("path", path))
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Info(ctx, "scenario changed, re-running", slog.F("op", ev.Op.String()))
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "watcher error", slog.Error(err))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
