package content

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
)

// ReloadCallback is called after a watcher-driven reload that changed at
// least one collection.
type ReloadCallback func(snap *Snapshot, changed []models.Collection)

const reloadDebounce = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the content directory and reloads the
// store whenever a collection document changes, until ctx is cancelled.
// Bursts of events (editors often write, chmod and rename in one save) are
// coalesced into a single reload. A reload that fails validation is logged
// and the previous snapshot keeps serving.
func Watch(ctx context.Context, store *Store, logger *slog.Logger, cb ReloadCallback) error {
	root := store.Provider().Root()
	if root == "" {
		return errors.New("content: watch requires an on-disk content directory")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDebounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			prev := store.Snapshot()
			snap, err := store.Reload()
			if err != nil {
				logger.Warn("watcher: reload failed, keeping previous content", slog.String("error", err.Error()))
				continue
			}
			changed := snap.Changed(prev)
			if len(changed) == 0 {
				continue
			}
			logger.Info("watcher: content reloaded",
				slog.Int("experience", len(snap.Experience)),
				slog.Int("projects", len(snap.Projects)))
			if cb != nil {
				cb(snap, changed)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := fs.Stat(store.Provider(), relSlash(root, ev.Name)); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}
			if _, ok := parser.CollectionOf(ev.Name); !ok {
				continue
			}
			logger.Debug("watcher: document event", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func relSlash(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
