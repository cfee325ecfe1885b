// Package watch regenerates schedules when their definition files change.
//
// A Watcher follows a single definition file or a directory tree. Events for
// files with a matching extension are collected until the debounce window
// passes without new events, then the callback runs once with every changed
// path. Hidden files and directories are ignored.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/fsutil"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called with the changed paths of one debounced batch.
type Handler func(ctx context.Context, changed []string)

// Watcher watches definition files.
type Watcher struct {
	root     string
	file     string
	ext      string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New starts watching root, which is either a definition file or a directory.
func New(root, ext string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{root: root, ext: ext, debounce: debounce, fsw: fsw}

	if info.IsDir() {
		err = w.addRecursive(root)
	} else {
		// Editors often replace files on save, so the directory is watched.
		w.file = filepath.Clean(root)
		err = fsw.Add(filepath.Dir(root))
	}
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// Close stops watching. Run returns after Close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && fsutil.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// relevant reports whether an event for path should trigger the handler.
func (w *Watcher) relevant(path string) bool {
	if w.file != "" {
		return filepath.Clean(path) == w.file
	}
	if fsutil.IsHidden(filepath.Base(path)) {
		return false
	}
	return filepath.Ext(path) == w.ext
}

// Run dispatches debounced batches to fn until ctx is done or the watcher is
// closed. Pending changes are dropped on shutdown.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	logger := ctxlog.FromContext(ctx).With("path", w.root)
	logger.Info("Watching for changes.", "debounce", w.debounce)

	var pending []string
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && w.file == "" {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fsutil.IsHidden(info.Name()) {
					if err := w.addRecursive(event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "dir", event.Name, "error", err)
					}
				}
			}
			if event.Has(fsnotify.Chmod) || !w.relevant(event.Name) {
				continue
			}
			logger.Debug("Change detected.", "file", event.Name, "op", event.Op.String())
			if !slices.Contains(pending, event.Name) {
				pending = append(pending, event.Name)
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("File watcher overflowed, regenerating everything.")
				pending = append(pending, w.root)
				timer.Reset(w.debounce)
				continue
			}
			logger.Error("File watcher error.", "error", err)

		case <-timer.C:
			batch := pending
			pending = nil
			slices.Sort(batch)
			logger.Debug("Dispatching changes.", "count", len(batch))
			fn(ctx, batch)
		}
	}
}
