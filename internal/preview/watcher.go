package preview

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange after component sources under a directory change.
// Bursts of events within the debounce window produce one call.
type Watcher struct {
	dir      string
	suffix   string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(ctx context.Context, path string)
}

// NewWatcher creates a watcher for files ending in suffix under dir.
func NewWatcher(dir, suffix string, debounce time.Duration, logger *slog.Logger, onChange func(ctx context.Context, path string)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		dir:      dir,
		suffix:   suffix,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Debug("watching for changes", "dir", w.dir, "suffix", w.suffix)

	// onChange runs on this goroutine, so Run never returns while a
	// regeneration is in flight
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, ok := w.relevant(watcher, event)
			if !ok {
				continue
			}
			pending = path
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Debug("change detected", "file", pending)
			w.onChange(ctx, pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// relevant reports whether event should trigger a regeneration. New
// directories are added to the watch list.
func (w *Watcher) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watchDirRecursive(watcher, event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return event.Name, true
		}
	}

	if !strings.HasSuffix(event.Name, w.suffix) {
		return "", false
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}
	return event.Name, true
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
