package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce delays reloads so editors that write in several steps
// trigger one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a catalog when its source file changes.
type Watcher struct {
	Catalog  *Catalog
	Path     string   // file to watch
	Sources  []Source // reloaded together on change
	Debounce time.Duration
	Logger   *slog.Logger
}

// Check reports whether the watched directory exists, so callers can fail
// before starting long-running work.
func (w *Watcher) Check() error {
	dir := filepath.Dir(w.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch catalog: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch catalog: %s is not a directory", dir)
	}
	return nil
}

// Run watches until ctx is cancelled. Reload failures are logged and the
// previous catalog stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot watch catalog: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so atomic renames by editors are seen.
	dir := filepath.Dir(w.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("cannot watch catalog: %w", err)
	}
	target := filepath.Clean(w.Path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	// Reloads run on this goroutine, one at a time, and stop with Run.
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			pending = timer.C
			changed = event.Name

		case <-pending:
			pending = nil
			logger.Debug("catalog file changed, reloading", "file", changed)
			if err := Reload(ctx, w.Catalog, w.Sources...); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("catalog reload failed", "error", err)
				continue
			}
			logger.Info("catalog reloaded", "fields", len(w.Catalog.Fields()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
