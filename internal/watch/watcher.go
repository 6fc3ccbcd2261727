// Package watch reloads the inventory when CSV files in its directory change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc reloads the watched directory.
type ReloadFunc func(ctx context.Context) error

// Watcher triggers a reload after a burst of CSV file events settles.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	reload   ReloadFunc
}

// New creates a watcher on dir. Run starts it.
func New(dir string, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		reload:   reload,
	}, nil
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	logger := slog.With("component", "watcher", "directory", w.dir)
	logger.Info("watching inventory directory", "debounce", w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isInventoryEvent(w.dir, event) {
				continue
			}
			logger.Debug("inventory file changed", "file", filepath.Base(event.Name), "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.Info("reloading inventory")
			if err := w.reload(ctx); err != nil {
				logger.Warn("reload failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isInventoryEvent reports whether event concerns a top-level .csv file
// in a way that can change a load result.
func isInventoryEvent(dir string, event fsnotify.Event) bool {
	if filepath.Dir(event.Name) != filepath.Clean(dir) {
		return false
	}
	if !strings.HasSuffix(event.Name, ".csv") {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}
