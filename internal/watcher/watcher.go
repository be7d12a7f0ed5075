// Package watcher reloads the dataset when the data file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader re-reads the data file.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(ctx context.Context) error

// Reload calls f(ctx).
func (f ReloaderFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// Watcher triggers a reload after the data file has been quiet for the
// debounce interval. It watches the parent directory so that editors which
// save by writing a temp file and renaming it are still seen.
type Watcher struct {
	path     string
	dir      string
	name     string
	debounce time.Duration
	reloader Reloader
	logger   *slog.Logger

	triggered atomic.Int64
}

// New creates a watcher for the file at path.
func New(path string, debounce time.Duration, reloader Reloader, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watched path: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		name:     filepath.Base(abs),
		debounce: debounce,
		reloader: reloader,
		logger:   logger.With(slog.String("component", "watcher")),
	}, nil
}

// Triggered reports how many reloads the watcher has started.
func (w *Watcher) Triggered() int64 {
	return w.triggered.Load()
}

// Run watches until ctx is cancelled. Reload failures are logged and the
// watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.InfoContext(ctx, "watching data file",
		slog.String("path", w.path),
		slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "file watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "data file changed",
				slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			w.triggered.Add(1)
			if err := w.reloader.Reload(ctx); err != nil {
				w.logger.WarnContext(ctx, "reload after file change failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
