package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mineview/internal/log"
)

// DefaultDebounce is how long a file must be quiet before it is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a file through a Loader whenever it changes on disk.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// Reloaded, if set, is called after every reload attempt.
	Reloaded func(m *Model, err error)

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher watches the directory holding path, so that editors that
// replace the file by renaming are still seen.
func NewWatcher(l *Loader, path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		loader:   l,
		path:     abs,
		debounce: debounce,
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Run loads the file once and then reloads it after each burst of changes
// until ctx is done or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Stop()

	w.reload(ctx)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("watched file changed", "path", w.path, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	m, err := w.loader.LoadFile(ctx, w.path)
	if w.Reloaded != nil {
		w.Reloaded(m, err)
	}
}

// Stop ends Run and releases the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}
