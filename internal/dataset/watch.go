package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/medlux/wardgrid/internal/logging"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher reloads file-backed sources when their files change on disk.
type Watcher struct {
	store    *Store
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	byPath   map[string]Source
	debounce time.Duration
}

// NewWatcher watches the directories holding every FileBacked source in
// sources. Other sources are ignored. Directories are watched rather than
// files so editors that replace files by rename are still seen.
func NewWatcher(store *Store, sources []Source, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		store:    store,
		logger:   logging.OrNop(logger),
		watcher:  fw,
		byPath:   make(map[string]Source),
		debounce: defaultDebounce,
	}

	dirs := make(map[string]bool)
	for _, src := range sources {
		fb, ok := src.(FileBacked)
		if !ok {
			continue
		}
		abs, err := filepath.Abs(fb.Path())
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", fb.Path(), err)
		}
		w.byPath[abs] = src
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Watching returns the number of sources being watched.
func (w *Watcher) Watching() int { return len(w.byPath) }

// Run processes file events until ctx is cancelled, then closes the
// underlying watcher. Bursts of events within the debounce window cause one
// reload per source.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	pending := make(map[string]Source)
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
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			src := w.match(event)
			if src == nil {
				continue
			}
			pending[src.Name()] = src
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			for name, src := range pending {
				delete(pending, name)
				_ = Refresh(ctx, w.store, src, w.logger)
			}
		}
	}
}

func (w *Watcher) match(event fsnotify.Event) Source {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return nil
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return nil
	}
	return w.byPath[abs]
}
