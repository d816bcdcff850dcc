// Package watch reports changes to schema source files.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches schema sources. File sources are watched through their
// parent directory so editors that replace files on save are still seen.
type Watcher struct {
	Debounce time.Duration

	files  map[string]bool // watched file sources
	dirs   map[string]bool // watched directory sources
	ext    string
	logger *slog.Logger
	ready  chan struct{}
}

// New creates a watcher for sources. Directory sources report changes to
// files with extension ext.
func New(sources []string, ext string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{
		Debounce: DefaultDebounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		ext:      ext,
		logger:   logger,
		ready:    make(chan struct{}),
	}
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			abs = filepath.Clean(src)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
		}
	}
	return w
}

// Ready is closed once every directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// relevant reports whether an event for name concerns a source.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && filepath.Ext(name) == w.ext
}

// Run watches until ctx is cancelled, calling onChange with the sorted set of
// changed sources after each burst of events. onChange runs on the Run
// goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool)
	add := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		w.logger.Debug("watching directory", "dir", dir)
		return nil
	}
	for f := range w.files {
		if err := add(filepath.Dir(f)); err != nil {
			return err
		}
	}
	for d := range w.dirs {
		if err := add(d); err != nil {
			return err
		}
	}
	close(w.ready)

	var (
		mu            sync.Mutex
		pending       = make(map[string]bool)
		debounceTimer *time.Timer
		fire          = make(chan struct{}, 1)
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
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
			// Only handle write/create events for source files
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.relevant(event.Name) {
				continue
			}

			mu.Lock()
			pending[filepath.Clean(event.Name)] = true
			mu.Unlock()

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.Debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			mu.Lock()
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			pending = make(map[string]bool)
			mu.Unlock()
			if len(changed) == 0 {
				continue
			}
			sort.Strings(changed)
			w.logger.Debug("sources changed", "files", changed)
			onChange(ctx, changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}
