// Package watch re-runs an update whenever the image tree changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/folio/internal/logfields"
)

// RebuildFunc performs one update run.
type RebuildFunc func(ctx context.Context)

// Watcher watches a directory tree and calls a RebuildFunc after changes settle.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  RebuildFunc
	match    func(path string) bool
	hidden   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMatch restricts rebuilds to changes whose path satisfies match.
// Directory creation and removals always count.
func WithMatch(match func(path string) bool) Option {
	return func(w *Watcher) {
		w.match = match
	}
}

// WithIgnoreHidden stops dot-files from triggering rebuilds.
func WithIgnoreHidden(ignore bool) Option {
	return func(w *Watcher) {
		w.hidden = ignore
	}
}

// New creates a Watcher for root.
func New(root string, debounce time.Duration, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: debounce,
		rebuild:  rebuild,
		match:    func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Rebuilds run one at a time; changes
// arriving during a rebuild queue at most one follow-up run.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s is not a directory", w.root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := addDirsRecursive(watcher, w.root); err != nil {
		return err
	}

	rebuildReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				slog.Info("Change detected; updating documents", logfields.Root(w.root))
				w.rebuild(ctx)
			}
		}
	}()
	defer wg.Wait()

	slog.Info("Watching for changes", logfields.Root(w.root))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Watcher stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(watcher, ev) {
				slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// relevant decides whether ev should trigger a rebuild, adding newly created
// directories to the watch list on the way.
func (w *Watcher) relevant(watcher *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name, w.hidden) {
		return false
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
			return true
		}
	}
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		return true
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return w.match(ev.Name)
}

// newDebouncer returns a request channel, a trigger that fires the channel
// once changes have been quiet for d, and a stop function.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
// Dot-files are ignored only when ignoreHidden is set.
func shouldIgnoreEvent(path string, ignoreHidden bool) bool {
	base := filepath.Base(path)

	// Temp documents written during an update: .<name>.<random>.tmp
	if strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".tmp") {
		return true
	}
	if ignoreHidden && strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == ".DS_Store"
}
