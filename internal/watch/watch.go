// Package watch reruns a check whenever files under the project root change.
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

	"git.home.luguber.info/inful/docrefs/internal/logfields"
)

// DefaultDebounce is how long the watcher waits after the last event.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc performs one check. Errors are logged and do not stop watching.
type RunFunc func(ctx context.Context) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFiles adds files that trigger a run even though they would otherwise
// be ignored, such as a dot-prefixed redirect configuration.
func WithFiles(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				w.always[abs] = true
			}
		}
	}
}

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	run      RunFunc
	debounce time.Duration
	logger   *slog.Logger
	always   map[string]bool
}

// New creates a watcher that calls run once on start and after every burst
// of changes below root.
func New(root string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		run:      run,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		always:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addDirsRecursive(fw, w.root); err != nil {
		return err
	}
	return w.loop(ctx, fw.Events, fw.Errors, func(dir string) {
		_ = w.addDirsRecursive(fw, dir)
	})
}

// loop queues an initial run and feeds events to the worker until ctx ends
// or either channel closes. It returns only after the worker has stopped.
func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, addDir func(string)) error {
	ctx, cancel := context.WithCancel(ctx)
	runReq, trigger, stop := debouncer(w.debounce)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.worker(ctx, runReq)
	}()
	defer func() {
		stop()
		cancel()
		<-done
	}()

	runReq <- struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, trigger, addDir)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// debouncer returns a request channel and a trigger that sends on it once
// the trigger has been quiet for d.
func debouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
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
	return req, trigger, stop
}

// worker runs checks one at a time. A request arriving mid-run stays
// buffered and causes exactly one more run.
func (w *Watcher) worker(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			start := time.Now()
			if err := w.run(ctx); err != nil {
				w.logger.Warn("check failed", logfields.Error(err))
				continue
			}
			w.logger.Debug("check finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event, trigger func(), addDir func(string)) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDir(ev.Name)
		}
	}
	w.logger.Debug("file change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports whether an event for path is editor or OS noise.
func (w *Watcher) shouldIgnore(path string) bool {
	if abs, err := filepath.Abs(path); err == nil && w.always[abs] {
		return false
	}
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
