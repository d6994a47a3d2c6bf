// Package watcher rebuilds the index when documents in the source directory
// change.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultDebounce is the quiet period before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one full rebuild. Its error is logged and the
// watcher keeps running.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers debounced full rebuilds for changes to files with the
// configured extension. Rebuilds never overlap.
type Watcher struct {
	dir       string
	extension string
	debounce  time.Duration
	rebuild   RebuildFunc
	logger    interfaces.Logger
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce. Zero rebuilds on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithExtension overrides the watched suffix, ".md" by default.
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		if trimmed := strings.TrimSpace(ext); trimmed != "" {
			w.extension = trimmed
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New returns a watcher for dir, an operating system path.
func New(dir string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:       dir,
		extension: ".md",
		debounce:  DefaultDebounce,
		rebuild:   rebuild,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Run watches until ctx is done. It only fails when the directory cannot be
// watched.
func (w *Watcher) Run(ctx context.Context) error {
	if w.rebuild == nil {
		return fmt.Errorf("watcher: rebuild function is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", w.dir, err)
	}
	w.logger.Info("watcher.started", "dir", w.dir, "debounce_ms", w.debounce.Milliseconds())

	w.loop(ctx, fsw.Events, fsw.Errors)
	return nil
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("watcher.stopped", "dir", w.dir)
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("watcher.event", "path", event.Name, "op", event.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.logger.Warn("watcher.error", "error", err)

		case <-timer.C:
			pending = false
			w.run(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(filepath.Base(event.Name), w.extension)
}

func (w *Watcher) run(ctx context.Context) {
	started := time.Now()
	if err := w.rebuild(ctx); err != nil {
		w.logger.Error("watcher.rebuild.failed", "error", err)
		return
	}
	w.logger.Info("watcher.rebuild.completed", "duration_ms", time.Since(started).Milliseconds())
}
