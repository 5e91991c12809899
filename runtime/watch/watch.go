// Package watch re-parses a source file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/runtime/cache"
)

// DefaultDebounce collapses the burst of events a single save produces
const DefaultDebounce = 100 * time.Millisecond

// Handler receives each parse result: a program, or the read or parse error
type Handler func(ast.Program, error)

// Watcher reports the parsed contents of one file every time it changes
type Watcher struct {
	path     string
	cache    *cache.Cache
	logger   zerolog.Logger
	debounce time.Duration
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits after the last event before
// re-parsing. Zero re-parses on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for path. Parses go through c.
func New(path string, c *cache.Cache, logger zerolog.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		cache:    c,
		logger:   logger.With().Str("file", path).Logger(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run parses the file once, then again after every change, handing each
// result to fn. The parent directory is watched so that editors which save
// by replacing the file are seen. Run blocks until ctx is cancelled and
// returns nil in that case.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.logger.Info().Str("dir", dir).Msg("watching for changes")

	w.reload(fn)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("file event")

			if w.debounce <= 0 {
				w.reload(fn)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload(fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

// reload reads and parses the file and reports the outcome
func (w *Watcher) reload(fn Handler) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Msg("failed to read file")
		fn(nil, fmt.Errorf("reading %s: %w", w.path, err))
		return
	}

	program, err := w.cache.Parse(string(data))
	if err != nil {
		w.logger.Warn().Err(err).Msg("parse failed")
		fn(nil, err)
		return
	}

	w.logger.Info().Int("statements", len(program)).Msg("parsed")
	fn(program, nil)
}
