// Package watch turns changes of the rule file into reload requests.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events a single editor save
// produces.
const DefaultDebounce = 200 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher watches the directory holding the rule file, so editors that
// save by replacing the file are noticed as well.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	reloads  chan struct{}
	logger   *slog.Logger
}

// New starts watching path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: debounce,
		reloads:  make(chan struct{}, 1),
		logger:   logger,
	}, nil
}

// Reloads delivers one value per settled change. Requests that arrive
// while one is pending are merged.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Matches reports whether ev concerns the watched file.
func (w *Watcher) Matches(ev fsnotify.Event) bool {
	return filepath.Clean(ev.Name) == w.path && ev.Op&relevantOps != 0
}

// Run forwards changes until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.Matches(ev) {
				continue
			}
			w.logger.Debug("Rule file changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(w.debounce)
			}
			w.logger.Warn("File watcher error", "error", err)
		case <-timer.C:
			select {
			case w.reloads <- struct{}{}:
			default:
			}
		}
	}
}
