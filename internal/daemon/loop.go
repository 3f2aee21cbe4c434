// Package daemon runs the single event loop that feeds the remap engine.
//
// X events, rule reload requests and shutdown are merged into one ordered
// stream. Only the loop goroutine calls into the engine.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	xlog "github.com/Alia5/xremap/internal/log"
	"github.com/Alia5/xremap/internal/remap"
	"github.com/Alia5/xremap/internal/rules"
)

// Source produces engine events. NextEvent is called from a dedicated
// reader goroutine and returns an error once the source is closed.
type Source interface {
	ActiveWindow() (*remap.Window, error)
	NextEvent() (remap.Event, error)
}

// Notifier tells the user about a rejected reload.
type Notifier interface {
	Notify(summary, body string) error
}

// LoadFunc reads and builds the rule table.
type LoadFunc func() (*rules.Table, error)

type Config struct {
	Engine *remap.Engine
	Source Source
	// Reloads triggers Load; nil disables reloading.
	Reloads  <-chan struct{}
	Load     LoadFunc
	Notifier Notifier
	Logger   *slog.Logger
}

type Loop struct {
	engine   *remap.Engine
	source   Source
	reloads  <-chan struct{}
	load     LoadFunc
	notifier Notifier
	logger   *slog.Logger
	ready    chan struct{}
}

type result struct {
	ev  remap.Event
	err error
}

func New(cfg Config) *Loop {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		engine:   cfg.Engine,
		source:   cfg.Source,
		reloads:  cfg.Reloads,
		load:     cfg.Load,
		notifier: cfg.Notifier,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the rules for the initially focused window are
// grabbed.
func (l *Loop) Ready() <-chan struct{} {
	return l.ready
}

// Run processes events until ctx is cancelled or the source fails. Every
// grab is released before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		if err := l.engine.Close(); err != nil {
			l.logger.Warn("Failed to release some grabs", "error", err)
		}
	}()

	w, err := l.source.ActiveWindow()
	if err != nil {
		l.logger.Debug("Failed to read active window", "error", err)
	}
	l.engine.OnFocusChanged(w)
	close(l.ready)

	events := make(chan result)
	done := make(chan struct{})
	defer close(done)
	go l.read(events, done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-events:
			if r.err != nil {
				return fmt.Errorf("event source: %w", r.err)
			}
			l.logger.Log(ctx, xlog.LevelTrace, "Event", "event", r.ev.String())
			if err := l.engine.Dispatch(r.ev); err != nil {
				l.logger.Warn("Failed to handle event", "event", r.ev.String(), "error", err)
			}
		case <-l.reloads:
			l.reload()
		}
	}
}

func (l *Loop) read(events chan<- result, done <-chan struct{}) {
	for {
		ev, err := l.source.NextEvent()
		select {
		case events <- result{ev: ev, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// ErrNoLoader is reported when a reload is requested without a LoadFunc.
var ErrNoLoader = errors.New("no rule loader configured")

func (l *Loop) reload() {
	if l.load == nil {
		l.logger.Error("Failed to reload rules", "error", ErrNoLoader)
		return
	}
	t, err := l.load()
	if err != nil {
		l.logger.Error("Failed to reload rules, keeping previous rules", "error", err)
		if l.notifier != nil {
			if nerr := l.notifier.Notify("xremap: rules not reloaded", err.Error()); nerr != nil {
				l.logger.Debug("Failed to send notification", "error", nerr)
			}
		}
		return
	}
	res := l.engine.Reload(t)
	if res.Err != nil {
		l.logger.Warn("Some keys could not be grabbed after reload", "error", res.Err)
	}
}
