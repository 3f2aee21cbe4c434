// Package remap ties rule resolution, key grabs and key synthesis to the
// events of the windowing system.
//
// An Engine is driven by a single event loop. Every method runs to
// completion before the next event is handed in, so a focus change has
// finished re-grabbing before the following key press is looked up.
package remap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alia5/xremap/internal/grab"
	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/rules"
	"github.com/Alia5/xremap/internal/synth"
)

// Window is a snapshot of the focused window.
type Window struct {
	ID       uint32
	Class    string
	Instance string
	Name     string
}

func (w *Window) String() string {
	if w == nil {
		return "<none>"
	}
	return fmt.Sprintf("0x%x class=%q", w.ID, w.Class)
}

// KeyPress is a grabbed key press translated back to its key. Keycode and
// State are the raw values from the event.
type KeyPress struct {
	Key     keys.Key
	Keycode uint8
	State   uint16
}

// Keymap is refreshed when the keyboard mapping changes.
type Keymap interface {
	RefreshKeymap() error
}

// Options configures an Engine.
type Options struct {
	// Root is the synthesis target when no window is focused.
	Root   uint32
	Keymap Keymap
	Logger *slog.Logger
}

type Engine struct {
	table   *rules.Table
	grabs   *grab.Manager
	synth   *synth.Synthesizer
	keymap  Keymap
	root    uint32
	logger  *slog.Logger
	window  *Window
	focused bool
	mapping rules.Mapping
}

// New returns an Engine with no focused window and nothing grabbed.
func New(table *rules.Table, g grab.Grabber, e synth.Emitter, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		table:   table,
		grabs:   grab.New(g, logger),
		synth:   synth.New(e),
		keymap:  opts.Keymap,
		root:    opts.Root,
		logger:  logger,
		mapping: rules.NewMapping(),
	}
}

func sameWindow(a, b *Window) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// namesOf returns the names rules match a window by.
func namesOf(w *Window) []string {
	if w == nil {
		return nil
	}
	return []string{w.Class, w.Instance}
}

// OnFocusChanged resolves the mapping for w and moves the grabs to it. A
// repeated notification for the same window is ignored.
func (e *Engine) OnFocusChanged(w *Window) grab.Result {
	if e.focused && sameWindow(e.window, w) {
		return grab.Result{}
	}
	e.focused = true
	if w != nil {
		cp := *w
		w = &cp
	}
	e.window = w
	e.logger.Debug("Focus changed", "window", w.String())
	return e.resolve()
}

func (e *Engine) resolve() grab.Result {
	e.mapping = rules.Resolve(e.table, namesOf(e.window)...)
	return e.grabs.Apply(e.mapping)
}

// OnKeyEvent looks k up in the current mapping.
func (e *Engine) OnKeyEvent(k keys.Key) (rules.Action, bool) {
	return e.mapping.Lookup(k)
}

// HandleKeyPress emits the action bound to p, if any, to the focused window.
// Synthesis failures are logged and not returned.
func (e *Engine) HandleKeyPress(p KeyPress) bool {
	action, ok := e.OnKeyEvent(p.Key)
	if !ok {
		e.logger.Debug("No handler for key", "key", p.Key.String(), "keycode", p.Keycode)
		return false
	}
	e.logger.Info(fmt.Sprintf("Found handler for keycode=%d, state=%#x, executing remap", p.Keycode, p.State),
		"from", p.Key.String(), "to", action.String())

	if err := e.synth.Emit(action, e.Target()); err != nil {
		e.logger.Warn("Failed to synthesize key events", "action", action.String(), "error", err)
	}
	return true
}

// OnKeyboardMappingChanged drops every grab, refreshes the keymap and
// grabs the current mapping again under the new keycodes.
func (e *Engine) OnKeyboardMappingChanged() error {
	var errs []error
	if err := e.grabs.Release(); err != nil {
		errs = append(errs, err)
	}
	if e.keymap != nil {
		if err := e.keymap.RefreshKeymap(); err != nil {
			errs = append(errs, fmt.Errorf("refresh keymap: %w", err))
		}
	}
	res := e.grabs.Apply(e.mapping)
	if res.Err != nil {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}

// Reload replaces the rule table and re-resolves for the focused window.
func (e *Engine) Reload(t *rules.Table) grab.Result {
	e.table = t
	e.logger.Info("Rules reloaded", "groups", len(t.Groups()), "bindings", t.BindingCount())
	return e.resolve()
}

// Close releases every grab.
func (e *Engine) Close() error {
	return e.grabs.Release()
}

// Target is the window synthesized events are sent to.
func (e *Engine) Target() uint32 {
	if e.window == nil || e.window.ID == 0 {
		return e.root
	}
	return e.window.ID
}

func (e *Engine) Mapping() rules.Mapping { return e.mapping }

func (e *Engine) Window() *Window { return e.window }

func (e *Engine) Table() *rules.Table { return e.table }

// Grabbed returns the grabbed keys, sorted.
func (e *Engine) Grabbed() []keys.Key { return e.grabs.Grabbed() }
