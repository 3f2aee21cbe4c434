package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Alia5/xremap/internal/keys"
)

// ErrRejected is returned by the fakes for keys configured to fail.
var ErrRejected = errors.New("rejected by fake")

// Call is one recorded grab or ungrab.
type Call struct {
	Op  string
	Key keys.Key
}

func (c Call) String() string {
	return c.Op + " " + c.Key.String()
}

// MockGrabber records Grab and Ungrab calls. Keys in FailGrab or
// FailUngrab return ErrRejected.
type MockGrabber struct {
	mu         sync.Mutex
	Calls      []Call
	FailGrab   map[keys.Key]bool
	FailUngrab map[keys.Key]bool
}

func NewMockGrabber() *MockGrabber {
	return &MockGrabber{
		FailGrab:   map[keys.Key]bool{},
		FailUngrab: map[keys.Key]bool{},
	}
}

func (g *MockGrabber) Grab(k keys.Key) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, Call{Op: "grab", Key: k})
	if g.FailGrab[k] {
		return ErrRejected
	}
	return nil
}

func (g *MockGrabber) Ungrab(k keys.Key) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, Call{Op: "ungrab", Key: k})
	if g.FailUngrab[k] {
		return ErrRejected
	}
	return nil
}

// Reset forgets the recorded calls.
func (g *MockGrabber) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = nil
}

// Ops returns the recorded calls as "grab C-b" strings.
func (g *MockGrabber) Ops() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.Calls))
	for i, c := range g.Calls {
		out[i] = c.String()
	}
	return out
}

// Event is one synthesized key event.
type Event struct {
	Sym    keys.Keysym
	Press  bool
	State  keys.Modifier
	Target uint32
}

func (e Event) String() string {
	dir := "release"
	if e.Press {
		dir = "press"
	}
	return fmt.Sprintf("%s %s state=%s", dir, e.Sym.Name(), e.State)
}

// MockEmitter records synthesized events. Events for keysyms in Reject
// return ErrRejected but are still recorded.
type MockEmitter struct {
	mu     sync.Mutex
	Events []Event
	Reject map[keys.Keysym]bool
}

func NewMockEmitter() *MockEmitter {
	return &MockEmitter{Reject: map[keys.Keysym]bool{}}
}

func (e *MockEmitter) SynthesizeKeyEvent(sym keys.Keysym, press bool, state keys.Modifier, target uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Events = append(e.Events, Event{Sym: sym, Press: press, State: state, Target: target})
	if e.Reject[sym] {
		return ErrRejected
	}
	return nil
}

// Lines returns the recorded events formatted with Event.String.
func (e *MockEmitter) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.Events))
	for i, ev := range e.Events {
		out[i] = ev.String()
	}
	return out
}

// Logger returns a logger that discards output.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// RecordingHandler keeps the message and level of every record it handles.
type RecordingHandler struct {
	mu       sync.Mutex
	messages []string
	levels   []slog.Level
}

// NewRecordingLogger returns a logger backed by a RecordingHandler.
func NewRecordingLogger() (*slog.Logger, *RecordingHandler) {
	h := &RecordingHandler{}
	return slog.New(h), h
}

func (h *RecordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, r.Message)
	h.levels = append(h.levels, r.Level)
	return nil
}

func (h *RecordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *RecordingHandler) WithGroup(string) slog.Handler { return h }

// Messages returns the recorded messages in order.
func (h *RecordingHandler) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

// MessagesAt returns the messages recorded at level.
func (h *RecordingHandler) MessagesAt(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for i, m := range h.messages {
		if h.levels[i] == level {
			out = append(out, m)
		}
	}
	return out
}
