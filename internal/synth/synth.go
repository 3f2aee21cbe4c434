// Package synth turns an output action into the ordered stream of native
// key events that reproduces it.
package synth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/rules"
)

// Emitter delivers one native key event to target. state is the modifier
// state the event carries.
type Emitter interface {
	SynthesizeKeyEvent(sym keys.Keysym, press bool, state keys.Modifier, target uint32) error
}

// ErrSynthesisRejected is matched by every EmitError.
var ErrSynthesisRejected = errors.New("synthesis rejected")

// Event is one step of an emission plan.
type Event struct {
	Sym   keys.Keysym
	Press bool
	State keys.Modifier
}

func (e Event) String() string {
	if e.Press {
		return "+" + e.Sym.Name()
	}
	return "-" + e.Sym.Name()
}

// Failure is a single rejected event.
type Failure struct {
	Index int
	Key   keys.Key
	Event Event
	Err   error
}

// EmitError aggregates every rejected event of one emission.
type EmitError struct {
	Action   rules.Action
	Failures []Failure
}

func (e *EmitError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s (element %d, %s): %v", f.Event, f.Index, f.Key, f.Err)
	}
	return fmt.Sprintf("emit %s: %d events rejected: %s",
		e.Action, len(e.Failures), strings.Join(parts, "; "))
}

func (e *EmitError) Unwrap() []error {
	errs := []error{ErrSynthesisRejected}
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Plan returns the events that reproduce k: modifiers pressed in
// Ctrl, Alt, Shift, Super order, the base key pressed and released, then the
// modifiers released in reverse. Each event carries the modifiers held at
// that moment.
func Plan(k keys.Key) []Event {
	var held keys.Modifier
	mods := k.Mods.Each()
	events := make([]Event, 0, 2+2*len(mods))

	for _, m := range mods {
		events = append(events, Event{Sym: m.Keysym(), Press: true, State: held})
		held = held.With(m)
	}
	events = append(events,
		Event{Sym: k.Sym, Press: true, State: held},
		Event{Sym: k.Sym, Press: false, State: held},
	)
	for i := len(mods) - 1; i >= 0; i-- {
		events = append(events, Event{Sym: mods[i].Keysym(), Press: false, State: held})
		held = held.Without(mods[i])
	}
	return events
}

// Synthesizer emits actions through an Emitter. Emissions never interleave.
type Synthesizer struct {
	mu      sync.Mutex
	emitter Emitter
}

func New(e Emitter) *Synthesizer {
	return &Synthesizer{emitter: e}
}

// Emit sends every element of action to target in order. A rejected event
// does not stop the remaining events; all rejections are returned as one
// *EmitError.
func (s *Synthesizer) Emit(action rules.Action, target uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var failures []Failure
	for i, k := range action {
		for _, ev := range Plan(k) {
			if err := s.emitter.SynthesizeKeyEvent(ev.Sym, ev.Press, ev.State, target); err != nil {
				failures = append(failures, Failure{Index: i, Key: k, Event: ev, Err: err})
			}
		}
	}
	if len(failures) > 0 {
		return &EmitError{Action: action, Failures: failures}
	}
	return nil
}
