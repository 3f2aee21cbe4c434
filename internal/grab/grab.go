// Package grab keeps the set of keys grabbed from the windowing system in
// step with the effective mapping.
//
// The Manager is the only owner of the grab state. Every transition is
// computed as a set difference between the keys currently grabbed and the
// keys of the new mapping; keys that are no longer needed are released
// before new ones are grabbed.
package grab

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/rules"
)

// Grabber is the windowing-system side of a key grab.
type Grabber interface {
	Grab(k keys.Key) error
	Ungrab(k keys.Key) error
}

// Op names a grab operation in a GrabError.
type Op string

const (
	OpGrab   Op = "grab"
	OpUngrab Op = "ungrab"
)

// ErrGrab is matched by every GrabError.
var ErrGrab = errors.New("key grab failed")

// GrabError reports a single key that could not be grabbed or released.
type GrabError struct {
	Op  Op
	Key keys.Key
	Err error
}

func (e *GrabError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *GrabError) Unwrap() []error {
	return []error{ErrGrab, e.Err}
}

// Result summarises one transition.
type Result struct {
	Grabbed  []keys.Key
	Released []keys.Key
	// Err joins every GrabError of the transition, nil when all calls
	// succeeded.
	Err error
}

// Calls returns the number of grab and ungrab calls issued.
func (r Result) Calls() int {
	return len(r.Grabbed) + len(r.Released)
}

// Manager owns the grab state. It is not safe for concurrent use; the
// event loop serializes every call.
type Manager struct {
	grabber Grabber
	logger  *slog.Logger
	state   map[keys.Key]struct{}
}

// New returns a Manager with an empty grab state.
func New(g Grabber, logger *slog.Logger) *Manager {
	return &Manager{
		grabber: g,
		logger:  logger,
		state:   make(map[keys.Key]struct{}),
	}
}

// Diff returns the keys to release and the keys to grab to move from
// current to target. Both results are sorted by keys.Compare.
func Diff(current, target []keys.Key) (toUngrab, toGrab []keys.Key) {
	cur := make(map[keys.Key]struct{}, len(current))
	for _, k := range current {
		cur[k] = struct{}{}
	}
	tgt := make(map[keys.Key]struct{}, len(target))
	for _, k := range target {
		tgt[k] = struct{}{}
	}
	for k := range cur {
		if _, ok := tgt[k]; !ok {
			toUngrab = append(toUngrab, k)
		}
	}
	for k := range tgt {
		if _, ok := cur[k]; !ok {
			toGrab = append(toGrab, k)
		}
	}
	slices.SortFunc(toUngrab, keys.Compare)
	slices.SortFunc(toGrab, keys.Compare)
	return toUngrab, toGrab
}

// Apply moves the grab state to the keys of m. A key that fails to grab is
// left out of the state; a key that fails to release is dropped from the
// state anyway. Failures are logged and returned in Result.Err, they never
// abort the rest of the transition.
func (m *Manager) Apply(target rules.Mapping) Result {
	targetKeys := target.Keys()
	toUngrab, toGrab := Diff(m.Grabbed(), targetKeys)

	m.logger.Info(fmt.Sprintf("Grabbing %d keys", len(targetKeys)),
		"ungrab", len(toUngrab), "grab", len(toGrab))

	var res Result
	var errs []error
	for _, k := range toUngrab {
		res.Released = append(res.Released, k)
		if err := m.ungrab(k); err != nil {
			errs = append(errs, err)
		}
	}
	for _, k := range toGrab {
		if err := m.grabber.Grab(k); err != nil {
			gerr := &GrabError{Op: OpGrab, Key: k, Err: err}
			m.logger.Warn("Failed to grab key", "key", k.String(), "error", err)
			errs = append(errs, gerr)
			continue
		}
		m.state[k] = struct{}{}
		res.Grabbed = append(res.Grabbed, k)
		m.logger.Debug("Grabbed key", "key", k.String())
	}
	res.Err = errors.Join(errs...)
	return res
}

// Release ungrabs every key in the state and leaves it empty.
func (m *Manager) Release() error {
	var errs []error
	for _, k := range m.Grabbed() {
		if err := m.ungrab(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) ungrab(k keys.Key) error {
	delete(m.state, k)
	if err := m.grabber.Ungrab(k); err != nil {
		m.logger.Warn("Failed to ungrab key", "key", k.String(), "error", err)
		return &GrabError{Op: OpUngrab, Key: k, Err: err}
	}
	m.logger.Debug("Ungrabbed key", "key", k.String())
	return nil
}

// Grabbed returns the grabbed keys sorted by keys.Compare.
func (m *Manager) Grabbed() []keys.Key {
	out := make([]keys.Key, 0, len(m.state))
	for k := range m.state {
		out = append(out, k)
	}
	slices.SortFunc(out, keys.Compare)
	return out
}

// IsGrabbed reports whether k is in the grab state.
func (m *Manager) IsGrabbed(k keys.Key) bool {
	_, ok := m.state[k]
	return ok
}

// Len returns the number of grabbed keys.
func (m *Manager) Len() int {
	return len(m.state)
}
