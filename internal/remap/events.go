package remap

import "fmt"

// Event is an input for the Engine produced by a windowing-system source.
type Event interface {
	fmt.Stringer
	event()
}

// FocusEvent reports a new focused window; Window is nil when it could
// not be determined.
type FocusEvent struct {
	Window *Window
}

// KeyEvent reports a press of a grabbed key.
type KeyEvent struct {
	Press KeyPress
}

// KeymapEvent reports a change of the keyboard mapping.
type KeymapEvent struct{}

func (FocusEvent) event()  {}
func (KeyEvent) event()    {}
func (KeymapEvent) event() {}

func (e FocusEvent) String() string { return "focus " + e.Window.String() }

func (e KeyEvent) String() string {
	return fmt.Sprintf("key %s keycode=%d state=%#x", e.Press.Key, e.Press.Keycode, e.Press.State)
}

func (KeymapEvent) String() string { return "keymap" }

// Dispatch hands ev to the matching Engine method.
func (e *Engine) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case FocusEvent:
		e.OnFocusChanged(ev.Window)
	case KeyEvent:
		e.HandleKeyPress(ev.Press)
	case KeymapEvent:
		return e.OnKeyboardMappingChanged()
	default:
		return fmt.Errorf("unexpected event %T", ev)
	}
	return nil
}
