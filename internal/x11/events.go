package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/Alia5/xremap/internal/remap"
)

// NextEvent blocks until the next event the engine cares about. X protocol
// errors reported asynchronously are logged and skipped.
func (c *Conn) NextEvent() (remap.Event, error) {
	for {
		ev, xerr := c.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrClosed
		}
		if xerr != nil {
			c.logger.Warn("X protocol error", "error", xerr.Error())
			continue
		}
		if out, ok := c.convert(ev); ok {
			return out, nil
		}
	}
}

func (c *Conn) convert(ev any) (remap.Event, bool) {
	switch ev := ev.(type) {
	case xproto.KeyPressEvent:
		c.raw.Log(true, ev.Bytes())
		press, ok := c.Translate(ev)
		if !ok {
			c.logger.Debug("Key press for unknown grab", "key", c.pressedKey(ev).String(),
				"keycode", ev.Detail, "state", ev.State)
			return nil, false
		}
		return remap.KeyEvent{Press: press}, true
	case xproto.PropertyNotifyEvent:
		if ev.Window != c.root || ev.Atom != c.activeAtom {
			return nil, false
		}
		w, err := c.ActiveWindow()
		if err != nil {
			c.logger.Debug("Failed to read active window", "error", err)
		}
		return remap.FocusEvent{Window: w}, true
	case xproto.MappingNotifyEvent:
		if ev.Request != xproto.MappingKeyboard && ev.Request != xproto.MappingModifier {
			return nil, false
		}
		return remap.KeymapEvent{}, true
	}
	return nil, false
}
