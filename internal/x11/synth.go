package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"

	"github.com/Alia5/xremap/internal/keys"
)

// SynthesizeKeyEvent sends one key press or release for sym to target.
// With MethodXTest the target and state are implied by the server.
func (c *Conn) SynthesizeKeyEvent(sym keys.Keysym, press bool, state keys.Modifier, target uint32) error {
	c.mu.Lock()
	code, err := c.keymap.Keycode(sym)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if c.method == MethodXTest {
		return c.fakeInput(code, press)
	}
	return c.sendEvent(code, press, state, xproto.Window(target))
}

func (c *Conn) fakeInput(code xproto.Keycode, press bool) error {
	typ := byte(xproto.KeyRelease)
	if press {
		typ = xproto.KeyPress
	}
	c.raw.Log(false, []byte{typ, byte(code)})
	err := xtest.FakeInputChecked(c.conn, typ, byte(code), xproto.TimeCurrentTime, c.root, 0, 0, 0).Check()
	if err != nil {
		return fmt.Errorf("fake input keycode %d: %w", code, err)
	}
	return nil
}

func (c *Conn) sendEvent(code xproto.Keycode, press bool, state keys.Modifier, target xproto.Window) error {
	if target == 0 {
		target = c.root
	}
	data, mask := keyEventBytes(code, press, ToMask(state), c.root, target)
	c.raw.Log(false, data)
	err := xproto.SendEventChecked(c.conn, true, target, mask, string(data)).Check()
	if err != nil {
		return fmt.Errorf("send event to 0x%x: %w", target, err)
	}
	return nil
}

// keyEventBytes encodes a KeyPress or KeyRelease wire event and returns
// the event mask it is delivered under.
func keyEventBytes(code xproto.Keycode, press bool, state uint16, root, target xproto.Window) ([]byte, uint32) {
	ev := xproto.KeyPressEvent{
		Detail:     code,
		Time:       xproto.TimeCurrentTime,
		Root:       root,
		Event:      target,
		Child:      0,
		RootX:      1,
		RootY:      1,
		EventX:     1,
		EventY:     1,
		State:      state,
		SameScreen: true,
	}
	b := ev.Bytes()
	if press {
		return b, xproto.EventMaskKeyPress
	}
	b[0] = xproto.KeyRelease
	return b, xproto.EventMaskKeyRelease
}
