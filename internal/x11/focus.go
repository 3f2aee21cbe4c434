package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/Alia5/xremap/internal/remap"
)

// maxClassDepth bounds the climb towards the root when looking for a
// window that carries a class.
const maxClassDepth = 20

// ActiveWindow returns the focused window, or nil when there is none.
// _NET_ACTIVE_WINDOW is preferred; window managers without EWMH support
// fall back to the input focus.
func (c *Conn) ActiveWindow() (*remap.Window, error) {
	win, err := ewmh.ActiveWindowGet(c.xu)
	if err != nil || win == 0 {
		reply, ferr := xproto.GetInputFocus(c.conn).Reply()
		if ferr != nil {
			return nil, ferr
		}
		win = reply.Focus
	}
	if win == xproto.WindowNone || win == xproto.InputFocusPointerRoot || win == c.root {
		return nil, nil
	}
	return c.describe(win), nil
}

// describe fills in class, instance and name, climbing the parents of win
// until one of them has them.
func (c *Conn) describe(win xproto.Window) *remap.Window {
	w := &remap.Window{ID: uint32(win)}
	cur := win
	for depth := 0; depth < maxClassDepth && cur != 0 && cur != c.root; depth++ {
		if cls, err := icccm.WmClassGet(c.xu, cur); err == nil && cls.Class != "" {
			w.Class = cls.Class
			w.Instance = cls.Instance
			if w.Name == "" {
				w.Name = c.windowName(cur)
			}
			return w
		}
		if w.Name == "" {
			w.Name = c.windowName(cur)
		}
		tree, err := xproto.QueryTree(c.conn, cur).Reply()
		if err != nil {
			break
		}
		cur = tree.Parent
	}
	// without WM_CLASS the window name stands in for the class
	w.Class = w.Name
	return w
}

func (c *Conn) windowName(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.xu, win); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.xu, win); err == nil {
		return name
	}
	return ""
}
