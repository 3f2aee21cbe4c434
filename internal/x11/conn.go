// Package x11 is the X11 side of the daemon: key grabs, synthetic key
// events, focused-window detection and the event source, built on xgb and
// xgbutil.
//
// NextEvent is meant to run on its own goroutine while the event loop
// grabs and synthesizes; the keymap and grab tables are guarded by a mutex.
package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/Alia5/xremap/internal/keys"
	xlog "github.com/Alia5/xremap/internal/log"
)

// Method selects how key events are synthesized.
type Method string

const (
	// MethodSendEvent delivers events to the focused window with
	// XSendEvent. Each event carries the modifier state.
	MethodSendEvent Method = "sendevent"
	// MethodXTest injects events through the XTEST extension as if typed.
	MethodXTest Method = "xtest"
)

// ParseMethod accepts "sendevent" and "xtest", case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(s)) {
	case MethodSendEvent, "":
		return MethodSendEvent, nil
	case MethodXTest:
		return MethodXTest, nil
	}
	return "", fmt.Errorf("unknown synthesis method %q", s)
}

// ErrClosed is returned by NextEvent once the connection is gone.
var ErrClosed = errors.New("X connection closed")

// Options configures Connect.
type Options struct {
	// Display overrides $DISPLAY.
	Display string
	Method  Method
	Logger  *slog.Logger
	Raw     xlog.RawLogger
}

type slot struct {
	code xproto.Keycode
	mask uint16
}

type Conn struct {
	xu     *xgbutil.XUtil
	conn   *xgb.Conn
	root   xproto.Window
	method Method
	logger *slog.Logger
	raw    xlog.RawLogger

	activeAtom xproto.Atom

	mu      sync.Mutex
	keymap  *Keymap
	grabbed map[keys.Key]xproto.Keycode
	slots   map[slot]keys.Key
}

// Connect opens the display, loads the keymap and subscribes to focus
// changes on the root window.
func Connect(opts Options) (*Conn, error) {
	xu, err := xgbutil.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("open display %q: %w", opts.Display, err)
	}
	c := &Conn{
		xu:      xu,
		conn:    xu.Conn(),
		root:    xu.RootWin(),
		method:  opts.Method,
		logger:  opts.Logger,
		raw:     opts.Raw,
		grabbed: make(map[keys.Key]xproto.Keycode),
		slots:   make(map[slot]keys.Key),
	}
	if c.method == "" {
		c.method = MethodSendEvent
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.raw == nil {
		c.raw = xlog.NewRaw(nil)
	}

	if c.method == MethodXTest {
		if err := xtest.Init(c.conn); err != nil {
			c.Close()
			return nil, fmt.Errorf("init XTEST extension: %w", err)
		}
	}
	if c.activeAtom, err = xprop.Atm(xu, "_NET_ACTIVE_WINDOW"); err != nil {
		c.Close()
		return nil, fmt.Errorf("intern _NET_ACTIVE_WINDOW: %w", err)
	}
	if err := c.RefreshKeymap(); err != nil {
		c.Close()
		return nil, err
	}
	err = xproto.ChangeWindowAttributesChecked(c.conn, c.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("select root window events: %w", err)
	}
	c.logger.Debug("Connected to X server",
		"display", opts.Display, "root", fmt.Sprintf("0x%x", c.root),
		"method", string(c.method), "keysyms", c.keymap.Len())
	return c, nil
}

// RefreshKeymap reloads the keysym to keycode table. Grabs made before the
// refresh keep their old keycode until ungrabbed.
func (c *Conn) RefreshKeymap() error {
	km, err := loadKeymap(c)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.keymap = km
	c.mu.Unlock()
	return nil
}

// Root returns the root window id.
func (c *Conn) Root() uint32 {
	return uint32(c.root)
}

// Close closes the X connection. NextEvent returns ErrClosed afterwards.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}
