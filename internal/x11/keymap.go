package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Alia5/xremap/internal/keys"
)

// ErrNoKeycode is returned for a keysym that no key produces.
var ErrNoKeycode = errors.New("no keycode for keysym")

// Keymap resolves keysyms to keycodes for the current keyboard mapping.
type Keymap struct {
	min   xproto.Keycode
	codes map[keys.Keysym]xproto.Keycode
	syms  map[xproto.Keycode]keys.Keysym
}

// NewKeymap indexes a GetKeyboardMapping reply that starts at min. For a
// keysym reachable from several keycodes the lowest keycode wins, and
// within a keycode an earlier column wins.
func NewKeymap(min xproto.Keycode, perKeycode int, table []xproto.Keysym) *Keymap {
	km := &Keymap{
		min:   min,
		codes: make(map[keys.Keysym]xproto.Keycode),
		syms:  make(map[xproto.Keycode]keys.Keysym),
	}
	if perKeycode <= 0 {
		return km
	}
	for i := 0; i+perKeycode <= len(table); i += perKeycode {
		code := min + xproto.Keycode(i/perKeycode)
		for col, sym := range table[i : i+perKeycode] {
			if sym == 0 {
				continue
			}
			ks := keys.Keysym(sym)
			if _, ok := km.codes[ks]; !ok {
				km.codes[ks] = code
			}
			if col == 0 {
				km.syms[code] = ks
			}
		}
	}
	return km
}

// Keycode returns the keycode that produces sym.
func (km *Keymap) Keycode(sym keys.Keysym) (xproto.Keycode, error) {
	code, ok := km.codes[sym]
	if !ok {
		return 0, fmt.Errorf("%w %s", ErrNoKeycode, sym.Name())
	}
	return code, nil
}

// Keysym returns the unshifted keysym of code.
func (km *Keymap) Keysym(code xproto.Keycode) keys.Keysym {
	return km.syms[code]
}

// Len returns the number of distinct keysyms in the mapping.
func (km *Keymap) Len() int {
	return len(km.codes)
}

func loadKeymap(c *Conn) (*Keymap, error) {
	setup := xproto.Setup(c.conn)
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(c.conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	return NewKeymap(setup.MinKeycode, int(reply.KeysymsPerKeycode), reply.Keysyms), nil
}
