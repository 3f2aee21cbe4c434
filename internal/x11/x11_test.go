package x11

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xremap/internal/keys"
	xlog "github.com/Alia5/xremap/internal/log"
	"github.com/Alia5/xremap/internal/remap"
)

func TestModifierMasks(t *testing.T) {
	all := keys.ModCtrl | keys.ModAlt | keys.ModShift | keys.ModSuper
	assert.Equal(t, uint16(xproto.ModMaskControl|xproto.ModMask1|xproto.ModMaskShift|xproto.ModMask4), ToMask(all))
	assert.Equal(t, uint16(0), ToMask(keys.ModNone))
	assert.Equal(t, keys.ModCtrl|keys.ModShift, FromMask(xproto.ModMaskControl|xproto.ModMaskShift|xproto.ModMaskLock))

	for _, m := range []keys.Modifier{keys.ModCtrl, keys.ModAlt | keys.ModSuper, all} {
		assert.Equal(t, m, FromMask(ToMask(m)))
	}
}

func TestCleanStateDropsLocks(t *testing.T) {
	state := uint16(xproto.ModMaskControl | numLockMask | capsLockMask | xproto.KeyButMaskButton1)
	assert.Equal(t, uint16(xproto.ModMaskControl), CleanState(state))
	assert.Len(t, lockVariants, 4)
}

func TestNewKeymap(t *testing.T) {
	// keycodes 8..11, two columns each
	table := []xproto.Keysym{
		0x61, 0x41, // a A
		0x62, 0x42, // b B
		0xff51, 0, // Left
		0x61, 0, // a again on a higher keycode
	}
	km := NewKeymap(8, 2, table)

	code, err := km.Keycode(keys.Keysym('a'))
	require.NoError(t, err)
	assert.Equal(t, xproto.Keycode(8), code)

	code, err = km.Keycode(keys.Keysym('B'))
	require.NoError(t, err)
	assert.Equal(t, xproto.Keycode(9), code)

	code, err = km.Keycode(keys.XKLeft)
	require.NoError(t, err)
	assert.Equal(t, xproto.Keycode(10), code)

	_, err = km.Keycode(keys.XKF12)
	assert.ErrorIs(t, err, ErrNoKeycode)

	assert.Equal(t, keys.Keysym('b'), km.Keysym(9))
	assert.Equal(t, 4, km.Len())

	assert.Zero(t, NewKeymap(8, 0, table).Len())
}

func TestTranslate(t *testing.T) {
	slots := map[slot]keys.Key{
		{code: 56, mask: xproto.ModMaskControl}: keys.MustParse("C-b"),
		{code: 25, mask: xproto.ModMask1}:       keys.MustParse("M-w"),
	}

	press, ok := translate(slots, xproto.KeyPressEvent{Detail: 56, State: xproto.ModMaskControl | numLockMask})
	require.True(t, ok)
	assert.Equal(t, remap.KeyPress{Key: keys.MustParse("C-b"), Keycode: 56, State: xproto.ModMaskControl | numLockMask}, press)

	_, ok = translate(slots, xproto.KeyPressEvent{Detail: 56, State: xproto.ModMaskControl | xproto.ModMaskShift})
	assert.False(t, ok)

	_, ok = translate(slots, xproto.KeyPressEvent{Detail: 25, State: xproto.ModMask1 | capsLockMask})
	assert.True(t, ok)
}

func TestGrabSlotOwnership(t *testing.T) {
	// Keycode 38 carries 'a' and 'A' in its two columns.
	km := NewKeymap(38, 2, []xproto.Keysym{'a', 'A'})
	lower := keys.MustParse("C-a")
	upper := keys.MustParse("C-A")
	require.Equal(t, lower, upper)

	code, err := km.Keycode(lower.Sym)
	require.NoError(t, err)
	assert.EqualValues(t, 38, code)

	s := slot{code: code, mask: ToMask(lower.Mods)}
	slots := map[slot]keys.Key{s: lower}
	assert.NoError(t, claimable(slots, s, upper))

	other := keys.Key{Sym: 'A', Mods: keys.ModCtrl}
	err = claimable(slots, s, other)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorContains(t, err, "keycode 38")

	_, ok := translate(slots, xproto.KeyPressEvent{Detail: 38, State: xproto.ModMaskControl})
	assert.True(t, ok)
}

func TestKeyEventBytes(t *testing.T) {
	data, mask := keyEventBytes(56, true, xproto.ModMaskShift, 0x1e0, 0x2a00007)
	require.Len(t, data, 32)
	assert.Equal(t, byte(xproto.KeyPress), data[0])
	assert.Equal(t, byte(56), data[1])
	assert.Equal(t, uint32(xproto.EventMaskKeyPress), mask)

	ev := xproto.KeyPressEventNew(data).(xproto.KeyPressEvent)
	assert.Equal(t, xproto.Window(0x2a00007), ev.Event)
	assert.Equal(t, xproto.Window(0x1e0), ev.Root)
	assert.Equal(t, uint16(xproto.ModMaskShift), ev.State)
	assert.True(t, ev.SameScreen)

	data, mask = keyEventBytes(56, false, 0, 0x1e0, 0x2a00007)
	assert.Equal(t, byte(xproto.KeyRelease), data[0])
	assert.Equal(t, uint32(xproto.EventMaskKeyRelease), mask)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodSendEvent, m)

	m, err = ParseMethod("XTest")
	require.NoError(t, err)
	assert.Equal(t, MethodXTest, m)

	_, err = ParseMethod("uinput")
	assert.Error(t, err)
}

func testConn(raw io.Writer) *Conn {
	return &Conn{
		root:       0x1e0,
		activeAtom: 300,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		raw:        xlog.NewRaw(raw),
		keymap:     NewKeymap(56, 2, []xproto.Keysym{'b', 'B', 'c', 'C'}),
		grabbed:    map[keys.Key]xproto.Keycode{keys.MustParse("C-b"): 56},
		slots:      map[slot]keys.Key{{code: 56, mask: xproto.ModMaskControl}: keys.MustParse("C-b")},
	}
}

func TestConvert(t *testing.T) {
	var raw bytes.Buffer
	c := testConn(&raw)

	ev, ok := c.convert(xproto.KeyPressEvent{Detail: 56, State: xproto.ModMaskControl})
	require.True(t, ok)
	assert.Equal(t, remap.KeyEvent{Press: remap.KeyPress{Key: keys.MustParse("C-b"), Keycode: 56, State: xproto.ModMaskControl}}, ev)
	assert.True(t, strings.Contains(raw.String(), "X->xremap event: 32 bytes"))

	_, ok = c.convert(xproto.KeyPressEvent{Detail: 57})
	assert.False(t, ok)

	ev, ok = c.convert(xproto.MappingNotifyEvent{Request: xproto.MappingKeyboard})
	require.True(t, ok)
	assert.Equal(t, remap.KeymapEvent{}, ev)

	_, ok = c.convert(xproto.MappingNotifyEvent{Request: xproto.MappingPointer})
	assert.False(t, ok)

	_, ok = c.convert(xproto.PropertyNotifyEvent{Window: 0x1e0, Atom: 301})
	assert.False(t, ok)
	_, ok = c.convert(xproto.PropertyNotifyEvent{Window: 0x2a00007, Atom: 300})
	assert.False(t, ok)
}

func TestConvertNamesUnknownPress(t *testing.T) {
	var logs bytes.Buffer
	c := testConn(io.Discard)
	c.logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, ok := c.convert(xproto.KeyPressEvent{Detail: 57, State: xproto.ModMaskControl | xproto.ModMaskShift | capsLockMask})
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "Key press for unknown grab")
	assert.Contains(t, logs.String(), "key=C-S-c")
}
