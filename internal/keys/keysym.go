package keys

// Keysym is an X11 keysym value.
type Keysym uint32

// Modifier keysyms. These are never valid base keys.
const (
	XKShiftL    Keysym = 0xffe1
	XKShiftR    Keysym = 0xffe2
	XKControlL  Keysym = 0xffe3
	XKControlR  Keysym = 0xffe4
	XKCapsLock  Keysym = 0xffe5
	XKShiftLock Keysym = 0xffe6
	XKMetaL     Keysym = 0xffe7
	XKMetaR     Keysym = 0xffe8
	XKAltL      Keysym = 0xffe9
	XKAltR      Keysym = 0xffea
	XKSuperL    Keysym = 0xffeb
	XKSuperR    Keysym = 0xffec
	XKHyperL    Keysym = 0xffed
	XKHyperR    Keysym = 0xffee
	XKNumLock   Keysym = 0xff7f
	XKLevel3    Keysym = 0xfe03 // ISO_Level3_Shift
)

// Editing and cursor keysyms
const (
	XKBackSpace Keysym = 0xff08
	XKTab       Keysym = 0xff09
	XKReturn    Keysym = 0xff0d
	XKPause     Keysym = 0xff13
	XKEscape    Keysym = 0xff1b
	XKHome      Keysym = 0xff50
	XKLeft      Keysym = 0xff51
	XKUp        Keysym = 0xff52
	XKRight     Keysym = 0xff53
	XKDown      Keysym = 0xff54
	XKPrior     Keysym = 0xff55 // Page Up
	XKNext      Keysym = 0xff56 // Page Down
	XKEnd       Keysym = 0xff57
	XKPrint     Keysym = 0xff61
	XKInsert    Keysym = 0xff63
	XKMenu      Keysym = 0xff67
	XKDelete    Keysym = 0xffff
)

// Function keys
const (
	XKF1  Keysym = 0xffbe
	XKF12 Keysym = 0xffc9
)

// Latin-1 keysyms equal their character code.
const (
	XKSpace        Keysym = 0x0020
	XKApostrophe   Keysym = 0x0027
	XKComma        Keysym = 0x002c
	XKMinus        Keysym = 0x002d
	XKPeriod       Keysym = 0x002e
	XKSlash        Keysym = 0x002f
	XKSemicolon    Keysym = 0x003b
	XKEqual        Keysym = 0x003d
	XKBracketLeft  Keysym = 0x005b
	XKBackslash    Keysym = 0x005c
	XKBracketRight Keysym = 0x005d
	XKGrave        Keysym = 0x0060
)

// IsModifier reports whether s is the keysym of a modifier or lock key.
func (s Keysym) IsModifier() bool {
	switch s {
	case XKShiftL, XKShiftR, XKControlL, XKControlR, XKCapsLock, XKShiftLock,
		XKMetaL, XKMetaR, XKAltL, XKAltR, XKSuperL, XKSuperR, XKHyperL, XKHyperR,
		XKNumLock, XKLevel3:
		return true
	}
	return false
}
