package keys

import "fmt"

// keyNames maps notation names to keysyms. Lookup is case sensitive.
var keyNames = map[string]Keysym{
	"Left":      XKLeft,
	"Right":     XKRight,
	"Up":        XKUp,
	"Down":      XKDown,
	"Home":      XKHome,
	"End":       XKEnd,
	"Prior":     XKPrior,
	"PageUp":    XKPrior,
	"Next":      XKNext,
	"PageDown":  XKNext,
	"BackSpace": XKBackSpace,
	"Delete":    XKDelete,
	"Insert":    XKInsert,
	"Return":    XKReturn,
	"Tab":       XKTab,
	"Escape":    XKEscape,
	"Pause":     XKPause,
	"Print":     XKPrint,
	"Menu":      XKMenu,
	"space":     XKSpace,

	"apostrophe":   XKApostrophe,
	"comma":        XKComma,
	"minus":        XKMinus,
	"period":       XKPeriod,
	"slash":        XKSlash,
	"semicolon":    XKSemicolon,
	"equal":        XKEqual,
	"bracketleft":  XKBracketLeft,
	"backslash":    XKBackslash,
	"bracketright": XKBracketRight,
	"grave":        XKGrave,
}

// canonicalNames is the reverse table used by Key.String. Aliases such as
// "PageUp" never appear in it.
var canonicalNames = map[Keysym]string{}

func init() {
	for i := 0; i < 12; i++ {
		keyNames[fmt.Sprintf("F%d", i+1)] = XKF1 + Keysym(i)
	}
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = Keysym(c)
		// Uppercase names the same physical key; Shift is a modifier.
		keyNames[string(c-'a'+'A')] = Keysym(c)
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = Keysym(c)
	}
	// Punctuation by glyph. '-' is the segment delimiter and only has a name.
	for _, c := range []rune{'\'', ',', '.', '/', ';', '=', '[', '\\', ']', '`'} {
		keyNames[string(c)] = Keysym(c)
	}

	for name, sym := range keyNames {
		switch {
		case name == "PageUp", name == "PageDown":
			continue
		case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
			continue
		}
		if prev, ok := canonicalNames[sym]; ok && len(prev) >= len(name) {
			// Prefer the spelled-out name over a single glyph.
			continue
		}
		canonicalNames[sym] = name
	}
}

// KeysymFromName returns the keysym for a key name.
func KeysymFromName(name string) (Keysym, bool) {
	sym, ok := keyNames[name]
	return sym, ok
}

// Name returns the canonical notation name of s, or a hex literal when s is
// not in the name table.
func (s Keysym) Name() string {
	if name, ok := canonicalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(s))
}

// KnownNames returns every accepted key name, including aliases.
func KnownNames() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	return names
}
