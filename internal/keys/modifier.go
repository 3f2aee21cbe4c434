package keys

import "strings"

// Modifier is a set of modifier keys held together with a base key.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key (Mod1 on X11).
	ModAlt

	// ModShift indicates the Shift key.
	ModShift

	// ModSuper indicates the Super/Windows key (Mod4 on X11).
	ModSuper
)

// modifierOrder is the order modifiers are pressed in and printed in.
var modifierOrder = []Modifier{ModCtrl, ModAlt, ModShift, ModSuper}

// modifierAliases maps the accepted notation to modifiers. Lookup is exact.
var modifierAliases = map[string]Modifier{
	"C":     ModCtrl,
	"Ctrl":  ModCtrl,
	"M":     ModAlt,
	"Alt":   ModAlt,
	"S":     ModShift,
	"Shift": ModShift,
	"Super": ModSuper,
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Each returns the individual modifiers of m in press order
// (Ctrl, Alt, Shift, Super).
func (m Modifier) Each() []Modifier {
	var out []Modifier
	for _, mod := range modifierOrder {
		if m.Has(mod) {
			out = append(out, mod)
		}
	}
	return out
}

// Keysym returns the keysym of the left-hand physical key for a single
// modifier, or 0 when m is not exactly one modifier.
func (m Modifier) Keysym() Keysym {
	switch m {
	case ModCtrl:
		return XKControlL
	case ModAlt:
		return XKAltL
	case ModShift:
		return XKShiftL
	case ModSuper:
		return XKSuperL
	}
	return 0
}

// Prefix returns the canonical notation prefix, e.g. "C-M-" for Ctrl+Alt.
func (m Modifier) Prefix() string {
	var b strings.Builder
	for _, mod := range m.Each() {
		b.WriteString(mod.shortName())
		b.WriteByte('-')
	}
	return b.String()
}

// String returns a human-readable form like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	for _, mod := range m.Each() {
		parts = append(parts, mod.longName())
	}
	return strings.Join(parts, "+")
}

func (m Modifier) shortName() string {
	switch m {
	case ModCtrl:
		return "C"
	case ModAlt:
		return "M"
	case ModShift:
		return "S"
	case ModSuper:
		return "Super"
	}
	return ""
}

func (m Modifier) longName() string {
	switch m {
	case ModCtrl:
		return "Ctrl"
	case ModAlt:
		return "Alt"
	case ModShift:
		return "Shift"
	case ModSuper:
		return "Super"
	}
	return ""
}

// ModifierFromAlias returns the modifier for a notation alias.
func ModifierFromAlias(alias string) (Modifier, bool) {
	m, ok := modifierAliases[alias]
	return m, ok
}
