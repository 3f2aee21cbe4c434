// Package keys parses key notation into canonical keys.
//
// A canonical key is an X keysym for the base key plus a set of modifiers:
//
//   - Key: the (base keysym, modifier set) pair used everywhere else
//   - Modifier: bitset over Ctrl, Alt, Shift and Super
//   - Keysym: X11 keysym value of a physical key
//
// # Notation
//
// Tokens are written as dash separated segments where every segment but the
// last is a modifier alias and the last one is a key name:
//
//   - "a", "F5", "BackSpace"
//   - "C-b", "M-f", "S-Tab", "Super-l"
//   - "Ctrl-Home", "Ctrl-Shift-Left", "C-M-Delete"
//
// Key names are case sensitive ("a" and "A" are different keysyms), modifier
// aliases are matched exactly.
package keys
