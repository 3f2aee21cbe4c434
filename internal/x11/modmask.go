package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/Alia5/xremap/internal/keys"
)

// relevantMask keeps the modifier bits a remap can depend on.
const relevantMask = xproto.ModMaskControl | xproto.ModMaskShift | xproto.ModMask1 | xproto.ModMask4

// Lock bits: CapsLock and NumLock (Mod2 on practically every layout).
const (
	capsLockMask = xproto.ModMaskLock
	numLockMask  = xproto.ModMask2
)

// lockVariants are ORed into every grab so remaps keep working with the
// lock keys on.
var lockVariants = []uint16{0, numLockMask, capsLockMask, numLockMask | capsLockMask}

var modMasks = []struct {
	mod  keys.Modifier
	mask uint16
}{
	{keys.ModCtrl, xproto.ModMaskControl},
	{keys.ModAlt, xproto.ModMask1},
	{keys.ModShift, xproto.ModMaskShift},
	{keys.ModSuper, xproto.ModMask4},
}

// ToMask converts a modifier set to an X modifier mask.
func ToMask(m keys.Modifier) uint16 {
	var mask uint16
	for _, mm := range modMasks {
		if m.Has(mm.mod) {
			mask |= mm.mask
		}
	}
	return mask
}

// FromMask converts an X event state to a modifier set, ignoring lock and
// button bits.
func FromMask(state uint16) keys.Modifier {
	var m keys.Modifier
	for _, mm := range modMasks {
		if state&mm.mask != 0 {
			m = m.With(mm.mod)
		}
	}
	return m
}

// CleanState drops every bit outside relevantMask.
func CleanState(state uint16) uint16 {
	return state & relevantMask
}
