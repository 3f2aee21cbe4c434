package keys

// Key is a canonical key: a base keysym plus the modifiers held with it.
// Key is comparable and is used directly as a map key.
type Key struct {
	Sym  Keysym
	Mods Modifier
}

// New returns a Key for sym with mods.
func New(sym Keysym, mods Modifier) Key {
	return Key{Sym: sym, Mods: mods}
}

// String returns the canonical notation of k. Parse(k.String()) == k for
// every key produced by Parse.
func (k Key) String() string {
	return k.Mods.Prefix() + k.Sym.Name()
}

// Less orders keys by keysym, then by modifier set.
func (k Key) Less(o Key) bool {
	if k.Sym != o.Sym {
		return k.Sym < o.Sym
	}
	return k.Mods < o.Mods
}

// Compare returns -1, 0 or +1 like cmp.Compare, using the Less ordering.
func Compare(a, b Key) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
