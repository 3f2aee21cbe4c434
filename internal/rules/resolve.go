package rules

import (
	"slices"

	"github.com/Alia5/xremap/internal/keys"
)

// Mapping is the effective set of bindings for one focused window. It is
// built by Resolve and never modified afterwards.
type Mapping struct {
	bindings map[keys.Key]Action
}

// NewMapping builds a Mapping from bindings; later entries win.
func NewMapping(bindings ...Binding) Mapping {
	m := Mapping{bindings: make(map[keys.Key]Action, len(bindings))}
	for _, b := range bindings {
		m.bindings[b.From] = b.To
	}
	return m
}

// Lookup returns the action bound to k.
func (m Mapping) Lookup(k keys.Key) (Action, bool) {
	a, ok := m.bindings[k]
	return a, ok
}

// Len returns the number of bound keys.
func (m Mapping) Len() int {
	return len(m.bindings)
}

// Keys returns the bound keys sorted by keys.Compare.
func (m Mapping) Keys() []keys.Key {
	out := make([]keys.Key, 0, len(m.bindings))
	for k := range m.bindings {
		out = append(out, k)
	}
	slices.SortFunc(out, keys.Compare)
	return out
}

// Bindings returns the mapping as bindings sorted by input key.
func (m Mapping) Bindings() []Binding {
	ks := m.Keys()
	out := make([]Binding, len(ks))
	for i, k := range ks {
		out[i] = Binding{From: k, To: m.bindings[k]}
	}
	return out
}

// Equal reports whether both mappings bind the same keys to the same actions.
func (m Mapping) Equal(o Mapping) bool {
	if len(m.bindings) != len(o.bindings) {
		return false
	}
	for k, a := range m.bindings {
		b, ok := o.bindings[k]
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}

// Resolve computes the effective mapping for a window known by names, its
// class and optionally its instance. No non-empty name means the focused
// window or its class is unknown.
//
// Groups are applied in declaration order and a later applicable group
// overrides an earlier one for the same key, so a global fallback group
// declared first can be specialised by later class groups.
func Resolve(t *Table, names ...string) Mapping {
	m := Mapping{bindings: make(map[keys.Key]Action)}
	for _, g := range t.groups {
		if !g.Filter.Matches(t.policy, names...) {
			continue
		}
		for _, b := range g.Bindings {
			m.bindings[b.From] = b.To
		}
	}
	return m
}

// Applicable returns the indexes of the groups that apply to a window known
// by names.
func Applicable(t *Table, names ...string) []int {
	var out []int
	for i, g := range t.groups {
		if g.Filter.Matches(t.policy, names...) {
			out = append(out, i)
		}
	}
	return out
}
