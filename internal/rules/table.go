// Package rules holds the remap rule table and resolves it into the
// effective mapping for the focused window.
package rules

import (
	"strings"

	"github.com/Alia5/xremap/internal/keys"
)

// Action is the ordered, non-empty key sequence emitted for a binding.
type Action []keys.Key

func (a Action) String() string {
	if len(a) == 1 {
		return a[0].String()
	}
	parts := make([]string, len(a))
	for i, k := range a {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether both actions emit the same keys in the same order.
func (a Action) Equal(o Action) bool {
	if len(a) != len(o) {
		return false
	}
	for i := range a {
		if a[i] != o[i] {
			return false
		}
	}
	return true
}

// Binding maps one input key to an action.
type Binding struct {
	From keys.Key
	To   Action
}

// Group is a window-filtered list of bindings in declaration order.
type Group struct {
	Filter   WindowFilter
	Bindings []Binding
}

// Table is the ordered, read-only set of rule groups.
type Table struct {
	groups []Group
	policy UnknownClassPolicy
}

// NewTable returns a table over groups. The slice is not copied; callers
// must not modify it afterwards.
func NewTable(policy UnknownClassPolicy, groups ...Group) *Table {
	return &Table{groups: groups, policy: policy}
}

// Groups returns the groups in declaration order.
func (t *Table) Groups() []Group {
	return t.groups
}

// Policy returns the table's unknown class policy.
func (t *Table) Policy() UnknownClassPolicy {
	return t.policy
}

// BindingCount returns the number of bindings over all groups.
func (t *Table) BindingCount() int {
	n := 0
	for _, g := range t.groups {
		n += len(g.Bindings)
	}
	return n
}
