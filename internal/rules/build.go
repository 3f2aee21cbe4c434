package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/rulefile"
)

// Build errors
var (
	ErrInvalidKeyToken   = errors.New("invalid key token")
	ErrConflictingFilter = errors.New("class_only and class_not are mutually exclusive")
	ErrInvalidPolicy     = errors.New("invalid unknown_class policy")
)

// ConfigError reports a rule file that cannot be turned into a table.
// Position locates the offending element, e.g. "windows[1].remaps[0].to[2]".
type ConfigError struct {
	Kind     error
	Position string
	Reason   string
	Err      error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Position != "" {
		b.WriteString(e.Position)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Unwrap exposes both the error kind and the underlying parse error.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ParsePolicy converts the rule file spelling of an unknown class policy.
func ParsePolicy(s string) (UnknownClassPolicy, error) {
	switch strings.ToLower(s) {
	case "", "any-only", "any":
		return UnknownClassAnyOnly, nil
	case "exclude", "class_not":
		return UnknownClassApplyExclude, nil
	}
	return UnknownClassAnyOnly, &ConfigError{Kind: ErrInvalidPolicy, Position: "unknown_class", Reason: fmt.Sprintf("%q", s)}
}

// Build turns a parsed rule file into a Table, keeping the declaration
// order of groups and of bindings within each group.
func Build(f *rulefile.File) (*Table, error) {
	policy, err := ParsePolicy(f.UnknownClass)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(f.Windows))
	for i, w := range f.Windows {
		pos := fmt.Sprintf("windows[%d]", i)

		var filter WindowFilter
		switch {
		case w.ClassOnly != nil && w.ClassNot != nil:
			return nil, &ConfigError{Kind: ErrConflictingFilter, Position: pos}
		case w.ClassOnly != nil:
			filter = Include(w.ClassOnly...)
		case w.ClassNot != nil:
			filter = Exclude(w.ClassNot...)
		default:
			filter = Any()
		}

		g := Group{Filter: filter, Bindings: make([]Binding, 0, len(w.Remaps))}
		for _, r := range w.Remaps {
			b, err := buildBinding(fmt.Sprintf("%s.remaps[%d]", pos, r.Item), r)
			if err != nil {
				return nil, err
			}
			g.Bindings = append(g.Bindings, b)
		}
		groups = append(groups, g)
	}
	return NewTable(policy, groups...), nil
}

func buildBinding(pos string, r rulefile.Remap) (Binding, error) {
	from, err := keys.Parse(r.From)
	if err != nil {
		return Binding{}, invalidToken(pos+".from", err)
	}
	if len(r.To) == 0 {
		return Binding{}, &ConfigError{Kind: ErrInvalidKeyToken, Position: pos + ".to", Reason: "empty output sequence"}
	}

	to, k, err := keys.ParseAll(r.To)
	if err != nil {
		p := pos + ".to"
		if r.Sequence {
			p = fmt.Sprintf("%s[%d]", p, k)
		}
		return Binding{}, invalidToken(p, err)
	}
	return Binding{From: from, To: Action(to)}, nil
}

func invalidToken(pos string, err error) error {
	return &ConfigError{Kind: ErrInvalidKeyToken, Position: pos, Reason: err.Error(), Err: err}
}
