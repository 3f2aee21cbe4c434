package rules

import (
	"sort"
	"strings"
)

// FilterKind tags the WindowFilter variant.
type FilterKind uint8

const (
	// FilterAny applies to every window, including an unknown one.
	FilterAny FilterKind = iota
	// FilterInclude applies when the window class or instance is in the set.
	FilterInclude
	// FilterExclude applies when neither the class nor the instance is in the set.
	FilterExclude
)

func (k FilterKind) String() string {
	switch k {
	case FilterAny:
		return "any"
	case FilterInclude:
		return "class_only"
	case FilterExclude:
		return "class_not"
	}
	return "unknown"
}

// UnknownClassPolicy decides whether exclude filters apply to a window whose
// class could not be detected.
type UnknownClassPolicy uint8

const (
	// UnknownClassAnyOnly applies only FilterAny groups to unknown windows.
	UnknownClassAnyOnly UnknownClassPolicy = iota
	// UnknownClassApplyExclude also applies FilterExclude groups, since an
	// unknown class cannot be in any exclusion set.
	UnknownClassApplyExclude
)

func (p UnknownClassPolicy) String() string {
	if p == UnknownClassApplyExclude {
		return "exclude"
	}
	return "any-only"
}

// WindowFilter selects the windows a rule group applies to. Class names are
// stored lowercase.
type WindowFilter struct {
	Kind    FilterKind
	classes map[string]struct{}
}

// Any returns a filter matching every window.
func Any() WindowFilter {
	return WindowFilter{Kind: FilterAny}
}

// Include returns a filter matching the given classes (case-insensitive).
func Include(classes ...string) WindowFilter {
	return WindowFilter{Kind: FilterInclude, classes: classSet(classes)}
}

// Exclude returns a filter matching every class except the given ones.
func Exclude(classes ...string) WindowFilter {
	return WindowFilter{Kind: FilterExclude, classes: classSet(classes)}
}

func classSet(classes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}

// Matches reports whether the filter applies to a window known by names,
// typically its WM_CLASS class and instance. A window matches a set when
// any of its names is in it. Empty names are ignored, and a window with no
// names has an unknown class.
func (f WindowFilter) Matches(policy UnknownClassPolicy, names ...string) bool {
	if f.Kind == FilterAny {
		return true
	}
	known, listed := false, false
	for _, n := range names {
		if n == "" {
			continue
		}
		known = true
		if _, ok := f.classes[strings.ToLower(n)]; ok {
			listed = true
		}
	}
	switch f.Kind {
	case FilterInclude:
		return listed
	case FilterExclude:
		if !known {
			return policy == UnknownClassApplyExclude
		}
		return !listed
	}
	return false
}

// Classes returns the filter's class names in sorted order.
func (f WindowFilter) Classes() []string {
	out := make([]string, 0, len(f.classes))
	for c := range f.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (f WindowFilter) String() string {
	if f.Kind == FilterAny {
		return "any"
	}
	return f.Kind.String() + "[" + strings.Join(f.Classes(), ",") + "]"
}
