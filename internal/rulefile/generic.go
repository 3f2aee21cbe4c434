package rulefile

import (
	"encoding/json"
	"fmt"
	"sort"

	toml "github.com/pelletier/go-toml"
)

func parseTOML(data []byte) (*File, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return fromMap(tree.ToMap())
}

func parseJSON(data []byte) (*File, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return fromMap(root)
}

// fromMap converts a decoded TOML or JSON document. Neither format keeps
// key order inside an object, so a remap entry holding several bindings is
// read in sorted key order; list order is always preserved.
func fromMap(root map[string]any) (*File, error) {
	f := &File{}
	if v, ok := root["unknown_class"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unknown_class: expected a string")
		}
		f.UnknownClass = s
	}

	windows, err := asList(root["windows"])
	if err != nil {
		return nil, fmt.Errorf("windows: %w", err)
	}
	for i, rw := range windows {
		m, ok := rw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("windows[%d]: expected a table", i)
		}
		w, err := windowFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("windows[%d].%w", i, err)
		}
		f.Windows = append(f.Windows, w)
	}
	return f, nil
}

func windowFromMap(m map[string]any) (Window, error) {
	var w Window
	var err error
	if v, ok := m["class_only"]; ok {
		if w.ClassOnly, err = asStrings(v); err != nil {
			return w, fmt.Errorf("class_only: %w", err)
		}
	}
	if v, ok := m["class_not"]; ok {
		if w.ClassNot, err = asStrings(v); err != nil {
			return w, fmt.Errorf("class_not: %w", err)
		}
	}

	rv, ok := m["remaps"]
	if !ok {
		return w, ErrMissingRemaps
	}
	items, err := asList(rv)
	if err != nil {
		return w, fmt.Errorf("remaps: %w", err)
	}
	for j, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		froms := make([]string, 0, len(entry))
		for from := range entry {
			froms = append(froms, from)
		}
		sort.Strings(froms)
		for _, from := range froms {
			r := Remap{From: from, Item: j}
			switch to := entry[from].(type) {
			case string:
				r.To = []string{to}
			case []any, []string:
				r.Sequence = true
				if r.To, err = asStrings(to); err != nil {
					return w, fmt.Errorf("remaps[%d] %q: %w", j, from, ErrInvalidTo)
				}
			default:
				return w, fmt.Errorf("remaps[%d] %q: %w", j, from, ErrInvalidTo)
			}
			w.Remaps = append(w.Remaps, r)
		}
	}
	return w, nil
}

func asList(v any) ([]any, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return l, nil
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", v)
}

func asStrings(v any) ([]string, error) {
	switch l := v.(type) {
	case []string:
		return append([]string{}, l...), nil
	case []any:
		out := make([]string, 0, len(l))
		for _, el := range l {
			s, ok := el.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, got %T", el)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list of strings, got %T", v)
}
