package rulefile

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

type yamlFile struct {
	UnknownClass string       `yaml:"unknown_class"`
	Windows      []yamlWindow `yaml:"windows"`
}

type yamlWindow struct {
	ClassOnly *[]string `yaml:"class_only"`
	ClassNot  *[]string `yaml:"class_not"`
	Remaps    yaml.Node `yaml:"remaps"`
}

// parseYAML walks remaps as nodes so mapping key order is preserved.
func parseYAML(data []byte) (*File, error) {
	var raw yamlFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	f := &File{UnknownClass: raw.UnknownClass}
	for i, rw := range raw.Windows {
		w := Window{}
		if rw.ClassOnly != nil {
			w.ClassOnly = append([]string{}, *rw.ClassOnly...)
		}
		if rw.ClassNot != nil {
			w.ClassNot = append([]string{}, *rw.ClassNot...)
		}
		if rw.Remaps.Kind == 0 {
			return nil, fmt.Errorf("windows[%d]: %w", i, ErrMissingRemaps)
		}
		remaps, err := yamlRemaps(&rw.Remaps)
		if err != nil {
			return nil, fmt.Errorf("windows[%d].%w", i, err)
		}
		w.Remaps = remaps
		f.Windows = append(f.Windows, w)
	}
	return f, nil
}

func yamlRemaps(n *yaml.Node) ([]Remap, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("remaps: expected a list, got %s", nodeKind(n))
	}
	var out []Remap
	for j, item := range n.Content {
		// Non-mapping entries are skipped.
		if item.Kind != yaml.MappingNode {
			continue
		}
		for k := 0; k+1 < len(item.Content); k += 2 {
			key, val := item.Content[k], item.Content[k+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("remaps[%d]: key must be a string", j)
			}
			r := Remap{From: key.Value, Item: j}
			switch val.Kind {
			case yaml.ScalarNode:
				r.To = []string{val.Value}
			case yaml.SequenceNode:
				r.Sequence = true
				r.To = make([]string, 0, len(val.Content))
				for _, el := range val.Content {
					if el.Kind != yaml.ScalarNode {
						return nil, fmt.Errorf("remaps[%d] %q: %w", j, key.Value, ErrInvalidTo)
					}
					r.To = append(r.To, el.Value)
				}
			default:
				return nil, fmt.Errorf("remaps[%d] %q: %w", j, key.Value, ErrInvalidTo)
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}
