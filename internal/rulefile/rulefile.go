// Package rulefile loads remap rule files into their in-memory form.
//
// The loader only checks structure (lists where lists are expected, strings
// where strings are expected). Key tokens are validated later, when the rule
// table is built.
package rulefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a parsed rule file.
type File struct {
	// UnknownClass selects how class_not groups behave when the focused
	// window has no detectable class ("any-only" or "exclude").
	UnknownClass string
	Windows      []Window
}

// Window is one window group. A nil class list means the key was absent.
type Window struct {
	ClassOnly []string
	ClassNot  []string
	Remaps    []Remap
}

// Remap binds one input token to one or more output tokens.
type Remap struct {
	From string
	To   []string
	// Item is the index of the remaps entry this binding came from.
	// One entry may hold several bindings.
	Item int
	// Sequence is true when the output was written as a list, even a
	// one-element one.
	Sequence bool
}

// Format identifies a rule file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported rule file format")
	ErrMissingRemaps     = errors.New("missing field remaps")
	ErrInvalidTo         = errors.New("invalid 'to' value")
)

// FormatFromPath picks the format by file extension. Unknown extensions
// are treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads and parses the rule file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}
	f, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

