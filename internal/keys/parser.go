package keys

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptyToken      = errors.New("empty key token")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownKeyName  = errors.New("unknown key name")
)

// ParseError reports which segment of a token could not be parsed.
type ParseError struct {
	Token   string
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v %q in %q", e.Err, e.Segment, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a key token such as "C-b" or "Ctrl-Home" into a Key.
//
// Every dash separated segment except the last must be a modifier alias
// (C, Ctrl, M, Alt, S, Shift, Super); the last segment is looked up in the
// key name table. Parsing is pure: the same token always yields the same
// result.
func Parse(token string) (Key, error) {
	if token == "" {
		return Key{}, &ParseError{Token: token, Err: ErrEmptyToken}
	}

	parts := strings.Split(token, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := ModifierFromAlias(p)
		if !ok {
			return Key{}, &ParseError{Token: token, Segment: p, Err: ErrUnknownModifier}
		}
		mods = mods.With(mod)
	}

	sym, ok := KeysymFromName(keyPart)
	if !ok {
		return Key{}, &ParseError{Token: token, Segment: keyPart, Err: ErrUnknownKeyName}
	}

	return Key{Sym: sym, Mods: mods}, nil
}

// MustParse parses a key token and panics on error.
// Use only for known-valid tokens in tests and static tables.
func MustParse(token string) Key {
	k, err := Parse(token)
	if err != nil {
		panic("invalid key token: " + token + ": " + err.Error())
	}
	return k
}

// ParseAll parses tokens in order, stopping at the first failure. The index
// of the failing token is returned alongside the error.
func ParseAll(tokens []string) ([]Key, int, error) {
	out := make([]Key, 0, len(tokens))
	for i, t := range tokens {
		k, err := Parse(t)
		if err != nil {
			return nil, i, err
		}
		out = append(out, k)
	}
	return out, -1, nil
}
