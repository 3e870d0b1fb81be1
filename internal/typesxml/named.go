package typesxml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Named is a reference to a named entry of the economy config
// (category, usage area or value tier).
type Named struct {
	name string
}

// NewNamed creates a named reference.
func NewNamed(name string) Named {
	return Named{name: name}
}

// NewNamedList converts plain names into references, preserving order.
// Returns nil for an empty input.
func NewNamedList(names ...string) []Named {
	if len(names) == 0 {
		return nil
	}
	out := make([]Named, len(names))
	for i, n := range names {
		out[i] = Named{name: n}
	}
	return out
}

// Name returns the referenced name.
func (n Named) Name() string {
	return n.name
}

// Compare orders references by name.
func (n Named) Compare(other Named) int {
	return strings.Compare(n.name, other.name)
}

func (n Named) String() string {
	return n.name
}

func namesOf(list []Named) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.name
	}
	return out
}

// CheckName returns ErrInvalidName if name cannot be written to an XML
// attribute unchanged: invalid UTF-8 or a character outside the XML Char range.
func CheckName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %q contains %U", ErrInvalidName, name, r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func checkNames(list []Named) error {
	for _, n := range list {
		if err := CheckName(n.name); err != nil {
			return err
		}
	}
	return nil
}
