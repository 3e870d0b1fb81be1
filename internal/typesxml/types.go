package typesxml

import (
	"fmt"
	"regexp"
	"strings"
)

// Types is an ordered collection of types with unique names.
// It exclusively owns the records it holds.
type Types struct {
	types []*Type
}

// NewTypes builds a collection, skipping types whose name is already present.
func NewTypes(types ...*Type) *Types {
	c := &Types{types: make([]*Type, 0, len(types))}
	for _, t := range types {
		c.Add(t)
	}
	return c
}

// Len returns the number of types in the collection.
func (c *Types) Len() int {
	return len(c.types)
}

// All returns the types in collection order.
// The slice is a copy; the records are not.
func (c *Types) All() []*Type {
	out := make([]*Type, len(c.types))
	copy(out, c.types)
	return out
}

// Names returns the type names in collection order.
func (c *Types) Names() []string {
	out := make([]string, len(c.types))
	for i, t := range c.types {
		out[i] = t.name
	}
	return out
}

// Add appends t unless a type with the same name already exists.
// Reports whether t was added.
func (c *Types) Add(t *Type) bool {
	if t == nil || c.indexOf(t.name) >= 0 {
		return false
	}
	c.types = append(c.types, t)
	return true
}

// Remove deletes the type with exactly the given name and returns it.
func (c *Types) Remove(name string) (*Type, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return nil, false
	}
	t := c.types[i]
	c.types = append(c.types[:i], c.types[i+1:]...)
	return t, true
}

// Get returns the type with exactly the given name.
func (c *Types) Get(name string) (*Type, bool) {
	if i := c.indexOf(name); i >= 0 {
		return c.types[i], true
	}
	return nil, false
}

// Lookup returns the first type whose name matches case-insensitively.
func (c *Types) Lookup(name string) (*Type, bool) {
	for _, t := range c.types {
		if strings.EqualFold(t.name, name) {
			return t, true
		}
	}
	return nil, false
}

// Match returns every type whose name matches re, in collection order.
func (c *Types) Match(re *regexp.Regexp) []*Type {
	return c.Filter(func(t *Type) bool { return re.MatchString(t.name) })
}

// Filter returns every type for which keep reports true, in collection order.
func (c *Types) Filter(keep func(*Type) bool) []*Type {
	var out []*Type
	for _, t := range c.types {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Apply finds a type by case-insensitive name and applies the change to it.
func (c *Types) Apply(name string, ch Change) error {
	t, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if rn, ok := ch.(SetName); ok && rn.Name != t.name {
		if _, taken := c.Get(rn.Name); taken {
			return fmt.Errorf("renaming %s: %w: %s", t.name, ErrDuplicateName, rn.Name)
		}
	}
	ch.apply(t)
	return nil
}

// Clone returns a deep copy of the collection.
func (c *Types) Clone() *Types {
	out := &Types{types: make([]*Type, len(c.types))}
	for i, t := range c.types {
		out.types[i] = t.Clone()
	}
	return out
}

// Equal reports whether both collections hold equal types in the same order.
func (c *Types) Equal(other *Types) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.types) != len(other.types) {
		return false
	}
	for i := range c.types {
		if !c.types[i].Equal(other.types[i]) {
			return false
		}
	}
	return true
}

func (c *Types) indexOf(name string) int {
	for i, t := range c.types {
		if t.name == name {
			return i
		}
	}
	return -1
}
