package typesxml

import (
	"maps"
	"slices"
	"strings"
)

// Merge combines base and ext by name. A type defined in both is taken
// from ext as a whole; fields are never mixed. The result holds copies
// of the records sorted by name, so neither input is modified.
func Merge(base, ext *Types) *Types {
	byName := make(map[string]*Type, base.Len()+ext.Len())
	for _, t := range base.types {
		byName[t.name] = t
	}
	for _, t := range ext.types {
		byName[t.name] = t
	}

	names := slices.Sorted(maps.Keys(byName))
	out := &Types{types: make([]*Type, 0, len(names))}
	for _, name := range names {
		out.types = append(out.types, byName[name].Clone())
	}
	return out
}

// MergeAll merges each extension into base in order.
func MergeAll(base *Types, exts ...*Types) *Types {
	out := Merge(base, &Types{})
	for _, ext := range exts {
		out = Merge(out, ext)
	}
	return out
}

// Sort orders the collection by name in place.
func (c *Types) Sort() {
	slices.SortFunc(c.types, func(a, b *Type) int {
		return strings.Compare(a.name, b.name)
	})
}
