package typesxml

import (
	"fmt"
	"strings"
)

// String renders the type for the terminal, one field per line:
//
//	name    :	Apple
//	lifetime:	3600
//	...
//
// Unset optional fields are skipped. The output is not meant to be parsed.
func (t *Type) String() string {
	var b strings.Builder
	line := func(label string, v any) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-8s:\t%v", label, v)
	}

	line("name", t.name)
	if t.nominal != nil {
		line("nominal", *t.nominal)
	}
	line("lifetime", t.lifetime)
	if t.restock != nil {
		line("restock", *t.restock)
	}
	line("min", t.min)
	if t.quantmin != nil {
		line("quantmin", *t.quantmin)
	}
	line("quantmax", t.quantmax)
	if t.cost != nil {
		line("cost", *t.cost)
	}
	line("flags", t.flags)
	if t.category != nil {
		line("category", t.category.name)
	}
	if t.usages != nil {
		line("usages", formatList(t.usages))
	}
	if t.values != nil {
		line("values", formatList(t.values))
	}
	return b.String()
}

// String renders every type of the collection separated by a blank line.
func (c *Types) String() string {
	parts := make([]string, len(c.types))
	for i, t := range c.types {
		parts[i] = t.String()
	}
	return strings.Join(parts, "\n\n")
}

func formatList(list []Named) string {
	return "[ " + strings.Join(namesOf(list), ", ") + " ]"
}
