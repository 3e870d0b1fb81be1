package typesxml

import (
	"log/slog"
	"strconv"
	"strings"
)

// coerceType converts a permissive record into a validated one.
// It never fails: unparsable required numbers fall back to zero,
// unparsable optional numbers become unset, bad flags become false
// and named references without a name are dropped.
func coerceType(rt rawType) *Type {
	name := derefOr(rt.Name, "")
	t := &Type{name: name}

	t.nominal = optionalUint[uint8](name, "nominal", rt.Nominal, 8)
	t.lifetime = uint32(requiredUint(name, "lifetime", rt.Lifetime, 32))
	t.restock = optionalUint[uint32](name, "restock", rt.Restock, 32)
	t.min = uint8(requiredUint(name, "min", rt.Min, 8))
	t.quantmin = optionalInt(name, "quantmin", rt.Quantmin)
	t.quantmax = requiredInt(name, "quantmax", rt.Quantmax)
	t.cost = optionalUint[uint32](name, "cost", rt.Cost, 32)
	if rt.Flags != nil {
		t.flags = coerceFlags(rt.Flags)
	}
	if rt.Category != nil && rt.Category.Name != nil {
		c := NewNamed(*rt.Category.Name)
		t.category = &c
	}
	t.usages = coerceNamed(rt.Usages)
	t.values = coerceNamed(rt.Values)
	return t
}

func coerceFlags(rf *rawFlags) Flags {
	var f Flags
	for _, flag := range AllFlags {
		if v := rf.byFlag(flag); v != nil {
			f.Set(flag, parseBoolOrFalse(*v))
		}
	}
	return f
}

func coerceNamed(list []rawNamed) []Named {
	var out []Named
	for _, rn := range list {
		if rn.Name == nil {
			continue
		}
		out = append(out, NewNamed(*rn.Name))
	}
	return out
}

func requiredUint(typeName, field string, s *string, bits int) uint64 {
	if s == nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(*s), 10, bits)
	if err != nil {
		slog.Debug("field reset to default", "type", typeName, "field", field, "value", *s)
		return 0
	}
	return n
}

func requiredInt(typeName, field string, s *string) int64 {
	if s == nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		slog.Debug("field reset to default", "type", typeName, "field", field, "value", *s)
		return 0
	}
	return n
}

func optionalUint[T uint8 | uint32](typeName, field string, s *string, bits int) *T {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(*s), 10, bits)
	if err != nil {
		slog.Debug("field dropped", "type", typeName, "field", field, "value", *s)
		return nil
	}
	v := T(n)
	return &v
}

func optionalInt(typeName, field string, s *string) *int64 {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		slog.Debug("field dropped", "type", typeName, "field", field, "value", *s)
		return nil
	}
	return &n
}

// parseBoolOrFalse accepts "true"/"false" or an integer (nonzero is true).
// Anything else is false.
func parseBoolOrFalse(s string) bool {
	s = strings.TrimSpace(s)
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return n != 0
}
