package typesxml

import (
	"errors"
	"strconv"
	"strings"
)

// validator converts one permissive record strictly, collecting every failure.
type validator struct {
	typeName string
	index    int
	errs     []error
}

func (v *validator) fail(field, value string, err error) {
	v.errs = append(v.errs, &ValidationError{
		Type:  v.typeName,
		Index: v.index,
		Field: field,
		Value: value,
		Err:   err,
	})
}

func (v *validator) required(field string, s *string) (string, bool) {
	if s == nil {
		v.fail(field, "", nil)
		return "", false
	}
	return strings.TrimSpace(*s), true
}

func (v *validator) parseUint(field string, s *string, bits int) uint64 {
	str, ok := v.required(field, s)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(str, 10, bits)
	if err != nil {
		v.fail(field, *s, unwrapNumError(err))
	}
	return n
}

func (v *validator) parseInt(field string, s *string) int64 {
	str, ok := v.required(field, s)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		v.fail(field, *s, unwrapNumError(err))
	}
	return n
}

func (v *validator) parseBool(field string, s *string) bool {
	str, ok := v.required(field, s)
	if !ok {
		return false
	}
	switch str {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	v.fail(field, *s, errors.New("expected 0, 1, true or false"))
	return false
}

func (v *validator) named(field string, rn *rawNamed) (Named, bool) {
	if rn.Name == nil {
		v.fail(field+"/@name", "", nil)
		return Named{}, false
	}
	return NewNamed(*rn.Name), true
}

func (v *validator) namedList(field string, list []rawNamed) []Named {
	var out []Named
	for i := range list {
		if n, ok := v.named(field, &list[i]); ok {
			out = append(out, n)
		}
	}
	return out
}

// validateType converts a permissive record strictly. All failures of the
// record are returned joined; the returned type is only meaningful when err is nil.
func validateType(index int, rt rawType) (*Type, error) {
	v := &validator{index: index}
	if rt.Name == nil || *rt.Name == "" {
		v.fail("@name", "", nil)
	} else {
		v.typeName = *rt.Name
	}

	t := &Type{name: v.typeName}
	if rt.Nominal != nil {
		n := uint8(v.parseUint("nominal", rt.Nominal, 8))
		t.nominal = &n
	}
	t.lifetime = uint32(v.parseUint("lifetime", rt.Lifetime, 32))
	if rt.Restock != nil {
		n := uint32(v.parseUint("restock", rt.Restock, 32))
		t.restock = &n
	}
	t.min = uint8(v.parseUint("min", rt.Min, 8))
	if rt.Quantmin != nil {
		n := v.parseInt("quantmin", rt.Quantmin)
		t.quantmin = &n
	}
	t.quantmax = v.parseInt("quantmax", rt.Quantmax)
	if rt.Cost != nil {
		n := uint32(v.parseUint("cost", rt.Cost, 32))
		t.cost = &n
	}

	if rt.Flags == nil {
		v.fail("flags", "", nil)
	} else {
		for _, flag := range AllFlags {
			t.flags.Set(flag, v.parseBool("flags/@"+flag.String(), rt.Flags.byFlag(flag)))
		}
	}

	if rt.Category != nil {
		if c, ok := v.named("category", rt.Category); ok {
			t.category = &c
		}
	}
	t.usages = v.namedList("usage", rt.Usages)
	t.values = v.namedList("value", rt.Values)

	if len(v.errs) > 0 {
		return nil, errors.Join(v.errs...)
	}
	return t, nil
}

func unwrapNumError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
