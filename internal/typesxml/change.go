package typesxml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Change replaces exactly one field of a type. The set of changes is closed:
// one implementation per field.
type Change interface {
	apply(t *Type)
	// Field returns the field name as used in types.xml.
	Field() string
}

type (
	SetName     struct{ Name string }
	SetNominal  struct{ Nominal *uint8 }
	SetLifetime struct{ Lifetime uint32 }
	SetRestock  struct{ Restock *uint32 }
	SetMin      struct{ Min uint8 }
	SetQuantmin struct{ Quantmin *int64 }
	SetQuantmax struct{ Quantmax int64 }
	SetCost     struct{ Cost *uint32 }
	SetCategory struct{ Category *Named }
	SetUsages   struct{ Usages []Named }
	SetValues   struct{ Values []Named }
)

// SetFlag changes a single flag, leaving the others untouched.
type SetFlag struct {
	Flag  Flag
	Value bool
}

func (c SetName) apply(t *Type) { t.SetName(c.Name) }
func (c SetNominal) apply(t *Type) { t.SetNominal(c.Nominal) }
func (c SetLifetime) apply(t *Type) { t.SetLifetime(c.Lifetime) }
func (c SetRestock) apply(t *Type) { t.SetRestock(c.Restock) }
func (c SetMin) apply(t *Type) { t.SetMin(c.Min) }
func (c SetQuantmin) apply(t *Type) { t.SetQuantmin(c.Quantmin) }
func (c SetQuantmax) apply(t *Type) { t.SetQuantmax(c.Quantmax) }
func (c SetCost) apply(t *Type) { t.SetCost(c.Cost) }
func (c SetFlag) apply(t *Type) { t.Flags().Set(c.Flag, c.Value) }
func (c SetCategory) apply(t *Type) { t.SetCategory(c.Category) }
func (c SetUsages) apply(t *Type) { t.SetUsages(c.Usages) }
func (c SetValues) apply(t *Type) { t.SetValues(c.Values) }

func (SetName) Field() string { return "name" }
func (SetNominal) Field() string { return "nominal" }
func (SetLifetime) Field() string { return "lifetime" }
func (SetRestock) Field() string { return "restock" }
func (SetMin) Field() string { return "min" }
func (SetQuantmin) Field() string { return "quantmin" }
func (SetQuantmax) Field() string { return "quantmax" }
func (SetCost) Field() string { return "cost" }
func (c SetFlag) Field() string { return "flags/" + c.Flag.String() }
func (SetCategory) Field() string { return "category" }
func (SetUsages) Field() string { return "usage" }
func (SetValues) Field() string { return "value" }

// ParseChange builds a change from a field name and its textual arguments.
//
// Optional fields (nominal, restock, quantmin, cost, category) are unset
// when no argument is given. usages and values take any number of names.
// flags takes a flag name and a boolean:
//
//	ParseChange("nominal", []string{"10"})
//	ParseChange("flags", []string{"count_in_map", "true"})
//	ParseChange("usages", []string{"Farm", "Village"})
func ParseChange(field string, args []string) (Change, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	switch field {
	case "name":
		s, err := exactlyOne(field, args)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, errors.New("name: must not be empty")
		}
		if err := CheckName(s); err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		return SetName{Name: s}, nil
	case "nominal":
		v, err := optionalArg(field, args, func(s string) (uint8, error) {
			n, err := strconv.ParseUint(s, 10, 8)
			return uint8(n), err
		})
		return wrap(SetNominal{Nominal: v}, err)
	case "lifetime":
		n, err := requiredArg(field, args, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 32) })
		return wrap(SetLifetime{Lifetime: uint32(n)}, err)
	case "restock":
		v, err := optionalArg(field, args, func(s string) (uint32, error) {
			n, err := strconv.ParseUint(s, 10, 32)
			return uint32(n), err
		})
		return wrap(SetRestock{Restock: v}, err)
	case "min":
		n, err := requiredArg(field, args, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 8) })
		return wrap(SetMin{Min: uint8(n)}, err)
	case "quantmin":
		v, err := optionalArg(field, args, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		return wrap(SetQuantmin{Quantmin: v}, err)
	case "quantmax":
		n, err := requiredArg(field, args, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		return wrap(SetQuantmax{Quantmax: n}, err)
	case "cost":
		v, err := optionalArg(field, args, func(s string) (uint32, error) {
			n, err := strconv.ParseUint(s, 10, 32)
			return uint32(n), err
		})
		return wrap(SetCost{Cost: v}, err)
	case "flags", "flag":
		if len(args) != 2 {
			return nil, fmt.Errorf("flags: expected <flag> <bool>, got %d arguments", len(args))
		}
		flag, err := ParseFlag(args[0])
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return nil, fmt.Errorf("flags: %s: invalid boolean %q", flag, args[1])
		}
		return SetFlag{Flag: flag, Value: v}, nil
	case "category":
		v, err := optionalArg(field, args, func(s string) (Named, error) { return NewNamed(s), CheckName(s) })
		return wrap(SetCategory{Category: v}, err)
	case "usages", "usage":
		list := NewNamedList(args...)
		if err := checkNames(list); err != nil {
			return nil, fmt.Errorf("usage: %w", err)
		}
		return SetUsages{Usages: list}, nil
	case "values", "value":
		list := NewNamedList(args...)
		if err := checkNames(list); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		return SetValues{Values: list}, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

func wrap(c Change, err error) (Change, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func exactlyOne(field string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", field, len(args))
	}
	return args[0], nil
}

func requiredArg[T any](field string, args []string, parse func(string) (T, error)) (T, error) {
	var zero T
	s, err := exactlyOne(field, args)
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, fmt.Errorf("%s: invalid value %q: %w", field, s, unwrapNumError(err))
	}
	return v, nil
}

func optionalArg[T any](field string, args []string, parse func(string) (T, error)) (*T, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		v, err := parse(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid value %q: %w", field, args[0], unwrapNumError(err))
		}
		return &v, nil
	}
	return nil, fmt.Errorf("%s: expected at most 1 argument, got %d", field, len(args))
}
