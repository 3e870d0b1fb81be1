package typesxml

import (
	"errors"
	"fmt"
	"log/slog"
)

// Parse decodes a types.xml document strictly. Any field that does not
// fit its type, or any missing required field, rejects the whole document;
// every failure is reported in the returned error.
//
// Repeated names keep the first occurrence.
func Parse(data []byte) (*Types, error) {
	doc, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}

	types := &Types{types: make([]*Type, 0, len(doc.Types))}
	var errs []error
	for i, rt := range doc.Types {
		t, err := validateType(i, rt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		addOrWarn(types, t)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%d invalid types: %w", len(errs), errors.Join(errs...))
	}
	return types, nil
}

// ParseLenient decodes a types.xml document, repairing what it can.
// It fails only when the document is not well-formed XML. Malformed
// fields fall back to defaults and may lose data; types without a name,
// or with an empty one, are dropped.
func ParseLenient(data []byte) (*Types, error) {
	doc, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}

	types := &Types{types: make([]*Type, 0, len(doc.Types))}
	for i, rt := range doc.Types {
		if rt.Name == nil || *rt.Name == "" {
			slog.Warn("dropping type without name", "index", i)
			continue
		}
		addOrWarn(types, coerceType(rt))
	}
	return types, nil
}

func addOrWarn(types *Types, t *Type) {
	if !types.Add(t) {
		slog.Warn("duplicate type ignored", "name", t.Name())
	}
}
