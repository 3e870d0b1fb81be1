package typesxml

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateName     = errors.New("duplicate type name")
	ErrNotFound          = errors.New("no such type")
	ErrInvalidName       = errors.New("name is not valid XML text")
)

// ValidationError describes a field that failed strict parsing.
type ValidationError struct {
	Type  string // type name, empty when the name itself is missing
	Index int    // position of the <type> element in the document
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	who := fmt.Sprintf("type %q", e.Type)
	if e.Type == "" {
		who = fmt.Sprintf("type #%d", e.Index+1)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: field %s: %q: %v", who, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: field %s: missing", who, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
