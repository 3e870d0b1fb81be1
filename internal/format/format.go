// Package format selects the encoding of a types file by its extension and
// converts between that encoding and typesxml collections.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/typesxml/internal/typesxml"
)

// Format is an on-disk encoding of a types collection.
type Format int

const (
	XML Format = iota
	JSON
	YAML
)

// ErrLenientUnsupported is returned when lenient decoding is requested
// for a format other than XML.
var ErrLenientUnsupported = errors.New("lenient decoding is only supported for xml")

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FromPath picks the format from the file extension. Unknown extensions are XML.
func FromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return XML
}

// Decode parses data strictly.
func Decode(f Format, data []byte) (*typesxml.Types, error) {
	switch f {
	case JSON:
		var doc document
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, decodeError(err)
		}
		return doc.types()
	case YAML:
		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, decodeError(err)
		}
		return doc.types()
	}
	return typesxml.Parse(data)
}

// DecodeLenient parses XML data, repairing malformed fields.
func DecodeLenient(f Format, data []byte) (*typesxml.Types, error) {
	if f != XML {
		return nil, fmt.Errorf("%s: %w", f, ErrLenientUnsupported)
	}
	return typesxml.ParseLenient(data)
}

// Encode renders types in the given format. XML and JSON are indented with
// size copies of char; YAML always uses its own two-space layout.
func Encode(f Format, types *typesxml.Types, char rune, size int) ([]byte, error) {
	switch f {
	case JSON:
		out, err := json.MarshalIndent(newDocument(types), "", strings.Repeat(string(char), max(size, 0)))
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(out, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(types)); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return types.MarshalIndent(char, size)
}

// decodeError separates values of the wrong type from broken syntax.
func decodeError(err error) error {
	var jsonType *json.UnmarshalTypeError
	var yamlType *yaml.TypeError
	if errors.As(err, &jsonType) || errors.As(err, &yamlType) {
		return fmt.Errorf("%w: %w", typesxml.ErrValidation, err)
	}
	return fmt.Errorf("%w: %w", typesxml.ErrMalformedDocument, err)
}
