package typesxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// --- Wire XML model (output) ---
//
// Field order here is the element order in the file.

type xmlTypes struct {
	XMLName xml.Name  `xml:"types"`
	Types   []xmlType `xml:"type"`
}

type xmlType struct {
	XMLName  xml.Name   `xml:"type"`
	Name     string     `xml:"name,attr"`
	Nominal  *uint8     `xml:"nominal,omitempty"`
	Lifetime uint32     `xml:"lifetime"`
	Restock  *uint32    `xml:"restock,omitempty"`
	Min      uint8      `xml:"min"`
	Quantmin *int64     `xml:"quantmin,omitempty"`
	Quantmax int64      `xml:"quantmax"`
	Cost     *uint32    `xml:"cost,omitempty"`
	Flags    xmlFlags   `xml:"flags"`
	Category *xmlNamed  `xml:"category,omitempty"`
	Usages   []xmlNamed `xml:"usage"`
	Values   []xmlNamed `xml:"value"`
}

type xmlFlags struct {
	CountInCargo   uint8 `xml:"count_in_cargo,attr"`
	CountInHoarder uint8 `xml:"count_in_hoarder,attr"`
	CountInMap     uint8 `xml:"count_in_map,attr"`
	CountInPlayer  uint8 `xml:"count_in_player,attr"`
	Crafted        uint8 `xml:"crafted,attr"`
	Deloot         uint8 `xml:"deloot,attr"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

// Default indentation of written files.
const (
	DefaultIndentChar = ' '
	DefaultIndentSize = 4
)

// Marshal renders the collection as a compact types.xml document.
// Names that XML cannot hold fail with ErrInvalidName.
func (c *Types) Marshal() ([]byte, error) {
	if err := c.checkNames(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(strings.TrimSuffix(xml.Header, "\n"))
	if err := encodeXML(&buf, c.wire(), ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent renders the collection as a types.xml document where each
// nesting level is indented by size copies of char. The output ends with a newline.
func (c *Types) MarshalIndent(char rune, size int) ([]byte, error) {
	if err := c.checkNames(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := encodeXML(&buf, c.wire(), indentString(char, size)); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Marshal renders a single type element without an XML declaration.
func (t *Type) Marshal() ([]byte, error) {
	if err := t.checkNames(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeXML(&buf, t.wire(), ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent renders a single type element, indented.
func (t *Type) MarshalIndent(char rune, size int) ([]byte, error) {
	if err := t.checkNames(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeXML(&buf, t.wire(), indentString(char, size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Types) checkNames() error {
	for _, t := range c.types {
		if err := t.checkNames(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Type) checkNames() error {
	err := CheckName(t.name)
	if err == nil && t.category != nil {
		err = CheckName(t.category.name)
	}
	if err == nil {
		err = checkNames(t.usages)
	}
	if err == nil {
		err = checkNames(t.values)
	}
	if err != nil {
		return fmt.Errorf("type %q: %w", t.name, err)
	}
	return nil
}

func encodeXML(buf *bytes.Buffer, v any, indent string) error {
	enc := xml.NewEncoder(buf)
	if indent != "" {
		enc.Indent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	return nil
}

func indentString(char rune, size int) string {
	if size <= 0 {
		return ""
	}
	return strings.Repeat(string(char), size)
}

func (c *Types) wire() xmlTypes {
	doc := xmlTypes{Types: make([]xmlType, len(c.types))}
	for i, t := range c.types {
		doc.Types[i] = t.wire()
	}
	return doc
}

func (t *Type) wire() xmlType {
	x := xmlType{
		Name:     t.name,
		Nominal:  t.nominal,
		Lifetime: t.lifetime,
		Restock:  t.restock,
		Min:      t.min,
		Quantmin: t.quantmin,
		Quantmax: t.quantmax,
		Cost:     t.cost,
		Flags: xmlFlags{
			CountInCargo:   boolToUint8(t.flags.countInCargo),
			CountInHoarder: boolToUint8(t.flags.countInHoarder),
			CountInMap:     boolToUint8(t.flags.countInMap),
			CountInPlayer:  boolToUint8(t.flags.countInPlayer),
			Crafted:        boolToUint8(t.flags.crafted),
			Deloot:         boolToUint8(t.flags.deloot),
		},
		Usages: wireNamed(t.usages),
		Values: wireNamed(t.values),
	}
	if t.category != nil {
		x.Category = &xmlNamed{Name: t.category.name}
	}
	return x
}

func wireNamed(list []Named) []xmlNamed {
	if len(list) == 0 {
		return nil
	}
	out := make([]xmlNamed, len(list))
	for i, n := range list {
		out[i] = xmlNamed{Name: n.name}
	}
	return out
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
