package typesxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// --- Permissive XML model ---
//
// Mirrors the types.xml tree with every field optional and string-typed.
// Decoding into it only fails when the document itself is not well-formed.

type rawTypes struct {
	XMLName xml.Name  `xml:"types"`
	Types   []rawType `xml:"type"`
}

type rawType struct {
	Name     *string    `xml:"name,attr"`
	Nominal  *string    `xml:"nominal"`
	Lifetime *string    `xml:"lifetime"`
	Restock  *string    `xml:"restock"`
	Min      *string    `xml:"min"`
	Quantmin *string    `xml:"quantmin"`
	Quantmax *string    `xml:"quantmax"`
	Cost     *string    `xml:"cost"`
	Flags    *rawFlags  `xml:"flags"`
	Category *rawNamed  `xml:"category"`
	Usages   []rawNamed `xml:"usage"`
	Values   []rawNamed `xml:"value"`
}

type rawFlags struct {
	CountInCargo   *string `xml:"count_in_cargo,attr"`
	CountInHoarder *string `xml:"count_in_hoarder,attr"`
	CountInMap     *string `xml:"count_in_map,attr"`
	CountInPlayer  *string `xml:"count_in_player,attr"`
	Crafted        *string `xml:"crafted,attr"`
	Deloot         *string `xml:"deloot,attr"`
}

type rawNamed struct {
	Name *string `xml:"name,attr"`
}

// byFlag returns the raw attribute value for a flag.
func (f *rawFlags) byFlag(flag Flag) *string {
	switch flag {
	case FlagCountInCargo:
		return f.CountInCargo
	case FlagCountInHoarder:
		return f.CountInHoarder
	case FlagCountInMap:
		return f.CountInMap
	case FlagCountInPlayer:
		return f.CountInPlayer
	case FlagCrafted:
		return f.Crafted
	case FlagDeloot:
		return f.Deloot
	}
	return nil
}

// decodeRaw decodes the root element and then reads the rest of the input,
// which may hold only whitespace, comments and processing instructions.
func decodeRaw(data []byte) (*rawTypes, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	var doc rawTypes
	if err := d.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("%w: element <%s> after the root element", ErrMalformedDocument, tok.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return nil, fmt.Errorf("%w: text after the root element", ErrMalformedDocument)
			}
		}
	}
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
