package format

import (
	"errors"
	"fmt"

	"github.com/udisondev/typesxml/internal/typesxml"
)

// document is the JSON/YAML shape of a types collection. Field names and
// optionality follow types.xml.
type document struct {
	Types []entry `json:"types" yaml:"types"`
}

type entry struct {
	Name     string     `json:"name" yaml:"name"`
	Nominal  *uint8     `json:"nominal,omitempty" yaml:"nominal,omitempty"`
	Lifetime uint32     `json:"lifetime" yaml:"lifetime"`
	Restock  *uint32    `json:"restock,omitempty" yaml:"restock,omitempty"`
	Min      uint8      `json:"min" yaml:"min"`
	Quantmin *int64     `json:"quantmin,omitempty" yaml:"quantmin,omitempty"`
	Quantmax int64      `json:"quantmax" yaml:"quantmax"`
	Cost     *uint32    `json:"cost,omitempty" yaml:"cost,omitempty"`
	Flags    entryFlags `json:"flags" yaml:"flags"`
	Category *string    `json:"category,omitempty" yaml:"category,omitempty"`
	Usages   []string   `json:"usages,omitempty" yaml:"usages,omitempty"`
	Values   []string   `json:"values,omitempty" yaml:"values,omitempty"`
}

type entryFlags struct {
	CountInCargo   bool `json:"count_in_cargo" yaml:"count_in_cargo"`
	CountInHoarder bool `json:"count_in_hoarder" yaml:"count_in_hoarder"`
	CountInMap     bool `json:"count_in_map" yaml:"count_in_map"`
	CountInPlayer  bool `json:"count_in_player" yaml:"count_in_player"`
	Crafted        bool `json:"crafted" yaml:"crafted"`
	Deloot         bool `json:"deloot" yaml:"deloot"`
}

func newDocument(types *typesxml.Types) document {
	all := types.All()
	doc := document{Types: make([]entry, len(all))}
	for i, t := range all {
		f := t.Flags()
		e := entry{
			Name:     t.Name(),
			Nominal:  t.Nominal(),
			Lifetime: t.Lifetime(),
			Restock:  t.Restock(),
			Min:      t.Min(),
			Quantmin: t.Quantmin(),
			Quantmax: t.Quantmax(),
			Cost:     t.Cost(),
			Flags: entryFlags{
				CountInCargo:   f.CountInCargo(),
				CountInHoarder: f.CountInHoarder(),
				CountInMap:     f.CountInMap(),
				CountInPlayer:  f.CountInPlayer(),
				Crafted:        f.Crafted(),
				Deloot:         f.Deloot(),
			},
			Usages: names(t.Usages()),
			Values: names(t.Values()),
		}
		if c := t.Category(); c != nil {
			name := c.Name()
			e.Category = &name
		}
		doc.Types[i] = e
	}
	return doc
}

// types converts the document into a collection. Entries without a name
// reject the document.
func (d document) types() (*typesxml.Types, error) {
	out := typesxml.NewTypes()
	var errs []error
	for i, e := range d.Types {
		if e.Name == "" {
			errs = append(errs, &typesxml.ValidationError{Index: i, Field: "name"})
			continue
		}
		out.Add(e.toType())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%d invalid types: %w", len(errs), errors.Join(errs...))
	}
	return out, nil
}

func (e entry) toType() *typesxml.Type {
	t := typesxml.NewType(e.Name)
	t.SetNominal(e.Nominal)
	t.SetLifetime(e.Lifetime)
	t.SetRestock(e.Restock)
	t.SetMin(e.Min)
	t.SetQuantmin(e.Quantmin)
	t.SetQuantmax(e.Quantmax)
	t.SetCost(e.Cost)

	f := t.Flags()
	f.SetCountInCargo(e.Flags.CountInCargo)
	f.SetCountInHoarder(e.Flags.CountInHoarder)
	f.SetCountInMap(e.Flags.CountInMap)
	f.SetCountInPlayer(e.Flags.CountInPlayer)
	f.SetCrafted(e.Flags.Crafted)
	f.SetDeloot(e.Flags.Deloot)

	if e.Category != nil {
		c := typesxml.NewNamed(*e.Category)
		t.SetCategory(&c)
	}
	t.SetUsages(typesxml.NewNamedList(e.Usages...))
	t.SetValues(typesxml.NewNamedList(e.Values...))
	return t
}

func names(list []typesxml.Named) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Name()
	}
	return out
}
