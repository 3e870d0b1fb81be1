package typesxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>
<types>
    <type name="Ammo_9x19">
        <nominal>30</nominal>
        <lifetime>7200</lifetime>
        <restock>1800</restock>
        <min>15</min>
        <quantmin>-1</quantmin>
        <quantmax>-1</quantmax>
        <cost>100</cost>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
        <category name="weapons"/>
        <usage name="Police"/>
        <usage name="Military"/>
        <value name="Tier2"/>
        <value name="Tier3"/>
    </type>
    <type name="Apple">
        <nominal>10</nominal>
        <lifetime>3600</lifetime>
        <min>5</min>
        <quantmax>0</quantmax>
        <flags count_in_cargo="1" count_in_hoarder="1" count_in_map="1" count_in_player="1" crafted="0" deloot="0"/>
        <category name="food"/>
        <usage name="Farm"/>
        <usage name="Farm"/>
    </type>
</types>
`

func mustParse(t testing.TB, doc string) *Types {
	t.Helper()
	types, err := Parse([]byte(doc))
	require.NoError(t, err)
	return types
}

func u8(v uint8) *uint8 { return &v }
func u32(v uint32) *uint32 { return &v }
func i64(v int64) *int64 { return &v }

// doc wraps type elements into a types document.
func doc(types ...string) string {
	s := "<types>"
	for _, t := range types {
		s += t
	}
	return s + "</types>"
}

func fruit(name string, nominal uint8) *Type {
	t := NewType(name)
	t.SetNominal(&nominal)
	t.SetLifetime(3600)
	return t
}
