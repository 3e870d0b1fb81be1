package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/typesxml/internal/typesxml"
)

const sampleXML = `<types>
  <type name="Apple">
    <nominal>10</nominal><lifetime>3600</lifetime><min>5</min><quantmin>-1</quantmin><quantmax>-1</quantmax>
    <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="1"/>
    <category name="food"/><usage name="Farm"/><usage name="Village"/><value name="Tier1"/>
  </type>
  <type name="Bare"><lifetime>1</lifetime><min>0</min><quantmax>0</quantmax>
    <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="0" count_in_player="0" crafted="0" deloot="0"/>
  </type>
</types>`

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"types.xml", XML},
		{"db/TYPES.XML", XML},
		{"types", XML},
		{"types.json", JSON},
		{"types.yaml", YAML},
		{"types.YML", YAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	original, err := Decode(XML, []byte(sampleXML))
	require.NoError(t, err)

	for _, f := range []Format{XML, JSON, YAML} {
		t.Run(f.String(), func(t *testing.T) {
			out, err := Encode(f, original, ' ', 2)
			require.NoError(t, err)

			back, err := Decode(f, out)
			require.NoError(t, err)
			assert.True(t, original.Equal(back), "format %s changed the model:\n%s", f, out)
		})
	}
}

func TestEncode_JSONOmitsAbsentOptionals(t *testing.T) {
	types := typesxml.NewTypes(typesxml.NewType("Bare"))
	out, err := Encode(JSON, types, ' ', 2)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"lifetime": 0`)
	assert.NotContains(t, s, "nominal")
	assert.NotContains(t, s, "usages")
}

func TestDecode_YAML(t *testing.T) {
	data := `types:
  - name: Apple
    nominal: 10
    lifetime: 3600
    min: 5
    quantmax: -1
    flags:
      count_in_map: true
    category: food
    usages: [Farm, Farm]
`
	types, err := Decode(YAML, []byte(data))
	require.NoError(t, err)

	apple, ok := types.Get("Apple")
	require.True(t, ok)
	require.NotNil(t, apple.Nominal())
	assert.Equal(t, uint8(10), *apple.Nominal())
	assert.Equal(t, int64(-1), apple.Quantmax())
	assert.True(t, apple.Flags().CountInMap())
	assert.Equal(t, "food", apple.Category().Name())
	assert.Equal(t, typesxml.NewNamedList("Farm", "Farm"), apple.Usages())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   error
	}{
		{"json syntax", JSON, `{"types": [`, typesxml.ErrMalformedDocument},
		{"json overflow", JSON, `{"types": [{"name": "A", "nominal": 300}]}`, typesxml.ErrValidation},
		{"json missing name", JSON, `{"types": [{"lifetime": 1}]}`, typesxml.ErrValidation},
		{"yaml syntax", YAML, "types: [\n", typesxml.ErrMalformedDocument},
		{"yaml wrong type", YAML, "types:\n  - name: A\n    lifetime: soon\n", typesxml.ErrValidation},
		{"xml", XML, "<types>", typesxml.ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	types, err := DecodeLenient(XML, []byte(`<types><type name="A"><lifetime>x</lifetime></type></types>`))
	require.NoError(t, err)
	assert.Equal(t, 1, types.Len())

	_, err = DecodeLenient(YAML, []byte("types: []"))
	assert.ErrorIs(t, err, ErrLenientUnsupported)
}

func TestEncode_XMLUsesIndent(t *testing.T) {
	types := typesxml.NewTypes(typesxml.NewType("A"))
	out, err := Encode(XML, types, '\t', 1)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "\n\t<type name=\"A\">"))
}
