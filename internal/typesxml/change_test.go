package typesxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChange(t *testing.T) {
	food := NewNamed("food")
	tests := []struct {
		field string
		args  []string
		want  Change
	}{
		{"name", []string{"Pear"}, SetName{Name: "Pear"}},
		{"nominal", []string{"10"}, SetNominal{Nominal: u8(10)}},
		{"nominal", nil, SetNominal{}},
		{"lifetime", []string{"3600"}, SetLifetime{Lifetime: 3600}},
		{"restock", []string{"0"}, SetRestock{Restock: u32(0)}},
		{"restock", nil, SetRestock{}},
		{"min", []string{"255"}, SetMin{Min: 255}},
		{"quantmin", []string{"-1"}, SetQuantmin{Quantmin: i64(-1)}},
		{"quantmax", []string{"-1"}, SetQuantmax{Quantmax: -1}},
		{"cost", []string{"100"}, SetCost{Cost: u32(100)}},
		{"cost", nil, SetCost{}},
		{"flags", []string{"count_in_map", "true"}, SetFlag{Flag: FlagCountInMap, Value: true}},
		{"flags", []string{"DeLoot", "0"}, SetFlag{Flag: FlagDeloot, Value: false}},
		{"category", []string{"food"}, SetCategory{Category: &food}},
		{"category", nil, SetCategory{}},
		{"usages", []string{"Farm", "Village"}, SetUsages{Usages: NewNamedList("Farm", "Village")}},
		{"usages", nil, SetUsages{}},
		{"Values", []string{"Tier1"}, SetValues{Values: NewNamedList("Tier1")}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := ParseChange(tt.field, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChange_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		args  []string
	}{
		{"unknown field", "weight", []string{"1"}},
		{"nominal overflow", "nominal", []string{"256"}},
		{"min negative", "min", []string{"-1"}},
		{"lifetime missing", "lifetime", nil},
		{"lifetime garbage", "lifetime", []string{"soon"}},
		{"too many", "cost", []string{"1", "2"}},
		{"empty name", "name", []string{""}},
		{"flag arity", "flags", []string{"crafted"}},
		{"unknown flag", "flags", []string{"count_in_sky", "1"}},
		{"bad bool", "flags", []string{"crafted", "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChange(tt.field, tt.args)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestParseChange_RejectsNonXMLNames(t *testing.T) {
	tests := []struct {
		field string
		args  []string
	}{
		{"name", []string{"A\x01B"}},
		{"name", []string{"bad\xffutf8"}},
		{"category", []string{"fo\x00od"}},
		{"usages", []string{"Farm", "Vil\x1blage"}},
		{"values", []string{"Tier\uFFFE"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := ParseChange(tt.field, tt.args)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.Nil(t, got)
		})
	}
}

func TestCheckName(t *testing.T) {
	assert.NoError(t, CheckName("Ammo_9x19"))
	assert.NoError(t, CheckName("Яблоко\tзелёное"))
	assert.NoError(t, CheckName(""))
	assert.ErrorIs(t, CheckName("A\x01B"), ErrInvalidName)
	assert.ErrorIs(t, CheckName(string([]byte{0xc3})), ErrInvalidName)
}

func TestChange_Field(t *testing.T) {
	assert.Equal(t, "flags/crafted", SetFlag{Flag: FlagCrafted}.Field())
	assert.Equal(t, "usage", SetUsages{}.Field())
}

func TestParseFlag(t *testing.T) {
	for _, flag := range AllFlags {
		got, err := ParseFlag(flag.String())
		require.NoError(t, err)
		assert.Equal(t, flag, got)
	}

	got, err := ParseFlag("count-in-player")
	require.NoError(t, err)
	assert.Equal(t, FlagCountInPlayer, got)
}
