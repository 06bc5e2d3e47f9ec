package hclfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name string
		in   cty.Value
		want any
	}{
		{name: "string", in: cty.StringVal("cn"), want: "cn"},
		{name: "bool", in: cty.True, want: true},
		{name: "whole number", in: cty.NumberIntVal(90), want: int64(90)},
		{name: "fraction", in: cty.NumberFloatVal(0.5), want: 0.5},
		{name: "null", in: cty.NullVal(cty.String), want: nil},
		{name: "tuple", in: cty.TupleVal([]cty.Value{cty.StringVal("ops"), cty.StringVal("dev")}), want: []any{"ops", "dev"}},
		{name: "empty list", in: cty.ListValEmpty(cty.String), want: []any{}},
		{name: "object", in: cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("b")}), want: map[string]any{"a": "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertValue_Unknown(t *testing.T) {
	_, err := convertValue(cty.UnknownVal(cty.String))
	assert.Error(t, err)
}
