package definition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		dataType DataType
		in       any
		want     any
	}{
		{"int from string", Integer, "42", 42},
		{"int trims", Integer, " 7 ", 7},
		{"int alias", "int", "8", 8},
		{"int truncates float text", Integer, "3.9", 3},
		{"int non numeric", Integer, "abc", 0},
		{"int empty", Integer, "", 0},
		{"int nil", Integer, nil, 0},
		{"int from int64", Integer, int64(5), 5},
		{"int from float", Integer, 2.7, 2},
		{"int from bool", Integer, true, 1},
		{"float from string", Float, "1.5", 1.5},
		{"float non numeric", Float, "x", 0.0},
		{"float nan", Float, "NaN", 0.0},
		{"float inf", Float, "+Inf", 0.0},
		{"float from int", Float, 3, 3.0},
		{"float inf value", Float, math.Inf(1), 0.0},
		{"bool empty", Boolean, "", false},
		{"bool zero", Boolean, "0", false},
		{"bool false upper", Boolean, "FALSE", false},
		{"bool off", Boolean, " off ", false},
		{"bool no", Boolean, "no", false},
		{"bool one", Boolean, "1", true},
		{"bool yes", Boolean, "yes", true},
		{"bool any text", Boolean, "enabled", true},
		{"bool alias", "bool", "true", true},
		{"bool nil", Boolean, nil, false},
		{"bool int", Boolean, 0, false},
		{"bool empty list", Boolean, []any{}, false},
		{"json array", JSON, `["a","b"]`, []any{"a", "b"}},
		{"json object", JSON, `{"a":1}`, map[string]any{"a": float64(1)}},
		{"json invalid", JSON, "nope", nil},
		{"json bare string", JSON, `"x"`, nil},
		{"json nil", JSON, nil, nil},
		{"json go slice", Array, []string{"x"}, []any{"x"}},
		{"json number", Array, 5, float64(5)},
		{"string", String, "hello", "hello"},
		{"string default type", "", "hello", "hello"},
		{"string from int", String, 42, "42"},
		{"string from bool", String, true, "true"},
		{"string nil", String, nil, ""},
		{"string from list", String, []any{"a"}, `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dataType.Coerce(tt.in))
		})
	}
}

func TestCoerceIsIdempotent(t *testing.T) {
	samples := []any{
		nil, "", "0", "1", "42", " 3.5 ", "abc", "true", "off",
		`["a"]`, `{"k":[1,2]}`, `"quoted"`, "null",
		0, 1, -7, 2.25, true, false, []any{"x", 1.0}, map[string]any{"k": "v"},
	}

	for _, dataType := range []DataType{String, Integer, Float, Boolean, Array, JSON} {
		for _, v := range samples {
			once := dataType.Coerce(v)
			assert.Equal(t, once, dataType.Coerce(once), "%s(%#v)", dataType, v)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	samples := []any{nil, "", "0", "12", "-3.75", "yes", "no", `["a",{"b":2}]`, 9, 0.1, true, false}

	for _, dataType := range []DataType{String, Integer, Float, Boolean, JSON} {
		for _, v := range samples {
			text, err := dataType.Encode(v)
			require.NoError(t, err)
			assert.Equal(t, dataType.Coerce(v), dataType.Coerce(text), "%s(%#v) = %q", dataType, v, text)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		dataType DataType
		in       any
		want     string
	}{
		{Boolean, true, "1"},
		{Boolean, "off", "0"},
		{Integer, "010", "10"},
		{Float, "2.50", "2.5"},
		{JSON, `[ 1, 2 ]`, "[1,2]"},
		{JSON, "broken", "null"},
		{String, 12, "12"},
	}

	for _, tt := range tests {
		got, err := tt.dataType.Encode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestZero(t *testing.T) {
	assert.Equal(t, 0, Integer.Zero())
	assert.Equal(t, 0.0, Float.Zero())
	assert.Equal(t, false, Boolean.Zero())
	assert.Equal(t, "", String.Zero())
	assert.Nil(t, JSON.Zero())
}
