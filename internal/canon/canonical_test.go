package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", int64(-100), "-100"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"string slice", []string{"a", "b"}, `["a","b"]`},
		{"integral float", 10.0, "10"},
		{"fractional float", 11.5, "11.5"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"small float", 0.000001, "0.000001"},
		{"tiny float", 1e-7, "1e-7"},
		{"huge float", 1e21, "1e+21"},
		{"html not escaped", "<a&b>", `"<a&b>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	out, err := MarshalString(map[string]float64{
		"wood":  10,
		"stone": 5,
		"food":  0.25,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"food":0.25,"stone":5,"wood":10}`, out)
}

func TestMarshalNestedObjects(t *testing.T) {
	out, err := MarshalString(map[string]any{
		"z": map[string]any{"b": 1, "a": 2},
		"a": []any{"x", 1.5},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x",1.5],"z":{"a":2,"b":1}}`, out)
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	_, err := Marshal(math.NaN())
	assert.Error(t, err)

	_, err = Marshal(math.Inf(1))
	assert.Error(t, err)

	_, err = Marshal(map[string]any{"x": math.Inf(-1)})
	assert.Error(t, err)
}

func TestMarshalRejectsNilAndUnknown(t *testing.T) {
	_, err := Marshal(nil)
	assert.Error(t, err)

	_, err = Marshal(struct{}{})
	assert.Error(t, err)
}

func TestMarshalLineSeparatorsLiteral(t *testing.T) {
	out, err := MarshalString("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", out)
}

func TestMarshalEscapedBackslashKept(t *testing.T) {
	out, err := MarshalString(`\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, out)
}

func TestMarshalNFC(t *testing.T) {
	// "e" + combining acute accent normalizes to a single code point
	out, err := MarshalString("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", out)
}

func TestMarshalDeterministic(t *testing.T) {
	v := map[string]any{"b": 2, "a": 1, "c": []any{"x", "y"}}
	first, err := Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
