package coerce

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

func TestValueFromASTUntyped(t *testing.T) {
	vars := map[string]any{"x": 3, "u": Unset}

	for _, tc := range []struct {
		src  string
		want any
	}{
		{"null", nil},
		{"42", 42},
		{"-1.5e2", -150.0},
		{`"str"`, "str"},
		{`"""block"""`, "block"},
		{"RED", "RED"},
		{"true", true},
		{"[1, [false], null]", []any{1, []any{false}, nil}},
		{"{a: 1, b: {c: $x}, a: 2}", map[string]any{"a": 2, "b": map[string]any{"c": 3}}},
	} {
		got := ValueFromASTUntyped(literal(t, tc.src), vars)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", tc.src, diff)
		}
	}

	require.True(t, IsUnset(ValueFromASTUntyped(literal(t, "$u"), vars)))
	require.True(t, IsUnset(ValueFromASTUntyped(literal(t, "$missing"), vars)))
	require.True(t, IsUnset(ValueFromASTUntyped(literal(t, "$x"), nil)))
	require.Nil(t, ValueFromASTUntyped(nil, nil))
}

func TestValueToLiteral_RoundTrip(t *testing.T) {
	c := newTestCoercer(t)
	jsonType := schema.NamedType("JSON")

	for _, value := range []any{
		nil,
		1,
		-2.5,
		3.0,
		1e21,
		"text",
		true,
		[]any{1, "a", nil, []any{}},
		map[string]any{"k": []any{map[string]any{"n": 1.5}}, "empty": map[string]any{}},
	} {
		lit, err := c.ValueToLiteral(value, jsonType)
		require.NoError(t, err)
		// Reparse the printed form too; it must denote the same value.
		reparsed := literal(t, lit.String())
		for _, l := range []any{ValueFromASTUntyped(lit, nil), ValueFromASTUntyped(reparsed, nil)} {
			if diff := cmp.Diff(value, l); diff != "" {
				t.Fatalf("round trip of %v (-want +got):\n%s", value, diff)
			}
		}
	}
}

func TestValueToLiteral_TypedRoundTrip(t *testing.T) {
	c := newTestCoercer(t)
	filter := typeRef(t, c.Schema(), "[Filter!]")

	value := []any{
		map[string]any{"color": "BLUE", "tags": []any{"a", "b"}, "limit": 3, "point": map[string]any{"x": 1, "y": 2}},
		map[string]any{"color": "RED", "limit": nil},
	}
	lit, err := c.ValueToLiteral(value, filter)
	require.NoError(t, err)

	got, err := c.CoerceLiteral(lit, filter, nil, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(value, got); diff != "" {
		t.Fatalf("typed round trip (-want +got):\n%s", diff)
	}
}
