package coerce

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

func fieldArguments(t *testing.T, query string) language.ArgumentList {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	field, ok := doc.Operations[0].SelectionSet[0].(*language.Field)
	require.True(t, ok)
	return field.Arguments
}

func TestCoerceArgumentValues(t *testing.T) {
	c := newTestCoercer(t)
	defs := c.Schema().Type("Query").Field("search").Arguments
	vars := testVariables(t, c, "($n: Int, $a: String, $u: Int)", map[string]any{"n": 3})

	for _, tc := range []struct {
		name  string
		query string
		want  map[string]any
	}{
		{
			name:  "defaults",
			query: "{ search(first: 5) }",
			want:  map[string]any{"first": 5, "after": "start"},
		},
		{
			name:  "variables",
			query: "{ search(first: $n, after: $a, filter: {limit: $n, color: $a}) }",
			want: map[string]any{
				"first":  3,
				"after":  "start",
				"filter": map[string]any{"color": "RED", "limit": 3},
			},
		},
		{
			name:  "explicit null",
			query: "{ search(first: 1, after: null, filter: null) }",
			want:  map[string]any{"first": 1, "after": nil, "filter": nil},
		},
		{
			name:  "undefined arguments ignored",
			query: "{ search(first: 1, other: 2) }",
			want:  map[string]any{"first": 1, "after": "start"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CoerceArgumentValues(c.Schema(), defs, fieldArguments(t, tc.query), vars)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("arguments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoerceArgumentValues_Errors(t *testing.T) {
	c := newTestCoercer(t)
	defs := c.Schema().Type("Query").Field("search").Arguments
	vars := testVariables(t, c, "($u: Int)", map[string]any{})

	for _, tc := range []struct {
		query     string
		wantKinds []ErrorKind
		wantPaths []string
		wantMsg   string
	}{
		{
			query:     "{ search }",
			wantKinds: []ErrorKind{MissingRequiredField}, wantPaths: []string{"first"},
			wantMsg: `Argument "first" of required type "Int!" was not provided.`,
		},
		{
			query:     "{ search(first: $u) }",
			wantKinds: []ErrorKind{MissingRequiredField}, wantPaths: []string{"first"},
			wantMsg: `Argument "first" of required type "Int!" was provided the variable "$u" which was not provided a runtime value.`,
		},
		{
			query:     `{ search(first: "x", filter: {limit: 1.5}) }`,
			wantKinds: []ErrorKind{ScalarParseFailure, ScalarParseFailure}, wantPaths: []string{"filter.limit", "first"},
			wantMsg: `; Expected value of type "Int", found 1.5; Int cannot represent non-integer value: 1.5`,
		},
	} {
		_, err := CoerceArgumentValues(c.Schema(), defs, fieldArguments(t, tc.query), vars)
		errs := requireErrors(t, err)
		if diff := cmp.Diff(tc.wantKinds, errs.Kinds()); diff != "" {
			t.Fatalf("%s: kinds mismatch (-want +got):\n%s", tc.query, diff)
		}
		if diff := cmp.Diff(tc.wantPaths, paths(errs)); diff != "" {
			t.Fatalf("%s: paths mismatch (-want +got):\n%s", tc.query, diff)
		}
		require.Contains(t, errs[0].Message, tc.wantMsg)
	}
}
