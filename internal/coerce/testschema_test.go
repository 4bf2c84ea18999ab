package coerce

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcoerce/internal/language"
	schema "github.com/hanpama/gqlcoerce/internal/schema"
)

const testSDL = `
scalar JSON
enum Color { RED GREEN BLUE }
input Point { x: Int!, y: Int! = 0 }
input Filter { color: Color = RED, tags: [String!], limit: Int = 10, point: Point }
input Strict { a: Int! }
input Pick @oneOf { id: ID, name: String }
input Tree { value: Int, child: Tree = {} }
type Query {
  search(filter: Filter, first: Int!, after: String = "start"): String
}
`

func newTestCoercer(t *testing.T, opts ...Option) *Coercer {
	t.Helper()
	s, err := schema.BuildFromSDL(testSDL)
	require.NoError(t, err)
	return NewCoercer(s, opts...)
}

func typeRef(t *testing.T, s *schema.Schema, src string) *schema.TypeRef {
	t.Helper()
	ref, err := language.ParseType(src)
	require.NoError(t, err)
	tr := schema.TypeFromAST(s, ref)
	require.NotNil(t, tr, "type %s", src)
	return tr
}

func literal(t *testing.T, src string) *language.Value {
	t.Helper()
	lit, err := language.ParseValue(src)
	require.NoError(t, err)
	return lit
}

func requireErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func paths(errs Errors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Path.String()
	}
	return out
}

// literalOpts compares literals built in code with parsed ones.
var literalOpts = cmp.Options{
	cmpopts.IgnoreFields(language.Value{}, "Position"),
	cmpopts.IgnoreFields(language.ChildValue{}, "Position"),
}
