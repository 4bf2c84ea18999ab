package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSDL = `
interface Node { id: ID! }
interface Named implements Node { id: ID! name: String }
type User implements Node & Named { id: ID! name: String }
type Post implements Node { id: ID! title: String }
type Comment { body: String }
union SearchResult = User | Post
union Content = Post | Comment
enum Color { RED GREEN BLUE @deprecated(reason: "use RED") }
input Filter { color: Color = RED, limit: Int! }
input Pick @oneOf { id: ID, name: String }
type Query {
  node(id: ID!): Node
  search(filter: Filter): [SearchResult!]!
}
`

func mustBuildTestSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)
	return s
}
