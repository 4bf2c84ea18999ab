package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

func TestTypeFromAST(t *testing.T) {
	s := mustBuildTestSchema(t)

	for _, tc := range []struct {
		src  string
		want string
	}{
		{"Int", "Int"},
		{"Int!", "Int!"},
		{"[Filter!]", "[Filter!]"},
		{"[[Color]!]!", "[[Color]!]!"},
	} {
		typ, err := language.ParseType(tc.src)
		require.NoError(t, err)
		ref := TypeFromAST(s, typ)
		require.NotNil(t, ref, tc.src)
		require.Equal(t, tc.want, ref.String())
	}

	for _, src := range []string{"Missing", "[Missing!]", "[[Missing]]!"} {
		typ, err := language.ParseType(src)
		require.NoError(t, err)
		require.Nil(t, TypeFromAST(s, typ), src)
	}
}
