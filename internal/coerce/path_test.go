package coerce

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcoerce/internal/language"
)

func TestPath(t *testing.T) {
	var root *Path
	require.Nil(t, root.AsAST())
	require.Equal(t, "", root.String())

	base := root.WithKey("a")
	left := base.WithIndex(0)
	right := base.WithKey("c")

	if diff := cmp.Diff(language.Path{language.PathName("a"), language.PathIndex(0)}, left.AsAST()); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "a[0]", left.String())
	require.Equal(t, "a.c", right.String())
	require.Equal(t, "a", base.String(), "extending a path leaves it unchanged")
	require.Equal(t, 2, right.Len())
}
