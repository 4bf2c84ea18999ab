package coerce

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestionList(t *testing.T) {
	require.Equal(t, []string{"color", "cover"}, SuggestionList("colr", []string{"limit", "cover", "color"}))
	require.Equal(t, []string{"a", "b"}, SuggestionList("A", []string{"b", "a"}))
	require.Empty(t, SuggestionList("zzzz", []string{"color", "limit"}))
}

func TestDidYouMean(t *testing.T) {
	for _, tc := range []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, ` Did you mean "a"?`},
		{[]string{"a", "b"}, ` Did you mean "a" or "b"?`},
		{[]string{"a", "b", "c"}, ` Did you mean "a", "b", or "c"?`},
		{[]string{"a", "b", "c", "d", "e", "f"}, ` Did you mean "a", "b", "c", "d", or "e"?`},
	} {
		require.Equal(t, tc.want, didYouMean(tc.in))
	}
}
