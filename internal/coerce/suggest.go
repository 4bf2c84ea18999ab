package coerce

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestFunc returns the options that look like a misspelling of input,
// best match first.
type SuggestFunc func(input string, options []string) []string

// SuggestionList keeps options within a Levenshtein distance of roughly 40%
// of the input length. Case-only differences count as distance 1.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		name     string
		distance int
	}
	threshold := len(input)*4/10 + 1
	lowered := strings.ToLower(input)

	var candidates []candidate
	for _, opt := range options {
		var d int
		if lo := strings.ToLower(opt); lo == lowered {
			d = 1
		} else {
			d = levenshtein.ComputeDistance(lowered, lo)
		}
		if d <= threshold {
			candidates = append(candidates, candidate{opt, d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

const maxSuggestions = 5

// didYouMean formats suggestions as a sentence suffix, or "" for none.
func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = `"` + s + `"`
	}
	switch len(quoted) {
	case 1:
		return " Did you mean " + quoted[0] + "?"
	case 2:
		return " Did you mean " + quoted[0] + " or " + quoted[1] + "?"
	}
	return " Did you mean " + strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1] + "?"
}
