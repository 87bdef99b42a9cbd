package wishlist

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance catches one or two mistyped digits in a set number.
const maxSuggestDistance = 2

// Suggest returns the key the user most likely meant when input is not a
// key of c, or "" when nothing is close. A case-insensitive match on a set
// name wins; otherwise the key with the smallest edit distance, the earlier
// entry on ties.
func Suggest(input string, c Collection) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, e := range c {
		if strings.EqualFold(e.Record.Name, input) {
			return e.Key
		}
	}

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, e := range c {
		if d := levenshtein.ComputeDistance(input, e.Key); d < bestDistance {
			best, bestDistance = e.Key, d
		}
	}
	return best
}
