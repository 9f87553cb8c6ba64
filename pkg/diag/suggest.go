package diag

import "github.com/hbollon/go-edlib"

// Suggest returns the candidate closest to got by edit distance, provided it
// is close enough to be a plausible typo.
func Suggest(got string, candidates []string) (string, bool) {
	if got == "" {
		return "", false
	}

	limit := max(1, len(got)/3)
	best, bestDistance := "", limit+1

	for _, candidate := range candidates {
		if candidate == got {
			return "", false
		}

		distance := edlib.LevenshteinDistance(got, candidate)
		if distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}

	return best, best != ""
}

// WithSuggestion attaches the closest candidate to e, if any.
func (e *Error) WithSuggestion(got string, candidates []string) *Error {
	if suggestion, ok := Suggest(got, candidates); ok {
		e.Suggestion = suggestion
		e.Args = append(e.Args, Arg{Key: "suggestion", Value: suggestion})
	}

	return e
}
