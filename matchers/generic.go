package matchers

import "strings"

// MatchesPartially reports whether keyword occurs anywhere in text, including
// inside longer words. Both arguments are expected to be lower-cased already.
func MatchesPartially(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

// MatchesAny reports whether at least one keyword occurs in text.
func MatchesAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if MatchesPartially(text, keyword) {
			return true
		}
	}
	return false
}

// CountMatching returns how many distinct keywords occur in text. A keyword
// occurring several times still counts once.
func CountMatching(text string, keywords []string) int {
	n := 0
	for _, keyword := range keywords {
		if MatchesPartially(text, keyword) {
			n++
		}
	}
	return n
}

// Normalize joins the parts with single spaces and lower-cases the result.
func Normalize(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}
