package scoring

import (
	"github.com/kova98/rivalwatch/enums"
	"github.com/kova98/rivalwatch/matchers"
)

// Classify returns the category of the first rule whose keywords occur in the
// lower-cased title and content, or CategoryOther.
func Classify(title, content string) enums.Category {
	text := matchers.Normalize(title, content)

	for _, rule := range CategoryRules {
		if matchers.MatchesAny(text, rule.Keywords) {
			return rule.Category
		}
	}

	return enums.CategoryOther
}
