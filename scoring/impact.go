package scoring

import (
	"unicode/utf8"

	"github.com/kova98/rivalwatch/enums"
	"github.com/kova98/rivalwatch/matchers"
)

// Assessment is the outcome of classifying and scoring one candidate.
type Assessment struct {
	Category     enums.Category
	ImpactScore  int
	IsHighImpact bool
}

// ImpactScore rates a classified candidate on a 0-100 scale.
func ImpactScore(title, content string, category enums.Category) int {
	text := matchers.Normalize(title, content)

	score := matchers.CountMatching(text, HighImpactKeywords) * KeywordPoints
	score += CategoryBaseScores[category]

	if utf8.RuneCountInString(content) > LongContentChars {
		score += LongContentPoints
	}

	return clamp(score)
}

func IsHighImpact(score int) bool {
	return score >= HighImpactThreshold
}

// Assess classifies the candidate and scores it in one step.
func Assess(title, content string) Assessment {
	category := Classify(title, content)
	score := ImpactScore(title, content, category)

	return Assessment{
		Category:     category,
		ImpactScore:  score,
		IsHighImpact: IsHighImpact(score),
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
