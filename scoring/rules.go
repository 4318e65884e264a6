// Package scoring classifies candidate updates and rates their business impact.
// All keyword tables live in this file so the rules can be reviewed in one place.
package scoring

import "github.com/kova98/rivalwatch/enums"

// CategoryRule maps a keyword table to the category it assigns.
type CategoryRule struct {
	Category enums.Category
	Keywords []string
}

// CategoryRules are evaluated in order and the first rule with a hit wins.
// "launch" appears in both campaign and release; campaign is checked first.
var CategoryRules = []CategoryRule{
	{
		Category: enums.CategoryPricing,
		Keywords: []string{"price", "pricing", "cost", "$", "discount", "sale", "deal", "offer", "promotion"},
	},
	{
		Category: enums.CategoryCampaign,
		Keywords: []string{"campaign", "launch", "advertising", "marketing", "promote", "announce"},
	},
	{
		Category: enums.CategoryRelease,
		Keywords: []string{"release", "launch", "new product", "introducing", "unveil", "debut"},
	},
	{
		Category: enums.CategoryPartnership,
		Keywords: []string{"partnership", "partner", "collaboration", "alliance", "joint"},
	},
	{
		Category: enums.CategoryFeature,
		Keywords: []string{"feature", "update", "improvement", "enhancement", "new functionality"},
	},
}

// HighImpactKeywords each add KeywordPoints when present.
var HighImpactKeywords = []string{"launch", "new", "breakthrough", "major", "significant", "revolutionary"}

// CategoryBaseScores holds the per-category base score. Missing categories score 0.
var CategoryBaseScores = map[enums.Category]int{
	enums.CategoryPricing:     30,
	enums.CategoryRelease:     40,
	enums.CategoryCampaign:    25,
	enums.CategoryPartnership: 35,
	enums.CategoryFeature:     20,
}

const (
	KeywordPoints = 10

	// LongContentChars is the content length, in characters, above which
	// LongContentPoints are added.
	LongContentChars  = 500
	LongContentPoints = 10

	MaxScore = 100

	// HighImpactThreshold is the lowest score flagged as high impact.
	HighImpactThreshold = 60
)
