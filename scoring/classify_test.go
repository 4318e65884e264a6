package scoring

import (
	"testing"

	"github.com/kova98/rivalwatch/enums"
	"github.com/stretchr/testify/assert"
)

func TestClassify_EachRule(t *testing.T) {
	tests := []struct {
		title    string
		content  string
		expected enums.Category
	}{
		{"Summer discount on all plans", "", enums.CategoryPricing},
		{"Now only $19", "", enums.CategoryPricing},
		{"Our biggest marketing campaign yet", "", enums.CategoryCampaign},
		{"We launch in Europe", "", enums.CategoryCampaign},
		{"Introducing the X200", "", enums.CategoryRelease},
		{"Version 4 release notes", "", enums.CategoryRelease},
		{"A strategic alliance with Globex", "", enums.CategoryPartnership},
		{"Dark mode improvement", "", enums.CategoryFeature},
		{"Meet our new CTO", "She joins from Initech", enums.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.title, tt.content))
		})
	}
}

func TestClassify_PricingBeatsCampaign(t *testing.T) {
	assert.Equal(t, enums.CategoryPricing, Classify("Campaign announcement", "with a 20% discount"))
	assert.Equal(t, enums.CategoryPricing, Classify("Launch of new price tiers", ""))
}

func TestClassify_LaunchIsCampaignNotRelease(t *testing.T) {
	assert.Equal(t, enums.CategoryCampaign, Classify("Product launch", "introducing something"))
}

func TestClassify_MatchesContentCaseInsensitive(t *testing.T) {
	assert.Equal(t, enums.CategoryPartnership, Classify("Big day", "JOINT venture with Acme"))
}

func TestClassify_NeverReturnsNews(t *testing.T) {
	assert.Equal(t, enums.CategoryOther, Classify("Company news", "press coverage roundup"))
}

func TestCategoryRules_Order(t *testing.T) {
	order := make([]enums.Category, 0, len(CategoryRules))
	for _, rule := range CategoryRules {
		order = append(order, rule.Category)
	}

	assert.Equal(t, []enums.Category{
		enums.CategoryPricing,
		enums.CategoryCampaign,
		enums.CategoryRelease,
		enums.CategoryPartnership,
		enums.CategoryFeature,
	}, order)
}
