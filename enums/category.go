package enums

type Category string

const (
	CategoryPricing     Category = "pricing"
	CategoryCampaign    Category = "campaign"
	CategoryRelease     Category = "release"
	CategoryPartnership Category = "partnership"
	// CategoryNews is a valid stored value, but the classifier never assigns it.
	CategoryNews    Category = "news"
	CategoryFeature Category = "feature"
	// CategoryOther is the fallback when no keyword rule matches.
	CategoryOther Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPricing,
	CategoryCampaign,
	CategoryRelease,
	CategoryPartnership,
	CategoryNews,
	CategoryFeature,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
