package enums

type Source string

const (
	SourceWebsite Source = "website"
)

// TrendTypeCompetitorActivity marks trends aggregated per competitor rather than per category.
const TrendTypeCompetitorActivity = "competitor_activity"
