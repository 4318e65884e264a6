package data

import (
	"github.com/google/uuid"
	"github.com/kova98/rivalwatch/enums"
)

// CompetitorUpdate is an update joined with the name of the competitor that owns it.
type CompetitorUpdate struct {
	Update
	CompetitorName string `db:"competitor_name" json:"competitorName"`
}

// NotificationEmail carries everything needed to email one notification.
type NotificationEmail struct {
	ID             int64     `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	Email          string    `db:"email"`
	Message        string    `db:"message"`
	UpdateID       int64     `db:"update_id"`
	Title          string    `db:"title"`
	URL            string    `db:"url"`
	ImpactScore    int       `db:"impact_score"`
	Category       string    `db:"category"`
	CompetitorName string    `db:"competitor_name"`
}

type CategoryCount struct {
	Category enums.Category `db:"category" json:"category"`
	Count    int            `db:"count" json:"count"`
}

type Stats struct {
	TotalCompetitors  int                    `json:"totalCompetitors"`
	TotalUpdates      int                    `json:"totalUpdates"`
	HighImpactCount   int                    `json:"highImpactCount"`
	RecentWeekUpdates int                    `json:"recentWeekUpdates"`
	UpdatesByCategory map[enums.Category]int `json:"updatesByCategory"`
}
