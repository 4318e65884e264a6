package data

import (
	"time"

	"github.com/google/uuid"
	"github.com/kova98/rivalwatch/enums"
)

type User struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	Avatar      string    `db:"avatar"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Competitor struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Website     string    `db:"website"`
	Description string    `db:"description"`
	Industry    string    `db:"industry"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type MonitoringConfig struct {
	ID                 int64      `db:"id"`
	CompetitorID       int64      `db:"competitor_id"`
	CheckIntervalHours int        `db:"check_interval_hours"`
	IsEnabled          bool       `db:"is_enabled"`
	LastChecked        *time.Time `db:"last_checked"`
	Keywords           string     `db:"keywords"` // comma-separated, informational
}

// Interval returns the configured minimum time between two checks.
func (c MonitoringConfig) Interval() time.Duration {
	return time.Duration(c.CheckIntervalHours) * time.Hour
}

// Update is an observed change on a competitor's site. Rows are never
// modified after insert.
type Update struct {
	ID           int64          `db:"id" json:"id"`
	CompetitorID int64          `db:"competitor_id" json:"competitorId"`
	Title        string         `db:"title" json:"title"`
	Content      string         `db:"content" json:"content"`
	URL          string         `db:"url" json:"url"`
	Category     enums.Category `db:"category" json:"category"`
	DetectedAt   time.Time      `db:"detected_at" json:"detectedAt"`
	PublishedAt  *time.Time     `db:"published_at" json:"publishedAt,omitempty"`
	ImpactScore  int            `db:"impact_score" json:"impactScore"`
	IsHighImpact bool           `db:"is_high_impact" json:"isHighImpact"`
	Source       enums.Source   `db:"source" json:"source"`
}

type Trend struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	TrendType       string    `db:"trend_type" json:"trendType"`
	Frequency       int       `db:"frequency" json:"frequency"`
	ConfidenceScore float64   `db:"confidence_score" json:"confidenceScore"`
	FirstDetected   time.Time `db:"first_detected" json:"firstDetected"`
	LastDetected    time.Time `db:"last_detected" json:"lastDetected"`
	UpdateIDs       []int64   `db:"-" json:"updateIds"`
}

type Notification struct {
	ID        int64      `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	UpdateID  int64      `db:"update_id"`
	Message   string     `db:"message"`
	IsRead    bool       `db:"is_read"`
	CreatedAt time.Time  `db:"created_at"`
	EmailedAt *time.Time `db:"emailed_at"`
}
