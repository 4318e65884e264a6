package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/enums"
)

type UpdateRepo struct {
	db *sqlx.DB
}

func NewUpdateRepo(db *sqlx.DB) *UpdateRepo {
	return &UpdateRepo{db}
}

// FindUpdateByTitlePrefix returns the oldest update of the competitor whose title
// contains prefix, ignoring case. strpos is used instead of ILIKE so that % and _
// in scraped titles are matched literally.
func (r *UpdateRepo) FindUpdateByTitlePrefix(competitorID int64, prefix string) (*data.Update, error) {
	var update data.Update
	query := `
		SELECT id, competitor_id, title, content, url, category, detected_at, published_at,
		       impact_score, is_high_impact, source
		FROM competitor_updates
		WHERE competitor_id = $1 AND strpos(lower(title), lower($2::text)) > 0
		ORDER BY id ASC
		LIMIT 1`

	err := r.db.Get(&update, query, competitorID, prefix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find update by title prefix: %w", err)
	}

	return &update, nil
}

func (r *UpdateRepo) CreateUpdate(update data.Update) (data.Update, error) {
	query := `
		INSERT INTO competitor_updates
			(competitor_id, title, content, url, category, detected_at, published_at, impact_score, is_high_impact, source)
		VALUES
			(:competitor_id, :title, :content, :url, :category, :detected_at, :published_at, :impact_score, :is_high_impact, :source)
		RETURNING id`

	rows, err := r.db.NamedQuery(query, update)
	if err != nil {
		return data.Update{}, fmt.Errorf("create update: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&update.ID); err != nil {
			return data.Update{}, fmt.Errorf("scan returned id: %w", err)
		}
	}

	return update, rows.Err()
}

// GetUpdatesSince returns updates detected at or after since, with competitor names.
func (r *UpdateRepo) GetUpdatesSince(since time.Time) ([]data.CompetitorUpdate, error) {
	var updates []data.CompetitorUpdate
	query := `
		SELECT u.id, u.competitor_id, u.title, u.content, u.url, u.category, u.detected_at,
		       u.published_at, u.impact_score, u.is_high_impact, u.source, c.name AS competitor_name
		FROM competitor_updates u
		JOIN competitors c ON c.id = u.competitor_id
		WHERE u.detected_at >= $1
		ORDER BY u.id ASC`

	err := r.db.Select(&updates, query, since)
	if err != nil {
		return nil, fmt.Errorf("get updates since: %w", err)
	}

	return updates, nil
}

// GetStats aggregates the dashboard counters. recentSince bounds the "recent" count.
func (r *UpdateRepo) GetStats(recentSince time.Time) (data.Stats, error) {
	stats := data.Stats{UpdatesByCategory: make(map[enums.Category]int)}

	err := r.db.Get(&stats.TotalCompetitors, "SELECT count(*) FROM competitors WHERE is_active = true")
	if err != nil {
		return data.Stats{}, fmt.Errorf("count active competitors: %w", err)
	}

	var counts struct {
		Total      int `db:"total"`
		HighImpact int `db:"high_impact"`
		Recent     int `db:"recent"`
	}
	query := `
		SELECT count(*) AS total,
		       count(*) FILTER (WHERE is_high_impact) AS high_impact,
		       count(*) FILTER (WHERE detected_at >= $1) AS recent
		FROM competitor_updates`
	if err := r.db.Get(&counts, query, recentSince); err != nil {
		return data.Stats{}, fmt.Errorf("count updates: %w", err)
	}
	stats.TotalUpdates = counts.Total
	stats.HighImpactCount = counts.HighImpact
	stats.RecentWeekUpdates = counts.Recent

	var byCategory []data.CategoryCount
	query = `
		SELECT category, count(*) AS count
		FROM competitor_updates
		GROUP BY category
		ORDER BY count DESC`
	if err := r.db.Select(&byCategory, query); err != nil {
		return data.Stats{}, fmt.Errorf("count updates by category: %w", err)
	}
	for _, c := range byCategory {
		stats.UpdatesByCategory[c.Category] = c.Count
	}

	return stats, nil
}
