package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
	"github.com/lib/pq"
)

type TrendRepo struct {
	db *sqlx.DB
}

func NewTrendRepo(db *sqlx.DB) *TrendRepo {
	return &TrendRepo{db}
}

// UpsertTrend inserts the trend or, when a trend with the same name exists,
// refreshes its frequency, confidence and last_detected. Description, type and
// first_detected keep the values from the first detection.
func (r *TrendRepo) UpsertTrend(trend data.Trend) (data.Trend, error) {
	query := `
		INSERT INTO trends (name, description, trend_type, frequency, confidence_score, first_detected, last_detected)
		VALUES (:name, :description, :trend_type, :frequency, :confidence_score, :first_detected, :last_detected)
		ON CONFLICT (name) DO UPDATE
		SET frequency = EXCLUDED.frequency,
		    confidence_score = EXCLUDED.confidence_score,
		    last_detected = EXCLUDED.last_detected
		RETURNING id, name, description, trend_type, frequency, confidence_score, first_detected, last_detected`

	rows, err := r.db.NamedQuery(query, trend)
	if err != nil {
		return data.Trend{}, fmt.Errorf("upsert trend: %w", err)
	}
	defer rows.Close()

	var saved data.Trend
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return data.Trend{}, fmt.Errorf("upsert trend: %w", err)
		}
		return data.Trend{}, fmt.Errorf("upsert trend %q: no row returned", trend.Name)
	}
	if err := rows.StructScan(&saved); err != nil {
		return data.Trend{}, fmt.Errorf("scan upserted trend: %w", err)
	}

	return saved, nil
}

// SetTrendUpdates replaces the trend's related updates with updateIDs.
func (r *TrendRepo) SetTrendUpdates(trendID int64, updateIDs []int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("set trend updates: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM trend_updates WHERE trend_id = $1", trendID); err != nil {
		return fmt.Errorf("clear trend updates: %w", err)
	}

	if len(updateIDs) > 0 {
		query := `
			INSERT INTO trend_updates (trend_id, update_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(query, trendID, pq.Array(updateIDs)); err != nil {
			return fmt.Errorf("insert trend updates: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set trend updates: commit: %w", err)
	}

	return nil
}

func (r *TrendRepo) ListTrends() ([]data.Trend, error) {
	var trends []data.Trend
	query := `
		SELECT id, name, description, trend_type, frequency, confidence_score, first_detected, last_detected
		FROM trends
		ORDER BY last_detected DESC`

	if err := r.db.Select(&trends, query); err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}

	return trends, nil
}
