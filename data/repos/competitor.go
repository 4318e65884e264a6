package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
)

type CompetitorRepo struct {
	db *sqlx.DB
}

func NewCompetitorRepo(db *sqlx.DB) *CompetitorRepo {
	return &CompetitorRepo{db}
}

// CreateCompetitor inserts the competitor together with its monitoring config.
func (r *CompetitorRepo) CreateCompetitor(competitor data.Competitor, cfg data.MonitoringConfig) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("create competitor: begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	query := `
		INSERT INTO competitors (name, website, description, industry, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err = tx.Get(&id, query, competitor.Name, competitor.Website, competitor.Description, competitor.Industry, competitor.IsActive)
	if err != nil {
		return 0, fmt.Errorf("create competitor: %w", err)
	}

	query = `
		INSERT INTO monitoring_configs (competitor_id, check_interval_hours, is_enabled, keywords)
		VALUES ($1, $2, $3, $4)`
	_, err = tx.Exec(query, id, cfg.CheckIntervalHours, cfg.IsEnabled, cfg.Keywords)
	if err != nil {
		return 0, fmt.Errorf("create monitoring config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create competitor: commit: %w", err)
	}

	return id, nil
}

// ListActiveCompetitors returns active competitors in insertion order.
func (r *CompetitorRepo) ListActiveCompetitors() ([]data.Competitor, error) {
	var competitors []data.Competitor
	query := `
		SELECT id, name, website, description, industry, is_active, created_at
		FROM competitors
		WHERE is_active = true
		ORDER BY id ASC`

	err := r.db.Select(&competitors, query)
	if err != nil {
		return nil, fmt.Errorf("list active competitors: %w", err)
	}

	return competitors, nil
}

func (r *CompetitorRepo) DeactivateCompetitor(id int64) error {
	_, err := r.db.Exec("UPDATE competitors SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate competitor: %w", err)
	}

	return nil
}
