package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
)

type ConfigRepo struct {
	db *sqlx.DB
}

func NewConfigRepo(db *sqlx.DB) *ConfigRepo {
	return &ConfigRepo{db}
}

func (r *ConfigRepo) GetConfigByCompetitorID(competitorID int64) (*data.MonitoringConfig, error) {
	var cfg data.MonitoringConfig
	query := `
		SELECT id, competitor_id, check_interval_hours, is_enabled, last_checked, keywords
		FROM monitoring_configs
		WHERE competitor_id = $1`

	err := r.db.Get(&cfg, query, competitorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config by competitor id: %w", err)
	}

	return &cfg, nil
}

// TouchLastChecked sets last_checked to now only if it still holds prev.
// It reports false when another writer advanced the timestamp first.
func (r *ConfigRepo) TouchLastChecked(configID int64, prev *time.Time, now time.Time) (bool, error) {
	query := `
		UPDATE monitoring_configs
		SET last_checked = $1
		WHERE id = $2 AND last_checked IS NOT DISTINCT FROM $3::timestamptz`

	res, err := r.db.Exec(query, now, configID, prev)
	if err != nil {
		return false, fmt.Errorf("touch last checked: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("touch last checked: rows affected: %w", err)
	}

	return n == 1, nil
}
