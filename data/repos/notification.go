package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kova98/rivalwatch/data"
)

type NotificationRepo struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db}
}

// CreateNotificationIfAbsent reports whether a new row was inserted. An existing
// notification for the same (user, update) pair is left untouched.
func (r *NotificationRepo) CreateNotificationIfAbsent(userID uuid.UUID, updateID int64, message string) (bool, error) {
	query := `
		INSERT INTO notifications (user_id, update_id, message)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, update_id) DO NOTHING`

	res, err := r.db.Exec(query, userID, updateID, message)
	if err != nil {
		return false, fmt.Errorf("create notification: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create notification: rows affected: %w", err)
	}

	return n > 0, nil
}

func (r *NotificationRepo) GetUnemailedNotifications() ([]data.NotificationEmail, error) {
	var notifications []data.NotificationEmail
	query := `
		SELECT n.id, n.user_id, u.email, n.message, n.update_id,
		       cu.title, cu.url, cu.impact_score, cu.category, c.name AS competitor_name
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		JOIN competitor_updates cu ON cu.id = n.update_id
		JOIN competitors c ON c.id = cu.competitor_id
		WHERE n.emailed_at IS NULL AND u.email <> ''
		ORDER BY n.created_at ASC`

	err := r.db.Select(&notifications, query)
	if err != nil {
		return nil, fmt.Errorf("get unemailed notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepo) MarkEmailed(ids []int64, emailedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET emailed_at = ? WHERE id IN (?)`, emailedAt, ids)
	if err != nil {
		return fmt.Errorf("build mark emailed: %w", err)
	}
	query = r.db.Rebind(query)

	_, err = r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("mark emailed: %w", err)
	}

	return nil
}

// MarkRead flags one of the user's notifications as read. It reports false when
// the notification does not exist or belongs to someone else.
func (r *NotificationRepo) MarkRead(userID uuid.UUID, id int64) (bool, error) {
	res, err := r.db.Exec("UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification read: rows affected: %w", err)
	}

	return n > 0, nil
}

func (r *NotificationRepo) MarkAllRead(userID uuid.UUID) (int64, error) {
	res, err := r.db.Exec("UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false", userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return res.RowsAffected()
}
