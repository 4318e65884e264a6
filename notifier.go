package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/models"
	"github.com/pkg/errors"
)

type notificationStore interface {
	GetUnemailedNotifications() ([]data.NotificationEmail, error)
	MarkEmailed(ids []int64, emailedAt time.Time) error
}

type mailer interface {
	UpdateAlertEmail(email string, n data.NotificationEmail) (models.Email, error)
	UpdateDigestEmail(email string, notifications []data.NotificationEmail) (models.Email, error)
	Send(mail models.Email) error
}

// Notifier emails notifications that have not been emailed yet: one alert when
// a user has a single pending notification, a digest otherwise.
type Notifier struct {
	notifications notificationStore
	mailer        mailer
	now           func() time.Time
}

func NewNotifier(mailer mailer, notifications notificationStore) *Notifier {
	return &Notifier{
		notifications: notifications,
		mailer:        mailer,
		now:           time.Now,
	}
}

func (n *Notifier) Start(ctx context.Context) {
	if err := n.notifyUsers(); err != nil {
		slog.Error("notify users:", "error", err)
	}

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := n.notifyUsers(); err != nil {
				slog.Error("notify users:", "error", err)
			}
		}
	}
}

func (n *Notifier) notifyUsers() error {
	pending, err := n.notifications.GetUnemailedNotifications()
	if err != nil {
		return errors.Wrap(err, "notify users: get unemailed notifications")
	}
	if len(pending) == 0 {
		return nil
	}

	userNotifications := make(map[uuid.UUID][]data.NotificationEmail)
	for _, notification := range pending {
		userNotifications[notification.UserID] = append(userNotifications[notification.UserID], notification)
	}

	for userID, notifications := range userNotifications {
		email := notifications[0].Email

		var mail models.Email
		if len(notifications) == 1 {
			mail, err = n.mailer.UpdateAlertEmail(email, notifications[0])
		} else {
			mail, err = n.mailer.UpdateDigestEmail(email, notifications)
		}
		if err != nil {
			slog.Error("notify users: create email", "user_id", userID, "error", err)
			continue
		}

		if err = n.mailer.Send(mail); err != nil {
			slog.Error("notify users: send email", "user_id", userID, "count", len(notifications), "error", err)
			continue
		}

		ids := make([]int64, 0, len(notifications))
		for _, notification := range notifications {
			ids = append(ids, notification.ID)
		}
		if err = n.notifications.MarkEmailed(ids, n.now()); err != nil {
			slog.Error("notify users: mark notifications as emailed", "user_id", userID, "error", err)
		}
	}

	return nil
}
