package notifiers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/metrics"
)

type UserLister interface {
	ListUsers() ([]data.User, error)
}

type NotificationStore interface {
	CreateNotificationIfAbsent(userID uuid.UUID, updateID int64, message string) (bool, error)
}

// Alerter is an optional push channel for high-impact updates.
type Alerter interface {
	Name() string
	Alert(ctx context.Context, update data.CompetitorUpdate) error
}

// Dispatcher turns high-impact updates into one notification per user and
// pushes them to the configured alert channels.
type Dispatcher struct {
	logger        *slog.Logger
	users         UserLister
	notifications NotificationStore
	alerters      []Alerter
}

func NewDispatcher(logger *slog.Logger, users UserLister, notifications NotificationStore, alerters ...Alerter) *Dispatcher {
	return &Dispatcher{
		logger:        logger,
		users:         users,
		notifications: notifications,
		alerters:      alerters,
	}
}

func Message(competitorName, title string) string {
	return fmt.Sprintf("High-impact update from %s: %s", competitorName, title)
}

// Dispatch returns the number of notifications created. Updates that are not
// high impact are ignored. Failures are logged and never stop the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, updates []data.CompetitorUpdate) int {
	var highImpact []data.CompetitorUpdate
	for _, u := range updates {
		if u.IsHighImpact {
			highImpact = append(highImpact, u)
		}
	}
	if len(highImpact) == 0 {
		return 0
	}

	created := 0
	users, err := d.users.ListUsers()
	if err != nil {
		d.logger.Error("dispatch: list users", "error", err)
	}

	for _, update := range highImpact {
		msg := Message(update.CompetitorName, update.Title)
		for _, user := range users {
			ok, err := d.notifications.CreateNotificationIfAbsent(user.ID, update.ID, msg)
			if err != nil {
				d.logger.Error("dispatch: create notification", "user_id", user.ID, "update_id", update.ID, "error", err)
				continue
			}
			if ok {
				created++
			}
		}

		for _, alerter := range d.alerters {
			if err := alerter.Alert(ctx, update); err != nil {
				metrics.AlertFailures.WithLabelValues(alerter.Name()).Inc()
				d.logger.Warn("dispatch: alert", "channel", alerter.Name(), "update_id", update.ID, "error", err)
			}
		}
	}

	metrics.NotificationsCreated.Add(float64(created))
	d.logger.Info("notifications dispatched", "high_impact", len(highImpact), "users", len(users), "created", created)
	return created
}
