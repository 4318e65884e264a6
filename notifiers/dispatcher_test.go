package notifiers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/kova98/rivalwatch/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationKey struct {
	userID   uuid.UUID
	updateID int64
}

type fakeNotifications struct {
	rows map[notificationKey]string
	err  error
}

func (f *fakeNotifications) CreateNotificationIfAbsent(userID uuid.UUID, updateID int64, message string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := notificationKey{userID, updateID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	f.rows[key] = message
	return true, nil
}

type fakeUsers struct {
	users []data.User
	err   error
}

func (f *fakeUsers) ListUsers() ([]data.User, error) {
	return f.users, f.err
}

type fakeAlerter struct {
	alerts []data.CompetitorUpdate
	err    error
}

func (f *fakeAlerter) Name() string { return "fake" }

func (f *fakeAlerter) Alert(_ context.Context, update data.CompetitorUpdate) error {
	f.alerts = append(f.alerts, update)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func highImpact(id int64, competitor, title string) data.CompetitorUpdate {
	return data.CompetitorUpdate{
		Update:         data.Update{ID: id, Title: title, ImpactScore: 70, IsHighImpact: true},
		CompetitorName: competitor,
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "High-impact update from TechCorp Inc: New pricing", Message("TechCorp Inc", "New pricing"))
}

func TestDispatch_OneNotificationPerUserAndUpdate(t *testing.T) {
	users := &fakeUsers{users: []data.User{{ID: uuid.New()}, {ID: uuid.New()}}}
	store := &fakeNotifications{rows: make(map[notificationKey]string)}
	d := NewDispatcher(discardLogger(), users, store)
	updates := []data.CompetitorUpdate{highImpact(1, "TechCorp Inc", "New pricing")}

	first := d.Dispatch(context.Background(), updates)
	second := d.Dispatch(context.Background(), updates)

	assert.Equal(t, 2, first)
	assert.Equal(t, 0, second)
	require.Len(t, store.rows, 2)
	for _, msg := range store.rows {
		assert.Equal(t, "High-impact update from TechCorp Inc: New pricing", msg)
	}
}

func TestDispatch_IgnoresLowImpactUpdates(t *testing.T) {
	users := &fakeUsers{users: []data.User{{ID: uuid.New()}}}
	store := &fakeNotifications{rows: make(map[notificationKey]string)}
	alerter := &fakeAlerter{}
	d := NewDispatcher(discardLogger(), users, store, alerter)
	low := data.CompetitorUpdate{Update: data.Update{ID: 7, ImpactScore: 59}}

	created := d.Dispatch(context.Background(), []data.CompetitorUpdate{low})

	assert.Equal(t, 0, created)
	assert.Empty(t, store.rows)
	assert.Empty(t, alerter.alerts)
}

func TestDispatch_NoUsersStillAlerts(t *testing.T) {
	store := &fakeNotifications{rows: make(map[notificationKey]string)}
	alerter := &fakeAlerter{}
	d := NewDispatcher(discardLogger(), &fakeUsers{}, store, alerter)

	created := d.Dispatch(context.Background(), []data.CompetitorUpdate{highImpact(1, "Acme", "Major launch")})

	assert.Equal(t, 0, created)
	assert.Len(t, alerter.alerts, 1)
}

func TestDispatch_FailuresDoNotStopOtherUpdates(t *testing.T) {
	users := &fakeUsers{users: []data.User{{ID: uuid.New()}}}
	store := &fakeNotifications{err: errors.New("db down")}
	failing := &fakeAlerter{err: errors.New("broker down")}
	working := &fakeAlerter{}
	d := NewDispatcher(discardLogger(), users, store, failing, working)
	updates := []data.CompetitorUpdate{
		highImpact(1, "Acme", "Major launch"),
		highImpact(2, "Acme", "Revolutionary release"),
	}

	created := d.Dispatch(context.Background(), updates)

	assert.Equal(t, 0, created)
	assert.Len(t, failing.alerts, 2)
	assert.Len(t, working.alerts, 2)
}

func TestDispatch_ListUsersErrorIsLogged(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	store := &fakeNotifications{rows: make(map[notificationKey]string)}
	d := NewDispatcher(discardLogger(), users, store)

	created := d.Dispatch(context.Background(), []data.CompetitorUpdate{highImpact(1, "Acme", "Major launch")})

	assert.Equal(t, 0, created)
}
