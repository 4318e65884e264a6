package main

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadMarker struct {
	owned   map[int64]bool
	read    []int64
	allRead int
	readErr error
}

func (f *fakeReadMarker) MarkRead(_ uuid.UUID, id int64) (bool, error) {
	if f.readErr != nil {
		return false, f.readErr
	}
	if !f.owned[id] {
		return false, nil
	}
	f.read = append(f.read, id)
	return true, nil
}

func (f *fakeReadMarker) MarkAllRead(uuid.UUID) (int64, error) {
	f.allRead++
	return int64(len(f.owned)), nil
}

func TestMarkNotificationsRead_NoIDsMarksAll(t *testing.T) {
	store := &fakeReadMarker{owned: map[int64]bool{1: true, 2: true, 3: true}}

	marked, err := markNotificationsRead(store, uuid.New(), nil)

	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
	assert.Equal(t, 1, store.allRead)
	assert.Empty(t, store.read)
}

func TestMarkNotificationsRead_SkipsForeignIDs(t *testing.T) {
	store := &fakeReadMarker{owned: map[int64]bool{1: true, 3: true}}

	marked, err := markNotificationsRead(store, uuid.New(), []int64{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)
	assert.Equal(t, []int64{1, 3}, store.read)
	assert.Zero(t, store.allRead)
}

func TestMarkNotificationsRead_StoreError(t *testing.T) {
	store := &fakeReadMarker{readErr: errors.New("db down")}

	marked, err := markNotificationsRead(store, uuid.New(), []int64{7})

	require.Error(t, err)
	assert.Zero(t, marked)
}
