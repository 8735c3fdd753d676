package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyhq/rally/pkg/auth"
)

func newUser(id, username string) *auth.User {
	now := time.Now().UTC()
	return &auth.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newEvent(id, ownerID string, date time.Time, sportType string) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:          id,
		Name:        "Match " + id,
		Description: "a match",
		Date:        date,
		Location:    "City Arena",
		SportType:   sportType,
		Organizer:   Organizer{ID: ownerID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("create and look up", func(t *testing.T) {
		require.NoError(t, store.CreateUser(ctx, newUser("u1", "alice")))

		byName, err := store.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "u1", byName.ID)

		byID, err := store.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := store.CreateUser(ctx, newUser("u2", "alice"))
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := store.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.GetUserByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		u, err := store.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		u.Username = "mutated"

		again, err := store.GetUserByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Username)
	})
}

func TestMemoryStore_Events(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.CreateUser(ctx, newUser("u1", "alice")))

	now := time.Now().UTC()

	t.Run("create resolves organizer username", func(t *testing.T) {
		event := newEvent("e1", "u1", now.Add(24*time.Hour), "futbol")
		require.NoError(t, store.CreateEvent(ctx, event))
		assert.Equal(t, "alice", event.Organizer.Username)

		got, err := store.GetEvent(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Organizer.Username)
	})

	t.Run("create with unknown owner fails", func(t *testing.T) {
		err := store.CreateEvent(ctx, newEvent("e2", "ghost", now, "futbol"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upcoming filters and sorts ascending", func(t *testing.T) {
		require.NoError(t, store.CreateEvent(ctx, newEvent("past", "u1", now.Add(-48*time.Hour), "tenis")))
		require.NoError(t, store.CreateEvent(ctx, newEvent("far", "u1", now.Add(72*time.Hour), "tenis")))
		require.NoError(t, store.CreateEvent(ctx, newEvent("near", "u1", now.Add(time.Hour), "tenis")))

		events, err := store.ListUpcomingEvents(ctx, now)
		require.NoError(t, err)

		ids := make([]string, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"near", "e1", "far"}, ids)
	})

	t.Run("filter by sport type", func(t *testing.T) {
		events, err := store.ListEventsByType(ctx, "tenis")
		require.NoError(t, err)
		assert.Len(t, events, 3)

		events, err = store.ListEventsByType(ctx, "rugby")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("date range is inclusive and sorted", func(t *testing.T) {
		events, err := store.ListEventsByDateRange(ctx, now.Add(time.Hour), now.Add(72*time.Hour))
		require.NoError(t, err)

		ids := make([]string, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"near", "e1", "far"}, ids)
	})

	t.Run("update", func(t *testing.T) {
		event, err := store.GetEvent(ctx, "e1")
		require.NoError(t, err)
		event.Location = "New Stadium"
		require.NoError(t, store.UpdateEvent(ctx, event))

		got, err := store.GetEvent(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, "New Stadium", got.Location)
	})

	t.Run("update missing event", func(t *testing.T) {
		err := store.UpdateEvent(ctx, newEvent("nope", "u1", now, "futbol"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteEvent(ctx, "past"))
		_, err := store.GetEvent(ctx, "past")
		assert.ErrorIs(t, err, ErrNotFound)

		err = store.DeleteEvent(ctx, "past")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
