package storage

import (
	"context"
	"time"

	"github.com/rallyhq/rally/pkg/auth"
)

// Recorder receives per-operation storage observations
type Recorder interface {
	ObserveStorageOperation(operation string, start time.Time, err error)
}

// InstrumentedStore decorates a Store, reporting every operation to a
// Recorder. Wired in by main when metrics are enabled.
type InstrumentedStore struct {
	inner Store
	rec   Recorder
}

// NewInstrumentedStore wraps a store with operation instrumentation
func NewInstrumentedStore(inner Store, rec Recorder) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, rec: rec}
}

func (s *InstrumentedStore) CreateUser(ctx context.Context, user *auth.User) error {
	start := time.Now()
	err := s.inner.CreateUser(ctx, user)
	s.rec.ObserveStorageOperation("create_user", start, err)
	return err
}

func (s *InstrumentedStore) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	start := time.Now()
	user, err := s.inner.GetUserByUsername(ctx, username)
	s.rec.ObserveStorageOperation("get_user_by_username", start, err)
	return user, err
}

func (s *InstrumentedStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	start := time.Now()
	user, err := s.inner.GetUserByID(ctx, id)
	s.rec.ObserveStorageOperation("get_user_by_id", start, err)
	return user, err
}

func (s *InstrumentedStore) CreateEvent(ctx context.Context, event *Event) error {
	start := time.Now()
	err := s.inner.CreateEvent(ctx, event)
	s.rec.ObserveStorageOperation("create_event", start, err)
	return err
}

func (s *InstrumentedStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	start := time.Now()
	event, err := s.inner.GetEvent(ctx, id)
	s.rec.ObserveStorageOperation("get_event", start, err)
	return event, err
}

func (s *InstrumentedStore) ListEvents(ctx context.Context) ([]*Event, error) {
	start := time.Now()
	events, err := s.inner.ListEvents(ctx)
	s.rec.ObserveStorageOperation("list_events", start, err)
	return events, err
}

func (s *InstrumentedStore) ListUpcomingEvents(ctx context.Context, now time.Time) ([]*Event, error) {
	start := time.Now()
	events, err := s.inner.ListUpcomingEvents(ctx, now)
	s.rec.ObserveStorageOperation("list_upcoming_events", start, err)
	return events, err
}

func (s *InstrumentedStore) ListEventsByType(ctx context.Context, sportType string) ([]*Event, error) {
	start := time.Now()
	events, err := s.inner.ListEventsByType(ctx, sportType)
	s.rec.ObserveStorageOperation("list_events_by_type", start, err)
	return events, err
}

func (s *InstrumentedStore) ListEventsByDateRange(ctx context.Context, from, to time.Time) ([]*Event, error) {
	start := time.Now()
	events, err := s.inner.ListEventsByDateRange(ctx, from, to)
	s.rec.ObserveStorageOperation("list_events_by_date_range", start, err)
	return events, err
}

func (s *InstrumentedStore) UpdateEvent(ctx context.Context, event *Event) error {
	start := time.Now()
	err := s.inner.UpdateEvent(ctx, event)
	s.rec.ObserveStorageOperation("update_event", start, err)
	return err
}

func (s *InstrumentedStore) DeleteEvent(ctx context.Context, id string) error {
	start := time.Now()
	err := s.inner.DeleteEvent(ctx, id)
	s.rec.ObserveStorageOperation("delete_event", start, err)
	return err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.inner.Ping(ctx)
	s.rec.ObserveStorageOperation("ping", start, err)
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
