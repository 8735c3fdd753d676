package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rallyhq/rally/pkg/auth"
)

// MemoryStore is an in-memory Store implementation. It backs the test suite
// and RALLY_STORAGE_TYPE=memory deployments.
type MemoryStore struct {
	mu             sync.RWMutex
	users          map[string]*auth.User // by id
	usersByName    map[string]string     // username -> id
	events         map[string]*Event     // by id
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]*auth.User),
		usersByName: make(map[string]string),
		events:      make(map[string]*Event),
	}
}

// CreateUser persists a user, enforcing username uniqueness
func (s *MemoryStore) CreateUser(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[user.Username]; exists {
		return ErrDuplicateUsername
	}

	u := *user
	s.users[u.ID] = &u
	s.usersByName[u.Username] = u.ID
	return nil
}

// GetUserByUsername looks up a user by username
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// GetUserByID looks up a user by id
func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

// CreateEvent persists an event. The organizer must reference an existing
// user.
func (s *MemoryStore) CreateEvent(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[event.Organizer.ID]
	if !ok {
		return ErrNotFound
	}
	event.Organizer.Username = owner.Username

	e := *event
	s.events[e.ID] = &e
	return nil
}

// GetEvent looks up an event by id
func (s *MemoryStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := *event
	return &e, nil
}

// ListEvents returns all events
func (s *MemoryStore) ListEvents(ctx context.Context) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *Event) bool { return true }, false), nil
}

// ListUpcomingEvents returns events with date >= now, sorted ascending
func (s *MemoryStore) ListUpcomingEvents(ctx context.Context, now time.Time) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *Event) bool { return !e.Date.Before(now) }, true), nil
}

// ListEventsByType returns events matching the sport type tag
func (s *MemoryStore) ListEventsByType(ctx context.Context, sportType string) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *Event) bool { return e.SportType == sportType }, false), nil
}

// ListEventsByDateRange returns events with from <= date <= to, sorted
// ascending
func (s *MemoryStore) ListEventsByDateRange(ctx context.Context, from, to time.Time) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *Event) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	}, true), nil
}

// UpdateEvent replaces a stored event. The owner reference is immutable;
// callers never change Organizer.
func (s *MemoryStore) UpdateEvent(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return ErrNotFound
	}
	e := *event
	s.events[e.ID] = &e
	return nil
}

// DeleteEvent removes an event by id
func (s *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}

// collect copies matching events, optionally sorted by date ascending.
// Callers hold at least the read lock.
func (s *MemoryStore) collect(match func(*Event) bool, sortByDate bool) []*Event {
	result := make([]*Event, 0)
	for _, event := range s.events {
		if match(event) {
			e := *event
			result = append(result, &e)
		}
	}
	if sortByDate {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Date.Before(result[j].Date)
		})
	} else {
		// Stable order for unsorted listings
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result
}
