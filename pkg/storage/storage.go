package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rallyhq/rally/pkg/auth"
)

var (
	// ErrNotFound is returned when a user or event id does not resolve
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when registering an already-taken
	// username
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the persistence contract for users and events.
//
// Every call is independent I/O against the backing database: no
// application-level locking and no transactions across lookup-then-mutate
// sequences. Concurrent updates to the same event resolve as
// last-writer-wins.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *auth.User) error
	GetUserByUsername(ctx context.Context, username string) (*auth.User, error)
	GetUserByID(ctx context.Context, id string) (*auth.User, error)

	// Events
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListUpcomingEvents(ctx context.Context, now time.Time) ([]*Event, error)
	ListEventsByType(ctx context.Context, sportType string) ([]*Event, error)
	ListEventsByDateRange(ctx context.Context, from, to time.Time) ([]*Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// Config for the storage backend
type Config struct {
	Type string // "memory", "sqlite", "postgres"

	// SQLite config
	SQLitePath string

	// PostgreSQL config
	PostgresURL string

	// Connection pool settings (SQL backends)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns the default storage configuration
func DefaultConfig() Config {
	return Config{
		Type:            "sqlite",
		SQLitePath:      "rally.db",
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}
