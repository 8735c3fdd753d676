package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/rallyhq/rally/pkg/auth"
)

// SQLStore implements Store over database/sql. It supports SQLite (the
// default single-file deployment) and PostgreSQL behind one query set;
// queries are written with ? placeholders and rebound for postgres.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Open opens a SQL-backed store according to the config
func Open(cfg Config) (*SQLStore, error) {
	var (
		driver string
		dsn    string
	)
	switch cfg.Type {
	case "sqlite":
		driver = "sqlite3"
		dsn = cfg.SQLitePath + "?_foreign_keys=on"
	case "postgres":
		driver = "postgres"
		dsn = cfg.PostgresURL
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &SQLStore{db: db, driver: driver}, nil
}

// NewSQLStore wraps an existing database handle. Used by tests with sqlmock.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		event_date  TIMESTAMP NOT NULL,
		location    TEXT NOT NULL,
		sport_type  TEXT NOT NULL,
		owner_id    TEXT NOT NULL REFERENCES users(id),
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date)`,
	`CREATE INDEX IF NOT EXISTS idx_events_sport_type ON events(sport_type)`,
}

// Migrate creates the schema if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// rebind converts ? placeholders to $1..$n for postgres
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// isUniqueViolation reports whether the error is a unique-constraint
// violation from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// CreateUser persists a user, mapping unique violations to
// ErrDuplicateUsername
func (s *SQLStore) CreateUser(ctx context.Context, user *auth.User) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`),
		user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SQLStore) getUser(ctx context.Context, where, arg string) (*auth.User, error) {
	user := &auth.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, username, password_hash, created_at, updated_at
		FROM users WHERE `+where+` = ?`), arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername looks up a user by username
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return s.getUser(ctx, "username", username)
}

// GetUserByID looks up a user by id
func (s *SQLStore) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return s.getUser(ctx, "id", id)
}

const eventColumns = `e.id, e.name, e.description, e.event_date, e.location,
	e.sport_type, e.created_at, e.updated_at, u.id, u.username`

const eventSelect = `SELECT ` + eventColumns + `
	FROM events e JOIN users u ON u.id = e.owner_id`

func scanEvent(row interface{ Scan(...interface{}) error }) (*Event, error) {
	event := &Event{}
	err := row.Scan(
		&event.ID, &event.Name, &event.Description, &event.Date,
		&event.Location, &event.SportType, &event.CreatedAt, &event.UpdatedAt,
		&event.Organizer.ID, &event.Organizer.Username,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *SQLStore) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// CreateEvent persists an event. The owner must exist; the foreign key
// enforces the reference.
func (s *SQLStore) CreateEvent(ctx context.Context, event *Event) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO events (id, name, description, event_date, location, sport_type, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		event.ID, event.Name, event.Description, event.Date, event.Location,
		event.SportType, event.Organizer.ID, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEvent looks up an event by id, including its organizer
func (s *SQLStore) GetEvent(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(eventSelect+` WHERE e.id = ?`), id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListEvents returns all events in creation order
func (s *SQLStore) ListEvents(ctx context.Context) ([]*Event, error) {
	return s.queryEvents(ctx, eventSelect+` ORDER BY e.created_at`)
}

// ListUpcomingEvents returns events with date >= now, sorted ascending
func (s *SQLStore) ListUpcomingEvents(ctx context.Context, now time.Time) ([]*Event, error) {
	return s.queryEvents(ctx, eventSelect+` WHERE e.event_date >= ? ORDER BY e.event_date`, now)
}

// ListEventsByType returns events matching the sport type tag
func (s *SQLStore) ListEventsByType(ctx context.Context, sportType string) ([]*Event, error) {
	return s.queryEvents(ctx, eventSelect+` WHERE e.sport_type = ? ORDER BY e.created_at`, sportType)
}

// ListEventsByDateRange returns events within [from, to], sorted ascending
func (s *SQLStore) ListEventsByDateRange(ctx context.Context, from, to time.Time) ([]*Event, error) {
	return s.queryEvents(ctx, eventSelect+` WHERE e.event_date >= ? AND e.event_date <= ? ORDER BY e.event_date`, from, to)
}

// UpdateEvent replaces the mutable fields of a stored event. The owner
// column is deliberately absent from the statement.
func (s *SQLStore) UpdateEvent(ctx context.Context, event *Event) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE events SET name = ?, description = ?, event_date = ?, location = ?, sport_type = ?, updated_at = ?
		WHERE id = ?`),
		event.Name, event.Description, event.Date, event.Location,
		event.SportType, event.UpdatedAt, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event by id
func (s *SQLStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks database connectivity
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *SQLStore) Close() error {
	return s.db.Close()
}
