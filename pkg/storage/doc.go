// Package storage provides persistence for users and events.
//
// # Overview
//
// The Store interface is the single persistence contract; two
// implementations exist:
//
//   - SQLStore: database/sql over SQLite (default) or PostgreSQL. One query
//     set written with ? placeholders, rebound to $n for postgres. Event
//     reads join the users table so every event carries its organizer's
//     id and username.
//   - MemoryStore: mutex-guarded maps, used by tests and
//     RALLY_STORAGE_TYPE=memory.
//
// # Errors
//
// Lookups that miss return ErrNotFound; registering a taken username
// returns ErrDuplicateUsername (mapped from driver unique-violation codes).
// Everything else is an infrastructure failure surfaced to the caller
// wrapped with context.
//
// # Usage
//
//	store, err := storage.Open(cfg.Storage)
//	if err != nil { ... }
//	if err := store.Migrate(ctx); err != nil { ... }
//	defer store.Close()
package storage
