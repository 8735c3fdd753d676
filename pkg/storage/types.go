package storage

import "time"

// Organizer is the owner reference embedded in every event returned by the
// store. It carries only the public fields of the owning user.
type Organizer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Event represents a sporting event owned by exactly one user.
//
// JSON field names preserve the public wire contract of the API
// (nombre/descripcion/fecha/ubicacion/tipoDeporte/organizador).
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Date        time.Time `json:"fecha"`
	Location    string    `json:"ubicacion"`
	SportType   string    `json:"tipoDeporte"`
	Organizer   Organizer `json:"organizador"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
