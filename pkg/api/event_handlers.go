package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rallyhq/rally/pkg/httputil"
	"github.com/rallyhq/rally/pkg/middleware"
	"github.com/rallyhq/rally/pkg/storage"
)

type createEventRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Date        string `json:"fecha"`
	Location    string `json:"ubicacion"`
	SportType   string `json:"tipoDeporte"`
}

// updateEventRequest carries a partial event: absent fields stay unchanged.
// The organizer is not part of the request; ownership is immutable.
type updateEventRequest struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Date        *string `json:"fecha"`
	Location    *string `json:"ubicacion"`
	SportType   *string `json:"tipoDeporte"`
}

// parseEventDate accepts full RFC3339 timestamps and plain ISO dates
func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// listEvents handles GET /api/events
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListEvents(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list events")
		httputil.WriteInternalError(w, "error fetching events")
		return
	}
	httputil.WriteSuccess(w, events)
}

// listUpcomingEvents handles GET /api/events/upcoming
func (s *Server) listUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListUpcomingEvents(r.Context(), time.Now())
	if err != nil {
		s.logger.WithError(err).Error("failed to list upcoming events")
		httputil.WriteInternalError(w, "error fetching events")
		return
	}
	httputil.WriteSuccess(w, events)
}

// listEventsByType handles GET /api/events/type/{sportType}
func (s *Server) listEventsByType(w http.ResponseWriter, r *http.Request) {
	sportType, ok := httputil.ParsePathStringOrError(w, r, "sportType")
	if !ok {
		return
	}

	events, err := s.store.ListEventsByType(r.Context(), sportType)
	if err != nil {
		s.logger.WithError(err).Error("failed to list events by type")
		httputil.WriteInternalError(w, "error fetching events")
		return
	}
	httputil.WriteSuccess(w, events)
}

// listEventsByDateRange handles GET /api/events/date?from=...&to=...
func (s *Server) listEventsByDateRange(w http.ResponseWriter, r *http.Request) {
	from, err := parseEventDate(httputil.ParseQueryString(r, "from", ""))
	if err != nil {
		httputil.WriteBadRequest(w, "invalid from date")
		return
	}
	to, err := parseEventDate(httputil.ParseQueryString(r, "to", ""))
	if err != nil {
		httputil.WriteBadRequest(w, "invalid to date")
		return
	}

	events, err := s.store.ListEventsByDateRange(r.Context(), from, to)
	if err != nil {
		s.logger.WithError(err).Error("failed to list events by date range")
		httputil.WriteInternalError(w, "error fetching events")
		return
	}
	httputil.WriteSuccess(w, events)
}

// getEvent handles GET /api/events/{id}
func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteNotFound(w, "event not found")
			return
		}
		s.logger.WithError(err).Error("failed to get event")
		httputil.WriteInternalError(w, "error fetching event")
		return
	}
	httputil.WriteSuccess(w, event)
}

// createEvent handles POST /api/events. The authenticated user becomes the
// owner.
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteUnauthorized(w, "no token")
		return
	}

	var req createEventRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	var errs []httputil.FieldError
	errs = httputil.RequireNonEmpty(errs, "nombre", req.Name)
	errs = httputil.RequireNonEmpty(errs, "descripcion", req.Description)
	errs = httputil.RequireNonEmpty(errs, "ubicacion", req.Location)
	errs = httputil.RequireNonEmpty(errs, "tipoDeporte", req.SportType)

	date, err := parseEventDate(req.Date)
	if err != nil {
		errs = append(errs, httputil.FieldError{Field: "fecha", Message: "fecha must be an ISO 8601 date"})
	}
	if len(errs) > 0 {
		httputil.WriteFieldErrors(w, errs)
		return
	}

	now := time.Now().UTC()
	event := &storage.Event{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		SportType:   req.SportType,
		Organizer: storage.Organizer{
			ID:       user.ID,
			Username: user.Username,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateEvent(r.Context(), event); err != nil {
		s.logger.WithError(err).Error("failed to create event")
		httputil.WriteInternalError(w, "error creating event")
		return
	}

	httputil.WriteCreated(w, event)
}

// updateEvent handles PUT /api/events/{id}.
//
// Order is fixed: existence check, then ownership check, then mutation. The
// ownership check protects the whole record regardless of which fields the
// request touches.
func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteUnauthorized(w, "no token")
		return
	}

	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	var req updateEventRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteNotFound(w, "event not found")
			return
		}
		s.logger.WithError(err).Error("failed to get event")
		httputil.WriteInternalError(w, "error updating event")
		return
	}

	if event.Organizer.ID != user.ID {
		httputil.WriteForbidden(w, "not authorized")
		return
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			httputil.WriteBadRequest(w, "fecha must be an ISO 8601 date")
			return
		}
		event.Date = date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.SportType != nil {
		event.SportType = *req.SportType
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateEvent(r.Context(), event); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteNotFound(w, "event not found")
			return
		}
		s.logger.WithError(err).Error("failed to update event")
		httputil.WriteInternalError(w, "error updating event")
		return
	}

	httputil.WriteSuccess(w, event)
}

// deleteEvent handles DELETE /api/events/{id}. Same ordering contract as
// updateEvent.
func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteUnauthorized(w, "no token")
		return
	}

	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteNotFound(w, "event not found")
			return
		}
		s.logger.WithError(err).Error("failed to get event")
		httputil.WriteInternalError(w, "error deleting event")
		return
	}

	if event.Organizer.ID != user.ID {
		httputil.WriteForbidden(w, "not authorized")
		return
	}

	if err := s.store.DeleteEvent(r.Context(), event.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteNotFound(w, "event not found")
			return
		}
		s.logger.WithError(err).Error("failed to delete event")
		httputil.WriteInternalError(w, "error deleting event")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "event deleted")
}
