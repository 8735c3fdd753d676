package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rallyhq/rally/pkg/auth"
	"github.com/rallyhq/rally/pkg/httputil"
	"github.com/rallyhq/rally/pkg/middleware"
	"github.com/rallyhq/rally/pkg/observability"
	"github.com/rallyhq/rally/pkg/storage"
)

// Server is the Rally API server
type Server struct {
	router *mux.Router
	store  storage.Store
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *observability.Logger
	gate   *middleware.AuthMiddleware
}

// NewServer creates a new API server over the given collaborators
func NewServer(store storage.Store, hasher auth.PasswordHasher, tokens auth.TokenService, logger *observability.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		gate:   middleware.NewAuthMiddleware(tokens, store, false),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes.
//
// The auth gate is applied per-route: register, login and all event reads
// are public; profile and event mutations require identity.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/test", s.test).Methods("GET")

	users := s.router.PathPrefix("/api/users").Subrouter()
	users.HandleFunc("/register", s.register).Methods("POST")
	users.HandleFunc("/login", s.login).Methods("POST")
	users.Handle("/profile", s.gate.HandlerFunc(s.profile)).Methods("GET")

	events := s.router.PathPrefix("/api/events").Subrouter()
	events.HandleFunc("", s.listEvents).Methods("GET")
	events.HandleFunc("/upcoming", s.listUpcomingEvents).Methods("GET")
	events.HandleFunc("/type/{sportType}", s.listEventsByType).Methods("GET")
	events.HandleFunc("/date", s.listEventsByDateRange).Methods("GET")
	events.HandleFunc("/{id}", s.getEvent).Methods("GET")
	events.Handle("", s.gate.HandlerFunc(s.createEvent)).Methods("POST")
	events.Handle("/{id}", s.gate.HandlerFunc(s.updateEvent)).Methods("PUT")
	events.Handle("/{id}", s.gate.HandlerFunc(s.deleteEvent)).Methods("DELETE")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying router so main can mount extra endpoints
// (metrics, health) next to the API.
func (s *Server) Router() *mux.Router {
	return s.router
}

// test handles GET /test
func (s *Server) test(w http.ResponseWriter, r *http.Request) {
	httputil.WriteMessage(w, http.StatusOK, "Test ok!")
}
