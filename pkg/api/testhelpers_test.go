package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rallyhq/rally/pkg/auth"
	"github.com/rallyhq/rally/pkg/observability"
	"github.com/rallyhq/rally/pkg/storage"
)

// newTestServer builds a server over the in-memory store with a cheap
// bcrypt cost and a fixed signing secret.
func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTService([]byte("test-secret"), 0)
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	return NewServer(store, hasher, tokens, logger), store
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// registerUser registers a user through the API and returns its token
func registerUser(t *testing.T, srv *Server, username, password string) string {
	t.Helper()

	w := doJSON(t, srv, "POST", "/api/users/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createEvent creates an event through the API and returns it
func createEvent(t *testing.T, srv *Server, token string, fields map[string]string) *storage.Event {
	t.Helper()

	w := doJSON(t, srv, "POST", "/api/events", token, fields)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	event := &storage.Event{}
	decodeBody(t, w, event)
	require.NotEmpty(t, event.ID)
	return event
}

func eventFields(name, date, sportType string) map[string]string {
	return map[string]string{
		"nombre":      name,
		"descripcion": "test event",
		"fecha":       date,
		"ubicacion":   "City Arena",
		"tipoDeporte": sportType,
	}
}
