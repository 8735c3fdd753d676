package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNotFound(w, "event not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"event not found"}`, w.Body.String())
}

func TestWriteFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteFieldErrors(w, []FieldError{
		{Field: "username", Message: "username must be at least 3 characters"},
		{Field: "password", Message: "password must be at least 6 characters"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[
		{"field":"username","message":"username must be at least 3 characters"},
		{"field":"password","message":"password must be at least 6 characters"}
	]}`, w.Body.String())
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteCreated(w, map[string]string{"token": "abc"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"token":"abc"}`, w.Body.String())
}

func TestParseJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Final"}`))

		var dest struct {
			Name string `json:"name"`
		}
		require.NoError(t, ParseJSON(r, &dest))
		assert.Equal(t, "Final", dest.Name)
	})

	t.Run("invalid body writes 400", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader("{broken"))
		w := httptest.NewRecorder()

		var dest map[string]string
		assert.False(t, ParseJSONOrError(w, r, &dest))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidators(t *testing.T) {
	t.Run("RequireNonEmpty trims whitespace", func(t *testing.T) {
		var errs []FieldError
		errs = RequireNonEmpty(errs, "ubicacion", "   ")
		errs = RequireNonEmpty(errs, "nombre", "Final")

		require.Len(t, errs, 1)
		assert.Equal(t, "ubicacion", errs[0].Field)
	})

	t.Run("RequireMinLength accumulates", func(t *testing.T) {
		var errs []FieldError
		errs = RequireMinLength(errs, "username", "ab", 3)
		errs = RequireMinLength(errs, "password", "12345", 6)

		require.Len(t, errs, 2)
		assert.Contains(t, errs[0].Message, "at least 3 characters")
		assert.Contains(t, errs[1].Message, "at least 6 characters")
	})
}
