package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/apperr"
)

func TestErrorTranslator_Translate(t *testing.T) {
	translator := NewErrorTranslator(nil, false)

	t.Run("validation lists every violation", func(t *testing.T) {
		err := &apperr.ValidationError{Violations: []string{"author is required", "pages must be an integer"}}

		status, body := translator.Translate(err)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, http.StatusBadRequest, body.Error.Status)
		assert.Equal(t, "author is required; pages must be an integer", body.Error.Message)
		assert.Equal(t, err.Violations, body.Error.Errors)
	})

	t.Run("not found keeps message", func(t *testing.T) {
		status, body := translator.Translate(fmt.Errorf("book %w", apperr.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "book not found", body.Error.Message)
	})

	t.Run("conflict", func(t *testing.T) {
		status, _ := translator.Translate(fmt.Errorf("book %w", apperr.ErrConflict))
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("bad request uses public message", func(t *testing.T) {
		status, body := translator.Translate(apperr.BadRequest("invalid JSON body", errors.New("unexpected EOF")))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid JSON body", body.Error.Message)
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		status, body := translator.Translate(errors.New("dial tcp 10.0.0.1:5432: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("internal error exposed in development", func(t *testing.T) {
		verbose := NewErrorTranslator(nil, true)
		_, body := verbose.Translate(errors.New("connection refused"))

		assert.Equal(t, "connection refused", body.Error.Message)
	})
}

func TestErrorTranslator_Write(t *testing.T) {
	translator := NewErrorTranslator(nil, false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books/9999999999", nil)

	translator.Write(w, r, fmt.Errorf("book %w", apperr.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, http.StatusNotFound, response.Error.Status)
	assert.Equal(t, "book not found", response.Error.Message)
}
