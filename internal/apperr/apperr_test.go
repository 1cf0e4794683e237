package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ValidationError{Violations: []string{"title is required"}}, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("book %w", ErrNotFound), http.StatusNotFound},
		{"wrapped conflict", fmt.Errorf("book %w", ErrConflict), http.StatusConflict},
		{"bad request", BadRequest("invalid JSON body", errors.New("unexpected EOF")), http.StatusBadRequest},
		{"body too large", fmt.Errorf("read body: %w", &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("joins violations", func(t *testing.T) {
		err := &ValidationError{Violations: []string{"author is required", "pages must be an integer"}}
		assert.Equal(t, "author is required; pages must be an integer", err.Error())
	})

	t.Run("no violations", func(t *testing.T) {
		assert.NoError(t, NewValidationError(nil))
	})

	t.Run("with violations", func(t *testing.T) {
		err := NewValidationError([]string{"isbn is required"})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 1)
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := BadRequest("invalid JSON body", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid JSON body: unexpected EOF", err.Error())
}
