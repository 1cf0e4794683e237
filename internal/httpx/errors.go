package httpx

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bookstore/internal/apperr"
)

const internalErrorMessage = "Internal server error"

// ErrorTranslator turns handler failures into the JSON error envelope.
type ErrorTranslator struct {
	logger         *zap.Logger
	exposeInternal bool
}

// NewErrorTranslator creates a translator. With exposeInternal set, 5xx
// responses carry the raw error text instead of a generic message.
func NewErrorTranslator(logger *zap.Logger, exposeInternal bool) *ErrorTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorTranslator{logger: logger, exposeInternal: exposeInternal}
}

// Translate maps err to a status code and response body.
func (t *ErrorTranslator) Translate(err error) (int, ErrorResponse) {
	status := apperr.Status(err)
	body := ErrorResponseBody{Status: status, Message: err.Error()}

	var validationErr *apperr.ValidationError
	var statusErr *apperr.Error
	switch {
	case errors.As(err, &validationErr):
		body.Errors = validationErr.Violations
	case status == http.StatusRequestEntityTooLarge:
		body.Message = "Request body too large"
	case errors.As(err, &statusErr):
		body.Message = statusErr.Message
	}

	if status >= http.StatusInternalServerError && !t.exposeInternal {
		body.Message = internalErrorMessage
	}
	return status, ErrorResponse{Error: body}
}

// Write translates err and sends it. Server-side failures are logged.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	status, body := t.Translate(err)
	if status >= http.StatusInternalServerError {
		t.logger.Error("request failed",
			zap.Error(err),
			zap.Int("status", status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r)),
		)
	}
	JSON(w, status, body)
}
