package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONOK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

func JSONCreated(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusCreated, v)
}

// JSONError writes the error envelope.
func JSONError(w http.ResponseWriter, statusCode int, message string, errs []string) {
	JSON(w, statusCode, ErrorResponse{
		Error: ErrorResponseBody{
			Message: message,
			Status:  statusCode,
			Errors:  errs,
		},
	})
}
