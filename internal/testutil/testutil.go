package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore/internal/config"
)

// ValidBookPayload is a complete create payload.
func ValidBookPayload() map[string]interface{} {
	return map[string]interface{}{
		"isbn":       "1111111111",
		"amazon_url": "http://a.co/xyz",
		"author":     "New Author",
		"language":   "english",
		"pages":      200,
		"publisher":  "New Pub",
		"title":      "New Book",
		"year":       2022,
	}
}

// SetupTestDB connects to the test database and skips the test when it is
// unreachable. The books table is emptied before and after the test.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	db, err := pgxpool.New(ctx, config.DatabaseDSN(config.EnvTest))
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test database: %v", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		t.Skipf("Skipping test: cannot ping test database: %v", err)
	}
	if _, err := db.Exec(ctx, "DELETE FROM books"); err != nil {
		db.Close()
		t.Skipf("Skipping test: books table unavailable (run migrations): %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), "DELETE FROM books")
		db.Close()
	})
	return db
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorStatus returns error.status of an error envelope, or 0.
func (r RecordResponse) ErrorStatus() int {
	envelope, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return 0
	}
	status, _ := envelope["status"].(float64)
	return int(status)
}

// ErrorList returns error.errors of an error envelope.
func (r RecordResponse) ErrorList() []string {
	envelope, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return nil
	}
	raw, _ := envelope["errors"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
