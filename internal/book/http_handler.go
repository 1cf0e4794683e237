package book

import (
	"fmt"
	"io"
	"net/http"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	errs    *httpx.ErrorTranslator
}

func NewHTTPHandler(service *Service, errs *httpx.ErrorTranslator) *HTTPHandler {
	return &HTTPHandler{service: service, errs: errs}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{isbn}", h.Get)
	mux.HandleFunc("PUT /books/{isbn}", h.Update)
	mux.HandleFunc("DELETE /books/{isbn}", h.Delete)
}

// List handles GET /books
// @Summary List books
// @Description Get all books, optionally filtered by equality on any book field
// @Tags books
// @Produce json
// @Param author query string false "Filter by author"
// @Param title query string false "Filter by title"
// @Param year query int false "Filter by year"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	books, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]any{"books": books})
}

// Get handles GET /books/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]any{"book": b})
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.errs.Write(w, r, fmt.Errorf("read body: %w", err))
		return
	}

	b, err := h.service.Create(r.Context(), payload)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSONCreated(w, map[string]any{"book": b})
}

// Update handles PUT /books/{isbn}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.errs.Write(w, r, fmt.Errorf("read body: %w", err))
		return
	}

	b, err := h.service.Update(r.Context(), r.PathValue("isbn"), payload)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]any{"book": b})
}

// Delete handles DELETE /books/{isbn}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("isbn")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSONOK(w, map[string]string{"message": "Book deleted"})
}
