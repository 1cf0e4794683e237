package book

import (
	"fmt"

	"bookstore/internal/apperr"
)

var (
	// ErrNotFound is returned when no book has the requested ISBN.
	ErrNotFound = fmt.Errorf("book %w", apperr.ErrNotFound)
	// ErrConflict is returned when a book with the same ISBN already exists.
	ErrConflict = fmt.Errorf("book %w", apperr.ErrConflict)
)

// Book represents a book entity.
type Book struct {
	ISBN      string `json:"isbn" validate:"required"`
	AmazonURL string `json:"amazon_url" validate:"required,url"`
	Author    string `json:"author" validate:"required"`
	Language  string `json:"language" validate:"required"`
	Pages     int    `json:"pages" validate:"gt=0"`
	Publisher string `json:"publisher" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Year      int    `json:"year"`
}

// Filter narrows FindAll by equality on whitelisted columns. Keys are column
// names, values are already typed (string or int).
type Filter map[string]any
