package book

import (
	"context"
	"sort"
	"strconv"

	"bookstore/internal/apperr"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the books matching every filter, ordered by ISBN.
func (s *Service) List(ctx context.Context, f Filter) ([]Book, error) {
	return s.repo.FindAll(ctx, f)
}

// Get returns a book by its ISBN.
func (s *Service) Get(ctx context.Context, isbn string) (Book, error) {
	return s.repo.FindOne(ctx, isbn)
}

// Create validates the payload and stores a new book.
func (s *Service) Create(ctx context.Context, payload []byte) (Book, error) {
	b, err := ValidatePayload(payload)
	if err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, b)
}

// Update validates the payload and overwrites the book stored under isbn.
// An isbn carried in the payload is ignored.
func (s *Service) Update(ctx context.Context, isbn string, payload []byte) (Book, error) {
	b, err := ValidatePayload(payload)
	if err != nil {
		return Book{}, err
	}
	b.ISBN = isbn
	return s.repo.Update(ctx, isbn, b)
}

// Delete removes the book stored under isbn.
func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.repo.Remove(ctx, isbn)
}

// ParseFilter keeps the whitelisted keys of a query string. Numeric columns
// must carry integers.
func ParseFilter(query map[string][]string) (Filter, error) {
	f := Filter{}
	var violations []string
	for key, values := range query {
		if !filterColumns[key] || len(values) == 0 {
			continue
		}
		value := values[0]
		switch key {
		case "pages", "year":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				violations = append(violations, key+" filter must be an integer")
				continue
			}
			f[key] = int(n)
		default:
			f[key] = value
		}
	}
	sort.Strings(violations)
	if err := apperr.NewValidationError(violations); err != nil {
		return nil, err
	}
	return f, nil
}
