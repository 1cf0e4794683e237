package book

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const bookColumns = "isbn, amazon_url, author, language, pages, publisher, title, year"

// filterColumns is the whitelist of columns FindAll may filter on.
var filterColumns = map[string]bool{
	"isbn":       true,
	"amazon_url": true,
	"author":     true,
	"language":   true,
	"pages":      true,
	"publisher":  true,
	"title":      true,
	"year":       true,
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// buildListQuery renders the FindAll statement. Column names come from the
// whitelist only; every value is bound as a parameter.
func buildListQuery(f Filter) (string, []any, error) {
	keys := make([]string, 0, len(f))
	for k := range f {
		if !filterColumns[k] {
			return "", nil, fmt.Errorf("unknown filter column %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := []string{"1=1"}
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", k, i+1))
		args = append(args, f[k])
	}

	query := fmt.Sprintf("SELECT %s FROM books WHERE %s ORDER BY isbn", bookColumns, strings.Join(clauses, " AND "))
	return query, args, nil
}

func (r *PostgresRepo) FindAll(ctx context.Context, f Filter) ([]Book, error) {
	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) FindOne(ctx context.Context, isbn string) (Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE isbn = $1"

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := scanBook(r.db.QueryRow(timeoutCtx, query, isbn), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, in Book) (Book, error) {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := scanBook(r.db.QueryRow(timeoutCtx, query,
		in.ISBN, in.AmazonURL, in.Author, in.Language, in.Pages, in.Publisher, in.Title, in.Year,
	), &b)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Book{}, ErrConflict
		}
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return b, nil
}

// Update overwrites every column except the key. It never inserts.
func (r *PostgresRepo) Update(ctx context.Context, isbn string, in Book) (Book, error) {
	query := `
		UPDATE books SET
			amazon_url = $1,
			author = $2,
			language = $3,
			pages = $4,
			publisher = $5,
			title = $6,
			year = $7
		WHERE isbn = $8
		RETURNING ` + bookColumns

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := scanBook(r.db.QueryRow(timeoutCtx, query,
		in.AmazonURL, in.Author, in.Language, in.Pages, in.Publisher, in.Title, in.Year, isbn,
	), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) Remove(ctx context.Context, isbn string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM books WHERE isbn = $1", isbn)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
}
