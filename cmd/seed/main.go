package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/logging"
)

func main() {
	count := flag.Int("count", 1000, "Number of books to generate")
	truncate := flag.Bool("truncate", false, "Empty the books table first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if *truncate {
		if _, err := pool.Exec(ctx, "DELETE FROM books"); err != nil {
			logger.Fatal("failed to empty books", zap.Error(err))
		}
	}

	logger.Info("generating books", zap.Int("count", *count))
	books := generateBooks(rand.New(rand.NewSource(1)), *count)

	inserted, err := pool.CopyFrom(ctx,
		pgx.Identifier{"books"},
		[]string{"isbn", "amazon_url", "author", "language", "pages", "publisher", "title", "year"},
		pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
			b := books[i]
			return []any{b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year}, nil
		}),
	)
	if err != nil {
		logger.Fatal("failed to insert books", zap.Error(err))
	}
	logger.Info("inserted books", zap.Int64("rows", inserted))

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err == nil {
		logger.Info("total books in database", zap.Int("total", total))
	}
}

var (
	authors    = []string{"Ursula K. Le Guin", "Octavia Butler", "Italo Calvino", "Haruki Murakami", "Chimamanda Ngozi Adichie", "Jorge Luis Borges"}
	languages  = []string{"english", "spanish", "french", "german", "italian", "japanese"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Vintage"}
	words      = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "History", "Future", "Wisdom",
		"Light", "Darkness", "World", "Time", "Space", "Mind", "Soul",
	}
)

// generateBooks returns n books with unique ten-digit ISBNs.
func generateBooks(rng *rand.Rand, n int) []book.Book {
	out := make([]book.Book, 0, n)
	for i := 0; i < n; i++ {
		isbn := fmt.Sprintf("9%09d", i+1)
		out = append(out, book.Book{
			ISBN:      isbn,
			AmazonURL: "http://a.co/" + isbn,
			Author:    authors[rng.Intn(len(authors))],
			Language:  languages[rng.Intn(len(languages))],
			Pages:     100 + rng.Intn(800),
			Publisher: publishers[rng.Intn(len(publishers))],
			Title:     fmt.Sprintf("The %s of %s", words[rng.Intn(len(words))], words[rng.Intn(len(words))]),
			Year:      1950 + rng.Intn(75),
		})
	}
	return out
}
