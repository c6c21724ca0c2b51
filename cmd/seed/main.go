// Package main provides a tool to seed the book catalog from a JSON file.
//
// The input file holds an array of books:
//
//	[{"title": "The Hobbit", "author": "J.R.R. Tolkien", "pageCount": 310, ...}, ...]
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/Bookshelf/data --file books.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/id"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

var (
	dataPath = flag.String("data-path", "", "Base path for the database (default: ~/Bookshelf/data)")
	file     = flag.String("file", "books.json", "Path to the JSON catalog file")
)

func main() {
	flag.Parse()

	basePath := *dataPath
	if basePath == "" {
		basePath = os.ExpandEnv("$HOME/Bookshelf/data")
	}
	dbPath := filepath.Join(basePath, "db")

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	var books []*domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.NewBadger(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	created, skipped := 0, 0

	for _, book := range books {
		if book.Title == "" {
			log.Printf("Skipping entry with no title")
			skipped++
			continue
		}

		if book.ID == "" {
			book.ID = id.MustGenerate("book")
		}
		book.InitTimestamps()

		if err := s.CreateBook(ctx, book); err != nil {
			if errors.Is(err, store.ErrBookExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create book %q: %v", book.Title, err)
		}
		created++
	}

	fmt.Printf("Done: %d created, %d skipped\n", created, skipped)
}
