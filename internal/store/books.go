package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// CreateBook adds a book to the catalog.
func (s *BadgerStore) CreateBook(_ context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return ErrBookExists
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return setInTxn(txn, key, book)
	})
}

// GetBook retrieves a book by ID.
func (s *BadgerStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := s.get([]byte(bookPrefix+id), &book); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// GetBooksByIDs retrieves multiple books in one call, preserving the
// order of the requested IDs. Missing IDs are skipped rather than
// failing the whole batch.
func (s *BadgerStore) GetBooksByIDs(_ context.Context, ids []string) ([]*domain.Book, error) {
	books := make([]*domain.Book, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var book domain.Book
			err := getInTxn(txn, []byte(bookPrefix+id), &book)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get book %s: %w", id, err)
			}
			books = append(books, &book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// SearchBooks returns catalog books whose title or author contains the
// query, case-insensitively. An empty query returns the whole catalog.
// Results are ordered by book ID.
func (s *BadgerStore) SearchBooks(_ context.Context, query string) ([]*domain.Book, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	var books []*domain.Book
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(bookPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var book domain.Book
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &book)
			})
			if err != nil {
				return err
			}

			if needle == "" ||
				strings.Contains(strings.ToLower(book.Title), needle) ||
				strings.Contains(strings.ToLower(book.Author), needle) {
				books = append(books, &book)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}
