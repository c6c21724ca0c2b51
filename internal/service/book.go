package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	domainerrors "github.com/bookshelfapp/bookshelf-server/internal/errors"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

// BookService serves the read-only book catalog.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{store: store, logger: logger}
}

// Get returns a catalog book by ID.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFoundf("No book found with the id of %s", bookID)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

// Search returns catalog books matching the query; an empty query
// returns the whole catalog.
func (s *BookService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	books, err := s.store.SearchBooks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}
