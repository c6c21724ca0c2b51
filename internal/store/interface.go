// Package store defines the persistence interface for the Bookshelf server
// and provides two realizations: an embedded Badger database for production
// and an in-memory store for tests and ephemeral deployments.
package store

import (
	"context"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// ListItemFilter narrows a list-item query.
// OwnerID is required; BookID optionally restricts the result to the
// single item for that (owner, book) pair.
type ListItemFilter struct {
	OwnerID string
	BookID  string
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
	SearchBooks(ctx context.Context, query string) ([]*domain.Book, error)

	// List items
	CreateListItem(ctx context.Context, item *domain.ListItem) error
	GetListItem(ctx context.Context, id string) (*domain.ListItem, error)
	QueryListItems(ctx context.Context, filter ListItemFilter) ([]*domain.ListItem, error)
	UpdateListItem(ctx context.Context, id string, update domain.ListItemUpdate) (*domain.ListItem, error)
	DeleteListItem(ctx context.Context, id string) error
}
