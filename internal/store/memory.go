package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// MemoryStore is an in-memory Store realization. It backs unit tests and
// ephemeral deployments; all data is lost on Close. Entities are copied on
// the way in and out so callers never share memory with the store.
type MemoryStore struct {
	mu sync.RWMutex

	users          map[string]domain.User
	usersByName    map[string]string // normalized username -> user ID
	books          map[string]domain.Book
	listItems      map[string]domain.ListItem
	listItemOrder  []string          // item IDs in insertion order, drives query order
	itemsByPairKey map[string]string // ownerID + ":" + bookID -> item ID
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		users:          make(map[string]domain.User),
		usersByName:    make(map[string]string),
		books:          make(map[string]domain.Book),
		listItems:      make(map[string]domain.ListItem),
		itemsByPairKey: make(map[string]string),
	}
}

// Close discards all data.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]domain.User)
	s.usersByName = make(map[string]string)
	s.books = make(map[string]domain.Book)
	s.listItems = make(map[string]domain.ListItem)
	s.listItemOrder = nil
	s.itemsByPairKey = make(map[string]string)
	return nil
}

// CreateUser creates a new user account.
func (s *MemoryStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return ErrUserExists
	}

	normalized := normalizeUsername(user.Username)
	if _, ok := s.usersByName[normalized]; ok {
		return ErrUsernameExists
	}

	s.users[user.ID] = *user
	s.usersByName[normalized] = user.ID
	return nil
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username (case-insensitive).
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[normalizeUsername(username)]
	if !ok {
		return nil, ErrUserNotFound
	}

	user := s.users[id]
	return &user, nil
}

// CreateBook adds a book to the catalog.
func (s *MemoryStore) CreateBook(_ context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; ok {
		return ErrBookExists
	}

	s.books[book.ID] = *book
	return nil
}

// GetBook retrieves a book by ID.
func (s *MemoryStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	return &book, nil
}

// GetBooksByIDs retrieves multiple books in one call, preserving the order
// of the requested IDs and skipping missing ones.
func (s *MemoryStore) GetBooksByIDs(_ context.Context, ids []string) ([]*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]*domain.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := s.books[id]; ok {
			b := book
			books = append(books, &b)
		}
	}
	return books, nil
}

// SearchBooks returns catalog books whose title or author contains the
// query, case-insensitively, ordered by book ID.
func (s *MemoryStore) SearchBooks(_ context.Context, query string) ([]*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))

	var books []*domain.Book
	for _, book := range s.books {
		if needle == "" ||
			strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			b := book
			books = append(books, &b)
		}
	}

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

// CreateListItem stores a new list item, enforcing (owner, book) uniqueness.
func (s *MemoryStore) CreateListItem(_ context.Context, item *domain.ListItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairKey := item.OwnerID + ":" + item.BookID
	if _, ok := s.itemsByPairKey[pairKey]; ok {
		return ErrListItemExists
	}

	s.listItems[item.ID] = *item
	s.listItemOrder = append(s.listItemOrder, item.ID)
	s.itemsByPairKey[pairKey] = item.ID
	return nil
}

// GetListItem retrieves a list item by ID.
func (s *MemoryStore) GetListItem(_ context.Context, id string) (*domain.ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.listItems[id]
	if !ok {
		return nil, ErrListItemNotFound
	}
	return &item, nil
}

// QueryListItems returns matching items in insertion order.
func (s *MemoryStore) QueryListItems(_ context.Context, filter ListItemFilter) ([]*domain.ListItem, error) {
	if filter.OwnerID == "" {
		return nil, errors.New("query list items: owner ID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.ListItem, 0)
	for _, id := range s.listItemOrder {
		item, ok := s.listItems[id]
		if !ok {
			continue
		}
		if item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.BookID != "" && item.BookID != filter.BookID {
			continue
		}
		copied := item
		items = append(items, &copied)
	}
	return items, nil
}

// UpdateListItem applies a partial update and returns the merged record.
func (s *MemoryStore) UpdateListItem(_ context.Context, id string, update domain.ListItemUpdate) (*domain.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.listItems[id]
	if !ok {
		return nil, ErrListItemNotFound
	}

	item.Apply(update)
	s.listItems[id] = item

	merged := item
	return &merged, nil
}

// DeleteListItem removes a list item.
func (s *MemoryStore) DeleteListItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.listItems[id]
	if !ok {
		return ErrListItemNotFound
	}

	delete(s.listItems, id)
	delete(s.itemsByPairKey, item.OwnerID+":"+item.BookID)
	for i, orderedID := range s.listItemOrder {
		if orderedID == id {
			s.listItemOrder = append(s.listItemOrder[:i], s.listItemOrder[i+1:]...)
			break
		}
	}
	return nil
}
