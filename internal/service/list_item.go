package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	domainerrors "github.com/bookshelfapp/bookshelf-server/internal/errors"
	"github.com/bookshelfapp/bookshelf-server/internal/id"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

// ListItemService orchestrates store access for a user's reading list:
// ownership checks, the one-item-per-book invariant, and enrichment of
// responses with the resolved book.
type ListItemService struct {
	store    store.Store
	enricher *dto.Enricher
	logger   *slog.Logger
}

// NewListItemService creates a new list item service.
func NewListItemService(store store.Store, enricher *dto.Enricher, logger *slog.Logger) *ListItemService {
	return &ListItemService{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// Resolve looks up a list item by ID and verifies the acting user owns it.
// This is the ownership gate run before any item-level operation; the
// message strings are part of the API contract.
func (s *ListItemService) Resolve(ctx context.Context, user *domain.User, itemID string) (*domain.ListItem, error) {
	item, err := s.store.GetListItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrListItemNotFound) {
			return nil, domainerrors.NotFoundf("No list item was found with the id of %s", itemID)
		}
		return nil, fmt.Errorf("get list item: %w", err)
	}

	if !item.OwnedBy(user.ID) {
		return nil, domainerrors.Forbiddenf("User with id %s is not authorized to access the list item %s", user.ID, itemID)
	}

	return item, nil
}

// Get returns a resolved list item enriched with its book.
// The item must already have passed through Resolve.
func (s *ListItemService) Get(ctx context.Context, item *domain.ListItem) (*dto.ListItem, error) {
	return s.enricher.EnrichListItem(ctx, item)
}

// List returns all of the user's list items, each enriched with its book
// via a single batched fetch. Order follows the store query order.
func (s *ListItemService) List(ctx context.Context, user *domain.User) ([]*dto.ListItem, error) {
	items, err := s.store.QueryListItems(ctx, store.ListItemFilter{OwnerID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}

	return s.enricher.EnrichListItems(ctx, items)
}

// Create adds a book to the user's reading list. A user can hold at most
// one list item per book; the store's uniqueness index backstops the
// check-then-act query below.
func (s *ListItemService) Create(ctx context.Context, user *domain.User, bookID string) (*dto.ListItem, error) {
	if bookID == "" {
		return nil, domainerrors.Validation("No bookId provided")
	}

	existing, err := s.store.QueryListItems(ctx, store.ListItemFilter{OwnerID: user.ID, BookID: bookID})
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	if len(existing) > 0 {
		return nil, duplicateItemError(user.ID, bookID)
	}

	itemID, err := id.Generate("li")
	if err != nil {
		return nil, fmt.Errorf("generate list item ID: %w", err)
	}

	item := &domain.ListItem{
		Model:   domain.Model{ID: itemID},
		OwnerID: user.ID,
		BookID:  bookID,
		Rating:  -1,
	}
	item.InitTimestamps()

	if err := s.store.CreateListItem(ctx, item); err != nil {
		if errors.Is(err, store.ErrListItemExists) {
			// Lost the race between query and create; same outcome for the caller.
			return nil, duplicateItemError(user.ID, bookID)
		}
		return nil, fmt.Errorf("create list item: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("List item created", "list_item_id", itemID, "user_id", user.ID, "book_id", bookID)
	}

	return s.enricher.EnrichListItem(ctx, item)
}

// Update applies a partial update to a resolved list item and returns the
// merged record enriched with its book.
func (s *ListItemService) Update(ctx context.Context, item *domain.ListItem, update domain.ListItemUpdate) (*dto.ListItem, error) {
	merged, err := s.store.UpdateListItem(ctx, item.ID, update)
	if err != nil {
		return nil, fmt.Errorf("update list item: %w", err)
	}

	return s.enricher.EnrichListItem(ctx, merged)
}

// Delete removes a resolved list item.
func (s *ListItemService) Delete(ctx context.Context, item *domain.ListItem) error {
	if err := s.store.DeleteListItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete list item: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("List item deleted", "list_item_id", item.ID, "user_id", item.OwnerID)
	}

	return nil
}

// duplicateItemError is the contract error for a second list item on the
// same (owner, book) pair.
func duplicateItemError(userID, bookID string) *domainerrors.Error {
	return domainerrors.Validationf("User %s already has a list item for the book with the ID %s", userID, bookID)
}
