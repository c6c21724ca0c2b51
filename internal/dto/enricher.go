package dto

import (
	"context"
	"fmt"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// Store defines the interface for fetching related entities during enrichment.
// This keeps Enricher testable and independent of the concrete store implementation.
type Store interface {
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
}

// Enricher denormalizes list items for client consumption.
//
// Design philosophy:
//   - Batch fetching: one book query per request, not per item
//   - Graceful degradation on batch: a missing book leaves the field nil
//     rather than failing the whole list
type Enricher struct {
	store Store
}

// NewEnricher creates a new enricher.
func NewEnricher(store Store) *Enricher {
	return &Enricher{store: store}
}

// EnrichListItem resolves the book for a single list item.
// The book is fetched exactly once; a store failure propagates to the caller.
func (e *Enricher) EnrichListItem(ctx context.Context, item *domain.ListItem) (*ListItem, error) {
	book, err := e.store.GetBook(ctx, item.BookID)
	if err != nil {
		return nil, fmt.Errorf("fetch book %s: %w", item.BookID, err)
	}

	return &ListItem{ListItem: item, Book: book}, nil
}

// EnrichListItems resolves books for a batch of list items with a single
// batched fetch of the distinct book IDs. Per-item pairing and input order
// are preserved.
func (e *Enricher) EnrichListItems(ctx context.Context, items []*domain.ListItem) ([]*ListItem, error) {
	enriched := make([]*ListItem, 0, len(items))
	if len(items) == 0 {
		return enriched, nil
	}

	// Collect distinct book IDs, keeping first-seen order.
	seen := make(map[string]bool, len(items))
	bookIDs := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.BookID] {
			seen[item.BookID] = true
			bookIDs = append(bookIDs, item.BookID)
		}
	}

	books, err := e.store.GetBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}

	// Build map for O(1) pairing.
	bookMap := make(map[string]*domain.Book, len(books))
	for _, book := range books {
		bookMap[book.ID] = book
	}

	for _, item := range items {
		enriched = append(enriched, &ListItem{
			ListItem: item,
			Book:     bookMap[item.BookID],
		})
	}

	return enriched, nil
}
