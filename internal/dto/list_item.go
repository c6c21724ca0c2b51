// Package dto provides Data Transfer Objects for API responses.
//
// A stored list item references its book by ID; clients want the whole
// book inline. DTOs carry the denormalized view, which is built by the
// Enricher and never persisted.
package dto

import "github.com/bookshelfapp/bookshelf-server/internal/domain"

// ListItem is the client-facing representation of a list item.
// Embeds all stored fields and adds the resolved book object.
type ListItem struct {
	*domain.ListItem

	// Book is populated by the Enricher from the item's BookID.
	Book *domain.Book `json:"book"`
}
