package domain

import "time"

// ListItem tracks one user's reading state for one book.
// At most one item exists per (OwnerID, BookID) pair; the store
// enforces this with a uniqueness index at creation time.
type ListItem struct {
	Model
	OwnerID    string     `json:"ownerId"`
	BookID     string     `json:"bookId"`
	Rating     int        `json:"rating"` // -1 = no rating
	Notes      string     `json:"notes"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	FinishDate *time.Time `json:"finishDate,omitempty"`
}

// OwnedBy reports whether the item belongs to the given user.
func (li *ListItem) OwnedBy(userID string) bool {
	return li.OwnerID == userID
}

// ListItemUpdate is a partial update applied to a list item.
// Nil fields are left untouched by the merge.
type ListItemUpdate struct {
	Rating     *int       `json:"rating,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	FinishDate *time.Time `json:"finishDate,omitempty"`
}

// Apply merges the non-nil fields of the update into the item
// and touches its UpdatedAt timestamp.
func (li *ListItem) Apply(update ListItemUpdate) {
	if update.Rating != nil {
		li.Rating = *update.Rating
	}
	if update.Notes != nil {
		li.Notes = *update.Notes
	}
	if update.StartDate != nil {
		li.StartDate = update.StartDate
	}
	if update.FinishDate != nil {
		li.FinishDate = update.FinishDate
	}
	li.Touch()
}
