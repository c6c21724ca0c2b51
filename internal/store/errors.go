package store

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrUsernameExists is returned when attempting to create a user with a username that's already in use.
	ErrUsernameExists = errors.New("username already in use")

	// ErrBookNotFound is returned when a book cannot be found by ID.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookExists is returned when attempting to create a book with an existing ID.
	ErrBookExists = errors.New("book already exists")

	// ErrListItemNotFound is returned when a list item cannot be found by ID.
	ErrListItemNotFound = errors.New("list item not found")
	// ErrListItemExists is returned when an item already exists for the same (owner, book) pair.
	ErrListItemExists = errors.New("list item already exists for this owner and book")
)
