package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// runForEachStore runs the test against both Store realizations so the
// badger backend and the in-memory test double can never drift apart.
func runForEachStore(t *testing.T, test func(t *testing.T, s Store)) {
	t.Helper()

	t.Run("badger", func(t *testing.T) {
		s, err := NewBadger(t.TempDir(), nil)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		test(t, s)
	})

	t.Run("memory", func(t *testing.T) {
		s := NewMemory()
		defer func() { _ = s.Close() }()

		test(t, s)
	})
}

func newUser(id, username string) *domain.User {
	u := &domain.User{
		Model:        domain.Model{ID: id},
		Username:     username,
		PasswordHash: "$argon2id$fake",
	}
	u.InitTimestamps()
	return u
}

func newBook(id, title, author string) *domain.Book {
	b := &domain.Book{
		Model:  domain.Model{ID: id},
		Title:  title,
		Author: author,
	}
	b.InitTimestamps()
	return b
}

func newListItem(id, ownerID, bookID string) *domain.ListItem {
	li := &domain.ListItem{
		Model:   domain.Model{ID: id},
		OwnerID: ownerID,
		BookID:  bookID,
		Rating:  -1,
	}
	li.InitTimestamps()
	return li
}

func TestStore_Users(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		user := newUser("user-1", "Frodo")
		require.NoError(t, s.CreateUser(ctx, user))

		got, err := s.GetUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Frodo", got.Username)

		// Username lookups are case-insensitive.
		got, err = s.GetUserByUsername(ctx, "frodo")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.ID)

		_, err = s.GetUser(ctx, "user-missing")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = s.GetUserByUsername(ctx, "samwise")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStore_CreateUser_DuplicateUsername(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateUser(ctx, newUser("user-1", "frodo")))

		err := s.CreateUser(ctx, newUser("user-2", "FRODO"))
		assert.ErrorIs(t, err, ErrUsernameExists)

		err = s.CreateUser(ctx, newUser("user-1", "other"))
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestStore_Books(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateBook(ctx, newBook("book-1", "The Hobbit", "J.R.R. Tolkien")))
		require.NoError(t, s.CreateBook(ctx, newBook("book-2", "Dune", "Frank Herbert")))

		got, err := s.GetBook(ctx, "book-1")
		require.NoError(t, err)
		assert.Equal(t, "The Hobbit", got.Title)

		_, err = s.GetBook(ctx, "book-missing")
		assert.ErrorIs(t, err, ErrBookNotFound)

		err = s.CreateBook(ctx, newBook("book-1", "Duplicate", ""))
		assert.ErrorIs(t, err, ErrBookExists)
	})
}

func TestStore_GetBooksByIDs(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateBook(ctx, newBook("book-1", "The Hobbit", "J.R.R. Tolkien")))
		require.NoError(t, s.CreateBook(ctx, newBook("book-2", "Dune", "Frank Herbert")))

		books, err := s.GetBooksByIDs(ctx, []string{"book-2", "book-missing", "book-1"})
		require.NoError(t, err)
		require.Len(t, books, 2, "missing IDs are skipped")
		assert.Equal(t, "book-2", books[0].ID, "request order is preserved")
		assert.Equal(t, "book-1", books[1].ID)
	})
}

func TestStore_SearchBooks(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateBook(ctx, newBook("book-1", "The Hobbit", "J.R.R. Tolkien")))
		require.NoError(t, s.CreateBook(ctx, newBook("book-2", "Dune", "Frank Herbert")))
		require.NoError(t, s.CreateBook(ctx, newBook("book-3", "Dune Messiah", "Frank Herbert")))

		tests := []struct {
			name    string
			query   string
			wantIDs []string
		}{
			{"empty query returns all", "", []string{"book-1", "book-2", "book-3"}},
			{"title match", "dune", []string{"book-2", "book-3"}},
			{"author match", "tolkien", []string{"book-1"}},
			{"no match", "discworld", nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				books, err := s.SearchBooks(ctx, tt.query)
				require.NoError(t, err)

				gotIDs := make([]string, 0, len(books))
				for _, b := range books {
					gotIDs = append(gotIDs, b.ID)
				}
				if tt.wantIDs == nil {
					assert.Empty(t, gotIDs)
				} else {
					assert.Equal(t, tt.wantIDs, gotIDs)
				}
			})
		}
	})
}

func TestStore_ListItems_CRUD(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		item := newListItem("li-1", "user-1", "book-1")
		item.Notes = "started on the train"
		require.NoError(t, s.CreateListItem(ctx, item))

		got, err := s.GetListItem(ctx, "li-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.OwnerID)
		assert.Equal(t, "started on the train", got.Notes)

		notes := "finished it"
		rating := 5
		merged, err := s.UpdateListItem(ctx, "li-1", domain.ListItemUpdate{Notes: &notes, Rating: &rating})
		require.NoError(t, err)
		assert.Equal(t, "finished it", merged.Notes)
		assert.Equal(t, 5, merged.Rating)
		assert.Equal(t, "book-1", merged.BookID, "merge leaves other fields alone")

		require.NoError(t, s.DeleteListItem(ctx, "li-1"))

		_, err = s.GetListItem(ctx, "li-1")
		assert.ErrorIs(t, err, ErrListItemNotFound)
	})
}

func TestStore_ListItems_NotFound(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, err := s.GetListItem(ctx, "li-missing")
		assert.ErrorIs(t, err, ErrListItemNotFound)

		_, err = s.UpdateListItem(ctx, "li-missing", domain.ListItemUpdate{})
		assert.ErrorIs(t, err, ErrListItemNotFound)

		err = s.DeleteListItem(ctx, "li-missing")
		assert.ErrorIs(t, err, ErrListItemNotFound)
	})
}

func TestStore_ListItems_OwnerBookUniqueness(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateListItem(ctx, newListItem("li-1", "user-1", "book-1")))

		// Same owner, same book: rejected.
		err := s.CreateListItem(ctx, newListItem("li-2", "user-1", "book-1"))
		assert.ErrorIs(t, err, ErrListItemExists)

		// Different owner, same book: fine.
		require.NoError(t, s.CreateListItem(ctx, newListItem("li-3", "user-2", "book-1")))

		// Deleting frees the pair for re-creation.
		require.NoError(t, s.DeleteListItem(ctx, "li-1"))
		require.NoError(t, s.CreateListItem(ctx, newListItem("li-4", "user-1", "book-1")))
	})
}

func TestStore_QueryListItems(t *testing.T) {
	runForEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateListItem(ctx, newListItem("li-1", "user-1", "book-1")))
		require.NoError(t, s.CreateListItem(ctx, newListItem("li-2", "user-1", "book-2")))
		require.NoError(t, s.CreateListItem(ctx, newListItem("li-3", "user-2", "book-1")))

		items, err := s.QueryListItems(ctx, ListItemFilter{OwnerID: "user-1"})
		require.NoError(t, err)
		require.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, "user-1", item.OwnerID)
		}

		items, err = s.QueryListItems(ctx, ListItemFilter{OwnerID: "user-1", BookID: "book-2"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "li-2", items[0].ID)

		items, err = s.QueryListItems(ctx, ListItemFilter{OwnerID: "user-3"})
		require.NoError(t, err)
		assert.Empty(t, items)

		_, err = s.QueryListItems(ctx, ListItemFilter{})
		assert.Error(t, err, "owner ID is required")
	})
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewBadger(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.CreateUser(ctx, newUser("user-1", "frodo")))
	require.NoError(t, s.Close())

	// Data survives a restart.
	s, err = NewBadger(dir, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "frodo", got.Username)
}
