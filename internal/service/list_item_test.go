package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	domainerrors "github.com/bookshelfapp/bookshelf-server/internal/errors"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

// trackingStore wraps the in-memory store and records calls, so tests can
// assert on how the service talks to its data layer.
type trackingStore struct {
	*store.MemoryStore

	getBookCalls    int
	batchCalls      int
	batchArgs       []string
	queryCalls      int
	lastQueryFilter store.ListItemFilter
	createCalls     int
	lastCreated     *domain.ListItem
	updateCalls     int
	deleteCalls     int
	lastDeletedID   string
}

func (ts *trackingStore) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	ts.getBookCalls++
	return ts.MemoryStore.GetBook(ctx, id)
}

func (ts *trackingStore) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	ts.batchCalls++
	ts.batchArgs = ids
	return ts.MemoryStore.GetBooksByIDs(ctx, ids)
}

func (ts *trackingStore) QueryListItems(ctx context.Context, filter store.ListItemFilter) ([]*domain.ListItem, error) {
	ts.queryCalls++
	ts.lastQueryFilter = filter
	return ts.MemoryStore.QueryListItems(ctx, filter)
}

func (ts *trackingStore) CreateListItem(ctx context.Context, item *domain.ListItem) error {
	ts.createCalls++
	ts.lastCreated = item
	return ts.MemoryStore.CreateListItem(ctx, item)
}

func (ts *trackingStore) UpdateListItem(ctx context.Context, id string, update domain.ListItemUpdate) (*domain.ListItem, error) {
	ts.updateCalls++
	return ts.MemoryStore.UpdateListItem(ctx, id, update)
}

func (ts *trackingStore) DeleteListItem(ctx context.Context, id string) error {
	ts.deleteCalls++
	ts.lastDeletedID = id
	return ts.MemoryStore.DeleteListItem(ctx, id)
}

func setupListItemTest(t *testing.T) (*ListItemService, *trackingStore) {
	t.Helper()

	ts := &trackingStore{MemoryStore: store.NewMemory()}
	svc := NewListItemService(ts, dto.NewEnricher(ts), nil)
	return svc, ts
}

func buildUser(t *testing.T, ts *trackingStore, id string) *domain.User {
	t.Helper()

	user := &domain.User{Model: domain.Model{ID: id}, Username: "user-" + id}
	require.NoError(t, ts.MemoryStore.CreateUser(context.Background(), user))
	return user
}

func buildBook(t *testing.T, ts *trackingStore, id string) *domain.Book {
	t.Helper()

	book := &domain.Book{Model: domain.Model{ID: id}, Title: "Title of " + id}
	require.NoError(t, ts.MemoryStore.CreateBook(context.Background(), book))
	return book
}

func buildListItem(t *testing.T, ts *trackingStore, id, ownerID, bookID string) *domain.ListItem {
	t.Helper()

	item := &domain.ListItem{Model: domain.Model{ID: id}, OwnerID: ownerID, BookID: bookID, Rating: -1}
	require.NoError(t, ts.MemoryStore.CreateListItem(context.Background(), item))
	return item
}

func TestListItemService_Get(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	book := buildBook(t, ts, "book-1")
	item := buildListItem(t, ts, "li-1", user.ID, book.ID)

	enriched, err := svc.Get(ctx, item)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.getBookCalls, "book fetched exactly once")
	assert.Equal(t, item, enriched.ListItem)
	require.NotNil(t, enriched.Book)
	assert.Equal(t, book.ID, enriched.Book.ID)
}

func TestListItemService_Resolve_Owned(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	item := buildListItem(t, ts, "li-1", user.ID, "book-1")

	resolved, err := svc.Resolve(ctx, user, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, resolved.ID)
}

func TestListItemService_Resolve_NotFound(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")

	_, err := svc.Resolve(ctx, user, "FAKE_ID")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
	assert.Equal(t, "No list item was found with the id of FAKE_ID", domainErr.Message)
}

func TestListItemService_Resolve_NotOwner(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "FAKE_USER_ID")
	buildListItem(t, ts, "FAKE_LIST_ITEM_ID", "SOMEONE_ELSE_ID", "book-1")

	_, err := svc.Resolve(ctx, user, "FAKE_LIST_ITEM_ID")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeForbidden, domainErr.Code)
	assert.Equal(t, "User with id FAKE_USER_ID is not authorized to access the list item FAKE_LIST_ITEM_ID", domainErr.Message)
}

func TestListItemService_List(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	other := buildUser(t, ts, "user-2")
	book1 := buildBook(t, ts, "book-1")
	book2 := buildBook(t, ts, "book-2")
	item1 := buildListItem(t, ts, "li-1", user.ID, book1.ID)
	item2 := buildListItem(t, ts, "li-2", user.ID, book2.ID)
	buildListItem(t, ts, "li-3", other.ID, book1.ID)

	enriched, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.Equal(t, 1, ts.batchCalls, "one batched book fetch for the whole list")
	assert.ElementsMatch(t, []string{book1.ID, book2.ID}, ts.batchArgs)
	assert.Equal(t, 0, ts.getBookCalls)

	// Per-item pairing is preserved in store query order.
	assert.Equal(t, item1.ID, enriched[0].ID)
	assert.Equal(t, book1.ID, enriched[0].Book.ID)
	assert.Equal(t, item2.ID, enriched[1].ID)
	assert.Equal(t, book2.ID, enriched[1].Book.ID)
}

func TestListItemService_List_Empty(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")

	enriched, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)
}

func TestListItemService_Create(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	book := buildBook(t, ts, "book-1")

	enriched, err := svc.Create(ctx, user, book.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.queryCalls)
	assert.Equal(t, store.ListItemFilter{OwnerID: user.ID, BookID: book.ID}, ts.lastQueryFilter)
	assert.Equal(t, 1, ts.createCalls)
	assert.Equal(t, user.ID, ts.lastCreated.OwnerID)
	assert.Equal(t, book.ID, ts.lastCreated.BookID)
	assert.Equal(t, 1, ts.getBookCalls, "book fetched exactly once")

	require.NotNil(t, enriched.Book)
	assert.Equal(t, book.ID, enriched.Book.ID)
	assert.NotEmpty(t, enriched.ID)
	assert.Equal(t, -1, enriched.Rating, "new items start unrated")
}

func TestListItemService_Create_NoBookID(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")

	_, err := svc.Create(ctx, user, "")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	assert.Equal(t, "No bookId provided", domainErr.Message)

	assert.Equal(t, 0, ts.queryCalls, "no store calls for a missing bookId")
	assert.Equal(t, 0, ts.createCalls)
}

func TestListItemService_Create_Duplicate(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "FAKE_USER_ID")
	book := buildBook(t, ts, "FAKE_BOOK_ID")
	buildListItem(t, ts, "li-existing", user.ID, book.ID)

	_, err := svc.Create(ctx, user, book.ID)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	assert.Equal(t, "User FAKE_USER_ID already has a list item for the book with the ID FAKE_BOOK_ID", domainErr.Message)

	assert.Equal(t, 1, ts.queryCalls)
	assert.Equal(t, 0, ts.createCalls, "no create issued for a duplicate")
}

func TestListItemService_Update(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	book := buildBook(t, ts, "book-1")
	item := buildListItem(t, ts, "li-1", user.ID, book.ID)

	notes := "loved the ending"
	enriched, err := svc.Update(ctx, item, domain.ListItemUpdate{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, 1, ts.updateCalls)
	assert.Equal(t, 1, ts.getBookCalls, "book fetched exactly once")
	assert.Equal(t, "loved the ending", enriched.Notes)
	require.NotNil(t, enriched.Book)
	assert.Equal(t, book.ID, enriched.Book.ID)

	// The merge is persisted, not just reflected in the response.
	stored, err := ts.MemoryStore.GetListItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "loved the ending", stored.Notes)
}

func TestListItemService_Delete(t *testing.T) {
	svc, ts := setupListItemTest(t)
	ctx := context.Background()

	user := buildUser(t, ts, "user-1")
	item := buildListItem(t, ts, "li-1", user.ID, "book-1")

	err := svc.Delete(ctx, item)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.deleteCalls)
	assert.Equal(t, item.ID, ts.lastDeletedID)

	_, err = ts.MemoryStore.GetListItem(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrListItemNotFound)
}
