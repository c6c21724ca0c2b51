package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// CreateListItem stores a new list item. The (owner, book) uniqueness
// index is checked and written in the same transaction, so two creates
// for the same pair cannot both succeed.
func (s *BadgerStore) CreateListItem(_ context.Context, item *domain.ListItem) error {
	key := []byte(listItemPrefix + item.ID)
	pairKey := ownerBookIndexKey(item.OwnerID, item.BookID)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("list item %s: id collision", item.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check list item exists: %w", err)
		}

		if _, err := txn.Get(pairKey); err == nil {
			return ErrListItemExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check owner-book index: %w", err)
		}

		if err := setInTxn(txn, key, item); err != nil {
			return fmt.Errorf("save list item: %w", err)
		}
		if err := txn.Set(ownerIndexKey(item.OwnerID, item.ID), []byte(item.ID)); err != nil {
			return err
		}
		return txn.Set(pairKey, []byte(item.ID))
	})
}

// GetListItem retrieves a list item by ID.
func (s *BadgerStore) GetListItem(_ context.Context, id string) (*domain.ListItem, error) {
	var item domain.ListItem
	if err := s.get([]byte(listItemPrefix+id), &item); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrListItemNotFound
		}
		return nil, fmt.Errorf("get list item: %w", err)
	}

	return &item, nil
}

// QueryListItems returns the items matching the filter, in index order.
// OwnerID is required. When BookID is set the result has at most one item.
func (s *BadgerStore) QueryListItems(_ context.Context, filter ListItemFilter) ([]*domain.ListItem, error) {
	if filter.OwnerID == "" {
		return nil, errors.New("query list items: owner ID is required")
	}

	items := make([]*domain.ListItem, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		if filter.BookID != "" {
			// Point lookup through the uniqueness index.
			pairItem, err := txn.Get(ownerBookIndexKey(filter.OwnerID, filter.BookID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("lookup owner-book index: %w", err)
			}

			return pairItem.Value(func(val []byte) error {
				var item domain.ListItem
				if err := getInTxn(txn, []byte(listItemPrefix+string(val)), &item); err != nil {
					return fmt.Errorf("get indexed list item: %w", err)
				}
				items = append(items, &item)
				return nil
			})
		}

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(listItemByOwnerPrefix + filter.OwnerID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			itemID := strings.TrimPrefix(string(it.Item().Key()), string(prefix))

			var item domain.ListItem
			if err := getInTxn(txn, []byte(listItemPrefix+itemID), &item); err != nil {
				return fmt.Errorf("get indexed list item %s: %w", itemID, err)
			}
			items = append(items, &item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateListItem applies a partial update to a stored item and returns
// the merged record. The read-merge-write happens in one transaction.
func (s *BadgerStore) UpdateListItem(_ context.Context, id string, update domain.ListItemUpdate) (*domain.ListItem, error) {
	key := []byte(listItemPrefix + id)

	var item domain.ListItem
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := getInTxn(txn, key, &item); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrListItemNotFound
			}
			return fmt.Errorf("get list item: %w", err)
		}

		item.Apply(update)

		return setInTxn(txn, key, &item)
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteListItem removes a list item and its index entries.
func (s *BadgerStore) DeleteListItem(_ context.Context, id string) error {
	key := []byte(listItemPrefix + id)

	return s.db.Update(func(txn *badger.Txn) error {
		var item domain.ListItem
		if err := getInTxn(txn, key, &item); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrListItemNotFound
			}
			return fmt.Errorf("get list item: %w", err)
		}

		if err := txn.Delete(key); err != nil {
			return err
		}
		if err := txn.Delete(ownerIndexKey(item.OwnerID, item.ID)); err != nil {
			return err
		}
		return txn.Delete(ownerBookIndexKey(item.OwnerID, item.BookID))
	})
}
