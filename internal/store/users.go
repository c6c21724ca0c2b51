package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// CreateUser creates a new user account.
// The username index is case-insensitive; creation fails with
// ErrUsernameExists when the normalized username is already taken.
func (s *BadgerStore) CreateUser(_ context.Context, user *domain.User) error {
	key := []byte(userPrefix + user.ID)
	usernameKey := []byte(userByUsernamePrefix + normalizeUsername(user.Username))

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check user exists: %w", err)
		}

		if _, err := txn.Get(usernameKey); err == nil {
			return ErrUsernameExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username exists: %w", err)
		}

		if err := setInTxn(txn, key, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		return txn.Set(usernameKey, []byte(user.ID))
	})
}

// GetUser retrieves a user by ID.
func (s *BadgerStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.get([]byte(userPrefix+id), &user); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username (case-insensitive).
func (s *BadgerStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	usernameKey := []byte(userByUsernamePrefix + normalizeUsername(username))

	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup username index: %w", err)
	}

	return s.GetUser(ctx, userID)
}
