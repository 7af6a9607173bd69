package repositories

import (
	"context"
	"errors"

	"postlikes/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerUserRepository implements UserRepository using BadgerDB. Usernames
// are indexed case-insensitively under UsernameKeyPrefix.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user, failing with models.ErrUsernameTaken on a
// duplicate username
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return err
	}
	return updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		idxKey := usernameKey(user.Username)
		_, err := txn.Get(idxKey)
		if err == nil {
			return models.ErrUsernameTaken
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(idxKey, []byte(user.ID.String())); err != nil {
			return err
		}
		return setEntity(txn, userKey(user.ID), user)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername resolves the username index and loads the user
func (r *BadgerUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := uuid.ParseBytes(raw)
		if err != nil {
			return err
		}
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMany loads all existing users among ids in one read transaction
func (r *BadgerUserRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var user models.User
			err := getEntity(txn, userKey(id), &user)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user and its username index entry
func (r *BadgerUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		var user models.User
		if err := getEntity(txn, userKey(id), &user); err != nil {
			return err
		}
		if err := txn.Delete(usernameKey(user.Username)); err != nil {
			return err
		}
		return txn.Delete(userKey(id))
	})
}
