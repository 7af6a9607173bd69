package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"postlikes/app/models"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// postLockStripes is the number of mutexes writes to posts are spread over.
const postLockStripes = 256

// BadgerPostRepository implements PostRepository using BadgerDB.
// Writes to the same post are serialized in process before their
// transaction opens, so they never lose a conflict check to each other.
type BadgerPostRepository struct {
	db    *badger.DB
	locks [postLockStripes]sync.Mutex
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return err
	}
	return updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		return setEntity(txn, postKey(post.ID), post)
	})
}

// lock acquires the stripe guarding id and returns its unlock.
func (r *BadgerPostRepository) lock(id uuid.UUID) func() {
	mu := &r.locks[xxhash.Sum64(id[:])%postLockStripes]
	mu.Lock()
	return mu.Unlock
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a page of posts, oldest first
func (r *BadgerPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		count := 0
		for it.Rewind(); it.Valid(); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var post models.Post
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return err
			}
			posts = append(posts, &post)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites title and content of an existing post
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.lock(post.ID)()
	return updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		var stored models.Post
		if err := getEntity(txn, postKey(post.ID), &stored); err != nil {
			return err
		}
		stored.Title = post.Title
		stored.Content = post.Content
		stored.UpdatedAt = time.Now().UTC()
		if err := stored.Validate(); err != nil {
			return err
		}
		if err := setEntity(txn, postKey(stored.ID), &stored); err != nil {
			return err
		}
		*post = stored
		return nil
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.lock(id)()
	return updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		key := postKey(id)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// AddLike adds userID to the roster of postID
func (r *BadgerPostRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	return r.mutateRoster(ctx, postID, func(post *models.Post) error {
		return post.AddLike(userID)
	})
}

// RemoveLike removes userID from the roster of postID
func (r *BadgerPostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	return r.mutateRoster(ctx, postID, func(post *models.Post) error {
		return post.RemoveLike(userID)
	})
}

// mutateRoster reads the post, applies mutate and writes it back inside a
// single transaction while holding the post's stripe lock. The read still
// registers the key for conflict detection, so a writer that bypasses the
// lock forces a re-run on the newer value.
func (r *BadgerPostRepository) mutateRoster(ctx context.Context, postID uuid.UUID, mutate func(*models.Post) error) (*models.Post, error) {
	defer r.lock(postID)()

	var updated models.Post
	err := updateWithRetry(ctx, r.db, func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, postKey(postID), &post); err != nil {
			return err
		}
		if err := mutate(&post); err != nil {
			return err
		}
		post.UpdatedAt = time.Now().UTC()
		if err := setEntity(txn, postKey(postID), &post); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
