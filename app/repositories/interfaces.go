package repositories

import (
	"context"
	"errors"

	"postlikes/app/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	// Update persists Title and Content only. Identity, creator and the
	// like roster are never overwritten by an update.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLike inserts userID into the roster and increments the counter as
	// one indivisible step. It fails with models.ErrAlreadyLiked, leaving
	// the post untouched, if userID is already a member.
	AddLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error)
	// RemoveLike is the inverse of AddLike and fails with models.ErrNotLiked
	// if userID is not a member.
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetMany returns the users that exist among ids, in the order given.
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store bundles the repositories of one backing database.
type Store interface {
	Posts() PostRepository
	Users() UserRepository
	Close() error
}
