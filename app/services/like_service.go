package services

import (
	"context"
	"errors"
	"log/slog"

	"postlikes/app/models"
	"postlikes/app/repositories"

	"github.com/google/uuid"
)

// LikeService toggles a user's membership in a post's like roster and
// reads the roster back. Every call re-fetches the post; nothing is cached
// between calls.
type LikeService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, logger *slog.Logger) *LikeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeService{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Like adds userID to the roster of postID.
// Fails with models.ErrInvalidIdentifier, models.ErrPostNotFound or
// models.ErrAlreadyLiked.
func (s *LikeService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	pid, uid, err := s.checkToggle(ctx, postID, userID, true)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.AddLike(ctx, pid, uid)
	if err != nil {
		return nil, s.toggleError(err, "like", pid, uid)
	}
	s.logger.Debug("post liked", "post_id", pid, "user_id", uid, "like_count", post.LikeCount)
	return post, nil
}

// Unlike removes userID from the roster of postID.
// Fails with models.ErrInvalidIdentifier, models.ErrPostNotFound or
// models.ErrNotLiked.
func (s *LikeService) Unlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	pid, uid, err := s.checkToggle(ctx, postID, userID, false)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.RemoveLike(ctx, pid, uid)
	if err != nil {
		return nil, s.toggleError(err, "unlike", pid, uid)
	}
	s.logger.Debug("post unliked", "post_id", pid, "user_id", uid, "like_count", post.LikeCount)
	return post, nil
}

// GetLikes returns the like count and the public summaries of the users
// in the roster. Users that no longer exist are left out of the list.
func (s *LikeService) GetLikes(ctx context.Context, postID string) (*models.LikesSummary, error) {
	pid, err := models.ParseID(postID, "post ID")
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, postLookupError(err)
	}

	count := post.LikeCount
	if err := post.CheckConsistency(); err != nil {
		s.logger.Warn("like counter drifted from roster", "post_id", pid, "error", err)
		count = len(post.LikedBy)
	}

	users, err := s.userRepo.GetMany(ctx, post.LikedBy)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}

	return &models.LikesSummary{
		Count:   count,
		LikedBy: summaries,
	}, nil
}

// checkToggle validates both identifiers, fetches the post and checks the
// current membership. The store's conditional update still decides the
// outcome; this only avoids issuing a mutation that is known to fail.
func (s *LikeService) checkToggle(ctx context.Context, postID, userID string, like bool) (uuid.UUID, uuid.UUID, error) {
	pid, err := models.ParseID(postID, "post ID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	uid, err := models.ParseID(userID, "user ID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	post, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return uuid.Nil, uuid.Nil, postLookupError(err)
	}
	liked := post.HasLiked(uid)
	if like && liked {
		return uuid.Nil, uuid.Nil, models.ErrAlreadyLiked
	}
	if !like && !liked {
		return uuid.Nil, uuid.Nil, models.ErrNotLiked
	}
	return pid, uid, nil
}

func (s *LikeService) toggleError(err error, op string, postID, userID uuid.UUID) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return models.ErrPostNotFound
	case errors.Is(err, models.ErrAlreadyLiked), errors.Is(err, models.ErrNotLiked):
		return err
	default:
		s.logger.Error("like toggle failed", "op", op, "post_id", postID, "user_id", userID, "error", err)
		return err
	}
}
