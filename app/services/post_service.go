package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"postlikes/app/models"
	"postlikes/app/repositories"

	"github.com/google/uuid"
)

// PostInput carries the caller-editable fields of a post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostView is a post with its creator resolved to a public summary.
type PostView struct {
	models.Post
	CreatorUser *models.UserSummary `json:"creatorUser,omitempty"`
}

// PostService handles business logic for posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreatePost creates a post owned by creatorID
func (s *PostService) CreatePost(ctx context.Context, creatorID string, input PostInput) (*models.Post, error) {
	creator, err := models.ParseID(creatorID, "creator ID")
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, creator); err != nil {
		return nil, userLookupError(err)
	}

	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		Creator: creator,
	}
	if err := post.ValidateContent(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "creator", creator)
	return post, nil
}

// GetPost retrieves a post by ID with its creator populated
func (s *PostService) GetPost(ctx context.Context, id string) (*PostView, error) {
	postID, err := models.ParseID(id, "post ID")
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, postLookupError(err)
	}

	views, err := s.populate(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListPosts retrieves a paginated list of posts
func (s *PostService) ListPosts(ctx context.Context, page, perPage int) ([]*PostView, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	offset := (page - 1) * perPage
	posts, err := s.postRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

// UpdatePost changes title and content. Creator and likes are kept.
func (s *PostService) UpdatePost(ctx context.Context, id string, input PostInput) (*models.Post, error) {
	postID, err := models.ParseID(id, "post ID")
	if err != nil {
		return nil, err
	}

	post := &models.Post{ID: postID, Title: input.Title, Content: input.Content}
	if err := post.ValidateContent(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, postLookupError(err)
	}
	return post, nil
}

// DeletePost deletes a post; later like operations on it fail with
// models.ErrPostNotFound
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	postID, err := models.ParseID(id, "post ID")
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return postLookupError(err)
	}
	s.logger.Info("post deleted", "post_id", postID)
	return nil
}

// populate resolves creators in one batch lookup.
func (s *PostService) populate(ctx context.Context, posts []*models.Post) ([]*PostView, error) {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.Creator)
	}
	users, err := s.userRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve creators: %w", err)
	}
	summaries := make(map[uuid.UUID]models.UserSummary, len(users))
	for _, user := range users {
		summaries[user.ID] = user.Summary()
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		view := &PostView{Post: *post}
		if summary, ok := summaries[post.Creator]; ok {
			view.CreatorUser = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

func postLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return models.ErrPostNotFound
	}
	return err
}

func userLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return models.ErrUserNotFound
	}
	return err
}
