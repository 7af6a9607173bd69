package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"postlikes/app/models"
	"postlikes/app/repositories"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

const postColumns = `id, title, content, creator, like_count, liked_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post           models.Post
		title, content sql.NullString
		likedBy        []string
	)
	err := row.Scan(
		&post.ID, &title, &content, &post.Creator,
		&post.LikeCount, pq.Array(&likedBy),
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.Title = title.String
	post.Content = content.String
	post.LikedBy = make([]uuid.UUID, 0, len(likedBy))
	for _, raw := range likedBy {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in roster of post %s: %w", raw, post.ID, err)
		}
		post.LikedBy = append(post.LikedBy, id)
	}
	return &post, nil
}

// Create inserts a new post with an empty roster
func (r *postgresPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO posts (id, title, content, creator, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Creator,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List retrieves a page of posts, oldest first
func (r *postgresPostRepo) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// Update overwrites title and content of an existing post
func (r *postgresPostRepo) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Content))
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	*post = *updated
	return nil
}

// Delete deletes a post by ID
func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// AddLike appends userID to the roster in a single conditional UPDATE.
// Concurrent updates of the same row queue on its lock and re-evaluate the
// membership condition against the committed roster.
func (r *postgresPostRepo) AddLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	query := `
		UPDATE posts
		SET liked_by = array_append(liked_by, $2::uuid),
		    like_count = like_count + 1,
		    updated_at = NOW()
		WHERE id = $1 AND NOT ($2::uuid = ANY(liked_by))
		RETURNING ` + postColumns

	return r.conditionalUpdate(ctx, query, postID, userID, models.ErrAlreadyLiked)
}

// RemoveLike removes userID from the roster in a single conditional UPDATE.
func (r *postgresPostRepo) RemoveLike(ctx context.Context, postID, userID uuid.UUID) (*models.Post, error) {
	query := `
		UPDATE posts
		SET liked_by = array_remove(liked_by, $2::uuid),
		    like_count = GREATEST(like_count - 1, 0),
		    updated_at = NOW()
		WHERE id = $1 AND $2::uuid = ANY(liked_by)
		RETURNING ` + postColumns

	return r.conditionalUpdate(ctx, query, postID, userID, models.ErrNotLiked)
}

// conditionalUpdate runs a roster UPDATE; when it touches no row the post
// is either gone or failed the membership condition.
func (r *postgresPostRepo) conditionalUpdate(ctx context.Context, query string, postID, userID uuid.UUID, rejected error) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, query, postID, userID))
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update likes: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return nil, rejected
}
