package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostValidation(t *testing.T) {
	creator := NewID()
	liker := NewID()

	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        NewID(),
				Title:     "Valid Title",
				Content:   "Some content",
				Creator:   creator,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "title and content are optional",
			post: &Post{
				ID:        NewID(),
				Creator:   creator,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing creator",
			post: &Post{
				ID:        NewID(),
				Title:     "Valid Title",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "title too long",
			post: &Post{
				ID:        NewID(),
				Title:     strings.Repeat("a", 201),
				Creator:   creator,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				ID:      NewID(),
				Creator: creator,
			},
			wantErr: true,
		},
		{
			name: "counter out of sync with roster",
			post: &Post{
				ID:        NewID(),
				Creator:   creator,
				LikeCount: 2,
				LikedBy:   []uuid.UUID{liker},
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "duplicate roster entry",
			post: &Post{
				ID:        NewID(),
				Creator:   creator,
				LikeCount: 2,
				LikedBy:   []uuid.UUID{liker, liker},
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{
		Title:     "Test Post",
		Creator:   NewID(),
		LikeCount: 7,
	}

	post.BeforeCreate()
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, 0, post.LikeCount)
	assert.NotNil(t, post.LikedBy)
	assert.Empty(t, post.LikedBy)
}

func TestPostLikeManagement(t *testing.T) {
	post := &Post{ID: NewID(), Creator: NewID(), CreatedAt: time.Now()}
	post.BeforeCreate()
	u1, u2 := NewID(), NewID()

	t.Run("add like", func(t *testing.T) {
		require.NoError(t, post.AddLike(u1))
		assert.Equal(t, 1, post.LikeCount)
		assert.Equal(t, []uuid.UUID{u1}, post.LikedBy)
		assert.True(t, post.HasLiked(u1))
	})

	t.Run("add like twice", func(t *testing.T) {
		err := post.AddLike(u1)
		assert.True(t, errors.Is(err, ErrAlreadyLiked))
		assert.Equal(t, 1, post.LikeCount)
		assert.Len(t, post.LikedBy, 1)
	})

	t.Run("remove like never added", func(t *testing.T) {
		err := post.RemoveLike(u2)
		assert.True(t, errors.Is(err, ErrNotLiked))
		assert.Equal(t, 1, post.LikeCount)
	})

	t.Run("remove like", func(t *testing.T) {
		require.NoError(t, post.AddLike(u2))
		require.NoError(t, post.RemoveLike(u1))
		assert.Equal(t, 1, post.LikeCount)
		assert.Equal(t, []uuid.UUID{u2}, post.LikedBy)
		assert.NoError(t, post.CheckConsistency())
	})

	t.Run("counter is floored at zero", func(t *testing.T) {
		p := &Post{ID: NewID(), LikedBy: []uuid.UUID{u1}}
		require.NoError(t, p.RemoveLike(u1))
		assert.Equal(t, 0, p.LikeCount)
		assert.Empty(t, p.LikedBy)
	})
}
