package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a user-authored post and its like roster.
type Post struct {
	ID        uuid.UUID   `json:"id" validate:"required"`
	Title     string      `json:"title,omitempty" validate:"max=200"`
	Content   string      `json:"content,omitempty" validate:"max=10000"`
	Creator   uuid.UUID   `json:"creator" validate:"required"`
	LikeCount int         `json:"likeCount" validate:"gte=0"`
	LikedBy   []uuid.UUID `json:"likedBy" validate:"unique"`
	CreatedAt time.Time   `json:"createdAt" validate:"required"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// User represents an account. PasswordHash and Roles never leave the
// service layer; callers get a UserSummary instead.
type User struct {
	ID           uuid.UUID `json:"id" validate:"required"`
	Username     string    `json:"username" validate:"required,alphanum,min=3,max=50"`
	DisplayName  string    `json:"displayName,omitempty" validate:"max=100"`
	PasswordHash string    `json:"passwordHash" validate:"required"`
	Roles        []string  `json:"roles,omitempty" validate:"dive,oneof=user moderator admin"`
	CreatedAt    time.Time `json:"createdAt" validate:"required"`
}

// UserSummary is the public view of a User.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikesSummary is the like roster of a post resolved to public user data.
type LikesSummary struct {
	Count   int           `json:"likesCount"`
	LikedBy []UserSummary `json:"likedBy"`
}
