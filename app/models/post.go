package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return p.CheckConsistency()
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.ID == uuid.Nil {
		p.ID = NewID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.LikeCount = 0
	p.LikedBy = []uuid.UUID{}
}

// HasLiked reports whether userID is in the roster.
func (p *Post) HasLiked(userID uuid.UUID) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike puts userID in the roster and bumps the counter.
func (p *Post) AddLike(userID uuid.UUID) error {
	if p.HasLiked(userID) {
		return ErrAlreadyLiked
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.LikeCount++
	return nil
}

// RemoveLike takes userID out of the roster and lowers the counter.
// The counter never goes below zero.
func (p *Post) RemoveLike(userID uuid.UUID) error {
	for i, id := range p.LikedBy {
		if id == userID {
			p.LikedBy = append(p.LikedBy[:i:i], p.LikedBy[i+1:]...)
			if p.LikeCount > 0 {
				p.LikeCount--
			}
			return nil
		}
	}
	return ErrNotLiked
}

// CheckConsistency verifies that the roster has no duplicates and that the
// counter matches its size.
func (p *Post) CheckConsistency() error {
	seen := make(map[uuid.UUID]struct{}, len(p.LikedBy))
	for _, id := range p.LikedBy {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("post %s: user %s liked more than once", p.ID, id)
		}
		seen[id] = struct{}{}
	}
	if p.LikeCount != len(p.LikedBy) {
		return fmt.Errorf("post %s: like count %d does not match roster size %d", p.ID, p.LikeCount, len(p.LikedBy))
	}
	return nil
}

// ValidateContent checks only the caller-editable fields.
func (p *Post) ValidateContent() error {
	return validate.StructPartial(p, "Title", "Content")
}
