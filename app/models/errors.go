package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier matches every *InvalidIdentifierError
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrPostNotFound indicates the post does not exist or was deleted
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates the user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyLiked indicates the user is already in the post's roster
	ErrAlreadyLiked = errors.New("you have already liked this post")

	// ErrNotLiked indicates the user is not in the post's roster
	ErrNotLiked = errors.New("you have not liked this post")

	// ErrInvalidInput wraps request payload problems not reported by the validator
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken indicates another account holds the username
	ErrUsernameTaken = errors.New("username already taken")
)

// InvalidIdentifierError reports a malformed identifier together with the
// name of the input it came from, e.g. "post ID".
type InvalidIdentifierError struct {
	Label string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s format", e.Label)
}

func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
