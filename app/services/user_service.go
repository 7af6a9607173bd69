package services

import (
	"context"
	"fmt"
	"log/slog"

	"postlikes/app/models"
	"postlikes/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// UserService is the user directory. It only ever returns UserSummary
// values.
type UserService struct {
	userRepo   repositories.UserRepository
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		userRepo:   userRepo,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// SetBcryptCost overrides the hashing cost; out-of-range values fall back
// to bcrypt.DefaultCost.
func (s *UserService) SetBcryptCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	s.bcryptCost = cost
}

// Register creates a user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.UserSummary, error) {
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", models.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	user := &models.User{
		Username:     input.Username,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	summary := user.Summary()
	return &summary, nil
}

// GetSummary returns the public view of a user
func (s *UserService) GetSummary(ctx context.Context, id string) (*models.UserSummary, error) {
	userID, err := models.ParseID(id, "user ID")
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	summary := user.Summary()
	return &summary, nil
}
