package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seventyFiveHardAPI/internal/store"
	"seventyFiveHardAPI/internal/types/user"
)

type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// CreateUser registers a user record for a fresh external identity. Called
// from the identity-provider webhook on user.created; the challenge starts
// in not_started until the user explicitly begins.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	now := time.Now()
	u := &user.User{
		ID:              uuid.New(),
		ClerkID:         req.ClerkID,
		Email:           req.Email,
		Name:            req.Name,
		ChallengeStatus: user.StatusNotStarted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.store.UpdateUserProfile(ctx, clerkID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	if err := s.store.DeleteUserByClerkID(ctx, clerkID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
