package service

import (
	"context"
	"errors"

	userserrors "staybook/internal/users/errors"
	"staybook/internal/users/repository"
	"staybook/pkg/client"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	StoreRecentSearch(ctx context.Context, userID, city string) error
}

type userService struct {
	repo     repository.UserRepository
	identity *client.IdentityClient
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, identity *client.IdentityClient, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		identity: identity,
		cfg:      cfg,
	}
}

// GetProfile returns the local user document, syncing it from the
// identity provider on first sight of the subject.
func (s *userService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to load user", err)
	}

	profile, err := s.identity.GetProfile(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Identity profile fetch failed", "user", userID, "error", err)
		return nil, apperrors.Upstream("Failed to fetch user profile", err)
	}

	seed := &model.User{
		ID:       profile.ID,
		Username: profile.Username,
		Email:    profile.Email,
		Role:     config.RoleGuest,
	}
	if err := s.repo.Upsert(ctx, seed); err != nil {
		return nil, apperrors.Internal("Failed to store user", err)
	}

	user, err = s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load user", err)
	}

	s.cfg.Log.Info("User synced from identity provider", "user", userID)
	return user, nil
}

func (s *userService) StoreRecentSearch(ctx context.Context, userID, city string) error {
	if userID == "" {
		return apperrors.Unauthorized("User identity is required")
	}

	city = sanitizer.NormalizeCity(city)
	if city == "" {
		return apperrors.InvalidInput("City cannot be empty")
	}

	if err := s.repo.AddRecentSearchedCity(ctx, userID, city); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return apperrors.Internal("Failed to store recent search", err)
	}

	return nil
}
