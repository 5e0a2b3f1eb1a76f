package service

import (
	"context"
	"errors"

	hotelserrors "staybook/internal/hotels/errors"
	"staybook/internal/hotels/repository"
	"staybook/internal/hotels/validator"
	usersrepo "staybook/internal/users/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

// RegisterHotelRequest is the payload for registering a hotel.
type RegisterHotelRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	City    string `json:"city"`
}

type HotelService interface {
	Register(ctx context.Context, ownerID string, req *RegisterHotelRequest) (*model.Hotel, error)
}

type hotelService struct {
	repo      repository.HotelRepository
	userRepo  usersrepo.UserRepository
	validator *validator.HotelValidator
	cfg       *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	userRepo usersrepo.UserRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:      repo,
		userRepo:  userRepo,
		validator: validator,
		cfg:       cfg,
	}
}

// Register creates the caller's hotel and promotes them to owner. One
// hotel per owner; the unique index is the final arbiter.
func (s *hotelService) Register(ctx context.Context, ownerID string, req *RegisterHotelRequest) (*model.Hotel, error) {
	if ownerID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	contact := sanitizer.NormalizePhone(req.Contact)
	if contact == "" {
		return nil, apperrors.Validation("Contact must be a valid phone number", nil)
	}

	hotel := &model.Hotel{
		Owner:   ownerID,
		Name:    sanitizer.NormalizeName(req.Name),
		Address: sanitizer.NormalizeAddress(req.Address),
		Contact: contact,
		City:    sanitizer.NormalizeCity(req.City),
	}

	if err := s.validator.Validate(hotel); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		if errors.Is(err, hotelserrors.ErrAlreadyRegistered) {
			return nil, apperrors.Conflict("Hotel Already Registered")
		}
		s.cfg.Log.Error("Failed to register hotel", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to register hotel", err)
	}

	if err := s.userRepo.UpdateRole(ctx, ownerID, config.RoleOwner); err != nil {
		// The hotel document exists at this point, so do not fail the
		// registration over the role update.
		s.cfg.Log.Error("Failed to promote user to owner", "owner", ownerID, "error", err)
	}

	s.cfg.Log.Info("Hotel registered successfully", "id", hotel.ID, "owner", ownerID)
	return hotel, nil
}
