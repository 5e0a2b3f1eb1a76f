package service

import (
	"context"
	"errors"

	hotelserrors "staybook/internal/hotels/errors"
	hotelsrepo "staybook/internal/hotels/repository"
	roomserrors "staybook/internal/rooms/errors"
	"staybook/internal/rooms/repository"
	"staybook/internal/rooms/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

// CreateRoomRequest is the owner payload for listing a new room.
type CreateRoomRequest struct {
	RoomType      string   `json:"roomType"`
	PricePerNight int64    `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
}

type RoomService interface {
	Create(ctx context.Context, ownerID string, req *CreateRoomRequest) (*model.Room, error)
	ListAvailable(ctx context.Context) ([]*model.Room, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*model.Room, error)
	ToggleAvailability(ctx context.Context, ownerID, roomID string) (bool, error)
}

type roomService struct {
	repo      repository.RoomRepository
	hotelRepo hotelsrepo.HotelRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	hotelRepo hotelsrepo.HotelRepository,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		hotelRepo: hotelRepo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, ownerID string, req *CreateRoomRequest) (*model.Room, error) {
	if ownerID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	hotel, err := s.hotelRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Hotel")
		}
		return nil, apperrors.Internal("Failed to load hotel", err)
	}

	room := &model.Room{
		Hotel:         hotel.ID,
		RoomType:      sanitizer.TrimAndNormalize(req.RoomType),
		PricePerNight: req.PricePerNight,
		Amenities:     sanitizer.NormalizeAmenities(req.Amenities),
		IsAvailable:   true,
	}

	if err := s.validator.Validate(room); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "hotel", hotel.ID, "error", err)
		return nil, apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully", "id", room.ID, "hotel", hotel.ID)
	return room, nil
}

func (s *roomService) ListAvailable(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindAvailable(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	if rooms == nil {
		rooms = []*model.Room{}
	}
	return rooms, nil
}

func (s *roomService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Room, error) {
	if ownerID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	hotel, err := s.hotelRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Hotel")
		}
		return nil, apperrors.Internal("Failed to load hotel", err)
	}

	rooms, err := s.repo.FindByHotel(ctx, hotel.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	if rooms == nil {
		rooms = []*model.Room{}
	}
	return rooms, nil
}

// ToggleAvailability flips the listing flag for a room owned by the
// caller's hotel.
func (s *roomService) ToggleAvailability(ctx context.Context, ownerID, roomID string) (bool, error) {
	if ownerID == "" {
		return false, apperrors.Unauthorized("User identity is required")
	}

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return false, apperrors.NotFoundWithID("Room", roomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return false, apperrors.InvalidInput("Invalid room ID format")
		}
		return false, apperrors.Internal("Failed to load room", err)
	}

	hotel, err := s.hotelRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return false, apperrors.NotFound("Hotel")
		}
		return false, apperrors.Internal("Failed to load hotel", err)
	}
	if room.Hotel != hotel.ID {
		return false, apperrors.Forbidden("Room belongs to another hotel")
	}

	isAvailable, err := s.repo.ToggleAvailability(ctx, roomID)
	if err != nil {
		return false, apperrors.Internal("Failed to toggle room availability", err)
	}

	s.cfg.Log.Info("Room availability toggled", "id", roomID, "is_available", isAvailable)
	return isAvailable, nil
}
