package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/validator"
	hotelserrors "staybook/internal/hotels/errors"
	hotelsrepo "staybook/internal/hotels/repository"
	"staybook/internal/notifications"
	roomserrors "staybook/internal/rooms/errors"
	roomsrepo "staybook/internal/rooms/repository"
	usersrepo "staybook/internal/users/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// DashboardData is the owner-facing booking summary for a hotel.
type DashboardData struct {
	TotalBookings int              `json:"totalBookings"`
	TotalRevenue  int64            `json:"totalRevenue"`
	Bookings      []*model.Booking `json:"bookings"`
}

type BookingService interface {
	CheckAvailability(ctx context.Context, req *model.BookingRequest) (bool, error)
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	ListForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	HotelDashboard(ctx context.Context, ownerID string) (*DashboardData, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	roomRepo  roomsrepo.RoomRepository
	hotelRepo hotelsrepo.HotelRepository
	userRepo  usersrepo.UserRepository
	validator *validator.BookingValidator
	publisher notifications.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	roomRepo roomsrepo.RoomRepository,
	hotelRepo hotelsrepo.HotelRepository,
	userRepo usersrepo.UserRepository,
	validator *validator.BookingValidator,
	publisher notifications.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
		userRepo:  userRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// CheckAvailability reports whether the room is free for the requested
// range. A stay that merely touches the range at a boundary counts as a
// conflict, leaving a turnover gap between consecutive stays. Storage
// failures answer "unavailable" rather than an error: a fault must never
// report a booked room as free.
func (s *bookingService) CheckAvailability(ctx context.Context, req *model.BookingRequest) (bool, error) {
	checkIn, checkOut, err := s.validator.ValidateRequest(req)
	if err != nil {
		return false, apperrors.Validation(err.Error(), nil)
	}

	if _, err := s.roomRepo.FindByID(ctx, req.Room); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return false, apperrors.NotFoundWithID("Room", req.Room)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return false, apperrors.InvalidInput("Invalid room ID format")
		}
		s.cfg.Log.Error("Room lookup failed, reporting unavailable", "room", req.Room, "error", err)
		return false, nil
	}

	conflicts, err := s.repo.FindOverlapping(ctx, req.Room, checkIn, checkOut)
	if err != nil {
		s.cfg.Log.Error("Availability lookup failed, reporting unavailable", "room", req.Room, "error", err)
		return false, nil
	}

	return !hasConflict(conflicts, checkIn, checkOut), nil
}

// Create books the room for the user. Price is computed server side from
// the room's nightly rate. One advisory lock per night of the stay plus an
// in-transaction re-check closes the window between the availability check
// and the insert: any two overlapping ranges share at least one night, so
// they contend on its lock even when their check-in days differ.
func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	checkIn, checkOut, err := s.validator.ValidateRequest(req)
	if err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	room, err := s.roomRepo.FindByID(ctx, req.Room)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", req.Room)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to load room", err)
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	booking := &model.Booking{
		User:          userID,
		Room:          room.ID,
		Hotel:         room.Hotel,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        guests,
		TotalPrice:    totalPrice(room.PricePerNight, checkIn, checkOut),
		IsPaid:        false,
		PaymentMethod: config.PayAtHotel,
	}

	if err := s.validator.Validate(booking); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	lockIDs, err := s.acquireStayLocks(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	defer s.releaseStayLocks(ctx, lockIDs)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicts, err := s.repo.FindOverlapping(sessCtx, room.ID, checkIn, checkOut)
		if err != nil {
			return apperrors.Internal("Failed to verify availability", err)
		}
		if hasConflict(conflicts, checkIn, checkOut) {
			return apperrors.Conflict(bookingserrors.ErrRoomUnavailable.Error())
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user", booking.User,
		"room", booking.Room,
		"check_in", booking.CheckInDate,
		"check_out", booking.CheckOutDate,
		"total_price", booking.TotalPrice,
	)

	s.publishConfirmation(ctx, booking, room)

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("User identity is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	bookings, err := s.repo.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) HotelDashboard(ctx context.Context, ownerID string) (*DashboardData, error) {
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

	bookings, err := s.repo.FindByHotel(ctx, hotel.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	var revenue int64
	for _, booking := range bookings {
		revenue += booking.TotalPrice
	}

	return &DashboardData{
		TotalBookings: len(bookings),
		TotalRevenue:  revenue,
		Bookings:      bookings,
	}, nil
}

// totalPrice charges per full night. Dates are midnight UTC, so the
// division is exact; a degenerate range still charges one night.
func totalPrice(pricePerNight int64, checkIn, checkOut time.Time) int64 {
	nights := int64(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights * pricePerNight
}

// overlapsStay is the in-memory form of the repository's FindOverlapping
// filter: ranges conflict when they touch or cross, boundaries included,
// so back-to-back stays on the same room are rejected.
func overlapsStay(existing *model.Booking, checkIn, checkOut time.Time) bool {
	return !existing.CheckInDate.After(checkOut) && !existing.CheckOutDate.Before(checkIn)
}

func hasConflict(existing []*model.Booking, checkIn, checkOut time.Time) bool {
	for _, booking := range existing {
		if overlapsStay(booking, checkIn, checkOut) {
			return true
		}
	}
	return false
}

// acquireStayLocks takes one advisory lock per night of the stay. Two
// overlapping ranges share at least one night, so the second request hits
// a duplicate key no matter which day each stay starts on. Locks acquired
// before the collision are rolled back.
func (s *bookingService) acquireStayLocks(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]string, error) {
	expiresAt := time.Now().Add(s.cfg.BookingLockTTL)

	var held []string
	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		lock := &model.BookingLock{
			ID:        fmt.Sprintf("%s:%s", roomID, night.Format("2006-01-02")),
			ExpiresAt: expiresAt,
		}

		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			s.releaseStayLocks(ctx, held)
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict(bookingserrors.ErrLockHeld.Error())
			}
			return nil, apperrors.Internal("Failed to acquire booking lock", err)
		}
		held = append(held, lock.ID)
	}

	return held, nil
}

func (s *bookingService) releaseStayLocks(ctx context.Context, lockIDs []string) {
	for _, lockID := range lockIDs {
		if err := s.lockRepo.Delete(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
		}
	}
}

// publishConfirmation queues the confirmation email. Delivery is best
// effort: a broker outage must not fail a booking that is already
// committed.
func (s *bookingService) publishConfirmation(ctx context.Context, booking *model.Booking, room *model.Room) {
	if s.publisher == nil {
		return
	}

	user, err := s.userRepo.FindByID(ctx, booking.User)
	if err != nil {
		s.cfg.Log.Warn("Skipping booking confirmation email, user lookup failed",
			"booking_id", booking.ID, "user", booking.User, "error", err)
		return
	}

	hotel, err := s.hotelRepo.FindByID(ctx, booking.Hotel)
	if err != nil {
		s.cfg.Log.Warn("Skipping booking confirmation email, hotel lookup failed",
			"booking_id", booking.ID, "hotel", booking.Hotel, "error", err)
		return
	}

	event := notifications.BookingConfirmedEvent{
		BookingID:    booking.ID,
		UserEmail:    user.Email,
		Username:     user.Username,
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		RoomType:     room.RoomType,
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		Guests:       booking.Guests,
		TotalPrice:   booking.TotalPrice,
		Currency:     s.cfg.Currency,
	}

	if err := s.publisher.BookingConfirmed(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to queue booking confirmation email",
			"booking_id", booking.ID, "error", err)
	}
}
