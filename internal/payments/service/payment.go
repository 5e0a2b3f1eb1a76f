package service

import (
	"context"
	"errors"

	bookingserrors "staybook/internal/bookings/errors"
	bookingsrepo "staybook/internal/bookings/repository"
	hotelserrors "staybook/internal/hotels/errors"
	hotelsrepo "staybook/internal/hotels/repository"
	"staybook/internal/payments/gateway"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID, bookingID string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	bookingRepo bookingsrepo.BookingRepository
	hotelRepo   hotelsrepo.HotelRepository
	gateway     gateway.PaymentGateway
	cfg         *config.Config
}

func NewPaymentService(
	bookingRepo bookingsrepo.BookingRepository,
	hotelRepo hotelsrepo.HotelRepository,
	gw gateway.PaymentGateway,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
		gateway:     gw,
		cfg:         cfg,
	}
}

// CreateCheckout builds a hosted checkout page for the caller's own
// unpaid booking. The charged amount comes from the stored booking, never
// from the request.
func (s *paymentService) CreateCheckout(ctx context.Context, userID, bookingID string) (string, error) {
	if userID == "" {
		return "", apperrors.Unauthorized("User identity is required")
	}
	if bookingID == "" {
		return "", apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return "", apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return "", apperrors.InvalidInput("Invalid booking ID format")
		}
		return "", apperrors.Internal("Failed to load booking", err)
	}

	if booking.User != userID {
		return "", apperrors.Forbidden("Booking belongs to another user")
	}
	if booking.IsPaid {
		return "", apperrors.Conflict("Booking is already paid")
	}

	hotel, err := s.hotelRepo.FindByID(ctx, booking.Hotel)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return "", apperrors.NotFound("Hotel")
		}
		return "", apperrors.Internal("Failed to load hotel", err)
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, gateway.CheckoutParams{
		BookingID:  booking.ID,
		HotelName:  hotel.Name,
		Amount:     booking.TotalPrice,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.FrontendOrigin + "/loader/my-bookings",
		CancelURL:  s.cfg.FrontendOrigin + "/my-bookings",
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create checkout session", "booking_id", bookingID, "error", err)
		return "", err
	}

	s.cfg.Log.Info("Checkout session created", "booking_id", bookingID)
	return url, nil
}

// HandleWebhook settles a booking from a verified gateway event.
// Replaying the same event is harmless: the settlement update sets the
// same values again.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		s.cfg.Log.Warn("Rejected webhook", "error", err)
		return err
	}

	if event.Type != gateway.EventCheckoutCompleted {
		s.cfg.Log.Info("Ignoring webhook event", "type", event.Type)
		return nil
	}

	if event.BookingID == "" {
		return apperrors.InvalidInput("Webhook event is missing the booking reference")
	}

	if err := s.bookingRepo.MarkPaid(ctx, event.BookingID, config.PaidOnline); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", event.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to settle booking", err)
	}

	s.cfg.Log.Info("Booking settled", "booking_id", event.BookingID)
	return nil
}
