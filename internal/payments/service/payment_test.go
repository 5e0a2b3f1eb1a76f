package service

import (
	"context"
	"io"
	"testing"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/internal/payments/gateway"
	"staybook/pkg/config"
	mongotx "staybook/pkg/db/mongo"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

const (
	testBookingID = "66aabbccddeeff0011223344"
	testHotelID   = "aabbccddeeff001122334455"
	testUserID    = "user_2x7f9"
)

type mockBookingRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Booking, error)
	markPaidFn func(ctx context.Context, id string, paymentMethod string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByHotel(ctx context.Context, hotelID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id string, paymentMethod string) error {
	return m.markPaidFn(ctx, id, paymentMethod)
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockHotelRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Hotel, error)
}

func (m *mockHotelRepo) Create(ctx context.Context, hotel *model.Hotel) error { return nil }

func (m *mockHotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockHotelRepo) FindByOwner(ctx context.Context, ownerID string) (*model.Hotel, error) {
	return nil, nil
}

type mockGateway struct {
	createFn func(ctx context.Context, params gateway.CheckoutParams) (string, error)
	parseFn  func(payload []byte, signature string) (*gateway.WebhookEvent, error)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params gateway.CheckoutParams) (string, error) {
	return m.createFn(ctx, params)
}

func (m *mockGateway) ParseWebhookEvent(payload []byte, signature string) (*gateway.WebhookEvent, error) {
	return m.parseFn(payload, signature)
}

func testConfig() *config.Config {
	return &config.Config{
		Log:            logger.New(logger.Config{Output: io.Discard}),
		Currency:       "USD",
		FrontendOrigin: "https://staybook.example.com",
	}
}

func unpaidBooking() *model.Booking {
	return &model.Booking{
		ID:         testBookingID,
		User:       testUserID,
		Hotel:      testHotelID,
		TotalPrice: 400,
	}
}

func TestCreateCheckoutUsesStoredAmount(t *testing.T) {
	var got gateway.CheckoutParams
	gw := &mockGateway{
		createFn: func(ctx context.Context, params gateway.CheckoutParams) (string, error) {
			got = params
			return "https://checkout.stripe.com/c/pay/cs_test_123", nil
		},
	}
	repo := &mockBookingRepo{findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
		return unpaidBooking(), nil
	}}
	hotelRepo := &mockHotelRepo{findByIDFn: func(ctx context.Context, id string) (*model.Hotel, error) {
		return &model.Hotel{ID: testHotelID, Name: "Grand Plaza"}, nil
	}}

	svc := NewPaymentService(repo, hotelRepo, gw, testConfig())

	url, err := svc.CreateCheckout(context.Background(), testUserID, testBookingID)
	if err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}
	if url == "" {
		t.Error("expected a checkout URL")
	}
	if got.Amount != 400 {
		t.Errorf("expected charged amount 400 from the stored booking, got %d", got.Amount)
	}
	if got.HotelName != "Grand Plaza" {
		t.Errorf("expected line item named after the hotel, got %q", got.HotelName)
	}
	if got.BookingID != testBookingID {
		t.Errorf("expected booking reference %q, got %q", testBookingID, got.BookingID)
	}
}

func TestCreateCheckoutRejectsForeignBooking(t *testing.T) {
	repo := &mockBookingRepo{findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
		booking := unpaidBooking()
		booking.User = "someone_else"
		return booking, nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, &mockGateway{}, testConfig())

	_, err := svc.CreateCheckout(context.Background(), testUserID, testBookingID)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestCreateCheckoutRejectsPaidBooking(t *testing.T) {
	repo := &mockBookingRepo{findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
		booking := unpaidBooking()
		booking.IsPaid = true
		return booking, nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, &mockGateway{}, testConfig())

	_, err := svc.CreateCheckout(context.Background(), testUserID, testBookingID)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestHandleWebhookSettlesBooking(t *testing.T) {
	gw := &mockGateway{parseFn: func(payload []byte, signature string) (*gateway.WebhookEvent, error) {
		return &gateway.WebhookEvent{Type: gateway.EventCheckoutCompleted, BookingID: testBookingID}, nil
	}}

	var paidID, paidMethod string
	repo := &mockBookingRepo{markPaidFn: func(ctx context.Context, id string, paymentMethod string) error {
		paidID = id
		paidMethod = paymentMethod
		return nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, gw, testConfig())

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if paidID != testBookingID {
		t.Errorf("expected booking %q settled, got %q", testBookingID, paidID)
	}
	if paidMethod != config.PaidOnline {
		t.Errorf("expected payment method %q, got %q", config.PaidOnline, paidMethod)
	}
}

func TestHandleWebhookIsReplaySafe(t *testing.T) {
	gw := &mockGateway{parseFn: func(payload []byte, signature string) (*gateway.WebhookEvent, error) {
		return &gateway.WebhookEvent{Type: gateway.EventCheckoutCompleted, BookingID: testBookingID}, nil
	}}

	calls := 0
	repo := &mockBookingRepo{markPaidFn: func(ctx context.Context, id string, paymentMethod string) error {
		calls++
		return nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, gw, testConfig())

	for i := 0; i < 3; i++ {
		if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
			t.Fatalf("delivery %d returned error: %v", i+1, err)
		}
	}
	if calls != 3 {
		t.Errorf("expected the idempotent settlement update on each delivery, got %d calls", calls)
	}
}

func TestHandleWebhookRejectsInvalidSignature(t *testing.T) {
	gw := &mockGateway{parseFn: func(payload []byte, signature string) (*gateway.WebhookEvent, error) {
		return nil, apperrors.InvalidInput("Webhook signature verification failed")
	}}

	repo := &mockBookingRepo{markPaidFn: func(ctx context.Context, id string, paymentMethod string) error {
		t.Fatal("an unverified event must never settle a booking")
		return nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, gw, testConfig())

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad-sig"); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestHandleWebhookIgnoresOtherEvents(t *testing.T) {
	gw := &mockGateway{parseFn: func(payload []byte, signature string) (*gateway.WebhookEvent, error) {
		return &gateway.WebhookEvent{Type: "payment_intent.created"}, nil
	}}

	repo := &mockBookingRepo{markPaidFn: func(ctx context.Context, id string, paymentMethod string) error {
		t.Fatal("unrelated events must not settle bookings")
		return nil
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, gw, testConfig())

	if err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("unrelated events should be acknowledged, got: %v", err)
	}
}

func TestHandleWebhookUnknownBooking(t *testing.T) {
	gw := &mockGateway{parseFn: func(payload []byte, signature string) (*gateway.WebhookEvent, error) {
		return &gateway.WebhookEvent{Type: gateway.EventCheckoutCompleted, BookingID: testBookingID}, nil
	}}

	repo := &mockBookingRepo{markPaidFn: func(ctx context.Context, id string, paymentMethod string) error {
		return bookingserrors.ErrNotFound
	}}

	svc := NewPaymentService(repo, &mockHotelRepo{}, gw, testConfig())

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not-found, got %v", err)
	}
}
