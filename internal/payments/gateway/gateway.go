package gateway

import "context"

// CheckoutParams describes a hosted checkout page for one booking.
type CheckoutParams struct {
	BookingID  string
	HotelName  string
	Amount     int64 // whole currency units
	Currency   string
	SuccessURL string
	CancelURL  string
}

// WebhookEvent is a verified gateway notification.
type WebhookEvent struct {
	Type      string
	BookingID string
}

// PaymentGateway abstracts the payment provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
