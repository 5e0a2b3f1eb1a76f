package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "staybook/pkg/errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// EventCheckoutCompleted is the gateway event that settles a booking.
const EventCheckoutCompleted = "checkout.session.completed"

const metadataBookingID = "bookingId"

type stripeGateway struct {
	webhookSecret string
}

// NewStripeGateway configures the Stripe client. The secret key is
// process-wide state in the Stripe SDK.
func NewStripeGateway(secretKey, webhookSecret string) PaymentGateway {
	stripe.Key = secretKey
	return &stripeGateway{
		webhookSecret: webhookSecret,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(p.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.HotelName),
					},
					UnitAmount: stripe.Int64(p.Amount * 100), // minor units
				},
				Quantity: stripe.Int64(1),
			},
		},
		ExpiresAt: stripe.Int64(time.Now().Add(30 * time.Minute).Unix()),
	}
	params.Context = ctx
	params.AddMetadata(metadataBookingID, p.BookingID)

	sess, err := session.New(params)
	if err != nil {
		return "", apperrors.Upstream("Payment gateway rejected the checkout session", err)
	}

	return sess.URL, nil
}

// ParseWebhookEvent verifies the signature and extracts the booking
// reference. Events other than checkout completion come back with an
// empty BookingID and are ignored by the caller.
func (g *stripeGateway) ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, apperrors.InvalidInput("Webhook signature verification failed")
	}

	parsed := &WebhookEvent{Type: string(event.Type)}
	if parsed.Type != EventCheckoutCompleted {
		return parsed, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Malformed %s payload", EventCheckoutCompleted))
	}

	parsed.BookingID = sess.Metadata[metadataBookingID]
	return parsed, nil
}
