package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header value the way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(bookingID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": "checkout.session.completed",
		"api_version": "2024-06-20",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"metadata": {"bookingId": %q}
			}
		}
	}`, bookingID))
}

func TestParseWebhookEventExtractsBooking(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}

	payload := completedEventPayload("66aabbccddeeff0011223344")
	signature := signPayload(payload, testWebhookSecret, time.Now())

	event, err := g.ParseWebhookEvent(payload, signature)
	if err != nil {
		t.Fatalf("ParseWebhookEvent returned error: %v", err)
	}
	if event.Type != EventCheckoutCompleted {
		t.Errorf("expected type %q, got %q", EventCheckoutCompleted, event.Type)
	}
	if event.BookingID != "66aabbccddeeff0011223344" {
		t.Errorf("expected booking reference from metadata, got %q", event.BookingID)
	}
}

func TestParseWebhookEventRejectsTamperedPayload(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}

	payload := completedEventPayload("66aabbccddeeff0011223344")
	signature := signPayload(payload, testWebhookSecret, time.Now())
	tampered := completedEventPayload("ffffffffffffffffffffffff")

	if _, err := g.ParseWebhookEvent(tampered, signature); err == nil {
		t.Fatal("expected signature verification to fail for a tampered payload")
	}
}

func TestParseWebhookEventRejectsWrongSecret(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}

	payload := completedEventPayload("66aabbccddeeff0011223344")
	signature := signPayload(payload, "whsec_someone_elses", time.Now())

	if _, err := g.ParseWebhookEvent(payload, signature); err == nil {
		t.Fatal("expected signature verification to fail for a foreign secret")
	}
}

func TestParseWebhookEventIgnoresOtherTypes(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}

	payload := []byte(`{
		"id": "evt_test_2",
		"type": "payment_intent.created",
		"api_version": "2024-06-20",
		"data": {"object": {"id": "pi_test_1", "object": "payment_intent"}}
	}`)
	signature := signPayload(payload, testWebhookSecret, time.Now())

	event, err := g.ParseWebhookEvent(payload, signature)
	if err != nil {
		t.Fatalf("ParseWebhookEvent returned error: %v", err)
	}
	if event.BookingID != "" {
		t.Errorf("unrelated events must not carry a booking reference, got %q", event.BookingID)
	}
}
