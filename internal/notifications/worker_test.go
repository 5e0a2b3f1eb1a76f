package notifications

import (
	"context"
	"io"
	"strings"
	"testing"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/mail"
)

type mockSender struct {
	sent []mail.Message
	err  error
}

func (m *mockSender) Send(msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testEvent() BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:    "66aabbccddeeff0011223344",
		UserEmail:    "guest@example.com",
		Username:     "guest",
		HotelName:    "Grand Plaza",
		HotelAddress: "1 Main Street",
		RoomType:     "Deluxe Suite",
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		Guests:       2,
		TotalPrice:   200,
		Currency:     "USD",
	}
}

func confirmedMessage(t *testing.T, event BookingConfirmedEvent) kafka.Message {
	t.Helper()
	return kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(EventTypeBookingConfirmed).
		WithSource("server").
		Build()
}

func TestHandleSendsConfirmationEmail(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, logger.New(logger.Config{Output: io.Discard}))

	if err := worker.Handle(context.Background(), confirmedMessage(t, testEvent())); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}

	email := sender.sent[0]
	if email.To != "guest@example.com" {
		t.Errorf("expected email to the booking user, got %q", email.To)
	}
	if email.Subject != "Hotel Booking Details" {
		t.Errorf("unexpected subject %q", email.Subject)
	}
	for _, want := range []string{"Grand Plaza", "Deluxe Suite", "2024-01-01", "2024-01-03", "USD 200"} {
		if !strings.Contains(email.HTML, want) {
			t.Errorf("expected email body to contain %q", want)
		}
	}
}

func TestHandleAcknowledgesUnknownEventTypes(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, logger.New(logger.Config{Output: io.Discard}))

	msg := kafka.NewMessage().
		WithKey("k").
		WithRawValue([]byte(`{}`)).
		WithEventType("booking.cancelled").
		Build()

	if err := worker.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event types must be acknowledged, got: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no email expected for unknown event types, got %d", len(sender.sent))
	}
}

func TestHandleMarksBadPayloadPermanent(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, logger.New(logger.Config{Output: io.Discard}))

	msg := kafka.NewMessage().
		WithKey("k").
		WithRawValue([]byte(`{not json`)).
		WithEventType(EventTypeBookingConfirmed).
		Build()

	err := worker.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("malformed payloads must not be retried, got classification %v", kafka.ClassifyError(err))
	}
	if len(sender.sent) != 0 {
		t.Error("no email expected for malformed payloads")
	}
}

func TestHandlePropagatesSendFailure(t *testing.T) {
	sender := &mockSender{err: io.ErrClosedPipe}
	worker := NewWorker(sender, logger.New(logger.Config{Output: io.Discard}))

	if err := worker.Handle(context.Background(), confirmedMessage(t, testEvent())); err == nil {
		t.Fatal("expected send failure to surface for retry")
	}
}
