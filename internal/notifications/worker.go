package notifications

import (
	"context"
	"fmt"

	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/mail"
)

// Worker turns consumed booking events into outbound email.
type Worker struct {
	sender mail.Sender
	log    *logger.Logger
}

func NewWorker(sender mail.Sender, log *logger.Logger) *Worker {
	return &Worker{
		sender: sender,
		log:    log,
	}
}

// Handle is the consumer message handler. Unknown event types are
// acknowledged without action so they do not clog the retry path.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.GetEventType() {
	case EventTypeBookingConfirmed:
		return w.handleBookingConfirmed(msg)
	default:
		w.log.Warn("skipping message with unknown event type",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
		)
		return nil
	}
}

func (w *Worker) handleBookingConfirmed(msg kafka.Message) error {
	var event BookingConfirmedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	email, err := ComposeBookingConfirmation(event)
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	if err := w.sender.Send(email); err != nil {
		return err
	}

	w.log.Info("booking confirmation email sent",
		"booking_id", event.BookingID,
		"event_id", msg.GetEventID(),
	)
	return nil
}
