package notifications

import (
	"context"

	"staybook/pkg/kafka"
)

// Publisher emits booking lifecycle events.
type Publisher interface {
	BookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

// NewKafkaPublisher wraps a producer for the booking events topic.
func NewKafkaPublisher(producer *kafka.Producer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) BookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(EventTypeBookingConfirmed).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
