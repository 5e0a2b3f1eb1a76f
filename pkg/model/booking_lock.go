package model

import "time"

// BookingLock is an advisory lock preventing two concurrent booking
// requests for the same room and check-in slot from both passing the
// availability check. Expired locks are reaped by a TTL index.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
