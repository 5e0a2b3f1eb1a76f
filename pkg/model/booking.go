package model

import (
	"time"
)

type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	User          string    `json:"user" bson:"user" validate:"required"`
	Room          string    `json:"room" bson:"room" validate:"required,mongodb"`
	Hotel         string    `json:"hotel" bson:"hotel" validate:"required,mongodb"`
	CheckInDate   time.Time `json:"checkInDate" bson:"check_in_date" validate:"required"`
	CheckOutDate  time.Time `json:"checkOutDate" bson:"check_out_date" validate:"required,gtfield=CheckInDate"`
	Guests        int       `json:"guests" bson:"guests" validate:"required,min=1,max=20"`
	TotalPrice    int64     `json:"totalPrice" bson:"total_price" validate:"min=0"`
	IsPaid        bool      `json:"isPaid" bson:"is_paid"`
	PaymentMethod string    `json:"paymentMethod" bson:"payment_method"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the client payload for availability checks and booking
// creation. Dates arrive as "2006-01-02" strings.
type BookingRequest struct {
	Room         string `json:"room" validate:"required,mongodb"`
	CheckInDate  string `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Guests       int    `json:"guests" validate:"omitempty,min=1,max=20"`
}
