package notifications

// Topic names for booking lifecycle events.
const (
	TopicBookingEvents    = "booking-events"
	TopicBookingEventsDLQ = "booking-events-dlq"

	ConsumerGroupNotifier = "staybook-notifier"

	EventTypeBookingConfirmed = "booking.confirmed"
)

// BookingConfirmedEvent is published when a booking is created and
// consumed by the notifier to send the confirmation email.
type BookingConfirmedEvent struct {
	BookingID    string `json:"bookingId"`
	UserEmail    string `json:"userEmail"`
	Username     string `json:"username"`
	HotelName    string `json:"hotelName"`
	HotelAddress string `json:"hotelAddress"`
	RoomType     string `json:"roomType"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       int    `json:"guests"`
	TotalPrice   int64  `json:"totalPrice"`
	Currency     string `json:"currency"`
}
