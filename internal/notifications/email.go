package notifications

import (
	"fmt"
	"html/template"
	"strings"

	"staybook/pkg/mail"
)

var confirmationTemplate = template.Must(template.New("booking_confirmation").Parse(`
<h2>Your Booking Details</h2>
<p>Dear {{.Username}},</p>
<p>Thank you for your booking! Here are your details:</p>
<ul>
  <li><strong>Booking ID:</strong> {{.BookingID}}</li>
  <li><strong>Hotel Name:</strong> {{.HotelName}}</li>
  <li><strong>Location:</strong> {{.HotelAddress}}</li>
  <li><strong>Room:</strong> {{.RoomType}}</li>
  <li><strong>Check-In:</strong> {{.CheckInDate}}</li>
  <li><strong>Check-Out:</strong> {{.CheckOutDate}}</li>
  <li><strong>Guests:</strong> {{.Guests}}</li>
  <li><strong>Booking Amount:</strong> {{.Currency}} {{.TotalPrice}}</li>
</ul>
<p>We look forward to welcoming you!</p>
<p>If you need to make any changes, feel free to contact us.</p>
`))

// ComposeBookingConfirmation renders the confirmation email for an event.
func ComposeBookingConfirmation(event BookingConfirmedEvent) (mail.Message, error) {
	var body strings.Builder
	if err := confirmationTemplate.Execute(&body, event); err != nil {
		return mail.Message{}, fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return mail.Message{
		To:      event.UserEmail,
		Subject: "Hotel Booking Details",
		HTML:    body.String(),
	}, nil
}
