package templates

import (
	"fmt"
	"strings"

	"concierge-service/internal/domain/entity"
)

// Image shown on WhatsApp confirmation messages
const ConfirmationImageURL = "https://cdn.concierge.example.com/assets/wa-booking-confirmed.png"

const bookingConfirmationTemplate = `Hello %s,

Your airport concierge booking is confirmed ✅

Flight     : %s (%s)
Date       : %s
Time       : %s
Terminal   : %s
Passengers : %d
Service    : %s

%sOur agent will meet you at the airport. Reply to this message if anything changes.`

const reviewAckTemplate = `Hello! We received your request but need a bit more detail before we can book:

%s
Our team will follow up shortly.`

// FormatBookingConfirmation renders the WhatsApp confirmation text for a
// newly created booking.
func FormatBookingConfirmation(booking *entity.Booking) string {
	specialRequests := ""
	if booking.SpecialRequests != "" {
		specialRequests = fmt.Sprintf("Special requests: %s\n\n", booking.SpecialRequests)
	}

	return fmt.Sprintf(bookingConfirmationTemplate,
		orDash(booking.PassengerName),
		orDash(booking.FlightNumber),
		orDash(booking.Airline),
		orDash(booking.Date),
		orDash(booking.Time),
		orDash(booking.Terminal),
		booking.PassengerCount,
		orDash(booking.ServiceID),
		specialRequests,
	)
}

// FormatReviewAck renders the reply sent when a request could not be booked
// automatically, listing the missing details verbatim.
func FormatReviewAck(suggestions []string) string {
	var sb strings.Builder
	for _, suggestion := range suggestions {
		sb.WriteString("- ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return fmt.Sprintf(reviewAckTemplate, sb.String())
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
