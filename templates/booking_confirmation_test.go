package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"concierge-service/internal/domain/entity"
)

func TestFormatBookingConfirmation(t *testing.T) {
	booking := &entity.Booking{
		PassengerName:  "John Smith",
		FlightNumber:   "UA 457",
		Airline:        "United Airlines",
		Date:           "2025-01-15",
		Time:           "14:30",
		Terminal:       "T2",
		PassengerCount: 2,
		ServiceID:      "meet_greet",
	}

	text := FormatBookingConfirmation(booking)

	assert.Contains(t, text, "Hello John Smith,")
	assert.Contains(t, text, "UA 457 (United Airlines)")
	assert.Contains(t, text, "2025-01-15")
	assert.Contains(t, text, "Passengers : 2")
	assert.Contains(t, text, "meet_greet")
	assert.NotContains(t, text, "Special requests")
}

func TestFormatBookingConfirmation_MissingFieldsDashed(t *testing.T) {
	booking := &entity.Booking{
		FlightNumber:    "ZZ 123",
		PassengerCount:  1,
		SpecialRequests: "wheelchair at gate",
	}

	text := FormatBookingConfirmation(booking)

	assert.Contains(t, text, "Hello -,")
	assert.Contains(t, text, "Terminal   : -")
	assert.Contains(t, text, "Special requests: wheelchair at gate")
}

func TestFormatReviewAck(t *testing.T) {
	text := FormatReviewAck([]string{
		"Include a flight number (e.g., UA 457 or AA 1234)",
		"Include the passenger name",
	})

	assert.Contains(t, text, "- Include a flight number (e.g., UA 457 or AA 1234)")
	assert.Contains(t, text, "- Include the passenger name")
	assert.Contains(t, text, "Our team will follow up shortly.")
}
