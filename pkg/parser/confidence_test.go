package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirlineRoundTrip(t *testing.T) {
	p := newTestParser()

	for code, name := range airlineNames {
		result := p.Parse(code+" 123 tomorrow", nil)
		require.True(t, result.Success, "code %s", code)
		assert.Equal(t, name, result.Data.Airline, "code %s", code)
		assert.Equal(t, 0.95, result.Data.Confidence.Flight, "code %s", code)
	}
}

func TestUnknownCarrierFallsBackToCode(t *testing.T) {
	p := newTestParser()

	result := p.Parse("XQ 123 tomorrow", nil)

	require.True(t, result.Success)
	assert.Equal(t, "XQ", result.Data.Airline)
	assert.InDelta(t, 0.95*0.8, result.Data.Confidence.Flight, 1e-9)
}

func TestScoreConfidence_CategoryScores(t *testing.T) {
	entities := ExtractedEntities{
		Names:         []string{"John Smith"},
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15"},
		Times:         []string{"14:30"},
		Phones:        []string{"5551234567"},
		Services:      []string{"meet_greet"},
	}
	data := &ParsedBookingData{FlightNumber: "UA 457", Airline: "United Airlines"}

	c := scoreConfidence(data, entities)

	assert.Equal(t, 0.9, c.PassengerName)
	assert.Equal(t, 0.95, c.Flight)
	assert.Equal(t, 1.0, c.DateTime)
	assert.Equal(t, 0.9, c.Contact)
	assert.Equal(t, 0.8, c.Services)
	assert.Equal(t, ConfidenceHigh, c.Overall)
}

func TestScoreConfidence_DateTimeCap(t *testing.T) {
	entities := ExtractedEntities{
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15", "2025-01-16"},
		Times:         []string{"14:30", "15:00"},
	}

	c := scoreConfidence(&ParsedBookingData{}, entities)

	assert.Equal(t, 1.0, c.DateTime)
}

func TestScoreConfidence_SingleDateHalfScore(t *testing.T) {
	entities := ExtractedEntities{
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15"},
	}

	c := scoreConfidence(&ParsedBookingData{}, entities)

	assert.Equal(t, 0.5, c.DateTime)
}

func TestScoreConfidence_ServicesNeutralDefault(t *testing.T) {
	c := scoreConfidence(&ParsedBookingData{}, ExtractedEntities{})

	assert.Equal(t, 0.5, c.Services)
	assert.Zero(t, c.PassengerName)
	assert.Zero(t, c.Flight)
	assert.Zero(t, c.Contact)
	assert.Equal(t, ConfidenceLow, c.Overall)
}

func TestScoreConfidence_Buckets(t *testing.T) {
	// Flight + date + time only: 0.3*0.95 + 0.25*1.0 + 0.1*0.5 = 0.585 -> low
	low := scoreConfidence(&ParsedBookingData{}, ExtractedEntities{
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15"},
		Times:         []string{"14:30"},
	})
	assert.Equal(t, ConfidenceLow, low.Overall)

	// Adding a name: 0.585 + 0.2*0.9 = 0.765 -> medium
	medium := scoreConfidence(&ParsedBookingData{}, ExtractedEntities{
		Names:         []string{"John Smith"},
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15"},
		Times:         []string{"14:30"},
	})
	assert.Equal(t, ConfidenceMedium, medium.Overall)

	// Adding contact: 0.765 + 0.15*0.9 = 0.9 -> high
	high := scoreConfidence(&ParsedBookingData{}, ExtractedEntities{
		Names:         []string{"John Smith"},
		FlightNumbers: []string{"UA 457"},
		Dates:         []string{"2025-01-15"},
		Times:         []string{"14:30"},
		Phones:        []string{"5551234567"},
	})
	assert.Equal(t, ConfidenceHigh, high.Overall)
}

func TestSynthesize_FirstCandidateWins(t *testing.T) {
	p := newTestParser()

	entities := ExtractedEntities{
		Names:         []string{"John Smith", "Jane Doe"},
		FlightNumbers: []string{"UA 457", "DL 892"},
		Dates:         []string{"2025-01-15", "2025-01-16"},
		Times:         []string{"14:30", "15:00"},
		Phones:        []string{"5551234567", "5559876543"},
		Emails:        []string{"a@example.com", "b@example.com"},
	}

	data := p.synthesize("some message", entities)

	assert.Equal(t, "John Smith", data.PassengerName)
	assert.Equal(t, "UA 457", data.FlightNumber)
	assert.Equal(t, "United Airlines", data.Airline)
	assert.Equal(t, "2025-01-15", data.Date)
	assert.Equal(t, "14:30", data.Time)
	assert.Equal(t, "5551234567", data.Phone)
	assert.Equal(t, "a@example.com", data.Email)
	assert.Equal(t, 1, data.PassengerCount)
}

func TestSynthesize_PassengerCountAliases(t *testing.T) {
	p := newTestParser()

	for _, text := range []string{"4 passengers", "4 people", "4 travelers", "4 guests"} {
		data := p.synthesize(text, ExtractedEntities{})
		assert.Equal(t, 4, data.PassengerCount, "text %q", text)
	}
}

func TestSynthesize_TerminalForms(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		text string
		want string
	}{
		{"meet at terminal 2", "T2"},
		{"meet at terminal b", "TB"},
		{"meet at t 3", "T3"},
		{"no terminal here at all", ""},
	}

	for _, tt := range tests {
		data := p.synthesize(tt.text, ExtractedEntities{})
		assert.Equal(t, tt.want, data.Terminal, "text %q", tt.text)
	}
}

func TestExtractSpecialRequests(t *testing.T) {
	assert.Equal(t, "arrange a wheelchair", extractSpecialRequests("can you arrange a wheelchair"))
	assert.Equal(t, "window seat", extractSpecialRequests("notes: window seat"))
	assert.Equal(t, "", extractSpecialRequests("nothing special here"))
}
