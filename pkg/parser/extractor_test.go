package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"concierge-service/pkg/logger"
)

func TestExtractDates_Formats(t *testing.T) {
	p := newTestParser() // clock fixed at 2025-01-14, a Tuesday

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"iso", "arriving 2025-03-01", []string{"2025-03-01"}},
		{"slash full year", "arriving 3/1/2025", []string{"2025-03-01"}},
		{"slash short year", "arriving 03/01/25", []string{"2025-03-01"}},
		{"slash no year", "arriving 3/15", []string{"2025-03-15"}},
		{"today", "arriving today", []string{"2025-01-14"}},
		{"tomorrow", "arriving tomorrow", []string{"2025-01-15"}},
		{"next friday", "arriving next friday", []string{"2025-01-17"}},
		{"next tuesday wraps a week", "arriving next tuesday", []string{"2025-01-21"}},
		{"next non-weekday passes through", "arriving next month", []string{"next month"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractDates(tt.input))
		})
	}
}

func TestExtractDates_NextMondayFromWednesday(t *testing.T) {
	p := NewRequestParser(logger.NewNopLogger()).WithClock(func() time.Time {
		return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) // Wednesday
	})

	assert.Equal(t, []string{"2025-01-20"}, p.extractDates("next monday"))
}

func TestExtractTimes_Normalization(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"24 hour", "at 14:30", []string{"14:30"}},
		{"clock with am", "at 9:15 am", []string{"09:15"}},
		{"clock with pm", "at 2:05pm", []string{"14:05"}},
		{"bare hour pm", "at 2pm", []string{"14:00"}},
		{"midnight", "at 12am", []string{"00:00"}},
		{"noon stays noon", "at 12pm", []string{"12:00"}},
		{"o'clock", "at 9 o'clock", []string{"09:00"}},
		{"invalid hour dropped", "at 25:00", nil},
		{"bare digits are not times", "3 passengers", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractTimes(tt.input))
		})
	}
}

func TestExtractFlightNumbers(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, []string{"UA 457"}, p.extractFlightNumbers("on ua 457 please"))
	assert.Equal(t, []string{"UA457"}, p.extractFlightNumbers("on ua457 please"))
	// The prefixed form folds into the same normalized value.
	assert.Equal(t, []string{"AA 234"}, p.extractFlightNumbers("flight aa 234"))
	assert.Nil(t, p.extractFlightNumbers("no flights here"))
	// Short words before a digit run read as carrier codes. Known scanner
	// limitation; first-wins selection keeps it out of real bookings.
	assert.Equal(t, []string{"AT 555"}, p.extractFlightNumbers("call me back at 555-123-4567"))
}

func TestExtractPhones(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, []string{"5551234567"}, p.extractPhones("call 555-123-4567"))
	assert.Equal(t, []string{"15551234567"}, p.extractPhones("call +1 (555) 123-4567"))
	// The NANP scanner grabs a 10-digit prefix of long international numbers
	// before the bare-digit scanner sees the full run.
	assert.Equal(t, []string{"6281234567", "6281234567890"}, p.extractPhones("wa +6281234567890"))
	// Too few digits after stripping.
	assert.Nil(t, p.extractPhones("extension 123-4567"))
}

func TestExtractEmails(t *testing.T) {
	p := newTestParser()

	assert.Equal(t, []string{"john.smith@example.com"}, p.extractEmails("reach me at john.smith@example.com"))
	assert.Nil(t, p.extractEmails("no address here"))
}

func TestExtractNames(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two word merge", "traveler John Smith arriving", []string{"John Smith"}},
		{"punctuation trimmed", "John Smith, arriving soon", []string{"John Smith"}},
		{"stopwords skipped", "Please book The flight", nil},
		{"digits rejected", "gate B12 is closed", nil},
		{"lowercase rejected", "john smith arriving", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.extractNames(tt.input))
		})
	}
}

func TestExtractServices_Keywords(t *testing.T) {
	p := newTestParser()

	got := p.extractServices("need a vip lounge and a chauffeur to pick us up", nil)
	assert.Equal(t, []string{"lounge", "chauffeur"}, got)

	// A category appears once even when several of its keywords match.
	got = p.extractServices("fast track, fast-track, expedited", nil)
	assert.Equal(t, []string{"fast_track"}, got)

	// An empty non-nil allow-list blocks everything.
	got = p.extractServices("need a vip lounge", []string{})
	assert.Nil(t, got)
}
