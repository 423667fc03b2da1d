package parser

import (
	"fmt"
	"strings"
	"time"

	"concierge-service/pkg/logger"
)

// RequestParser extracts structured booking data from free-text messages
// coming in over WhatsApp, email or SMS.
type RequestParser struct {
	logger logger.Logger
	now    func() time.Time
}

// NewRequestParser creates a new request parser
func NewRequestParser(log logger.Logger) *RequestParser {
	return &RequestParser{
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the reference time used to resolve relative dates
// like "tomorrow" or "next monday". Used by tests.
func (p *RequestParser) WithClock(now func() time.Time) *RequestParser {
	p.now = now
	return p
}

// Parse runs all entity scanners over the message, synthesizes a booking
// record and scores it. It never returns an error to the caller: when the
// message lacks a flight number or any date/time, or when anything panics
// internally, the result carries Success=false with suggestions instead.
func (p *RequestParser) Parse(message string, activeServices []string) (result ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered from parse panic", "panic", r)
			result = ParseResult{
				Success:     false,
				Error:       fmt.Sprintf("Parsing failed: %v", r),
				Suggestions: buildSuggestions(ExtractedEntities{}),
			}
		}
	}()

	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)

	entities := ExtractedEntities{
		Names:         p.extractNames(text),
		FlightNumbers: p.extractFlightNumbers(lower),
		Dates:         p.extractDates(lower),
		Times:         p.extractTimes(lower),
		Phones:        p.extractPhones(lower),
		Emails:        p.extractEmails(lower),
		Services:      p.extractServices(lower, activeServices),
	}

	p.logger.Debug("Extraction completed",
		"names", len(entities.Names),
		"flights", len(entities.FlightNumbers),
		"dates", len(entities.Dates),
		"times", len(entities.Times),
		"services", len(entities.Services))

	// Minimum data to act on: a flight number plus a date or a time.
	if len(entities.FlightNumbers) == 0 || (len(entities.Dates) == 0 && len(entities.Times) == 0) {
		p.logger.Info("Message rejected, insufficient booking information")
		return ParseResult{
			Success:     false,
			Error:       "Insufficient information to create a booking",
			Suggestions: buildSuggestions(entities),
		}
	}

	data := p.synthesize(lower, entities)
	data.Confidence = scoreConfidence(data, entities)

	p.logger.Info("Message parsed",
		"flight", data.FlightNumber,
		"date", data.Date,
		"confidence", data.Confidence.Overall)

	return ParseResult{Success: true, Data: data}
}
