package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var carrierSplitRe = regexp.MustCompile(`([A-Z][A-Z0-9]{1,2})\s*(\d{3,4})`)

// synthesize builds a best-guess booking record out of the extracted
// entities. The first candidate in each list wins; there is no
// cross-field validation.
func (p *RequestParser) synthesize(text string, entities ExtractedEntities) *ParsedBookingData {
	data := &ParsedBookingData{
		PassengerCount: 1,
		Services:       entities.Services,
		Entities:       entities,
	}

	if len(entities.FlightNumbers) > 0 {
		data.FlightNumber = entities.FlightNumbers[0]
		if m := carrierSplitRe.FindStringSubmatch(data.FlightNumber); len(m) == 3 {
			if name, ok := airlineNames[m[1]]; ok {
				data.Airline = name
			} else {
				data.Airline = m[1]
			}
		}
	}

	if len(entities.Names) > 0 {
		data.PassengerName = entities.Names[0]
	}
	if len(entities.Phones) > 0 {
		data.Phone = entities.Phones[0]
	}
	if len(entities.Emails) > 0 {
		data.Email = entities.Emails[0]
	}
	if len(entities.Dates) > 0 {
		data.Date = entities.Dates[0]
	}
	if len(entities.Times) > 0 {
		data.Time = entities.Times[0]
	}

	countRe := regexp.MustCompile(`(?i)(\d+)\s*(?:passengers?|people|travelers?|guests?)`)
	if m := countRe.FindStringSubmatch(text); len(m) == 2 {
		if count, err := strconv.Atoi(m[1]); err == nil && count >= 1 {
			data.PassengerCount = count
		}
	}

	terminalRe := regexp.MustCompile(`(?i)\b(?:terminal|t)\s*(\d+|[A-Za-z])\b`)
	if m := terminalRe.FindStringSubmatch(text); len(m) == 2 {
		data.Terminal = "T" + strings.ToUpper(m[1])
	}

	data.SpecialRequests = extractSpecialRequests(text)

	return data
}

// extractSpecialRequests captures the trailing clause after a trigger
// phrase, falling back to a labeled "notes:" style form.
func extractSpecialRequests(text string) string {
	triggerRe := regexp.MustCompile(`(?i)(?:please|can you|need|i want|i would like)\s+(.+)`)
	if m := triggerRe.FindStringSubmatch(text); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}

	labeledRe := regexp.MustCompile(`(?i)(?:special requests?|notes?|additional|also)\s*:\s*(.+)`)
	if m := labeledRe.FindStringSubmatch(text); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}

	return ""
}
