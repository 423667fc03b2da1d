package parser

// Category weights for the overall score. Flight identification dominates
// because a flight number is the hard minimum-data requirement.
const (
	weightPassengerName = 0.2
	weightFlight        = 0.3
	weightDateTime      = 0.25
	weightContact       = 0.15
	weightServices      = 0.1
)

// scoreConfidence assigns per-category scores and the overall bucket used
// to gate auto-booking.
func scoreConfidence(data *ParsedBookingData, entities ExtractedEntities) Confidence {
	c := Confidence{}

	if len(entities.Names) > 0 {
		c.PassengerName = 0.9
	}

	if len(entities.FlightNumbers) > 0 {
		c.Flight = 0.95
		if !carrierResolved(entities.FlightNumbers[0]) {
			// Unknown carrier codes are slightly discounted.
			c.Flight *= 0.8
		}
	}

	c.DateTime = 0.5 * float64(len(entities.Dates)+len(entities.Times))
	if c.DateTime > 1.0 {
		c.DateTime = 1.0
	}

	if len(entities.Phones)+len(entities.Emails) > 0 {
		c.Contact = 0.9
	}

	// Missing services are not suspicious on their own, so they default to
	// a neutral-positive score.
	if len(entities.Services) > 0 {
		c.Services = 0.8
	} else {
		c.Services = 0.5
	}

	overall := weightPassengerName*c.PassengerName +
		weightFlight*c.Flight +
		weightDateTime*c.DateTime +
		weightContact*c.Contact +
		weightServices*c.Services

	switch {
	case overall >= 0.8:
		c.Overall = ConfidenceHigh
	case overall >= 0.6:
		c.Overall = ConfidenceMedium
	default:
		c.Overall = ConfidenceLow
	}

	return c
}

func carrierResolved(flightNumber string) bool {
	m := carrierSplitRe.FindStringSubmatch(flightNumber)
	if len(m) != 3 {
		return false
	}
	_, known := airlineNames[m[1]]
	return known
}
