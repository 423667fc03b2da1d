package parser

// Confidence bucket values for the overall extraction quality
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ExtractedEntities holds the raw candidates found by each scanner
type ExtractedEntities struct {
	Names         []string `json:"names"`
	FlightNumbers []string `json:"flightNumbers"`
	Dates         []string `json:"dates"`
	Times         []string `json:"times"`
	Phones        []string `json:"phones"`
	Emails        []string `json:"emails"`
	Services      []string `json:"services"`
}

// Confidence holds per-category scores in [0,1] and the overall bucket
type Confidence struct {
	PassengerName float64 `json:"passengerName"`
	Flight        float64 `json:"flight"`
	DateTime      float64 `json:"dateTime"`
	Contact       float64 `json:"contact"`
	Services      float64 `json:"services"`
	Overall       string  `json:"overall"`
}

// ParsedBookingData is the structured record synthesized from a message
type ParsedBookingData struct {
	PassengerName   string            `json:"passengerName,omitempty"`
	Company         string            `json:"company,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Email           string            `json:"email,omitempty"`
	FlightNumber    string            `json:"flightNumber,omitempty"`
	Airline         string            `json:"airline,omitempty"`
	Date            string            `json:"date,omitempty"`
	Time            string            `json:"time,omitempty"`
	Terminal        string            `json:"terminal,omitempty"`
	PassengerCount  int               `json:"passengerCount"`
	Services        []string          `json:"services"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
	Confidence      Confidence        `json:"confidence"`
	Entities        ExtractedEntities `json:"entities"`
}

// ParseResult is the outcome of a single Parse call. On failure Data is nil
// and Suggestions explains what was missing.
type ParseResult struct {
	Success     bool               `json:"success"`
	Data        *ParsedBookingData `json:"data,omitempty"`
	Error       string             `json:"error,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}
