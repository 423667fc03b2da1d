package parser

// airlineNames maps IATA carrier codes to full airline names. Unknown codes
// fall back to the raw code in the synthesized record.
var airlineNames = map[string]string{
	"UA": "United Airlines",
	"DL": "Delta Air Lines",
	"AA": "American Airlines",
	"WN": "Southwest Airlines",
	"SW": "Southwest Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"F9": "Frontier Airlines",
	"NK": "Spirit Airlines",
	"G4": "Allegiant Air",
}

// serviceCategory ties a service identifier to the keyword phrases that
// select it. Held as a slice so scan order is stable.
type serviceCategory struct {
	Code     string
	Keywords []string
}

var serviceCategories = []serviceCategory{
	{Code: "meet_greet", Keywords: []string{"meet and greet", "meet & greet", "meet greet", "meet and assist", "greeting service"}},
	{Code: "fast_track", Keywords: []string{"fast track", "fasttrack", "fast-track", "expedited", "skip the line", "priority lane"}},
	{Code: "lounge", Keywords: []string{"lounge", "vip lounge", "airport lounge"}},
	{Code: "porter", Keywords: []string{"porter", "luggage help", "luggage assistance", "baggage assistance", "baggage help"}},
	{Code: "chauffeur", Keywords: []string{"chauffeur", "car service", "limo", "limousine", "driver", "transfer"}},
	{Code: "vip_package", Keywords: []string{"vip package", "vip service", "full service", "premium package"}},
}

// nameStopwords are tokens that look capitalized mid-sentence but are never
// passenger names.
var nameStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "book": true, "flight": true,
	"airport": true, "please": true, "hi": true, "hello": true,
}
