package parser

// buildSuggestions turns extraction gaps into plain-language hints shown to
// the sender when a message cannot be booked automatically. The checks are
// independent, so several hints can apply at once.
func buildSuggestions(entities ExtractedEntities) []string {
	var suggestions []string

	if len(entities.FlightNumbers) == 0 {
		suggestions = append(suggestions, "Include a flight number (e.g., UA 457 or AA 1234)")
	}
	if len(entities.Dates) == 0 && len(entities.Times) == 0 {
		suggestions = append(suggestions, "Include the travel date and time (e.g., 2025-01-15 at 14:30, or tomorrow at 2pm)")
	}
	if len(entities.Names) == 0 {
		suggestions = append(suggestions, "Include the passenger name")
	}
	if len(entities.Phones) == 0 && len(entities.Emails) == 0 {
		suggestions = append(suggestions, "Include contact information (phone number or email)")
	}

	return suggestions
}
