package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const tokenPunct = ",.!?;:()\"'"

// extractNames scans the original-cased text for capitalized tokens that are
// not stopwords and contain no digits, merging adjacent pairs into two-word
// candidates. This is a heuristic: sentence-initial words and place names
// will occasionally slip through.
func (p *RequestParser) extractNames(text string) []string {
	tokens := strings.Fields(text)
	seen := make(map[string]bool)
	var names []string

	for i := 0; i < len(tokens); i++ {
		word := strings.Trim(tokens[i], tokenPunct)
		if !isNameToken(word) {
			continue
		}

		candidate := word
		if i+1 < len(tokens) {
			next := strings.Trim(tokens[i+1], tokenPunct)
			if isNameToken(next) {
				candidate = word + " " + next
				i++
			}
		}

		if !seen[candidate] {
			seen[candidate] = true
			names = append(names, candidate)
		}
	}

	return names
}

func isNameToken(word string) bool {
	if word == "" {
		return false
	}
	runes := []rune(word)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	if nameStopwords[strings.ToLower(word)] {
		return false
	}
	for _, r := range runes {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// extractFlightNumbers finds carrier-code + number pairs, with or without a
// leading "flight" keyword, normalized to upper case.
func (p *RequestParser) extractFlightNumbers(text string) []string {
	// Carrier codes are 2-3 alphanumerics starting with a letter (B6, F9, G4).
	codeRe := regexp.MustCompile(`(?i)\b[A-Z][A-Z0-9]{1,2}\s*\d{3,4}\b`)
	prefixedRe := regexp.MustCompile(`(?i)\bflight\s+[A-Z][A-Z0-9]{1,2}\s*\d{3,4}\b`)

	matches := codeRe.FindAllString(text, -1)
	matches = append(matches, prefixedRe.FindAllString(text, -1)...)

	seen := make(map[string]bool)
	var flights []string
	for _, m := range matches {
		normalized := strings.ToUpper(strings.TrimSpace(m))
		normalized = strings.TrimPrefix(normalized, "FLIGHT ")
		if !seen[normalized] {
			seen[normalized] = true
			flights = append(flights, normalized)
		}
	}

	return flights
}

// extractDates collects explicit dates and resolves relative ones against
// the parser clock. Everything resolvable is emitted as YYYY-MM-DD; a
// "next <word>" that is not a weekday passes through as matched.
func (p *RequestParser) extractDates(text string) []string {
	now := p.now()
	seen := make(map[string]bool)
	var dates []string

	add := func(value string) {
		if value != "" && !seen[value] {
			seen[value] = true
			dates = append(dates, value)
		}
	}

	isoRe := regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	for _, m := range isoRe.FindAllString(text, -1) {
		add(m)
	}

	slashFullRe := regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	for _, m := range slashFullRe.FindAllStringSubmatch(text, -1) {
		add(formatSlashDate(m[1], m[2], m[3]))
	}

	slashShortRe := regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2})\b`)
	for _, m := range slashShortRe.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[3])
		add(formatSlashDate(m[1], m[2], strconv.Itoa(2000+year)))
	}

	slashBareRe := regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
	for _, m := range slashBareRe.FindAllStringSubmatch(text, -1) {
		add(formatSlashDate(m[1], m[2], strconv.Itoa(now.Year())))
	}

	relativeRe := regexp.MustCompile(`(?i)\b(today|tomorrow)\b`)
	for _, m := range relativeRe.FindAllString(text, -1) {
		if strings.EqualFold(m, "today") {
			add(now.Format("2006-01-02"))
		} else {
			add(now.AddDate(0, 0, 1).Format("2006-01-02"))
		}
	}

	nextRe := regexp.MustCompile(`(?i)\bnext\s+(\w+)\b`)
	for _, m := range nextRe.FindAllStringSubmatch(text, -1) {
		if resolved, ok := resolveNextWeekday(now, m[1]); ok {
			add(resolved)
		} else {
			// Not a weekday ("next month", "next week"), keep as matched.
			add(m[0])
		}
	}

	return dates
}

func formatSlashDate(month, day, year string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	y, _ := strconv.Atoi(year)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// resolveNextWeekday returns the next occurrence of the named weekday
// strictly after the reference date.
func resolveNextWeekday(now time.Time, word string) (string, bool) {
	target, ok := weekdayNames[strings.ToLower(word)]
	if !ok {
		return "", false
	}

	offset := int(target) - int(now.Weekday())
	if offset <= 0 {
		offset += 7
	}

	return now.AddDate(0, 0, offset).Format("2006-01-02"), true
}

// timeRe matches 24-hour, am/pm and o'clock forms in one scan. The qualified
// alternative comes first so "2:05pm" does not also yield a bare "05pm".
var timeRe = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b|\b\d{1,2}:\d{2}\b|\b\d{1,2}\s*o'clock`)

// extractTimes finds time expressions and normalizes all of them to HH:MM.
func (p *RequestParser) extractTimes(text string) []string {
	seen := make(map[string]bool)
	var times []string
	for _, m := range timeRe.FindAllString(text, -1) {
		normalized, ok := normalizeTime(m)
		if !ok {
			continue
		}
		if !seen[normalized] {
			seen[normalized] = true
			times = append(times, normalized)
		}
	}

	return times
}

var clockShapeRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)

func normalizeTime(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))

	// "9 o'clock" -> "9:00" before the am/pm check, so unqualified o'clock
	// values pass through without adjustment.
	if strings.HasSuffix(s, "o'clock") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "o'clock")) + ":00"
	}

	isPM := strings.HasSuffix(s, "pm")
	isAM := strings.HasSuffix(s, "am")
	if isPM || isAM {
		s = strings.TrimSpace(s[:len(s)-2])
	}

	m := clockShapeRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	if isPM && hour != 12 {
		hour += 12
	}
	if isAM && hour == 12 {
		hour = 0
	}

	if hour > 23 || minute > 59 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// extractPhones finds NANP-style and bare digit-run numbers, strips
// punctuation and keeps anything with at least 10 digits.
func (p *RequestParser) extractPhones(text string) []string {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+?\d{10,15}`),
	}

	nonDigit := regexp.MustCompile(`\D`)
	seen := make(map[string]bool)
	var phones []string
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			digits := nonDigit.ReplaceAllString(m, "")
			if len(digits) < 10 {
				continue
			}
			if !seen[digits] {
				seen[digits] = true
				phones = append(phones, digits)
			}
		}
	}

	return phones
}

func (p *RequestParser) extractEmails(text string) []string {
	re := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	seen := make(map[string]bool)
	var emails []string
	for _, m := range re.FindAllString(text, -1) {
		if !seen[m] {
			seen[m] = true
			emails = append(emails, m)
		}
	}

	return emails
}

// extractServices matches the fixed keyword table against the message. When
// activeServices is non-nil, categories outside it are skipped entirely.
func (p *RequestParser) extractServices(text string, activeServices []string) []string {
	var allowed map[string]bool
	if activeServices != nil {
		allowed = make(map[string]bool, len(activeServices))
		for _, code := range activeServices {
			allowed[code] = true
		}
	}

	var services []string
	for _, category := range serviceCategories {
		if allowed != nil && !allowed[category.Code] {
			continue
		}
		for _, keyword := range category.Keywords {
			if strings.Contains(text, keyword) {
				services = append(services, category.Code)
				break
			}
		}
	}

	return services
}
