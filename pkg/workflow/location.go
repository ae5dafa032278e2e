package workflow

import (
	"regexp"
	"strings"
)

// Location extraction is pattern-based: it tries increasingly loose phrasings
// of "weather in <place>" and falls back to any capitalized word that is not
// part of the question itself.
var locationExtractors = []*regexp.Regexp{
	regexp.MustCompile(`weather\s+(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`([a-zA-Z]+(?:\s+[a-zA-Z]+)*)\s+weather`),
	regexp.MustCompile(`temperature\s+(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`forecast\s+(?:for|in|at)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`what\s+is\s+the\s+weather\s+(?:now\s+)?(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`tell\s+me\s+(?:the\s+)?weather\s+(?:now\s+)?(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`how\s+is\s+the\s+weather\s+(?:now\s+)?(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`what'?s\s+the\s+weather\s+(?:now\s+)?(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`current\s+weather\s+(?:in|at|for)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
}

var locationStopWords = regexp.MustCompile(`\b(what|is|the|in|at|for|weather|temperature|forecast)\b`)

var capitalizedExcluded = map[string]bool{
	"What": true, "Is": true, "The": true, "Weather": true, "Temperature": true,
	"Forecast": true, "In": true, "At": true, "For": true, "Tell": true,
	"Me": true, "How": true,
}

var forecastKeywords = []string{"forecast", "tomorrow", "next week", "upcoming", "future"}

const defaultCity = "London"

// ExtractLocation pulls (city, country) out of a weather query. Country is
// empty unless the query used a "city, CC" form. Defaults to London when no
// location can be found at all.
func ExtractLocation(query string) (city, country string) {
	lower := strings.ToLower(query)

	for _, re := range locationExtractors {
		match := re.FindStringSubmatch(lower)
		if match == nil {
			continue
		}

		location := strings.TrimSpace(locationStopWords.ReplaceAllString(match[1], ""))
		if location == "" {
			continue
		}

		if parts := strings.SplitN(location, ",", 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
		return location, ""
	}

	// No pattern hit: take the first capitalized word that is not part of the
	// question phrasing.
	for _, word := range strings.Fields(query) {
		if len(word) <= 2 || capitalizedExcluded[word] {
			continue
		}
		r := rune(word[0])
		if r >= 'A' && r <= 'Z' {
			return word, ""
		}
	}

	return defaultCity, ""
}

// WantsForecast reports whether the query asks about future conditions rather
// than the current weather.
func WantsForecast(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range forecastKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
