package classifier

import (
	"log"
	"regexp"
	"strings"
)

// Label is the routing label assigned to a query.
type Label string

const (
	LabelWeather  Label = "weather"
	LabelDocument Label = "document"
	LabelUnknown  Label = "unknown"
)

// Result carries the label together with the raw lexical scores so callers
// (and logs) can see why a query was routed the way it was.
type Result struct {
	Label         Label
	WeatherScore  int
	DocumentScore int
	LocationScore int
}

var weatherKeywords = []string{
	"weather", "temperature", "forecast", "rain", "snow", "sunny", "cloudy",
	"humidity", "wind", "storm", "climate", "degrees",
	"celsius", "fahrenheit", "hot", "cold", "warm", "cool",
}

var documentKeywords = []string{
	"document", "pdf", "file", "text", "content", "information",
	"what does", "what is", "define", "definition", "explain", "describe",
	"tell me about", "summarize", "summary", "overview", "find", "purpose",
	"objective", "objectives", "core tasks", "according to", "in the document",
	"based on the document",
}

// Location indicators common in weather queries ("weather in Paris",
// "London temperature", "in London").
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bweather\s+(in|at|for)\s+\w+`),
	regexp.MustCompile(`\btemperature\s+(in|at|for)\s+\w+`),
	regexp.MustCompile(`\b\w+\s+(weather|temperature)`),
	regexp.MustCompile(`\b(in|at|for)\s+[A-Z][a-z]+`),
}

// Classifier scores free-text queries against fixed keyword tables. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	logger *log.Logger
}

func NewClassifier(logger *log.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify assigns a routing label based on lexical evidence. Location matches
// only boost the weather score when at least one explicit weather term is
// present, so "in London, what is the capital" stays a document query. When
// neither keyword table matches at all the result is LabelUnknown and the
// workflow router decides between rag and fallback based on whether any
// documents are indexed.
func (c *Classifier) Classify(query string) Result {
	lower := strings.ToLower(query)

	res := Result{}
	for _, kw := range weatherKeywords {
		if strings.Contains(lower, kw) {
			res.WeatherScore++
		}
	}
	for _, kw := range documentKeywords {
		if strings.Contains(lower, kw) {
			res.DocumentScore++
		}
	}
	for _, p := range locationPatterns {
		if p.MatchString(lower) {
			res.LocationScore++
		}
	}

	if res.WeatherScore > 0 {
		res.WeatherScore += 2 * res.LocationScore
	}

	switch {
	case res.WeatherScore > res.DocumentScore && res.WeatherScore > 0:
		res.Label = LabelWeather
	case res.DocumentScore >= res.WeatherScore && res.DocumentScore > 0:
		res.Label = LabelDocument
	default:
		res.Label = LabelUnknown
	}

	if c.logger != nil {
		c.logger.Printf("[CLASSIFIER] query=%q weather=%d document=%d location=%d -> %s",
			truncate(query, 60), res.WeatherScore, res.DocumentScore, res.LocationScore, res.Label)
	}

	return res
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
