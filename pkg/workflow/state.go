package workflow

import "ai-assistant-be/pkg/classifier"

// ResponseType tells the caller which handler produced the response.
type ResponseType string

const (
	ResponseTypeNone     ResponseType = ""
	ResponseTypeWeather  ResponseType = "weather"
	ResponseTypeDocument ResponseType = "document"
	ResponseTypeFallback ResponseType = "fallback"
	ResponseTypeError    ResponseType = "error"
)

// SourceRef points at the evidence behind a document answer. Order in
// State.Sources is retrieval rank order.
type SourceRef struct {
	Source    string
	PageRange string
	Score     float64
	Excerpt   string
}

// State is the single mutable record threaded through one workflow run. It is
// created per request, mutated by exactly one node per step, and never shared
// between requests. At most one of WeatherData / Sources is populated,
// matching ResponseType.
type State struct {
	Query          string
	Classification classifier.Label
	HasDocuments   bool

	Response     string
	ResponseType ResponseType
	Error        string

	Sources    []SourceRef
	Confidence float64

	WeatherData *WeatherResult
}

// NewState builds the initial state for a request. HasDocuments must be
// probed by the caller before the run starts.
func NewState(query string, hasDocuments bool) *State {
	return &State{
		Query:        query,
		HasDocuments: hasDocuments,
	}
}
