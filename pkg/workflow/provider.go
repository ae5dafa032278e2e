package workflow

import "context"

// WeatherResult is the provider-agnostic weather payload a weather handler
// attaches to the state. Formatted is the human-readable rendering used as
// the response body.
type WeatherResult struct {
	City        string
	Country     string
	Description string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Forecast    bool
	Formatted   string
}

// WeatherProvider fetches current conditions or a forecast for a city. The
// engine calls it at most once per request and does not retry.
type WeatherProvider interface {
	CurrentOrForecast(ctx context.Context, city, country string, wantsForecast bool) (*WeatherResult, error)
}

// RetrievedChunk is one ranked retrieval hit.
type RetrievedChunk struct {
	Text      string
	Source    string
	PageRange string
	Score     float64
}

// DocumentStore is the retrieval collaborator contract. Retrieve returns
// chunks in descending similarity order; Answer synthesizes a natural-language
// answer from the given context chunks and is only called when the retrieval
// scorer accepted the evidence.
type DocumentStore interface {
	HasDocuments(ctx context.Context) (bool, error)
	Retrieve(ctx context.Context, query string, limit int) ([]RetrievedChunk, error)
	Answer(ctx context.Context, query string, chunks []RetrievedChunk) (string, error)
}
