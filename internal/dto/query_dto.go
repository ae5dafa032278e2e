package dto

type QueryRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

type QuerySource struct {
	Source    string  `json:"source"`
	PageRange string  `json:"page_range"`
	Score     float64 `json:"score"`
	Excerpt   string  `json:"excerpt"`
}

type QueryResponse struct {
	Response       string        `json:"response"`
	ResponseType   string        `json:"response_type"`
	Classification string        `json:"classification"`
	Confidence     float64       `json:"confidence,omitempty"`
	Sources        []QuerySource `json:"sources,omitempty"`
	Error          string        `json:"error,omitempty"`
}
