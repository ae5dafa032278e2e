package embedding

// Provider generates a vector representation for a piece of text. The task
// type hint ("RETRIEVAL_DOCUMENT" or "RETRIEVAL_QUERY") is honoured by
// backends that distinguish indexing from querying and ignored by the rest.
type Provider interface {
	Generate(text string, taskType string) (*Response, error)
}

const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

type Response struct {
	Embedding Vector `json:"embedding"`
}

type Vector struct {
	Values []float32 `json:"values"`
}
