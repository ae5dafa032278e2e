package rag

// DefaultConfidenceThreshold gates whether a document answer is returned at
// all. It corresponds to a mean similarity of 0.3 on the embedding metric;
// answers built on weaker evidence are rejected in favor of an explicit
// "not found" response.
const DefaultConfidenceThreshold = 30.0

// Score is the aggregate confidence for a ranked retrieval result set.
type Score struct {
	Confidence float64 // 0-100
	Accept     bool
}

// Scorer converts raw similarity scores into an accept/reject decision. It
// does not re-rank; it only aggregates the order it is given.
type Scorer struct {
	threshold float64
}

func NewScorer(threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Scorer{threshold: threshold}
}

// Score computes min(100, 100*mean(similarities)) and accepts iff the result
// exceeds the threshold. An empty result set scores zero and is rejected.
func (s *Scorer) Score(similarities []float64) Score {
	if len(similarities) == 0 {
		return Score{Confidence: 0, Accept: false}
	}

	var sum float64
	for _, v := range similarities {
		sum += v
	}
	confidence := 100 * sum / float64(len(similarities))
	if confidence > 100 {
		confidence = 100
	}

	return Score{
		Confidence: confidence,
		Accept:     confidence > s.threshold,
	}
}
