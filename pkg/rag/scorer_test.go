package rag

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name           string
		similarities   []float64
		wantConfidence float64
		wantAccept     bool
	}{
		{
			name:           "empty result set is rejected",
			similarities:   nil,
			wantConfidence: 0,
			wantAccept:     false,
		},
		{
			name:           "mean 0.5 scores 50 and passes",
			similarities:   []float64{0.5, 0.5, 0.5},
			wantConfidence: 50,
			wantAccept:     true,
		},
		{
			name:           "weak matches score below threshold",
			similarities:   []float64{0.15, 0.15, 0.15},
			wantConfidence: 15,
			wantAccept:     false,
		},
		{
			name:           "confidence caps at 100",
			similarities:   []float64{1.2, 1.4},
			wantConfidence: 100,
			wantAccept:     true,
		},
		{
			name:           "threshold is strict",
			similarities:   []float64{0.3, 0.3},
			wantConfidence: 30,
			wantAccept:     false,
		},
		{
			name:           "mixed scores average",
			similarities:   []float64{0.6, 0.4},
			wantConfidence: 50,
			wantAccept:     true,
		},
	}

	s := NewScorer(DefaultConfidenceThreshold)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.similarities)
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Accept != tt.wantAccept {
				t.Errorf("Accept = %v, want %v", got.Accept, tt.wantAccept)
			}
		})
	}
}

func TestNewScorerDefaultThreshold(t *testing.T) {
	s := NewScorer(0)
	if got := s.Score([]float64{0.31}); !got.Accept {
		t.Errorf("Accept = false at confidence %v, default threshold should be %v", got.Confidence, DefaultConfidenceThreshold)
	}
	if got := s.Score([]float64{0.29}); got.Accept {
		t.Errorf("Accept = true at confidence %v, default threshold should be %v", got.Confidence, DefaultConfidenceThreshold)
	}
}
