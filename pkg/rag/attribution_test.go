package rag

import "testing"

func TestAttributePage(t *testing.T) {
	pages := []PageText{
		{PageNum: 1, Text: "alpha beta gamma delta epsilon"},
		{PageNum: 2, Text: "zeta eta theta iota kappa"},
		{PageNum: 3, Text: "lambda mu nu xi omicron"},
	}

	tests := []struct {
		name  string
		chunk string
		want  string
	}{
		{
			name:  "strong overlap pins a single page",
			chunk: "alpha beta gamma delta",
			want:  "1",
		},
		{
			name:  "strong overlap on a later page",
			chunk: "lambda mu nu xi",
			want:  "3",
		},
		{
			name:  "weak overlap widens to a window",
			chunk: "zeta eta something else entirely",
			want:  "1-3",
		},
		{
			name:  "weak overlap near page one clamps the lower bound",
			chunk: "alpha unrelated words here",
			want:  "1-2",
		},
		{
			name:  "no overlap defaults to the first pages",
			chunk: "completely foreign vocabulary",
			want:  "1-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttributePage(tt.chunk, pages); got != tt.want {
				t.Errorf("AttributePage(%q) = %q, want %q", tt.chunk, got, tt.want)
			}
		})
	}
}

func TestAttributePageTieGoesToLowestPage(t *testing.T) {
	pages := []PageText{
		{PageNum: 1, Text: "shared words on both pages exactly"},
		{PageNum: 2, Text: "shared words on both pages exactly"},
	}

	if got := AttributePage("shared words on both pages", pages); got != "1" {
		t.Errorf("AttributePage = %q, want tie resolved to page 1", got)
	}
}

func TestAttributePageRepeatedWordsCountOnce(t *testing.T) {
	pages := []PageText{
		{PageNum: 1, Text: "alpha alpha alpha alpha"},
		{PageNum: 2, Text: "alpha beta gamma delta"},
	}

	// "alpha alpha beta gamma" shares one distinct word with page 1 but
	// three with page 2; multiplicity must not matter.
	if got := AttributePage("alpha alpha beta gamma delta", pages); got != "2" {
		t.Errorf("AttributePage = %q, want %q", got, "2")
	}
}
