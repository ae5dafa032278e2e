package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("SplitText = %v, want the input back as a single chunk", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("", 1000, 200); chunks != nil {
		t.Errorf("SplitText(\"\") = %v, want nil", chunks)
	}
}

func TestSplitTextChunking(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 200)) // ~5400 chars

	chunks := SplitText(text, 1000, 200)
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want multiple chunks for %d chars", len(chunks), len(text))
	}

	for i, chunk := range chunks {
		if len(chunk) == 0 {
			t.Errorf("chunk %d is empty", i)
		}
		if len(chunk) > 1000 {
			t.Errorf("chunk %d has %d chars, want <= 1000", i, len(chunk))
		}
	}

	// Content before the first step boundary must reappear at the start of
	// the next chunk (the overlap).
	if !strings.HasPrefix(text[800:], chunks[1]) {
		t.Error("second chunk does not start at the overlap offset")
	}
}

func TestSplitTextBreaksOnWhitespace(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("abcdefg ", 400))

	chunks := SplitText(text, 100, 20)
	for i, chunk := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(chunk, " ") && strings.ContainsRune(chunk, ' ') {
			// A cut inside a word would leave a partial trailing token even
			// though whitespace was available nearby.
			trailing := chunk[strings.LastIndexByte(chunk, ' ')+1:]
			if trailing != "abcdefg" && trailing != "" {
				t.Errorf("chunk %d ends mid-word: %q", i, trailing)
			}
		}
	}
}

func TestSplitTextZeroOverlapLosesNoText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("word")
		b.WriteRune('a' + rune(i%26))
		b.WriteByte(' ')
	}
	text := strings.TrimSpace(b.String()) // 239 runes

	const chunkSize, overlap = 100, 0
	chunks := SplitText(text, chunkSize, overlap)
	if len(chunks) < 3 {
		t.Fatalf("len(chunks) = %d, want at least 3", len(chunks))
	}

	// Each chunk starts at a fixed step boundary. Whitespace backoff must
	// never shrink a chunk below the next boundary, so every rune of the
	// input ends up in at least one chunk.
	runes := []rune(text)
	covered := make([]bool, len(runes))
	step := chunkSize - overlap
	for idx, chunk := range chunks {
		start := idx * step
		cr := []rune(chunk)
		if start+len(cr) > len(runes) || string(runes[start:start+len(cr)]) != chunk {
			t.Fatalf("chunk %d = %q, does not match input at offset %d", idx, chunk, start)
		}
		for i := start; i < start+len(cr); i++ {
			covered[i] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Fatalf("rune %d (%q) missing from every chunk", i, runes[i])
		}
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)

	// Overlap >= chunk size must still make forward progress.
	chunks := SplitText(text, 10, 20)
	if len(chunks) != 5 {
		t.Errorf("len(chunks) = %d, want 5 non-overlapping chunks", len(chunks))
	}
}
