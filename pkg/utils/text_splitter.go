package utils

import "unicode"

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap that preserves context at boundaries. Chunk ends
// back off to the nearest whitespace when one is close, so words are rarely
// cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = backoffToWhitespace(runes, i, end, i+step)
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}
	return chunks
}

// backoffToWhitespace moves the cut point left to the last whitespace within
// the final tenth of the chunk. The cut never retreats past floor, the start
// of the next chunk, so every rune lands in at least one chunk. If no
// whitespace qualifies the hard cut stands.
func backoffToWhitespace(runes []rune, start, end, floor int) int {
	limit := end - (end-start)/10
	if limit < floor {
		limit = floor
	}
	for i := end - 1; i > limit; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}
