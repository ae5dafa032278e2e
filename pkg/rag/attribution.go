package rag

import (
	"fmt"
	"strings"
)

// PageText is the raw text of one source page captured during extraction,
// kept around only long enough to attribute chunks back to pages.
type PageText struct {
	PageNum int
	Text    string
}

// Chunking discards character offsets, so page provenance has to be
// re-derived lexically. An overlap of more than minOverlap distinct words is
// treated as a confident single-page match; anything weaker yields a 3-page
// window around the best guess.
const minOverlap = 3

// AttributePage returns the page (or page range) a chunk most likely came
// from, using set-based word overlap against each page. Ties go to the lowest
// page number since pages are scanned in ascending order.
func AttributePage(chunk string, pages []PageText) string {
	chunkWords := wordSet(chunk)

	bestScore := 0
	bestPage := 1

	for _, page := range pages {
		pageWords := wordSet(page.Text)
		overlap := 0
		for w := range chunkWords {
			if pageWords[w] {
				overlap++
			}
		}
		if overlap > bestScore {
			bestScore = overlap
			bestPage = page.PageNum
		}
	}

	if bestScore > minOverlap {
		return fmt.Sprintf("%d", bestPage)
	}

	low := bestPage - 1
	if low < 1 {
		low = 1
	}
	return fmt.Sprintf("%d-%d", low, bestPage+1)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
