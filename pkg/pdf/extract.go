// Package pdf extracts per-page plain text from PDF documents so that chunks
// indexed downstream can be attributed back to their pages.
package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"

	"ai-assistant-be/pkg/rag"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractPages returns the text of every page, keeping 1-based page numbers.
// Pages where extraction yields nothing are skipped.
func ExtractPages(data []byte) ([]rag.PageText, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty pdf data")
	}

	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []rag.PageText
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = CleanText(text)
		if text == "" {
			continue
		}
		pages = append(pages, rag.PageText{PageNum: i, Text: text})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in pdf")
	}
	return pages, nil
}

// FullText concatenates page texts with blank lines between pages.
func FullText(pages []rag.PageText) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n\n")
}

// CleanText collapses runs of whitespace and trims the result.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
