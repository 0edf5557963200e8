package enhancer

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Paragraph selector strategies, tried in order. Article-scoped selectors
// come first so navigation and boilerplate paragraphs outside the story
// never win over the story itself.
var paragraphSelectors = []string{
	"article p",
	"main p",
	".article-content p",
	".story-content p",
	".entry-content p",
	"p",
}

// Quality gates for an accepted extraction. Paragraphs below the per-
// paragraph minimum are boilerplate fragments (timestamps, share buttons)
// and are dropped before the combined check.
const (
	minParagraphs      = 3
	minParagraphLength = 50
	minCombinedLength  = 300
	maxParagraphs      = 10
)

// ExtractBody pulls readable article text out of an origin page. Selector
// strategies run first; readability is the final attempt when no selector
// yields enough qualifying paragraphs. Returns false when nothing usable
// was found.
func ExtractBody(html []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		slog.Debug("Failed to parse origin page HTML", "error", err)
		return "", false
	}

	for _, selector := range paragraphSelectors {
		if text, ok := extractWithSelector(doc, selector); ok {
			slog.Debug("Content extracted", "selector", selector, "length", len(text))
			return text, true
		}
	}

	if text, ok := extractWithReadability(html); ok {
		slog.Debug("Content extracted via readability", "length", len(text))
		return text, true
	}

	return "", false
}

func extractWithSelector(doc *goquery.Document, selector string) (string, bool) {
	var paragraphs []string
	combined := 0

	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len([]rune(text)) < minParagraphLength {
			return true
		}
		paragraphs = append(paragraphs, text)
		combined += len([]rune(text))
		return len(paragraphs) < maxParagraphs
	})

	if len(paragraphs) < minParagraphs || combined < minCombinedLength {
		return "", false
	}

	return strings.Join(paragraphs, "\n\n"), true
}

func extractWithReadability(html []byte) (string, bool) {
	article, err := readability.FromReader(bytes.NewReader(html), nil)
	if err != nil {
		return "", false
	}

	text := strings.TrimSpace(article.TextContent)
	if len([]rune(text)) < minCombinedLength {
		return "", false
	}

	return text, true
}
