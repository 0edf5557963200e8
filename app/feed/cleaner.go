package feed

import (
	"strings"
)

// CleanTitle removes upstream attribution from a feed item title. The
// configured end-of-string patterns are tried first, then a catch-all cuts
// everything after the last " - " separator, which is where aggregators
// append publisher names the pattern list has not caught up with.
func CleanTitle(title string, stripPatterns []string) string {
	cleaned := strings.TrimSpace(title)

	for _, pattern := range stripPatterns {
		cleaned = trimSuffixFold(cleaned, pattern)
	}

	if idx := strings.LastIndex(cleaned, " - "); idx > 0 {
		cleaned = cleaned[:idx]
	}

	return strings.TrimSpace(cleaned)
}

// StripAttribution removes every occurrence of the configured patterns from
// free-form text. Used on feed summaries, where attribution shows up
// mid-string rather than as a suffix.
func StripAttribution(text string, stripPatterns []string) string {
	cleaned := text
	for _, pattern := range stripPatterns {
		cleaned = removeFold(cleaned, pattern)
	}
	return strings.TrimSpace(cleaned)
}

func trimSuffixFold(s, suffix string) string {
	if suffix == "" || len(s) < len(suffix) {
		return s
	}
	if strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)])
	}
	return s
}

// removeFold works on rune windows rather than byte offsets into a lowered
// copy: case folding can change byte widths, and the patterns are
// operator-supplied.
func removeFold(s, substr string) string {
	if substr == "" {
		return s
	}
	runes := []rune(s)
	needle := []rune(substr)

	var b strings.Builder
	for i := 0; i < len(runes); {
		if i+len(needle) <= len(runes) && strings.EqualFold(string(runes[i:i+len(needle)]), substr) {
			i += len(needle)
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}
