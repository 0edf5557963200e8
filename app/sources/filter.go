package sources

import (
	"strings"
)

// FilterLabel returns the empty string when the given provider name matches
// an entry of the block-list, otherwise the input unchanged. Matching is
// case-insensitive substring containment in either direction, so both
// "Google News" inside "Google News Punjab" and "ABP" against a blocked
// "ABP Live" are caught. Pure function; used at persist time and again at
// render time by the admin layer.
func FilterLabel(label string, blocked []string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	lowered := strings.ToLower(label)
	for _, entry := range blocked {
		entryLowered := strings.ToLower(strings.TrimSpace(entry))
		if entryLowered == "" {
			continue
		}
		if strings.Contains(lowered, entryLowered) || strings.Contains(entryLowered, lowered) {
			return ""
		}
	}

	return label
}
