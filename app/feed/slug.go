package feed

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "Lúdhíana" slugs the same as "Ludhiana".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug from a cleaned title: lowercase, marks and
// non-alphanumerics stripped, word gaps collapsed to single hyphens.
// Uniqueness is the persister's job, not this function's.
func Slugify(title string) string {
	normalized, _, err := transform.String(stripMarks, title)
	if err != nil {
		normalized = title
	}
	normalized = strings.ToLower(normalized)

	var b strings.Builder
	lastHyphen := true // suppress leading hyphens
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
