package enhancer

import (
	"fmt"
	"strings"

	"github.com/punjabxpress/newsroom/app/feed"
)

// Disclaimer marks the synthesized body; the admin layer renders it as an
// attribution notice.
const Disclaimer = "This story was sourced via feed, see original article at the publisher's website."

const disclaimerPunjabi = "ਇਹ ਖਬਰ ਫੀਡ ਰਾਹੀਂ ਪ੍ਰਾਪਤ ਕੀਤੀ ਗਈ ਹੈ, ਪੂਰੀ ਖਬਰ ਪ੍ਰਕਾਸ਼ਕ ਦੀ ਵੈੱਬਸਾਈਟ 'ਤੇ ਪੜ੍ਹੋ।"

// PlaceholderBody synthesizes a bilingual body when the origin page could
// not be extracted. Never returns an empty string, even for an empty
// snippet.
func PlaceholderBody(c feed.Candidate) string {
	snippet := strings.TrimSpace(c.Body)
	if snippet == "" {
		snippet = c.Title
	}

	var b strings.Builder

	b.WriteString(snippet)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("ਪ੍ਰਕਾਸ਼ਿਤ: %s", c.PublishedAt.Format("02 January 2006")))
	b.WriteString("\n\n")
	b.WriteString(snippet)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Published: %s", c.PublishedAt.Format("02 January 2006")))
	b.WriteString("\n\n")
	b.WriteString(disclaimerPunjabi)
	b.WriteString("\n")
	b.WriteString(Disclaimer)

	return b.String()
}
