package enhancer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/punjabxpress/newsroom/app/feed"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
	<header><nav>Home | Punjab | Sports</nav></header>
	<article>
		<h1>Punjab budget passed</h1>
		<p>The state assembly on Monday passed the annual budget after a lengthy debate that stretched late into the evening session.</p>
		<p>Opposition members raised concerns over the allocation for rural development, calling the provisions inadequate for the current fiscal year.</p>
		<p>The finance minister defended the budget, pointing to increased spending on education and health infrastructure across all districts.</p>
		<p>Farmers' unions have said they will study the agricultural provisions before announcing their response to the new budget measures.</p>
		<p>The budget session concludes later this week with discussion of supplementary demands for grants from various departments.</p>
	</article>
	<footer><p>Copyright</p></footer>
</body>
</html>`

func shortBodyCandidate(link string) feed.Candidate {
	return feed.Candidate{
		Title:       "Punjab budget passed",
		Slug:        "punjab-budget-passed",
		Link:        link,
		Body:        "The state assembly passed the annual budget.",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEnhanceShortBodyWithReachableOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	e := NewEnhancer("Test/1.0", 5*time.Second)
	c := shortBodyCandidate(server.URL)
	originalLength := len(c.Body)

	result := e.Enhance(context.Background(), c)

	if len(result.Body) <= originalLength {
		t.Errorf("Expected enhanced body longer than %d chars, got %d", originalLength, len(result.Body))
	}
	if !strings.Contains(result.Body, "state assembly on Monday") {
		t.Error("Expected extracted paragraphs in enhanced body")
	}
	if strings.Contains(result.Body, "Home | Punjab | Sports") {
		t.Error("Navigation fragments must not appear in the enhanced body")
	}
}

func TestEnhanceUnreachableOriginFallsBackToPlaceholder(t *testing.T) {
	e := NewEnhancer("Test/1.0", time.Second)
	c := shortBodyCandidate("http://127.0.0.1:1/article")

	result := e.Enhance(context.Background(), c)

	if result.Body == "" {
		t.Fatal("Expected non-empty synthesized body")
	}
	if !strings.Contains(result.Body, Disclaimer) {
		t.Error("Expected disclaimer marker in synthesized body")
	}
	if !strings.Contains(result.Body, "ਖਬਰ") {
		t.Error("Expected Punjabi text in synthesized body")
	}
	if !strings.Contains(result.Body, "01 January 2024") {
		t.Error("Expected publish date line in synthesized body")
	}
	if !strings.Contains(result.Body, c.Body) {
		t.Error("Expected synthesized body to repeat the original snippet")
	}
}

func TestEnhanceLongBodyUntouched(t *testing.T) {
	e := NewEnhancer("Test/1.0", time.Second)

	longBody := strings.Repeat("A meaningful sentence about the news. ", 10)
	c := feed.Candidate{Title: "Long", Link: "http://127.0.0.1:1/x", Body: longBody}

	result := e.Enhance(context.Background(), c)
	if result.Body != longBody {
		t.Error("Expected long body to pass through unchanged")
	}
}

func TestEnhanceUnusableOriginContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>short</p></body></html>"))
	}))
	defer server.Close()

	e := NewEnhancer("Test/1.0", 5*time.Second)
	c := shortBodyCandidate(server.URL)

	result := e.Enhance(context.Background(), c)

	if !strings.Contains(result.Body, Disclaimer) {
		t.Error("Expected placeholder when extraction yields nothing usable")
	}
}

func TestExtractBodyQualityGates(t *testing.T) {
	// Two qualifying paragraphs are below the minimum of three.
	html := `<html><body><article>
		<p>` + strings.Repeat("word ", 30) + `</p>
		<p>` + strings.Repeat("word ", 30) + `</p>
	</article></body></html>`

	if _, ok := ExtractBody([]byte(html)); ok {
		t.Error("Expected extraction to fail with fewer than 3 qualifying paragraphs")
	}
}

func TestExtractBodyCapsParagraphs(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><article>")
	for i := 0; i < 20; i++ {
		sb.WriteString("<p>")
		sb.WriteString(strings.Repeat("sentence ", 10))
		sb.WriteString("</p>")
	}
	sb.WriteString("</article></body></html>")

	text, ok := ExtractBody([]byte(sb.String()))
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}

	if got := len(strings.Split(text, "\n\n")); got > 10 {
		t.Errorf("Expected at most 10 paragraphs, got %d", got)
	}
}

func TestPlaceholderBodyNeverEmpty(t *testing.T) {
	c := feed.Candidate{Title: "Only a title", PublishedAt: time.Now()}
	if PlaceholderBody(c) == "" {
		t.Error("Placeholder body must never be empty")
	}
}
