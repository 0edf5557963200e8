package enhancer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/punjabxpress/newsroom/app/feed"
)

// Bodies below this length trigger a full-text fetch of the origin page.
const minBodyLength = 200

type Enhancer struct {
	client *resty.Client
}

func NewEnhancer(userAgent string, timeout time.Duration) *Enhancer {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Enhancer{client: client}
}

// Enhance upgrades a short candidate body with text extracted from the
// origin page. Network and parse failures degrade to a synthesized
// placeholder; the returned candidate always has a non-empty body and the
// call never propagates an error into the ingestion run.
func (e *Enhancer) Enhance(ctx context.Context, c feed.Candidate) feed.Candidate {
	if len([]rune(c.Body)) >= minBodyLength {
		return c
	}

	html, err := e.fetchPage(ctx, c.Link)
	if err != nil {
		slog.Debug("Origin page fetch failed, synthesizing body", "url", c.Link, "error", err)
		c.Body = PlaceholderBody(c)
		return c
	}

	extracted, ok := ExtractBody(html)
	if ok && len(extracted) > len(c.Body) {
		c.Body = extracted
		return c
	}

	slog.Debug("Origin page yielded no usable content, synthesizing body", "url", c.Link)
	c.Body = PlaceholderBody(c)
	return c
}

func (e *Enhancer) fetchPage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("candidate has no origin URL")
	}

	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch origin page: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	return resp.Body(), nil
}
