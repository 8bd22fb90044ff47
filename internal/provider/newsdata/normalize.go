package newsdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cryptodigest/internal/provider"
)

// envelope is the top level of a /api/1/news response. On failure the
// provider answers {"status":"error","results":{"message":...}}.
type envelope struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type article struct {
	Title     *string `json:"title"`
	Link      *string `json:"link"`
	PubDate   *string `json:"pubDate"`
	SourceURL *string `json:"source_url"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NormalizeNews decodes a news response into items in provider order.
// Every article must carry a title and a link, otherwise the whole response
// is a parse error. Blank titles are left for dedup to drop; extra fields
// are ignored.
func NormalizeNews(b []byte) ([]provider.NewsItem, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding news: %v", provider.ErrParse, err)
	}
	if strings.EqualFold(env.Status, "error") {
		var e apiError
		_ = json.Unmarshal(env.Results, &e)
		return nil, fmt.Errorf("%w: newsdata error %s: %s", provider.ErrUpstreamUnavailable, e.Code, e.Message)
	}

	raw := bytes.TrimSpace(env.Results)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: news results is not an array", provider.ErrParse)
	}

	var articles []article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("%w: decoding news results: %v", provider.ErrParse, err)
	}

	items := make([]provider.NewsItem, 0, len(articles))
	for i, a := range articles {
		if a.Title == nil || a.Link == nil {
			return nil, fmt.Errorf("%w: news result %d lacks title or link", provider.ErrParse, i)
		}
		source := deref(a.SourceURL)
		if strings.TrimSpace(source) == "" {
			source = provider.UnknownSource
		}
		items = append(items, provider.NewsItem{
			Title:       *a.Title,
			Link:        *a.Link,
			PublishedAt: deref(a.PubDate),
			SourceLabel: source,
		})
	}
	return items, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
