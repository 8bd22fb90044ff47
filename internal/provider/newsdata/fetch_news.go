package newsdata

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"cryptodigest/internal/provider"
)

// FetchNews returns the raw body of the latest business news. A non-empty
// symbol narrows the search to that ticker.
func (c *Client) FetchNews(ctx context.Context, symbol string) ([]byte, error) {
	query := maps.Clone(c.query)
	query.Set("category", "business")
	query.Set("language", "en")
	if s := provider.NormalizeSymbol(symbol); s != "" {
		query.Set("q", s)
	}

	u := fmt.Sprintf("%s/api/1/news?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	b, err := provider.ReadBody(c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("newsdata: %w", err)
	}
	return b, nil
}
