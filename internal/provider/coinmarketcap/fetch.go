package coinmarketcap

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"

	"cryptodigest/internal/provider"
)

// FetchCoinInfo returns the raw /v1/cryptocurrency/info body for symbol.
func (c *Client) FetchCoinInfo(ctx context.Context, symbol string) ([]byte, error) {
	s := provider.NormalizeSymbol(symbol)
	if s == "" {
		return nil, provider.ErrSymbolRequired
	}
	query := maps.Clone(c.query)
	query.Set("symbol", s)
	return c.get(ctx, "/v1/cryptocurrency/info", query)
}

// FetchQuotes returns the raw quotes body. With a symbol it asks for that
// coin's latest quote, otherwise for the top listing.
func (c *Client) FetchQuotes(ctx context.Context, symbol string) ([]byte, error) {
	query := maps.Clone(c.query)
	if s := provider.NormalizeSymbol(symbol); s != "" {
		query.Set("symbol", s)
		return c.get(ctx, "/v1/cryptocurrency/quotes/latest", query)
	}
	query.Set("limit", strconv.Itoa(c.listingLimit))
	return c.get(ctx, "/v1/cryptocurrency/listings/latest", query)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	b, err := provider.ReadBody(c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap: %w", err)
	}
	return b, nil
}
