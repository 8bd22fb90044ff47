package provider

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=providertest -destination=providertest/mock_http_client.go -source=provider.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrUpstreamUnavailable covers network failures, non-2xx statuses and
	// provider error envelopes.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrParse means the response did not match the expected shape.
	ErrParse = errors.New("unexpected response shape")
	// ErrNotFound means the response was valid but held no matching entity.
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured is returned by pipelines whose credential is missing.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrSymbolRequired is returned when an endpoint needs a symbol and got none.
	ErrSymbolRequired = errors.New("symbol required")
)

// UnknownSource is the label used when a news item carries no source.
const UnknownSource = "Unknown"

// NewsItem is a single headline from the news provider.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	SourceLabel string `json:"source"`
}

// Key is the dedup identity of the item.
func (n NewsItem) Key() string {
	return strings.ToLower(strings.TrimSpace(n.Title))
}

// CoinSummary is the metadata of one coin.
type CoinSummary struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Description string   `json:"description"`
	WebsiteURLs []string `json:"website_urls"`
}

// PriceQuote is a USD quote. Rank is positional and 1-based.
// HasPrice is false when the provider sent no numeric price; PriceUSD is then 0.
type PriceQuote struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"price_usd"`
	HasPrice bool    `json:"has_price"`
}

// NormalizeSymbol trims and uppercases a ticker. An empty result selects
// the general/top-N mode.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
