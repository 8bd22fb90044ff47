package coinmarketcap

import (
	"net/http"
	"net/url"

	"cryptodigest/internal/provider"
)

// DefaultBaseURL is the CoinMarketCap pro API endpoint.
const DefaultBaseURL = "https://pro-api.coinmarketcap.com"

// DefaultListingLimit is how many coins the top listing asks for.
const DefaultListingLimit = 12

// KeyHeader carries the API key on every request.
const KeyHeader = "X-CMC_PRO_API_KEY"

// Client is a client for the CoinMarketCap API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient provider.HTTPClient
	// header contains the headers sent with each request, the key included.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	// listingLimit is the limit sent to the listings endpoint.
	listingLimit int
}

// Option is a configuration option for the CoinMarketCap client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient provider.HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithListingLimit sets how many coins FetchQuotes requests in top-N mode.
func WithListingLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.listingLimit = n
		}
	}
}

// New creates a CoinMarketCap client. An empty key is still sent so the
// provider can reject the call.
func New(key string, options ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		httpClient:   http.DefaultClient,
		header:       http.Header{},
		query:        url.Values{},
		listingLimit: DefaultListingLimit,
	}
	c.header.Set(KeyHeader, key)
	for _, option := range options {
		option(c)
	}
	return c
}
