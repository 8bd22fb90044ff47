// Package render turns normalized provider items into HTML fragments and
// merges them into page templates. Every interpolated value goes through
// html/template escaping; coin descriptions, which the provider ships as
// rich text, are sanitized instead.
package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"cryptodigest/internal/provider"
)

// Renderer builds pages from a template store.
type Renderer struct {
	store     Store
	sanitizer *Sanitizer
	log       zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report missing page templates.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// New returns a Renderer reading pages from store.
func New(store Store, opts ...Option) *Renderer {
	r := &Renderer{
		store:     store,
		sanitizer: NewSanitizer(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type newsView struct {
	Symbol string
	Items  []provider.NewsItem
}

type infoView struct {
	Name        string
	Symbol      string
	Description template.HTML
	Websites    []string
}

type priceView struct {
	provider.PriceQuote
	Ranked bool
}

type pricesView struct {
	Listing bool
	Quotes  []priceView
}

// NewsFragment renders the heading and one card per item. A non-empty
// symbol switches the heading to the symbol view with a back control.
func (r *Renderer) NewsFragment(symbol string, items []provider.NewsItem) (string, error) {
	return execute("news", newsView{Symbol: provider.NormalizeSymbol(symbol), Items: items})
}

// InfoFragment renders a coin summary. A nil coin renders the "no info"
// message, and an empty symbol renders the empty container.
func (r *Renderer) InfoFragment(symbol string, coin *provider.CoinSummary) (string, error) {
	if provider.NormalizeSymbol(symbol) == "" {
		return execute("info-empty", nil)
	}
	if coin == nil {
		return execute("info-missing", nil)
	}
	v := infoView{
		Name:        coin.Name,
		Symbol:      coin.Symbol,
		Description: template.HTML(r.sanitizer.Sanitize(coin.Description)),
		Websites:    webLinks(coin.WebsiteURLs),
	}
	return execute("info", v)
}

// PricesFragment renders price cards. In listing mode (empty symbol) each
// card carries its rank; otherwise at most the first quote is shown and an
// empty slice renders the "no price data" message.
func (r *Renderer) PricesFragment(symbol string, quotes []provider.PriceQuote) (string, error) {
	listing := provider.NormalizeSymbol(symbol) == ""
	if !listing && len(quotes) > 1 {
		quotes = quotes[:1]
	}
	v := pricesView{Listing: listing, Quotes: make([]priceView, 0, len(quotes))}
	for _, q := range quotes {
		v.Quotes = append(v.Quotes, priceView{PriceQuote: q, Ranked: listing})
	}
	return execute("prices", v)
}

// Document loads page and merges fragment into it. A page that cannot be
// loaded degrades to an empty template.
func (r *Renderer) Document(page Page, fragment string) string {
	tmpl, err := r.store.Load(page.File)
	if err != nil {
		r.log.Warn().Err(err).Str("page", page.Name).Msg("page template unavailable, using empty template")
		tmpl = ""
	}
	return Merge(tmpl, page.Placeholder, fragment)
}

func execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := fragments.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// webLinks keeps absolute http(s) URLs only.
func webLinks(in []string) []string {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Host == "" {
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		out = append(out, u.String())
	}
	return out
}
