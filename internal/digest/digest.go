// Package digest runs the three page pipelines: fetch from a provider,
// normalize, curate, render. Each call is independent and holds no state
// beyond the immutable Service fields.
package digest

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"cryptodigest/internal/aggregate"
	"cryptodigest/internal/metrics"
	"cryptodigest/internal/provider"
	"cryptodigest/internal/provider/coinmarketcap"
	"cryptodigest/internal/provider/newsdata"
	"cryptodigest/internal/render"
)

// NewsFetcher returns raw news provider responses.
type NewsFetcher interface {
	FetchNews(ctx context.Context, symbol string) ([]byte, error)
}

// MarketFetcher returns raw market-data provider responses.
type MarketFetcher interface {
	FetchCoinInfo(ctx context.Context, symbol string) ([]byte, error)
	FetchQuotes(ctx context.Context, symbol string) ([]byte, error)
}

// Config wires a Service. A nil fetcher marks its pipelines as not
// configured.
type Config struct {
	News      NewsFetcher
	Market    MarketFetcher
	Renderer  *render.Renderer
	Timeout   time.Duration
	NewsLimit int
	Log       zerolog.Logger
}

// Service renders the news, info and prices pages.
type Service struct {
	news      NewsFetcher
	market    MarketFetcher
	renderer  *render.Renderer
	timeout   time.Duration
	newsLimit int
	log       zerolog.Logger
}

func New(cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = aggregate.NewsLimit
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(render.MapStore{})
	}
	return &Service{
		news:      cfg.News,
		market:    cfg.Market,
		renderer:  cfg.Renderer,
		timeout:   cfg.Timeout,
		newsLimit: cfg.NewsLimit,
		log:       cfg.Log,
	}
}

// News renders the news page, narrowed to symbol when it is non-empty.
func (s *Service) News(ctx context.Context, symbol string) (string, error) {
	const pipeline = "news"
	sym := provider.NormalizeSymbol(symbol)
	if s.news == nil {
		return s.fail(pipeline, sym, provider.ErrNotConfigured)
	}

	b, err := s.call(ctx, "newsdata", pipeline, sym, s.news.FetchNews)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}
	items, err := newsdata.NormalizeNews(b)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}
	items = aggregate.DedupNews(items, s.newsLimit)

	frag, err := s.renderer.NewsFragment(sym, items)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}
	metrics.RecordPipeline(pipeline, "ok", len(items))
	return s.renderer.Document(render.NewsPage, frag), nil
}

// Info renders the coin info page. An empty symbol renders the empty page
// without calling the provider; an unknown symbol renders "no info".
func (s *Service) Info(ctx context.Context, symbol string) (string, error) {
	const pipeline = "info"
	sym := provider.NormalizeSymbol(symbol)
	if sym == "" {
		frag, err := s.renderer.InfoFragment("", nil)
		if err != nil {
			return s.fail(pipeline, sym, err)
		}
		metrics.RecordPipeline(pipeline, "empty", 0)
		return s.renderer.Document(render.InfoPage, frag), nil
	}
	if s.market == nil {
		return s.fail(pipeline, sym, provider.ErrNotConfigured)
	}

	b, err := s.call(ctx, "coinmarketcap", pipeline, sym, s.market.FetchCoinInfo)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}

	var coin *provider.CoinSummary
	result := "ok"
	c, err := coinmarketcap.NormalizeCoinInfo(b, sym)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		result = "not_found"
	case err != nil:
		return s.fail(pipeline, sym, err)
	default:
		coin = &c
	}

	frag, err := s.renderer.InfoFragment(sym, coin)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}
	items := 0
	if coin != nil {
		items = 1
	}
	metrics.RecordPipeline(pipeline, result, items)
	return s.renderer.Document(render.InfoPage, frag), nil
}

// Prices renders the prices page: one quote for a symbol, or the top
// listing in provider order.
func (s *Service) Prices(ctx context.Context, symbol string) (string, error) {
	const pipeline = "prices"
	sym := provider.NormalizeSymbol(symbol)
	if s.market == nil {
		return s.fail(pipeline, sym, provider.ErrNotConfigured)
	}

	b, err := s.call(ctx, "coinmarketcap", pipeline, sym, s.market.FetchQuotes)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}

	result := "ok"
	quotes, err := coinmarketcap.NormalizeQuotes(b, sym)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		result = "not_found"
		quotes = nil
	case err != nil:
		return s.fail(pipeline, sym, err)
	}

	if sym == "" {
		quotes = aggregate.RankQuotes(quotes)
	} else if q, ok := aggregate.First(quotes); ok {
		quotes = []provider.PriceQuote{q}
	}

	missing := 0
	for _, q := range quotes {
		if !q.HasPrice {
			missing++
		}
	}
	if missing > 0 {
		s.log.Warn().Str("pipeline", pipeline).Str("symbol", sym).Int("count", missing).Msg("quotes without USD price rendered as 0.00")
		metrics.RecordMissingPrices(missing)
	}

	frag, err := s.renderer.PricesFragment(sym, quotes)
	if err != nil {
		return s.fail(pipeline, sym, err)
	}
	metrics.RecordPipeline(pipeline, result, len(quotes))
	return s.renderer.Document(render.PricesPage, frag), nil
}

// call runs one bounded provider request and records its outcome.
func (s *Service) call(ctx context.Context, prov, endpoint, symbol string, fetch func(context.Context, string) ([]byte, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	b, err := fetch(ctx, symbol)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordUpstream(prov, endpoint, status, time.Since(start).Seconds())
	return b, err
}

func (s *Service) fail(pipeline, symbol string, err error) (string, error) {
	metrics.RecordPipeline(pipeline, Classify(err), 0)
	s.log.Error().Err(err).Str("pipeline", pipeline).Str("symbol", symbol).Msg("pipeline failed")
	return "", err
}

// Classify names the error kind for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, provider.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, provider.ErrParse):
		return "parse_error"
	case errors.Is(err, provider.ErrNotFound):
		return "not_found"
	case errors.Is(err, provider.ErrNotConfigured):
		return "not_configured"
	default:
		return "internal"
	}
}
