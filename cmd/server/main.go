package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cryptodigest/internal/config"
	"cryptodigest/internal/digest"
	"cryptodigest/internal/httpx"
	"cryptodigest/internal/logger"
	"cryptodigest/internal/provider/coinmarketcap"
	"cryptodigest/internal/provider/newsdata"
	"cryptodigest/internal/render"
	"cryptodigest/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "dotenv: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newHandler wires providers, renderer and pipelines into the root handler.
// A provider whose key is empty is left unwired; Validate has already
// rejected that unless missing credentials are allowed.
func newHandler(cfg config.Config, log zerolog.Logger) http.Handler {
	hc := httpx.New(cfg.RequestTimeout())

	var news digest.NewsFetcher
	if cfg.NewsData.APIKey != "" {
		news = newsdata.New(cfg.NewsData.APIKey,
			newsdata.WithBaseURL(cfg.NewsData.BaseURL),
			newsdata.WithHTTPClient(hc),
		)
	} else {
		log.Warn().Msg("NEWSDATA_API_KEY not set; news pages will answer 503")
	}

	var market digest.MarketFetcher
	if cfg.CoinMarketCap.APIKey != "" {
		market = coinmarketcap.New(cfg.CoinMarketCap.APIKey,
			coinmarketcap.WithBaseURL(cfg.CoinMarketCap.BaseURL),
			coinmarketcap.WithHTTPClient(hc),
			coinmarketcap.WithListingLimit(cfg.CoinMarketCap.ListingLimit),
		)
	} else {
		log.Warn().Msg("CMC_API_KEY not set; info and prices pages will answer 503")
	}

	svc := digest.New(digest.Config{
		News:      news,
		Market:    market,
		Renderer:  render.New(render.DirStore{Dir: cfg.Server.TemplateDir}, render.WithLogger(log)),
		Timeout:   cfg.RequestTimeout(),
		NewsLimit: cfg.NewsData.Limit,
		Log:       log,
	})
	return server.New(svc, server.Options{
		StaticDir: cfg.Server.StaticDir,
		Metrics:   promhttp.Handler(),
		Log:       log,
	})
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newHandler(cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Room for one full upstream call plus rendering.
		WriteTimeout: cfg.RequestTimeout() + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
